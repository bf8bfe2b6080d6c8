package services

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/quickcart/quickcart/config"
)

// AuthService checks operator credentials against the configured pair.
// When ADMIN_PASSWORD_HASH is set the password is verified with bcrypt;
// otherwise the plain ADMIN_PASSWORD is compared in constant time.
type AuthService struct{}

func NewAuthService() *AuthService {
	return &AuthService{}
}

// Attempt reports whether the username/password pair is valid.
func (s *AuthService) Attempt(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(config.AdminUsername())) == 1

	var passOK bool
	if hash := config.AdminPasswordHash(); hash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(config.AdminPassword())) == 1
	}

	return userOK && passOK
}
