// Package config loads application configuration from config/app.json and
// .env, with built-in defaults. Keys are case-insensitive; .env entries
// override app.json entries, which override the defaults.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	defaultDatabaseDriver = "sqlite"
	defaultSQLiteDSN      = "quickcart.db"
	defaultPostgresDSN    = "host=localhost user=postgres password=postgres dbname=quickcart port=5432 sslmode=disable"
	defaultMySQLDSN       = "root:root@tcp(127.0.0.1:3306)/quickcart?charset=utf8mb4&parseTime=True&loc=Local"
	defaultAppPort        = "5000"
	defaultAppEnv         = "local"
	defaultAdminUsername  = "admin"
	defaultAdminPassword  = "1234"
	defaultSessionCookie  = "quickcart_session"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"DB_DRIVER":           defaultDatabaseDriver,
		"DATABASE_DSN":        "",
		"APP_PORT":            defaultAppPort,
		"APP_ENV":             defaultAppEnv,
		"ADMIN_USERNAME":      defaultAdminUsername,
		"ADMIN_PASSWORD":      defaultAdminPassword,
		"ADMIN_PASSWORD_HASH": "",
		"SESSION_COOKIE":      defaultSessionCookie,
		"REDIS_ADDR":          "",
		"REDIS_PASSWORD":      "",
	}
}

func DatabaseDriver() string {
	_ = Load()

	driver := strings.ToLower(get("DB_DRIVER", defaultDatabaseDriver))
	switch driver {
	case "sqlite", "postgres", "mysql":
		return driver
	default:
		return defaultDatabaseDriver
	}
}

func DatabaseDSN() string {
	_ = Load()

	override := get("DATABASE_DSN", "")
	if override != "" {
		return override
	}

	switch DatabaseDriver() {
	case "postgres":
		return defaultPostgresDSN
	case "mysql":
		return defaultMySQLDSN
	default:
		return defaultSQLiteDSN
	}
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// AdminUsername is the operator login name.
func AdminUsername() string {
	_ = Load()
	return get("ADMIN_USERNAME", defaultAdminUsername)
}

// AdminPassword is the plain-text operator password, used only when no
// bcrypt hash is configured. Intended for local development.
func AdminPassword() string {
	_ = Load()
	return get("ADMIN_PASSWORD", defaultAdminPassword)
}

// AdminPasswordHash is the bcrypt hash of the operator password. When set it
// takes precedence over ADMIN_PASSWORD.
func AdminPasswordHash() string {
	_ = Load()
	return get("ADMIN_PASSWORD_HASH", "")
}

func SessionCookie() string {
	_ = Load()
	return get("SESSION_COOKIE", defaultSessionCookie)
}

// RedisAddr selects the Redis-backed session store; sessions live in process
// memory when it is empty.
func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", "")
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
