// Package validate provides struct-tag validation for form input.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required    field must not be zero/empty
//	numeric     any number (string fields must parse as a number)
//	integer     whole number (string fields must parse as an integer)
//	min=N       string: min char length | number: min value
//	max=N       string: max char length | number: max value
//	gt=N        number > N
//	gte=N       number >= N
//
// String fields carrying numeric or integer are compared by parsed value,
// so raw form fields can be validated before conversion:
//
//	type addProduct struct {
//	    Name     string `form:"name"     validate:"required,max=255"`
//	    Price    string `form:"price"    validate:"required,numeric,gte=0"`
//	    Quantity string `form:"quantity" validate:"required,integer,gte=0"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := fieldName(field)
		rules := strings.Split(tag, ",")

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			if msg := apply(rule, rules, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}

	return errs
}

// HasErrors reports whether the error map contains any entries.
func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		if name := strings.Split(field.Tag.Get(tag), ",")[0]; name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

func apply(rule string, allRules []string, value reflect.Value) string {
	name, param, _ := strings.Cut(rule, "=")

	switch name {
	case "required":
		if isEmpty(value) {
			return "is required"
		}
	case "numeric":
		if _, ok := asNumber(value); !ok {
			return "must be a number"
		}
	case "integer":
		if !isInteger(value) {
			return "must be a whole number"
		}
	case "min":
		return compareRule(value, allRules, param, "min", func(n, p float64) bool { return n >= p })
	case "max":
		return compareRule(value, allRules, param, "max", func(n, p float64) bool { return n <= p })
	case "gt":
		return numberRule(value, param, "must be greater than", func(n, p float64) bool { return n > p })
	case "gte":
		return numberRule(value, param, "must be at least", func(n, p float64) bool { return n >= p })
	}
	return ""
}

// compareRule applies min/max: numeric comparison for numbers (and strings
// validated as numbers), character length for plain strings.
func compareRule(value reflect.Value, allRules []string, param, kind string, cmp func(n, p float64) bool) string {
	p, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return ""
	}

	if value.Kind() == reflect.String && !hasNumericRule(allRules) {
		length := float64(len([]rune(value.String())))
		if !cmp(length, p) {
			if kind == "min" {
				return fmt.Sprintf("must be at least %s characters", param)
			}
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return ""
	}

	n, ok := asNumber(value)
	if !ok {
		return "must be a number"
	}
	if !cmp(n, p) {
		if kind == "min" {
			return fmt.Sprintf("must be at least %s", param)
		}
		return fmt.Sprintf("must be at most %s", param)
	}
	return ""
}

func numberRule(value reflect.Value, param, msg string, cmp func(n, p float64) bool) string {
	p, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return ""
	}
	n, ok := asNumber(value)
	if !ok {
		return "must be a number"
	}
	if !cmp(n, p) {
		return fmt.Sprintf("%s %s", msg, param)
	}
	return ""
}

func hasNumericRule(rules []string) bool {
	for _, r := range rules {
		r = strings.TrimSpace(r)
		if r == "numeric" || r == "integer" {
			return true
		}
	}
	return false
}

func isEmpty(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.String:
		return strings.TrimSpace(value.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return value.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return value.IsNil()
	default:
		return value.IsZero()
	}
}

func asNumber(value reflect.Value) (float64, bool) {
	switch value.Kind() {
	case reflect.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(value.String()), 64)
		return n, err == nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(value.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(value.Uint()), true
	case reflect.Float32, reflect.Float64:
		return value.Float(), true
	default:
		return 0, false
	}
}

func isInteger(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.String:
		_, err := strconv.ParseInt(strings.TrimSpace(value.String()), 10, 64)
		return err == nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		return value.Float() == float64(int64(value.Float()))
	default:
		return false
	}
}
