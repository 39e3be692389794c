package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxIdempotencyKeyLength bounds the client-supplied Idempotency-Key header.
const MaxIdempotencyKeyLength = 100

var safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("decimal_amount", validateDecimalAmount)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateDecimalAmount accepts plain decimal strings such as "12" or "12.50".
// Sign and precision are ledger rules and are checked by the services.
func validateDecimalAmount(fl validator.FieldLevel) bool {
	return IsDecimal(fl.Field().String())
}

// IsDecimal reports whether s parses as a plain decimal number.
func IsDecimal(s string) bool {
	if s == "" || strings.ContainsAny(s, "eE") {
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}

// ValidIdempotencyKey reports whether an Idempotency-Key header is usable.
// An empty key means the caller did not ask for idempotency.
func ValidIdempotencyKey(key string) bool {
	if key == "" {
		return true
	}
	return len(key) <= MaxIdempotencyKeyLength && safeStringRe.MatchString(key)
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string and slices of structs) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				s := sanitize(elem.String())
				elem.SetString(s)
			}
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.Struct {
				continue
			}
			for j := 0; j < f.Len(); j++ {
				sanitizeFields(f.Index(j))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
