package validation

import (
	"log"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,15}$`)
	urlPattern   = regexp.MustCompile(`^https?://[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}(/.*)?$`)
)

const forbiddenNameChars = `<>"'&`

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("emailaddr", stringRule(IsEmail))
	mustRegister("phone", stringRule(IsPhone))
	mustRegister("httpurl", stringRule(IsHTTPURL))
	mustRegister("safename", stringRule(IsSafeName))
}

// stringRule skips empty values; presence is the job of "required".
func stringRule(check func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return check(value)
	}
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

func IsPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

func IsHTTPURL(s string) bool {
	return urlPattern.MatchString(strings.TrimSpace(s))
}

func IsSafeName(s string) bool {
	s = strings.TrimSpace(s)
	return len([]rune(s)) >= 2 && !strings.ContainsAny(s, forbiddenNameChars)
}

// NormalizeEmail lower-cases and trims an address that already passed IsEmail.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
