package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	certificateIDRegex    = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	verificationCodeRegex = regexp.MustCompile(`^[A-Z0-9]{6,8}$`)
)

func init() {
	validate.RegisterValidation("certid", func(fl validator.FieldLevel) bool {
		return certificateIDRegex.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("vercode", func(fl validator.FieldLevel) bool {
		return verificationCodeRegex.MatchString(fl.Field().String())
	})
}

func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// ValidCertificateID reports whether s is a well formed certificate ID
// (lowercase hex UUID).
func ValidCertificateID(s string) bool {
	return certificateIDRegex.MatchString(s)
}

// ValidVerificationCode reports whether s is a well formed short code
// (6-8 uppercase alphanumerics).
func ValidVerificationCode(s string) bool {
	return verificationCodeRegex.MatchString(s)
}
