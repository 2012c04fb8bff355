package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the portal's basic local@domain.tld rule: no whitespace
// (Unicode spaces included), exactly one @, and at least one dot after it.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so errors can be shown next to form inputs.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// Custom validators
	v.RegisterValidation("notblank", validateNotBlank)
	v.RegisterValidation("portal_email", validatePortalEmail)
	v.RegisterValidation("quarter_hour", validateQuarterHour)

	return &Validator{validate: v}
}

func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// IsEmail reports whether email satisfies the portal email rule.
func IsEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validatePortalEmail(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

func validateQuarterHour(fl validator.FieldLevel) bool {
	return fl.Field().Int()%15 == 0
}
