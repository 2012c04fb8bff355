package account

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"meetingportal/internal/model"
	portalvalidator "meetingportal/internal/validator"
)

const MinPasswordLength = 8

type ErrorCode string

const (
	CodePasswordMismatch ErrorCode = "password_mismatch"
	CodeWeakPassword     ErrorCode = "weak_password"
	CodeTermsNotAccepted ErrorCode = "terms_not_accepted"
	CodeMissingField     ErrorCode = "missing_field"
	CodeInvalidEmail     ErrorCode = "invalid_email"
)

// RegistrationError is a field-level rejection. Two errors match under
// errors.Is when their codes are equal.
type RegistrationError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

func (e *RegistrationError) Error() string {
	return e.Message
}

func (e *RegistrationError) Is(target error) bool {
	var t *RegistrationError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrPasswordMismatch = &RegistrationError{Code: CodePasswordMismatch, Field: "confirmPassword", Message: "Passwords do not match"}
	ErrWeakPassword     = &RegistrationError{Code: CodeWeakPassword, Field: "password", Message: "Password must be at least 8 characters long"}
	ErrTermsNotAccepted = &RegistrationError{Code: CodeTermsNotAccepted, Field: "acceptTerms", Message: "You must accept the terms and conditions"}
	ErrMissingField     = &RegistrationError{Code: CodeMissingField, Message: "All fields are required"}
	ErrInvalidEmail     = &RegistrationError{Code: CodeInvalidEmail, Field: "email", Message: "Please enter a valid email address"}
)

type RegistrationInput struct {
	FullName        string `json:"fullName" validate:"notblank"`
	Email           string `json:"email" validate:"notblank,portal_email"`
	Password        string `json:"password" validate:"min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	AcceptTerms     bool   `json:"acceptTerms" validate:"eq=true"`
}

var registrationValidator = portalvalidator.New()

// ValidateRegistration gates a new account. When several rules fail the
// first one in this order is reported: password mismatch, weak password,
// terms not accepted, missing field, invalid email. On success it returns
// the user draft with a trimmed name and a lowercased email.
func ValidateRegistration(input RegistrationInput) (model.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(input.Email)

	err := registrationValidator.Validate(input)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return model.User{}, err
		}
		return model.User{}, firstRegistrationError(verrs)
	}

	return model.User{
		Name:  input.FullName,
		Email: strings.ToLower(input.Email),
	}, nil
}

func firstRegistrationError(verrs validator.ValidationErrors) error {
	failed := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		failed[fe.Field()] = fe.Tag()
	}

	switch {
	case failed["confirmPassword"] != "":
		return ErrPasswordMismatch
	case failed["password"] != "":
		return ErrWeakPassword
	case failed["acceptTerms"] != "":
		return ErrTermsNotAccepted
	case failed["fullName"] != "":
		return &RegistrationError{Code: CodeMissingField, Field: "fullName", Message: "Full name is required"}
	case failed["email"] == "notblank":
		return &RegistrationError{Code: CodeMissingField, Field: "email", Message: "Email is required"}
	case failed["email"] != "":
		return ErrInvalidEmail
	}
	return verrs
}

// ValidateNewPassword applies the password rules shared by registration
// and password reset.
func ValidateNewPassword(password, confirmPassword string) error {
	if password != confirmPassword {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
