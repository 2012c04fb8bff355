package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RegistrationInput {
	return RegistrationInput{
		FullName:        "Sarah Johnson",
		Email:           "Sarah.J@Company.com",
		Password:        "abcdefgh",
		ConfirmPassword: "abcdefgh",
		AcceptTerms:     true,
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *RegistrationInput)
		wantErr error
		field   string
	}{
		{name: "valid", mutate: func(in *RegistrationInput) {}},
		{
			name:    "weak_password",
			mutate:  func(in *RegistrationInput) { in.Password, in.ConfirmPassword = "short1", "short1" },
			wantErr: ErrWeakPassword,
		},
		{
			name:    "password_mismatch",
			mutate:  func(in *RegistrationInput) { in.ConfirmPassword = "abcdefgx" },
			wantErr: ErrPasswordMismatch,
		},
		{
			name:    "terms_not_accepted",
			mutate:  func(in *RegistrationInput) { in.AcceptTerms = false },
			wantErr: ErrTermsNotAccepted,
		},
		{
			name:    "missing_full_name",
			mutate:  func(in *RegistrationInput) { in.FullName = "  " },
			wantErr: ErrMissingField,
			field:   "fullName",
		},
		{
			name:    "missing_email",
			mutate:  func(in *RegistrationInput) { in.Email = "" },
			wantErr: ErrMissingField,
			field:   "email",
		},
		{
			name:    "invalid_email",
			mutate:  func(in *RegistrationInput) { in.Email = "user@@example.com" },
			wantErr: ErrInvalidEmail,
		},
		{
			name: "mismatch_reported_before_weak",
			mutate: func(in *RegistrationInput) {
				in.Password, in.ConfirmPassword = "short", "other"
			},
			wantErr: ErrPasswordMismatch,
		},
		{
			name: "weak_reported_before_terms",
			mutate: func(in *RegistrationInput) {
				in.Password, in.ConfirmPassword, in.AcceptTerms = "short", "short", false
			},
			wantErr: ErrWeakPassword,
		},
		{
			name: "terms_reported_before_missing",
			mutate: func(in *RegistrationInput) {
				in.AcceptTerms, in.FullName = false, ""
			},
			wantErr: ErrTermsNotAccepted,
		},
		{
			name: "missing_reported_before_invalid_email",
			mutate: func(in *RegistrationInput) {
				in.FullName, in.Email = "", "not-an-email"
			},
			wantErr: ErrMissingField,
			field:   "fullName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			user, err := ValidateRegistration(in)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "sarah.j@company.com", user.Email)
				assert.Equal(t, "Sarah Johnson", user.Name)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
			if tt.field != "" {
				var regErr *RegistrationError
				require.ErrorAs(t, err, &regErr)
				assert.Equal(t, tt.field, regErr.Field)
			}
		})
	}
}

func TestRegistrationError_IsMatchesCodeOnly(t *testing.T) {
	err := &RegistrationError{Code: CodeMissingField, Field: "email", Message: "Email is required"}
	assert.ErrorIs(t, err, ErrMissingField)
	assert.NotErrorIs(t, err, ErrInvalidEmail)
}
