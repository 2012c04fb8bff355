package account

import (
	"errors"
	"regexp"
)

type ResetState string

const (
	ResetStateAwaitingEmail       ResetState = "awaiting_email"
	ResetStateLinkSent            ResetState = "link_sent"
	ResetStateAwaitingNewPassword ResetState = "awaiting_new_password"
	ResetStateInvalidToken        ResetState = "invalid_token"
	ResetStatePasswordsSet        ResetState = "passwords_set"
)

var ErrInvalidResetTransition = errors.New("invalid password reset transition")

// resetTokenPattern matches tokens produced by util.RandomString(32).
var resetTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{43}$`)

// ResetFlow is the password reset state machine. PasswordsSet and
// InvalidToken are terminal; only Restart leaves them.
type ResetFlow struct {
	State ResetState `json:"state"`
	Token string     `json:"-"`
	Err   error      `json:"-"`
}

func NewResetFlow() ResetFlow {
	return ResetFlow{State: ResetStateAwaitingEmail}
}

// SubmitEmail always reaches LinkSent, whether or not an account exists.
func (f *ResetFlow) SubmitEmail() error {
	if f.State != ResetStateAwaitingEmail {
		return ErrInvalidResetTransition
	}
	f.State = ResetStateLinkSent
	f.Err = nil
	return nil
}

// OpenLink follows a reset link. A missing or malformed token always lands
// in InvalidToken.
func (f *ResetFlow) OpenLink(token string) error {
	if f.State != ResetStateAwaitingEmail && f.State != ResetStateLinkSent {
		return ErrInvalidResetTransition
	}
	if !resetTokenPattern.MatchString(token) {
		f.State = ResetStateInvalidToken
		f.Token = ""
		return nil
	}
	f.State = ResetStateAwaitingNewPassword
	f.Token = token
	return nil
}

// Invalidate rejects a well-formed token that the store does not know.
func (f *ResetFlow) Invalidate() {
	f.State = ResetStateInvalidToken
	f.Token = ""
}

// SubmitPasswords moves to PasswordsSet, or stays in AwaitingNewPassword
// with Err set to ErrPasswordMismatch or ErrWeakPassword.
func (f *ResetFlow) SubmitPasswords(password, confirmPassword string) error {
	if f.State != ResetStateAwaitingNewPassword {
		return ErrInvalidResetTransition
	}
	if err := ValidateNewPassword(password, confirmPassword); err != nil {
		f.Err = err
		return err
	}
	f.State = ResetStatePasswordsSet
	f.Err = nil
	return nil
}

func (f *ResetFlow) Restart() {
	*f = NewResetFlow()
}

func (f ResetFlow) Terminal() bool {
	return f.State == ResetStatePasswordsSet || f.State == ResetStateInvalidToken
}
