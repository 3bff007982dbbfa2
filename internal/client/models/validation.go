package models

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/dayscribe/internal/common"
)

// MaxTaskTextLen is the longest accepted task text, in runes.
const MaxTaskTextLen = 200

var (
	ErrEmptyTask     = fmt.Errorf("%w: task cannot be empty", common.ErrValidation)
	ErrTaskTooLong   = fmt.Errorf("%w: task too long", common.ErrValidation)
	ErrInvalidEmail  = fmt.Errorf("%w: invalid email address", common.ErrValidation)
	ErrMissingName   = fmt.Errorf("%w: first and last name are required", common.ErrValidation)
	ErrShortPassword = fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
)

// MinPasswordLen mirrors the sign-in form rule. Passwords are never checked
// against anything.
const MinPasswordLen = 6

// NormalizeTaskText trims text and enforces the length rule.
func NormalizeTaskText(text string) (string, error) {
	text = strings.TrimSpace(text)
	switch n := utf8.RuneCountInString(text); {
	case n == 0:
		return "", ErrEmptyTask
	case n > MaxTaskTextLen:
		return "", ErrTaskTooLong
	}
	return text, nil
}

// NormalizeEmail trims email and requires a bare address ("a@x.com", not
// "A <a@x.com>").
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizeName trims first and last name and requires both.
func NormalizeName(first, last string) (string, string, error) {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if first == "" || last == "" {
		return "", "", ErrMissingName
	}
	return first, last, nil
}

// ValidatePassword applies the length rule of the sign-in form.
func ValidatePassword(password []byte) error {
	if utf8.RuneCount(password) < MinPasswordLen {
		return ErrShortPassword
	}
	return nil
}
