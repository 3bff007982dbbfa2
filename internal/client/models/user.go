// Package models defines the client-side domain types of Dayscribe and the
// input rules they enforce.
package models

import "strings"

// User is the locally persisted session identity.
//
// HasCompletedOnboarding is tri-state: nil means the flag was never written
// (treated as onboarded), a pointer to false means first-run setup is due.
type User struct {
	ID                     string `json:"id"`
	Email                  string `json:"email"`
	FirstName              string `json:"firstName,omitempty"`
	LastName               string `json:"lastName,omitempty"`
	HasCompletedOnboarding *bool  `json:"hasCompletedOnboarding,omitempty"`
}

// NeedsOnboarding reports whether the flag is explicitly false.
func (u *User) NeedsOnboarding() bool {
	return u != nil && u.HasCompletedOnboarding != nil && !*u.HasCompletedOnboarding
}

// DisplayName returns "First Last" when both names are set, the email otherwise.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Email
}

// WithOnboarding returns a copy of u with the onboarding flag set.
func (u User) WithOnboarding(done bool) *User {
	u.HasCompletedOnboarding = &done
	return &u
}

// SameEmail compares addresses case-insensitively.
func (u *User) SameEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(email))
}
