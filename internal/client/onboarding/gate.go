// Package onboarding decides where a session should land and drives the
// first-run setup of recurring daily tasks.
package onboarding

import "github.com/dmitrijs2005/dayscribe/internal/client/models"

// Target is the screen a session state routes to.
type Target int

const (
	// TargetLoading means the session is still being restored; stay put.
	TargetLoading Target = iota
	TargetLogin
	TargetOnboarding
	TargetTasks
)

func (t Target) String() string {
	switch t {
	case TargetLoading:
		return "loading"
	case TargetLogin:
		return "login"
	case TargetOnboarding:
		return "onboarding"
	case TargetTasks:
		return "tasks"
	default:
		return "unknown"
	}
}

// State is the input of Decide.
type State struct {
	Loading bool
	User    *models.User
}

// Decide maps a session state to a Target. Only an explicit false onboarding
// flag routes to onboarding; an absent flag counts as onboarded.
func Decide(s State) Target {
	switch {
	case s.Loading:
		return TargetLoading
	case s.User == nil:
		return TargetLogin
	case s.User.NeedsOnboarding():
		return TargetOnboarding
	default:
		return TargetTasks
	}
}
