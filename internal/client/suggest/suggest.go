// Package suggest asks a language model for task ideas based on the user's
// schedule, goals and completed tasks.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dayscribe/internal/common"
)

// MaxSuggestions caps the number of tasks a single response may carry.
const MaxSuggestions = 5

var (
	// ErrSuggestionFailed wraps every transport, API or output-format failure.
	ErrSuggestionFailed = errors.New("suggestion request failed")
	// ErrStaleResponse is returned for a response superseded by a newer request.
	ErrStaleResponse = errors.New("suggestion response superseded")
	// ErrUnavailable means no model is configured.
	ErrUnavailable = errors.New("suggestions are not configured")

	ErrMissingSchedule = fmt.Errorf("%w: schedule is required", common.ErrValidation)
	ErrMissingGoals    = fmt.Errorf("%w: goals are required", common.ErrValidation)
)

type Input struct {
	Schedule       string   `json:"schedule"`
	CompletedTasks []string `json:"completedTasks"`
	UserGoals      string   `json:"userGoals"`
}

type Output struct {
	SuggestedTasks []string `json:"suggestedTasks"`
}

// Suggester produces at most MaxSuggestions task texts for in.
type Suggester interface {
	Suggest(ctx context.Context, in Input) (Output, error)
}

// Validate trims in and requires schedule and goals.
func (in Input) Validate() (Input, error) {
	in.Schedule = strings.TrimSpace(in.Schedule)
	in.UserGoals = strings.TrimSpace(in.UserGoals)
	switch {
	case in.Schedule == "":
		return in, ErrMissingSchedule
	case in.UserGoals == "":
		return in, ErrMissingGoals
	}
	return in, nil
}

// Unavailable is the Suggester used when no API key is configured.
type Unavailable struct{}

func (Unavailable) Suggest(context.Context, Input) (Output, error) {
	return Output{}, ErrUnavailable
}
