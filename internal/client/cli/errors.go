package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/dayscribe/internal/client/suggest"
	"github.com/dmitrijs2005/dayscribe/internal/common"
)

// userMessage turns service errors into short messages for the terminal.
func userMessage(err error) string {
	switch {
	case errors.Is(err, suggest.ErrUnavailable):
		return "suggestions are unavailable: set ANTHROPIC_API_KEY to enable them"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, suggest.ErrSuggestionFailed):
		return "could not fetch task suggestions, please try again"
	case errors.Is(err, common.ErrValidation):
		return strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
	}
	return err.Error()
}
