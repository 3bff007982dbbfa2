package suggest

import "strings"

// ExcludeCompleted drops suggestions that match a completed task text,
// ignoring case and surrounding space.
func ExcludeCompleted(suggestions, completed []string) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if !containsFold(completed, s) {
			out = append(out, s)
		}
	}
	return out
}

// Remove returns suggestions without the first entry equal to text.
func Remove(suggestions []string, text string) []string {
	out := make([]string, 0, len(suggestions))
	removed := false
	for _, s := range suggestions {
		if !removed && s == text {
			removed = true
			continue
		}
		out = append(out, s)
	}
	return out
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
