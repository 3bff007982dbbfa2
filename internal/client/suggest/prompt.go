package suggest

import (
	"strings"
	"text/template"
)

var promptTmpl = template.Must(template.New("suggest").Parse(`You are a personal assistant that suggests tasks for the user's to-do list.

Consider the user's schedule, completed tasks, and goals for the day to suggest relevant and useful tasks.

Schedule: {{.Schedule}}
Completed Tasks:{{if .CompletedTasks}}{{range .CompletedTasks}}
- {{.}}{{end}}{{else}} None{{end}}
Goals: {{.UserGoals}}

Suggest tasks that are most likely to help the user achieve their goals for the day, but avoid including tasks that are already completed or that don't fit the schedule.
Do not suggest more than {{.Max}} tasks.
Respond with JSON only, in the form {"suggestedTasks": ["task one", "task two"]}.
`))

func renderPrompt(in Input) (string, error) {
	var b strings.Builder
	err := promptTmpl.Execute(&b, struct {
		Input
		Max int
	}{in, MaxSuggestions})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
