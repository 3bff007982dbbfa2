package models

// Task is a single to-do item owned by one user.
type Task struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	UserID      string `json:"userId"`
	IsRecurring bool   `json:"isRecurring,omitempty"`
}

// Texts returns the text of every task, preserving order.
func Texts(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}

// Filter returns the tasks for which keep returns true.
func Filter(tasks []Task, keep func(Task) bool) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
