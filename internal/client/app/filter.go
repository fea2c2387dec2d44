package app

import (
	"strings"

	"taskmanager/internal/client/api"
)

const FilterAll = "all"

// Filter keeps the tasks whose title or description contains query, ignoring
// case, and whose status equals status unless status is FilterAll or empty.
// It never modifies tasks.
func Filter(tasks []api.Task, query, status string) []api.Task {
	needle := strings.ToLower(query)
	out := make([]api.Task, 0, len(tasks))
	for _, task := range tasks {
		if needle != "" &&
			!strings.Contains(strings.ToLower(task.Title), needle) &&
			!strings.Contains(strings.ToLower(task.Description), needle) {
			continue
		}
		if status != "" && status != FilterAll && task.Status != status {
			continue
		}
		out = append(out, task)
	}
	return out
}

// ValidFilter reports whether status can be used as a dashboard filter.
func ValidFilter(status string) bool {
	switch status {
	case FilterAll, api.StatusPending, api.StatusCompleted:
		return true
	}
	return false
}
