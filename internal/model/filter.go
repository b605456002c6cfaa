package model

import "fmt"

// TaskFilter selects which tasks are displayed. It never changes the stored
// collection.
type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterPending   TaskFilter = "pending"
	FilterCompleted TaskFilter = "completed"
)

func ParseTaskFilter(s string) (TaskFilter, error) {
	switch f := TaskFilter(s); f {
	case FilterAll, FilterPending, FilterCompleted:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

// Match reports whether the task is shown under the filter.
func (f TaskFilter) Match(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}
