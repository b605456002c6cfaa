package service

import (
	"context"
	"sync"
	"time"

	"github.com/chucky-1/trackers/internal/model"
	"github.com/chucky-1/trackers/internal/repository"
)

type TaskSummary struct {
	Total     int
	Completed int
	Pending   int
}

func SummarizeTasks(tasks []model.Task) TaskSummary {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return TaskSummary{
		Total:     len(tasks),
		Completed: completed,
		Pending:   len(tasks) - completed,
	}
}

// FilterTasks returns the tasks matching f in their original order.
func FilterTasks(tasks []model.Task, f model.TaskFilter) []model.Task {
	filtered := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Tasks is a to-do list with a display filter.
type Tasks struct {
	tasks    *Store[model.Task, TaskSummary]
	ids      *IDGenerator
	now      func() time.Time
	notifier Notifier

	mu     sync.RWMutex
	filter model.TaskFilter
}

func NewTasks(ctx context.Context, storage repository.Storage, opts ...Option) *Tasks {
	o := newOptions(opts)
	t := &Tasks{
		tasks:    NewStore(repository.KeyTasks, storage, SummarizeTasks),
		ids:      NewIDGenerator(o.now),
		now:      o.now,
		notifier: o.notifier,
		filter:   model.FilterAll,
	}
	t.tasks.Load(ctx)
	return t
}

func (t *Tasks) AddTask(ctx context.Context, title, description string, priority model.Priority, dueDate string) (model.Task, error) {
	task := model.Task{
		ID:          t.ids.Next(),
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     dueDate,
		Completed:   false,
		CreatedAt:   t.now(),
	}
	if err := t.tasks.Add(ctx, task); err != nil {
		return model.Task{}, err
	}
	t.notifier.Notify(ctx, model.Notification{Message: "Task added successfully!", Level: model.LevelSuccess})
	return task, nil
}

// ToggleTask flips the completion flag. It reports false for an unknown id.
func (t *Tasks) ToggleTask(ctx context.Context, id int64) (bool, error) {
	return t.tasks.Mutate(ctx, id, func(task *model.Task) {
		task.Completed = !task.Completed
	})
}

func (t *Tasks) DeleteTask(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	deleted, err := t.tasks.Remove(ctx, id, "Are you sure you want to delete this task?", confirm)
	if err != nil || !deleted {
		return false, err
	}
	t.notifier.Notify(ctx, model.Notification{Message: "Task deleted!", Level: model.LevelInfo})
	return true, nil
}

func (t *Tasks) SetFilter(f model.TaskFilter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = f
}

func (t *Tasks) Filter() model.TaskFilter {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.filter
}

// View returns the tasks selected by the current filter.
func (t *Tasks) View() []model.Task {
	return FilterTasks(t.tasks.Records(), t.Filter())
}

func (t *Tasks) Tasks() []model.Task {
	return t.tasks.Records()
}

func (t *Tasks) Summary() TaskSummary {
	return t.tasks.Summary()
}

func (t *Tasks) Subscribe(fn func([]model.Task, TaskSummary)) {
	t.tasks.Subscribe(fn)
}
