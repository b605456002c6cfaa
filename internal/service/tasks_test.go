package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chucky-1/trackers/internal/model"
	"github.com/chucky-1/trackers/internal/repository"
)

func newTestTasks(t *testing.T) (*Tasks, *repository.LocalStorage) {
	t.Helper()
	storage := repository.NewLocalStorage()
	return NewTasks(context.Background(), storage, WithNotifier(&recordedNotifications{})), storage
}

func TestTasks_AddTaskDefaults(t *testing.T) {
	ctx := context.Background()
	clock := fixedClock(2024, 3, 15)
	tasks := NewTasks(ctx, repository.NewLocalStorage(), WithClock(clock), WithNotifier(&recordedNotifications{}))

	task, err := tasks.AddTask(ctx, "Write report", "", model.PriorityHigh, "2024-03-20")
	require.NoError(t, err)
	require.False(t, task.Completed)
	require.Equal(t, clock(), task.CreatedAt)
	require.Equal(t, task, tasks.Tasks()[0])
	require.Equal(t, TaskSummary{Total: 1, Completed: 0, Pending: 1}, tasks.Summary())
}

func TestTasks_ToggleTwiceRestoresTask(t *testing.T) {
	ctx := context.Background()
	tasks, storage := newTestTasks(t)

	original, err := tasks.AddTask(ctx, "Call mom", "Sunday", model.PriorityMedium, "")
	require.NoError(t, err)

	ok, err := tasks.ToggleTask(ctx, original.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, tasks.Tasks()[0].Completed)
	require.Equal(t, TaskSummary{Total: 1, Completed: 1, Pending: 0}, tasks.Summary())
	require.True(t, NewTasks(ctx, storage).Tasks()[0].Completed)

	ok, err = tasks.ToggleTask(ctx, original.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, original, tasks.Tasks()[0])
}

func TestTasks_ToggleMissingID(t *testing.T) {
	tasks, _ := newTestTasks(t)
	ok, err := tasks.ToggleTask(context.Background(), 7)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTasks_FilterIsAViewOperation(t *testing.T) {
	ctx := context.Background()
	tasks, _ := newTestTasks(t)

	a, err := tasks.AddTask(ctx, "a", "", model.PriorityLow, "")
	require.NoError(t, err)
	b, err := tasks.AddTask(ctx, "b", "", model.PriorityLow, "")
	require.NoError(t, err)
	c, err := tasks.AddTask(ctx, "c", "", model.PriorityLow, "")
	require.NoError(t, err)
	_, err = tasks.ToggleTask(ctx, b.ID)
	require.NoError(t, err)
	all := tasks.Tasks()

	require.Equal(t, model.FilterAll, tasks.Filter())
	require.Equal(t, all, tasks.View())

	tasks.SetFilter(model.FilterPending)
	pending := tasks.View()
	require.Equal(t, []int64{c.ID, a.ID}, ids(pending))
	tasks.SetFilter(model.FilterPending)
	require.Equal(t, pending, tasks.View())

	tasks.SetFilter(model.FilterCompleted)
	require.Equal(t, []int64{b.ID}, ids(tasks.View()))

	require.Equal(t, all, tasks.Tasks())
}

func TestTasks_DeleteTask(t *testing.T) {
	ctx := context.Background()
	tasks, storage := newTestTasks(t)
	task, err := tasks.AddTask(ctx, "Cleanup", "", model.PriorityLow, "")
	require.NoError(t, err)

	confirm, asked := confirmWith(true)
	deleted, err := tasks.DeleteTask(ctx, task.ID, confirm)
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, 1, *asked)
	require.Empty(t, tasks.Tasks())
	require.Empty(t, NewTasks(ctx, storage).Tasks())
}

func TestFilterTasks_PreservesOrder(t *testing.T) {
	list := []model.Task{{ID: 5, Completed: true}, {ID: 4}, {ID: 3, Completed: true}, {ID: 2}}
	require.Equal(t, []int64{5, 3}, ids(FilterTasks(list, model.FilterCompleted)))
	require.Equal(t, []int64{4, 2}, ids(FilterTasks(list, model.FilterPending)))
	require.Equal(t, []int64{5, 4, 3, 2}, ids(FilterTasks(list, model.FilterAll)))
	require.Empty(t, FilterTasks(nil, model.FilterCompleted))
}

func ids(tasks []model.Task) []int64 {
	result := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, t.ID)
	}
	return result
}
