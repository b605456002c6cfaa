package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chucky-1/trackers/internal/model"
	"github.com/chucky-1/trackers/internal/repository"
)

func TestSummarizeIncomes_CurrentMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	incomes := []model.Income{
		{ID: 2, Amount: 200, Date: "2024-03-02"},
		{ID: 1, Amount: 500, Date: "2024-02-28"},
	}

	summary := SummarizeIncomes(incomes, now)
	require.Equal(t, model.Amount(200), summary.MonthlyIncome)
	require.Equal(t, model.Amount(700), summary.TotalIncome)
	require.Equal(t, 2, summary.Count)
}

func TestSummarizeIncomes_SkipsOtherYearsAndBadDates(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	incomes := []model.Income{
		{Amount: 100, Date: "2023-03-10"},
		{Amount: 40, Date: "not a date"},
		{Amount: 60, Date: "2024-03-31"},
	}

	summary := SummarizeIncomes(incomes, now)
	require.Equal(t, model.Amount(60), summary.MonthlyIncome)
	require.Equal(t, model.Amount(200), summary.TotalIncome)
}

func TestIncome_AddIncomeDefaultsDateToToday(t *testing.T) {
	ctx := context.Background()
	clock := fixedClock(2024, 3, 15)
	notes := &recordedNotifications{}
	i := NewIncome(ctx, repository.NewLocalStorage(), WithClock(clock), WithNotifier(notes))

	income, err := i.AddIncome(ctx, "Salary", 1000, "Job", "")
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", income.Date)
	require.Equal(t, clock(), income.DateAdded)
	require.Equal(t, clock().UnixMilli(), income.ID)

	_, err = i.AddIncome(ctx, "Gift", 500, "Other", "2024-01-02")
	require.NoError(t, err)

	summary := i.Summary()
	require.Equal(t, model.Amount(1000), summary.MonthlyIncome)
	require.Equal(t, model.Amount(1500), summary.TotalIncome)
	require.Equal(t, 2, summary.Count)
	require.Equal(t, "Gift", i.Incomes()[0].Source)
	require.Equal(t, []model.Notification{
		{Message: "Income added successfully!", Level: model.LevelSuccess},
		{Message: "Income added successfully!", Level: model.LevelSuccess},
	}, notes.list)
}

func TestIncome_DeleteIncome(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewLocalStorage()
	notes := &recordedNotifications{}
	i := NewIncome(ctx, storage, WithNotifier(notes))

	income, err := i.AddIncome(ctx, "Freelance", 300, "Side", "2024-03-01")
	require.NoError(t, err)

	declined, _ := confirmWith(false)
	deleted, err := i.DeleteIncome(ctx, income.ID, declined)
	require.NoError(t, err)
	require.False(t, deleted)
	require.Len(t, i.Incomes(), 1)

	confirmed, _ := confirmWith(true)
	deleted, err = i.DeleteIncome(ctx, income.ID, confirmed)
	require.NoError(t, err)
	require.True(t, deleted)
	require.Empty(t, i.Incomes())
	require.Empty(t, NewIncome(ctx, storage).Incomes())
	require.Equal(t, model.Notification{Message: "Income deleted!", Level: model.LevelInfo}, notes.list[len(notes.list)-1])
}
