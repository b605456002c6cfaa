package service

import (
	"context"
	"time"

	"github.com/chucky-1/trackers/internal/model"
	"github.com/chucky-1/trackers/internal/repository"
)

type IncomeSummary struct {
	TotalIncome   model.Amount
	MonthlyIncome model.Amount
	Count         int
}

// SummarizeIncomes totals all incomes and those dated in the month of now.
func SummarizeIncomes(incomes []model.Income, now time.Time) IncomeSummary {
	var total, monthly float64
	for _, i := range incomes {
		total += i.Amount.Float64()
		if i.InMonth(now) {
			monthly += i.Amount.Float64()
		}
	}
	return IncomeSummary{
		TotalIncome:   model.Amount(total),
		MonthlyIncome: model.Amount(monthly),
		Count:         len(incomes),
	}
}

type Income struct {
	incomes  *Store[model.Income, IncomeSummary]
	ids      *IDGenerator
	now      func() time.Time
	notifier Notifier
}

func NewIncome(ctx context.Context, storage repository.Storage, opts ...Option) *Income {
	o := newOptions(opts)
	i := &Income{
		ids:      NewIDGenerator(o.now),
		now:      o.now,
		notifier: o.notifier,
	}
	i.incomes = NewStore(repository.KeyIncomes, storage, func(incomes []model.Income) IncomeSummary {
		return SummarizeIncomes(incomes, i.now())
	})
	i.incomes.Load(ctx)
	return i
}

// AddIncome records an income. An empty date means today.
func (i *Income) AddIncome(ctx context.Context, source string, amount model.Amount, category, date string) (model.Income, error) {
	now := i.now()
	if date == "" {
		date = now.Format(model.DateLayout)
	}
	income := model.Income{
		ID:        i.ids.Next(),
		Source:    source,
		Amount:    amount,
		Category:  category,
		Date:      date,
		DateAdded: now,
	}
	if err := i.incomes.Add(ctx, income); err != nil {
		return model.Income{}, err
	}
	i.notifier.Notify(ctx, model.Notification{Message: "Income added successfully!", Level: model.LevelSuccess})
	return income, nil
}

func (i *Income) DeleteIncome(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	deleted, err := i.incomes.Remove(ctx, id, "Are you sure you want to delete this income entry?", confirm)
	if err != nil || !deleted {
		return false, err
	}
	i.notifier.Notify(ctx, model.Notification{Message: "Income deleted!", Level: model.LevelInfo})
	return true, nil
}

func (i *Income) Incomes() []model.Income {
	return i.incomes.Records()
}

// Summary is computed against the current month at call time.
func (i *Income) Summary() IncomeSummary {
	return i.incomes.Summary()
}

func (i *Income) Subscribe(fn func([]model.Income, IncomeSummary)) {
	i.incomes.Subscribe(fn)
}
