package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chucky-1/trackers/internal/model"
	"github.com/chucky-1/trackers/internal/repository"
)

// Tier buckets the remaining budget for display.
type Tier string

const (
	TierHealthy    Tier = "healthy"
	TierWarning    Tier = "warning"
	TierOverBudget Tier = "over_budget"
)

// warningShare is the part of the budget below which remaining money is a warning.
const warningShare = 0.2

type ExpenseSummary struct {
	Budget     model.Amount
	TotalSpent model.Amount
	Remaining  model.Amount
	Tier       Tier
}

// SummarizeExpenses totals the expenses against budget. NaN amounts make the
// totals NaN.
func SummarizeExpenses(budget model.Amount, expenses []model.Expense) ExpenseSummary {
	var spent float64
	for _, e := range expenses {
		spent += e.Amount.Float64()
	}
	remaining := budget.Float64() - spent

	tier := TierHealthy
	if remaining < 0 {
		tier = TierOverBudget
	} else if remaining < budget.Float64()*warningShare {
		tier = TierWarning
	}

	return ExpenseSummary{
		Budget:     budget,
		TotalSpent: model.Amount(spent),
		Remaining:  model.Amount(remaining),
		Tier:       tier,
	}
}

// Budget tracks expenses against a single budget value.
type Budget struct {
	mu       sync.RWMutex
	budget   model.Amount
	storage  repository.Storage
	expenses *Store[model.Expense, ExpenseSummary]
	ids      *IDGenerator
	now      func() time.Time
	notifier Notifier
}

// NewBudget loads the budget and the expenses from storage.
func NewBudget(ctx context.Context, storage repository.Storage, opts ...Option) *Budget {
	o := newOptions(opts)
	b := &Budget{
		storage:  storage,
		ids:      NewIDGenerator(o.now),
		now:      o.now,
		notifier: o.notifier,
	}
	b.expenses = NewStore(repository.KeyExpenses, storage, func(expenses []model.Expense) ExpenseSummary {
		return SummarizeExpenses(b.Budget(), expenses)
	})
	b.budget = b.loadBudget(ctx)
	b.expenses.Load(ctx)
	return b
}

// loadBudget falls back to zero for a missing, corrupted or non-numeric value.
func (b *Budget) loadBudget(ctx context.Context) model.Amount {
	data, found, err := b.storage.Get(ctx, repository.KeyBudget)
	if err != nil {
		logrus.Warnf("budget couldn't load, using 0: %v", err)
		return 0
	}
	if !found {
		return 0
	}
	var amount model.Amount
	if err = json.Unmarshal([]byte(data), &amount); err != nil || amount.IsNaN() {
		return 0
	}
	return amount
}

func (b *Budget) Budget() model.Amount {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.budget
}

// SetBudget replaces the budget. Any number is accepted, NaN included.
func (b *Budget) SetBudget(ctx context.Context, amount model.Amount) error {
	data, err := json.Marshal(amount)
	if err != nil {
		return fmt.Errorf("budget couldn't marshal: %v", err)
	}

	b.mu.Lock()
	b.budget = amount
	b.mu.Unlock()

	if err = b.storage.Set(ctx, repository.KeyBudget, string(data)); err != nil {
		return fmt.Errorf("budget couldn't persist: %w", err)
	}
	b.expenses.Publish()
	b.notifier.Notify(ctx, model.Notification{Message: "Budget set successfully!", Level: model.LevelSuccess})
	return nil
}

func (b *Budget) AddExpense(ctx context.Context, name string, amount model.Amount, category string) (model.Expense, error) {
	expense := model.Expense{
		ID:       b.ids.Next(),
		Name:     name,
		Amount:   amount,
		Category: category,
		Date:     b.now(),
	}
	if err := b.expenses.Add(ctx, expense); err != nil {
		return model.Expense{}, err
	}
	b.notifier.Notify(ctx, model.Notification{Message: "Expense added successfully!", Level: model.LevelSuccess})
	return expense, nil
}

func (b *Budget) DeleteExpense(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	deleted, err := b.expenses.Remove(ctx, id, "Are you sure you want to delete this expense?", confirm)
	if err != nil || !deleted {
		return false, err
	}
	b.notifier.Notify(ctx, model.Notification{Message: "Expense deleted!", Level: model.LevelInfo})
	return true, nil
}

func (b *Budget) Expenses() []model.Expense {
	return b.expenses.Records()
}

func (b *Budget) Summary() ExpenseSummary {
	return b.expenses.Summary()
}

// Subscribe calls fn after every change of the expenses or the budget.
func (b *Budget) Subscribe(fn func([]model.Expense, ExpenseSummary)) {
	b.expenses.Subscribe(fn)
}
