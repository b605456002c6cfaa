// Package view turns tracker records and summaries into display text.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/chucky-1/trackers/internal/model"
	"github.com/chucky-1/trackers/internal/service"
)

const (
	emptyExpenses       = "No expenses recorded yet. Start tracking your spending!"
	emptyIncomes        = "No income recorded yet. Start tracking your earnings!"
	emptyTasks          = "No tasks yet. Add your first task to get started!"
	emptyCompletedTasks = "No completed tasks yet. Keep working!"
	emptyPendingTasks   = "No pending tasks. Great job!"
)

// List is a rendered collection: one line per record, in stored order, or
// a placeholder when there is nothing to show.
type List struct {
	Items       []string
	Placeholder string
}

func (l List) Empty() bool {
	return len(l.Items) == 0
}

func (l List) String() string {
	if l.Empty() {
		return l.Placeholder
	}
	return strings.Join(l.Items, "\n")
}

func Expenses(expenses []model.Expense) List {
	items := make([]string, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, fmt.Sprintf("-%s %s [%s] · %s · #%d",
			Money(e.Amount), e.Name, e.Category, date(e.Date), e.ID))
	}
	return List{Items: items, Placeholder: emptyExpenses}
}

func Incomes(incomes []model.Income) List {
	items := make([]string, 0, len(incomes))
	for _, i := range incomes {
		items = append(items, fmt.Sprintf("+%s %s [%s] · %s · #%d",
			Money(i.Amount), i.Source, i.Category, i.Date, i.ID))
	}
	return List{Items: items, Placeholder: emptyIncomes}
}

// Tasks renders tasks already selected by filter; the filter only picks the
// placeholder.
func Tasks(tasks []model.Task, filter model.TaskFilter) List {
	items := make([]string, 0, len(tasks))
	for _, t := range tasks {
		var b strings.Builder
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s %s (%s) · #%d", mark, t.Title, t.Priority, t.ID)
		if t.Description != "" {
			fmt.Fprintf(&b, "\n    %s", t.Description)
		}
		if t.DueDate != "" {
			fmt.Fprintf(&b, "\n    Due: %s", t.DueDate)
		} else {
			fmt.Fprintf(&b, "\n    Created: %s", date(t.CreatedAt))
		}
		items = append(items, b.String())
	}
	return List{Items: items, Placeholder: taskPlaceholder(filter)}
}

func taskPlaceholder(filter model.TaskFilter) string {
	switch filter {
	case model.FilterCompleted:
		return emptyCompletedTasks
	case model.FilterPending:
		return emptyPendingTasks
	default:
		return emptyTasks
	}
}

func ExpenseSummary(s service.ExpenseSummary) string {
	return fmt.Sprintf("Budget: %s\nSpent: %s\nRemaining: %s %s",
		Money(s.Budget), Money(s.TotalSpent), Money(s.Remaining), tierMark(s.Tier))
}

func IncomeSummary(s service.IncomeSummary) string {
	return fmt.Sprintf("Total income: %s\nThis month: %s\nEntries: %d",
		Money(s.TotalIncome), Money(s.MonthlyIncome), s.Count)
}

func TaskSummary(s service.TaskSummary) string {
	return fmt.Sprintf("Total: %d\nCompleted: %d\nPending: %d", s.Total, s.Completed, s.Pending)
}

func tierMark(t service.Tier) string {
	switch t {
	case service.TierOverBudget:
		return "🔴 over budget"
	case service.TierWarning:
		return "🟡 running low"
	default:
		return "🟢"
	}
}

// Money formats an amount with two decimals. NaN is shown as $NaN.
func Money(a model.Amount) string {
	if a.IsNaN() {
		return "$NaN"
	}
	return fmt.Sprintf("$%.2f", a.Float64())
}

func date(t time.Time) string {
	return t.Format(model.DateLayout)
}
