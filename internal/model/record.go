package model

import "time"

// DateLayout is the layout of user-chosen dates (income date, task due date).
const DateLayout = "2006-01-02"

// Record is one persisted item of a tracker collection.
type Record interface {
	RecordID() int64
}

// Expense is one record of spending
type Expense struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Amount   Amount    `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

func (e Expense) RecordID() int64 { return e.ID }

// Income is one record of earnings. Date is chosen by the user, DateAdded is
// the creation time.
type Income struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`
	Amount    Amount    `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	DateAdded time.Time `json:"dateAdded"`
}

func (i Income) RecordID() int64 { return i.ID }

// InMonth reports whether the income date falls in the calendar month of t.
// An unparseable date is in no month.
func (i Income) InMonth(t time.Time) bool {
	d, err := time.ParseInLocation(DateLayout, i.Date, t.Location())
	if err != nil {
		return false
	}
	return d.Year() == t.Year() && d.Month() == t.Month()
}

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	DueDate     string    `json:"dueDate,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t Task) RecordID() int64 { return t.ID }
