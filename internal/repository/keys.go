package repository

import "fmt"

const (
	KeyExpenses = "expenses"
	KeyIncomes  = "incomes"
	KeyTasks    = "tasks"
	KeyBudget   = "budget"
)

// ChatPrefix is the namespace prefix of all keys of one chat.
func ChatPrefix(chatID int64) string {
	return fmt.Sprintf("chat:%d:", chatID)
}
