package consumer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/chucky-1/trackers/internal/model"
)

const (
	cmdStart      = "start"
	cmdHelp       = "help"
	cmdBudget     = "budget"
	cmdExpense    = "expense"
	cmdExpenses   = "expenses"
	cmdDelExpense = "delexpense"
	cmdIncome     = "income"
	cmdIncomes    = "incomes"
	cmdDelIncome  = "delincome"
	cmdTask       = "task"
	cmdTasks      = "tasks"
	cmdToggle     = "toggle"
	cmdDelTask    = "deltask"
)

var usages = map[string]string{
	cmdBudget:     "/budget <amount>",
	cmdExpense:    "/expense <amount> <category> <name>",
	cmdExpenses:   "/expenses",
	cmdDelExpense: "/delexpense <id>",
	cmdIncome:     "/income <amount> <category> [YYYY-MM-DD] <source>",
	cmdIncomes:    "/incomes",
	cmdDelIncome:  "/delincome <id>",
	cmdTask:       "/task <High|Medium|Low> [YYYY-MM-DD] <title> [| description]",
	cmdTasks:      "/tasks [all|pending|completed]",
	cmdToggle:     "/toggle <id>",
	cmdDelTask:    "/deltask <id>",
}

var helpOrder = []string{
	cmdBudget, cmdExpense, cmdExpenses, cmdDelExpense,
	cmdIncome, cmdIncomes, cmdDelIncome,
	cmdTask, cmdTasks, cmdToggle, cmdDelTask,
}

func helpText() string {
	var b strings.Builder
	b.WriteString("I keep your budget, income and tasks.\n\n")
	for _, c := range helpOrder {
		b.WriteString(usages[c])
		b.WriteString("\n")
	}
	return b.String()
}

var errNotEnoughArguments = errors.New("not enough arguments")

// Amounts are never rejected: text that is not a number becomes NaN.
type expenseCommand struct {
	Amount   model.Amount
	Category string `validate:"required"`
	Name     string `validate:"required"`
}

type incomeCommand struct {
	Amount   model.Amount
	Category string `validate:"required"`
	Date     string `validate:"omitempty,datetime=2006-01-02"`
	Source   string `validate:"required"`
}

type taskCommand struct {
	Priority    model.Priority `validate:"required"`
	DueDate     string         `validate:"omitempty,datetime=2006-01-02"`
	Title       string         `validate:"required"`
	Description string
}

func parseExpense(v *validator.Validate, args string) (expenseCommand, error) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return expenseCommand{}, errNotEnoughArguments
	}
	cmd := expenseCommand{
		Amount:   model.ParseAmount(fields[0]),
		Category: fields[1],
		Name:     strings.Join(fields[2:], " "),
	}
	return cmd, validate(v, cmd)
}

func parseIncome(v *validator.Validate, args string) (incomeCommand, error) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return incomeCommand{}, errNotEnoughArguments
	}
	cmd := incomeCommand{
		Amount:   model.ParseAmount(fields[0]),
		Category: fields[1],
	}
	rest := fields[2:]
	if isDate(rest[0]) {
		cmd.Date = rest[0]
		rest = rest[1:]
	}
	cmd.Source = strings.Join(rest, " ")
	return cmd, validate(v, cmd)
}

func parseTask(v *validator.Validate, args string) (taskCommand, error) {
	head, description, _ := strings.Cut(args, "|")
	fields := strings.Fields(head)
	if len(fields) < 2 {
		return taskCommand{}, errNotEnoughArguments
	}
	priority, err := model.ParsePriority(fields[0])
	if err != nil {
		return taskCommand{}, err
	}
	cmd := taskCommand{
		Priority:    priority,
		Description: strings.TrimSpace(description),
	}
	rest := fields[1:]
	if isDate(rest[0]) {
		cmd.DueDate = rest[0]
		rest = rest[1:]
	}
	cmd.Title = strings.Join(rest, " ")
	return cmd, validate(v, cmd)
}

func parseID(args string) (int64, error) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return 0, errNotEnoughArguments
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(fields[0], "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be a number: %q", fields[0])
	}
	return id, nil
}

func isDate(s string) bool {
	_, err := time.Parse(model.DateLayout, s)
	return err == nil
}

func validate(v *validator.Validate, cmd interface{}) error {
	if err := v.Struct(cmd); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%s is required", strings.ToLower(fieldErrs[0].Field()))
		}
		return err
	}
	return nil
}
