package consumer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/trackers/internal/model"
	"github.com/chucky-1/trackers/internal/repository"
	"github.com/chucky-1/trackers/internal/service"
	"github.com/chucky-1/trackers/internal/view"
)

const failureText = "Something went wrong, please try again later"

// Sender is the part of *tgbotapi.BotAPI used to talk to a chat.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Settings struct {
	StorageTimeout time.Duration
	ConfirmTimeout time.Duration
}

// Session serves one chat. It owns the trackers of that chat and handles its
// messages one at a time.
type Session struct {
	chatID      int64
	sender      Sender
	updatesChan chan tgbotapi.Update
	validator   *validator.Validate
	settings    Settings

	budget *service.Budget
	income *service.Income
	tasks  *service.Tasks

	// deferred is a command that arrived while a confirmation was pending.
	deferred *tgbotapi.Message
}

// NewSession loads the trackers of the chat from storage, which must already
// be scoped to the chat.
func NewSession(ctx context.Context, chatID int64, sender Sender, updatesChan chan tgbotapi.Update,
	storage repository.Storage, validator *validator.Validate, settings Settings) *Session {
	s := &Session{
		chatID:      chatID,
		sender:      sender,
		updatesChan: updatesChan,
		validator:   validator,
		settings:    settings,
	}

	newCtx, cancel := context.WithTimeout(ctx, settings.StorageTimeout)
	defer cancel()
	s.budget = service.NewBudget(newCtx, storage, service.WithNotifier(s))
	s.income = service.NewIncome(newCtx, storage, service.WithNotifier(s))
	s.tasks = service.NewTasks(newCtx, storage, service.WithNotifier(s))

	s.budget.Subscribe(s.renderExpenses)
	s.income.Subscribe(s.renderIncomes)
	s.tasks.Subscribe(func(tasks []model.Task, summary service.TaskSummary) {
		s.renderTasks(service.FilterTasks(tasks, s.tasks.Filter()), summary)
	})
	return s
}

func (s *Session) Consume(ctx context.Context) {
	logrus.Infof("session consumer for chat %d started", s.chatID)
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("session consumer for chat %d stopped: %v", s.chatID, ctx.Err())
			return
		case update := <-s.updatesChan:
			if update.Message == nil {
				continue
			}
			s.handle(ctx, update.Message)
		}
	}
}

func (s *Session) handle(ctx context.Context, message *tgbotapi.Message) {
	if !message.IsCommand() {
		s.reply(fmt.Sprintf("I only understand commands.\n\n%s", helpText()))
		return
	}

	command := message.Command()
	args := message.CommandArguments()
	logrus.Debugf("chat %d: command %s %q", s.chatID, command, args)

	timeout := s.settings.StorageTimeout
	if strings.HasPrefix(command, "del") {
		timeout += s.settings.ConfirmTimeout
	}
	newCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var err error
	switch command {
	case cmdStart, cmdHelp:
		s.reply(helpText())
	case cmdBudget:
		err = s.setBudget(newCtx, args)
	case cmdExpense:
		err = s.addExpense(newCtx, args)
	case cmdExpenses:
		s.renderExpenses(s.budget.Expenses(), s.budget.Summary())
	case cmdDelExpense:
		err = s.remove(newCtx, command, args, s.budget.DeleteExpense)
	case cmdIncome:
		err = s.addIncome(newCtx, args)
	case cmdIncomes:
		s.renderIncomes(s.income.Incomes(), s.income.Summary())
	case cmdDelIncome:
		err = s.remove(newCtx, command, args, s.income.DeleteIncome)
	case cmdTask:
		err = s.addTask(newCtx, args)
	case cmdTasks:
		s.showTasks(args)
	case cmdToggle:
		err = s.toggleTask(newCtx, args)
	case cmdDelTask:
		err = s.remove(newCtx, command, args, s.tasks.DeleteTask)
	default:
		logrus.Infof("chat %d: unknown command: %s", s.chatID, message.Text)
		s.reply(fmt.Sprintf("Unknown command /%s\n\n%s", command, helpText()))
	}

	if err != nil {
		logrus.Errorf("chat %d: command %s failed: %v", s.chatID, command, err)
		s.reply(failureText)
	}

	if next := s.deferred; next != nil {
		s.deferred = nil
		s.handle(ctx, next)
	}
}

func (s *Session) setBudget(ctx context.Context, args string) error {
	if strings.TrimSpace(args) == "" {
		s.usage(cmdBudget, errNotEnoughArguments)
		return nil
	}
	return s.budget.SetBudget(ctx, model.ParseAmount(args))
}

func (s *Session) addExpense(ctx context.Context, args string) error {
	cmd, err := parseExpense(s.validator, args)
	if err != nil {
		s.usage(cmdExpense, err)
		return nil
	}
	_, err = s.budget.AddExpense(ctx, cmd.Name, cmd.Amount, cmd.Category)
	return err
}

func (s *Session) addIncome(ctx context.Context, args string) error {
	cmd, err := parseIncome(s.validator, args)
	if err != nil {
		s.usage(cmdIncome, err)
		return nil
	}
	_, err = s.income.AddIncome(ctx, cmd.Source, cmd.Amount, cmd.Category, cmd.Date)
	return err
}

func (s *Session) addTask(ctx context.Context, args string) error {
	cmd, err := parseTask(s.validator, args)
	if err != nil {
		s.usage(cmdTask, err)
		return nil
	}
	_, err = s.tasks.AddTask(ctx, cmd.Title, cmd.Description, cmd.Priority, cmd.DueDate)
	return err
}

func (s *Session) showTasks(args string) {
	filter, err := model.ParseTaskFilter(strings.TrimSpace(args))
	if err != nil {
		s.usage(cmdTasks, err)
		return
	}
	s.tasks.SetFilter(filter)
	s.renderTasks(s.tasks.View(), s.tasks.Summary())
}

func (s *Session) toggleTask(ctx context.Context, args string) error {
	id, err := parseID(args)
	if err != nil {
		s.usage(cmdToggle, err)
		return nil
	}
	ok, err := s.tasks.ToggleTask(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		s.reply(fmt.Sprintf("Task #%d not found", id))
	}
	return nil
}

type deleteFunc func(ctx context.Context, id int64, confirm service.Confirmer) (bool, error)

func (s *Session) remove(ctx context.Context, command, args string, del deleteFunc) error {
	id, err := parseID(args)
	if err != nil {
		s.usage(command, err)
		return nil
	}
	deleted, err := del(ctx, id, s)
	if err != nil {
		return err
	}
	if !deleted {
		s.reply(fmt.Sprintf("Nothing was deleted (#%d)", id))
	}
	return nil
}

// Confirm asks a yes/no question and takes the next message of the chat as
// the answer. No answer before the timeout counts as no. A command instead of
// an answer also counts as no and runs once the current one is done.
func (s *Session) Confirm(ctx context.Context, prompt string) bool {
	msg := tgbotapi.NewMessage(s.chatID, prompt)
	msg.ReplyMarkup = tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("yes"), tgbotapi.NewKeyboardButton("no")),
	)
	if _, err := s.sender.Send(msg); err != nil {
		logrus.Errorf("chat %d: couldn't ask for confirmation: %v", s.chatID, err)
		return false
	}

	t := time.NewTimer(s.settings.ConfirmTimeout)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
			logrus.Infof("chat %d: confirmation timed out", s.chatID)
			return false
		case update := <-s.updatesChan:
			if update.Message == nil {
				continue
			}
			if update.Message.IsCommand() {
				logrus.Infof("chat %d: confirmation interrupted by /%s", s.chatID, update.Message.Command())
				s.deferred = update.Message
				return false
			}
			return strings.EqualFold(strings.TrimSpace(update.Message.Text), "yes")
		}
	}
}

func (s *Session) Notify(_ context.Context, n model.Notification) {
	mark := "ℹ️"
	if n.Level == model.LevelSuccess {
		mark = "✅"
	}
	s.reply(fmt.Sprintf("%s %s", mark, n.Message))
}

func (s *Session) renderExpenses(expenses []model.Expense, summary service.ExpenseSummary) {
	s.replyPages(view.ExpenseSummary(summary)+"\n", view.Expenses(expenses))
}

func (s *Session) renderIncomes(incomes []model.Income, summary service.IncomeSummary) {
	s.replyPages(view.IncomeSummary(summary)+"\n", view.Incomes(incomes))
}

func (s *Session) renderTasks(tasks []model.Task, summary service.TaskSummary) {
	filter := s.tasks.Filter()
	s.replyPages(fmt.Sprintf("%s\n\nShowing: %s", view.TaskSummary(summary), filter), view.Tasks(tasks, filter))
}

// replyPages sends a rendered list in as many messages as Telegram needs,
// summary first.
func (s *Session) replyPages(header string, list view.List) {
	for _, page := range view.Pages(header, list, view.MessageLimit) {
		s.reply(page)
	}
}

func (s *Session) usage(command string, err error) {
	s.reply(fmt.Sprintf("%v\nUsage: %s", err, usages[command]))
}

func (s *Session) reply(text string) {
	msg := tgbotapi.NewMessage(s.chatID, text)
	if _, err := s.sender.Send(msg); err != nil {
		logrus.Errorf("chat %d: telegram bot couldn't send message: %v", s.chatID, err)
	}
}
