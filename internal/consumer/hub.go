package consumer

import (
	"context"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/trackers/internal/repository"
)

const sessionBuffer = 16

// Hub routes updates to the session of their chat, starting a session on the
// first message from a chat.
type Hub struct {
	sender      Sender
	updatesChan tgbotapi.UpdatesChannel
	storage     repository.Storage
	validator   *validator.Validate
	settings    Settings
	sessions    map[int64]chan tgbotapi.Update
}

func NewHub(sender Sender, updatesChan tgbotapi.UpdatesChannel, storage repository.Storage,
	validator *validator.Validate, settings Settings) *Hub {
	return &Hub{
		sender:      sender,
		updatesChan: updatesChan,
		storage:     storage,
		validator:   validator,
		settings:    settings,
		sessions:    make(map[int64]chan tgbotapi.Update),
	}
}

func (h *Hub) Consume(ctx context.Context) {
	logrus.Info("hub consumer started")
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("hub consumer stopped: %v", ctx.Err())
			return
		case update, ok := <-h.updatesChan:
			if !ok {
				logrus.Info("hub consumer stopped: updates channel closed")
				return
			}
			if update.Message == nil || update.Message.Chat == nil {
				continue
			}
			chatID := update.Message.Chat.ID

			ch, ok := h.sessions[chatID]
			if !ok {
				// first touch with the chat
				logrus.Infof("first touch with the chat %d", chatID)
				ch = h.startSession(ctx, chatID)
			}
			select {
			case ch <- update:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *Hub) startSession(ctx context.Context, chatID int64) chan tgbotapi.Update {
	ch := make(chan tgbotapi.Update, sessionBuffer)
	h.sessions[chatID] = ch
	storage := repository.NewNamespace(h.storage, repository.ChatPrefix(chatID))
	session := NewSession(ctx, chatID, h.sender, ch, storage, h.validator, h.settings)
	go session.Consume(ctx)
	return ch
}
