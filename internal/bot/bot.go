package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/tkoide/memopad/internal/cache"
	"github.com/tkoide/memopad/internal/store"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	handlers *Handlers
}

func New(token string, s store.MemoStore, c *cache.MemoCache) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:      api,
		handlers: NewHandlers(api, s, c),
	}, nil
}

func (b *Bot) Start(ctx context.Context) error {
	logrus.WithField("account", b.api.Self.UserName).Info("Authorized on Telegram")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handlers.HandleCommand(ctx, update.Message)
		return
	}

	b.handlers.HandleHelp(update.Message.Chat.ID)
}
