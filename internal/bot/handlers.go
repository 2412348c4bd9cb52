package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tkoide/memopad/internal/cache"
	"github.com/tkoide/memopad/internal/models"
	"github.com/tkoide/memopad/internal/store"
)

const helpText = `Available commands:
/memo <title> | <content> [#tag ...] - create a memo
/memos [category] - list memos, optionally by category
/find <query> - search memos
/del <id> - delete a memo
/help - show this message`

type Handlers struct {
	api   *tgbotapi.BotAPI
	store store.MemoStore
	cache *cache.MemoCache
}

func NewHandlers(api *tgbotapi.BotAPI, s store.MemoStore, c *cache.MemoCache) *Handlers {
	return &Handlers{api: api, store: s, cache: c}
}

func (h *Handlers) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		h.HandleHelp(msg.Chat.ID)
	case "memo":
		h.handleCreate(ctx, msg)
	case "memos":
		h.handleList(ctx, msg)
	case "find":
		h.handleSearch(ctx, msg)
	case "del":
		h.handleDelete(ctx, msg)
	default:
		h.sendMessage(msg.Chat.ID, "Unknown command, use /help to see what I can do")
	}
}

func (h *Handlers) HandleHelp(chatID int64) {
	h.sendMessage(chatID, helpText)
}

func (h *Handlers) handleCreate(ctx context.Context, msg *tgbotapi.Message) {
	in, err := ParseMemoArgs(msg.CommandArguments())
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Usage: /memo <title> | <content> [#tag ...]")
		return
	}

	memo, err := h.store.Create(ctx, in)
	if err != nil {
		logrus.WithError(err).Error("Failed to create memo")
		h.sendMessage(msg.Chat.ID, "Could not create the memo, please try again later")
		return
	}

	h.cache.Invalidate(ctx)
	h.sendMessage(msg.Chat.ID, fmt.Sprintf("Memo created (id: %s)", memo.ID))
}

func (h *Handlers) handleList(ctx context.Context, msg *tgbotapi.Message) {
	category := strings.TrimSpace(msg.CommandArguments())

	var (
		memos []models.Memo
		err   error
	)
	if category == "" {
		memos, err = h.store.ListAll(ctx)
	} else {
		memos, err = h.store.ListByCategory(ctx, category)
	}
	if err != nil {
		logrus.WithError(err).Error("Failed to list memos")
		h.sendMessage(msg.Chat.ID, "Could not fetch memos, please try again later")
		return
	}

	if len(memos) == 0 {
		h.sendMessage(msg.Chat.ID, "No memos yet")
		return
	}

	h.sendMessage(msg.Chat.ID, formatMemos(memos))
}

func (h *Handlers) handleSearch(ctx context.Context, msg *tgbotapi.Message) {
	query := strings.TrimSpace(msg.CommandArguments())
	if query == "" {
		h.sendMessage(msg.Chat.ID, "Usage: /find <query>")
		return
	}

	memos, err := h.store.Search(ctx, query)
	if err != nil {
		logrus.WithError(err).Error("Failed to search memos")
		h.sendMessage(msg.Chat.ID, "Search failed, please try again later")
		return
	}

	if len(memos) == 0 {
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("No memos matching %q", query))
		return
	}

	h.sendMessage(msg.Chat.ID, formatMemos(memos))
}

func (h *Handlers) handleDelete(ctx context.Context, msg *tgbotapi.Message) {
	id := strings.TrimSpace(msg.CommandArguments())
	if _, err := uuid.Parse(id); err != nil {
		h.sendMessage(msg.Chat.ID, "Usage: /del <id> (the id shown by /memos)")
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		logrus.WithError(err).Error("Failed to delete memo")
		h.sendMessage(msg.Chat.ID, "Could not delete the memo, please try again later")
		return
	}

	h.cache.Invalidate(ctx)
	h.sendMessage(msg.Chat.ID, "Memo deleted")
}

// ParseMemoArgs splits "/memo" arguments into a MemoInput. The title and
// content are separated by "|"; trailing #tags on the content become tags.
// Without a separator the whole text is the title and the content.
func ParseMemoArgs(args string) (models.MemoInput, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return models.MemoInput{}, fmt.Errorf("empty memo")
	}

	title := args
	content := args
	if before, after, found := strings.Cut(args, "|"); found {
		title = strings.TrimSpace(before)
		content = strings.TrimSpace(after)
	}
	if title == "" || content == "" {
		return models.MemoInput{}, fmt.Errorf("missing title or content")
	}

	tags := []string{}
	words := strings.Fields(content)
	for len(words) > 0 {
		last := words[len(words)-1]
		if !strings.HasPrefix(last, "#") || len(last) < 2 {
			break
		}
		tags = append([]string{strings.ToLower(last[1:])}, tags...)
		words = words[:len(words)-1]
	}
	if len(tags) > 0 {
		content = strings.Join(words, " ")
		if content == "" {
			return models.MemoInput{}, fmt.Errorf("missing content")
		}
	}

	return models.MemoInput{Title: title, Content: content, Tags: tags}, nil
}

func formatMemos(memos []models.Memo) string {
	var sb strings.Builder
	for i, memo := range memos {
		content := memo.Content
		if len(content) > 50 {
			content = content[:50] + "..."
		}
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, memo.Title, memo.Category))
		sb.WriteString(fmt.Sprintf("   %s\n", content))
		if len(memo.Tags) > 0 {
			sb.WriteString(fmt.Sprintf("   tags: %s\n", strings.Join(memo.Tags, ", ")))
		}
		sb.WriteString(fmt.Sprintf("   id: %s | %s\n", memo.ID, memo.CreatedAt.Format("2006-01-02 15:04")))
	}
	return sb.String()
}

func (h *Handlers) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.api.Send(msg); err != nil {
		logrus.WithError(err).Error("Failed to send message")
	}
}
