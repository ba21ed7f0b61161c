package handler

import (
	"context"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_escrow/internal/domain/service/access"
	"tg_escrow/internal/domain/service/deal"
	"tg_escrow/internal/domain/service/wizard"
	"tg_escrow/internal/infrastructure/stats"
	"tg_escrow/internal/transport/bot/view"
)

// Auditor получает события для лог-чата оператора.
type Auditor interface {
	Event(ctx context.Context, userID int64, username, action, extra string)
}

type Handler struct {
	wizard  *wizard.Wizard
	deals   *deal.Service
	policy  *access.Policy
	stats   *stats.Registry
	auditor Auditor

	// Имя бота для глубоких ссылок вида t.me/<bot>?start=deal_<id>.
	botUsername string
}

func New(
	wizardSvc *wizard.Wizard,
	dealSvc *deal.Service,
	policy *access.Policy,
	registry *stats.Registry,
	auditor Auditor,
	botUsername string,
) *Handler {
	return &Handler{
		wizard:      wizardSvc,
		deals:       dealSvc,
		policy:      policy,
		stats:       registry,
		auditor:     auditor,
		botUsername: botUsername,
	}
}

// Вспомогательные методы

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	return err
}

func (h *Handler) sendHTMLKeyboard(ctx *th.Context, chatID int64, text string, kb *telego.InlineKeyboardMarkup) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: chatID},
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: kb,
	})
	return err
}

// mainMenu собирает клавиатуру главного меню с личными счётчиками.
func (h *Handler) mainMenu(userID int64) *telego.InlineKeyboardMarkup {
	return view.MainMenu(
		h.stats.Settled(userID),
		h.stats.Created(userID),
		h.policy.IsOperator(userID),
	)
}
