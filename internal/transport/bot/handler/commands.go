package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_escrow/internal/domain"
	"tg_escrow/internal/transport/bot/view"
	"tg_escrow/pkg/errcodes"
)

const dealLinkPrefix = "deal_"

// OnStart обрабатывает /start, в том числе глубокую ссылку
// ?start=deal_<id> из пересланного продавцом сообщения.
func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	if msg.From == nil {
		return nil
	}

	args := strings.Fields(msg.Text)
	if len(args) > 1 && strings.HasPrefix(args[1], dealLinkPrefix) {
		dealID := strings.TrimPrefix(args[1], dealLinkPrefix)
		return h.showPaymentWindow(ctx, msg.Chat.ID, msg.From.ID, dealID)
	}

	h.auditor.Event(ctx, msg.From.ID, msg.From.Username, "Старт бота", "")

	return h.sendHTMLKeyboard(ctx, msg.Chat.ID, view.StartMessage, h.mainMenu(msg.From.ID))
}

// showPaymentWindow помечает сделку как открытую этим покупателем и
// рисует окно оплаты. Оплаченная или несуществующая сделка окном не
// становится.
func (h *Handler) showPaymentWindow(ctx *th.Context, chatID, userID int64, dealID string) error {
	claimed, err := h.deals.Claim(ctx, dealID, userID)
	if err != nil {
		if domain.HasCode(err, errcodes.DealNotFound) {
			return h.sendHTMLKeyboard(ctx, chatID, view.DealNotFound, h.mainMenu(userID))
		}
		return err
	}

	if claimed.IsSettled() {
		return h.sendHTMLKeyboard(ctx, chatID, view.DealCompleted, h.mainMenu(userID))
	}

	sellerSuccess := h.deals.SellerSuccess(claimed.SellerID)

	return h.sendHTMLKeyboard(ctx, chatID,
		view.PaymentWindow(claimed, sellerSuccess),
		view.PaymentKeyboard(claimed.ID, h.policy.IsOperator(userID)),
	)
}

// OnStats показывает личные счётчики пользователя.
func (h *Handler) OnStats(ctx *th.Context, msg telego.Message) error {
	if msg.From == nil {
		return nil
	}

	return h.sendHTML(ctx, msg.Chat.ID,
		view.Stats(h.stats.Settled(msg.From.ID), h.stats.Created(msg.From.ID)))
}

// OnPaid фиксирует оплату последней открытой пользователем сделки —
// запасной путь для тех, кто потерял окно оплаты.
func (h *Handler) OnPaid(ctx *th.Context, msg telego.Message) error {
	if msg.From == nil {
		return nil
	}

	found, ok := h.deals.QueryByClaimant(msg.From.ID)
	if !ok {
		return h.sendHTML(ctx, msg.Chat.ID, view.NothingToPay)
	}

	if _, err := h.deals.Settle(ctx, found.ID, msg.From.ID); err != nil {
		return err
	}

	return h.sendHTMLKeyboard(ctx, msg.Chat.ID, view.PaymentDone, h.mainMenu(msg.From.ID))
}

// Операторские команды. Транспортный слой гарантирует, что сюда
// доходят только операторы.

func (h *Handler) OnSetDeals(ctx *th.Context, msg telego.Message) error {
	count, err := parseCountArg(msg.Text)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.SetDealsUsage)
	}

	h.stats.SetCreated(msg.From.ID, count)

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("✅ Сделок: %d", count))
}

func (h *Handler) OnSetSuccess(ctx *th.Context, msg telego.Message) error {
	count, err := parseCountArg(msg.Text)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.SetSuccessUsage)
	}

	h.stats.SetSettled(msg.From.ID, count)

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("✅ Успехов: %d", count))
}

// OnGrant назначает нового оператора. Команда доступна только
// действующим операторам, самоназначения нет.
func (h *Handler) OnGrant(ctx *th.Context, msg telego.Message) error {
	args := strings.Fields(msg.Text)
	if len(args) < 2 {
		return h.sendHTML(ctx, msg.Chat.ID, view.GrantUsage)
	}

	userID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || userID <= 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.GrantUsage)
	}

	h.policy.Grant(userID)
	h.auditor.Event(ctx, msg.From.ID, msg.From.Username, "Назначен оператор", strconv.FormatInt(userID, 10))

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf("✅ Оператор: <code>%d</code>", userID))
}

// OnDeals показывает оператору открытые сделки в порядке создания.
func (h *Handler) OnDeals(ctx *th.Context, msg telego.Message) error {
	open := h.deals.ListOpen()
	if len(open) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.OpenDealsEmpty)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 <b>Открытые сделки (%d):</b>\n\n", len(open)))

	for i, d := range open {
		sb.WriteString(fmt.Sprintf(
			"%d. <code>%s</code> — %s, %d %s [%s]\n",
			i+1, d.ID, d.Item, d.Price, view.Symbol(d.Currency), d.Status,
		))
	}

	return h.sendHTML(ctx, msg.Chat.ID, sb.String())
}

func parseCountArg(text string) (int, error) {
	args := strings.Fields(text)
	if len(args) < 2 {
		return 0, fmt.Errorf("missing argument")
	}

	count, err := strconv.Atoi(args[1])
	if err != nil || count < 0 {
		return 0, fmt.Errorf("invalid count %q", args[1])
	}

	return count, nil
}
