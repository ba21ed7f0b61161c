package handler

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg_escrow/internal/domain"
	"tg_escrow/internal/domain/entity"
	"tg_escrow/internal/domain/service/wizard"
	"tg_escrow/internal/transport/bot/view"
	"tg_escrow/pkg/errcodes"
)

// OnText скармливает обычный текст мастеру создания сделки. Сообщения
// пользователей без активной сессии игнорируются.
func (h *Handler) OnText(ctx *th.Context, msg telego.Message) error {
	if msg.From == nil {
		return nil
	}

	if _, active := h.wizard.Active(msg.From.ID); !active {
		return nil
	}

	res, err := h.wizard.Input(ctx, msg.From.ID, msg.Text)
	if err != nil {
		return h.replyWizardError(ctx, msg.Chat.ID, err)
	}

	return h.renderWizardStep(ctx, msg.Chat.ID, res)
}

// renderWizardStep рисует подсказку шага, на котором оказалась сессия.
func (h *Handler) renderWizardStep(ctx *th.Context, chatID int64, res wizard.Result) error {
	if res.Deal != nil {
		share := view.ShareText(*res.Deal, h.botUsername)

		return h.sendHTMLKeyboard(ctx, chatID, view.DealCreated(*res.Deal), view.ShareDeal(share))
	}

	switch res.Step {
	case entity.StepAwaitingCurrency:
		return h.sendHTMLKeyboard(ctx, chatID, view.StepCurrency(res.Session.Item), view.CurrencyChoice())
	case entity.StepAwaitingInstructions:
		return h.sendHTMLKeyboard(ctx, chatID,
			view.StepRequisites(res.Session.Price, res.Session.Currency), view.CancelOnly())
	default:
		return nil
	}
}

func (h *Handler) replyWizardError(ctx *th.Context, chatID int64, err error) error {
	switch {
	case domain.HasCode(err, errcodes.InvalidDealItem):
		return h.sendHTML(ctx, chatID, view.ItemInvalid)
	case domain.HasCode(err, errcodes.InvalidDealPrice):
		return h.sendHTML(ctx, chatID, view.PriceInvalid)
	case domain.HasCode(err, errcodes.InvalidRequisites):
		return h.sendHTML(ctx, chatID, view.RequisitesInvalid)
	case domain.HasCode(err, errcodes.AllocationExhausted):
		return h.sendHTML(ctx, chatID, view.IDExhausted)
	case domain.HasCode(err, errcodes.InvalidCurrency),
		domain.HasCode(err, errcodes.NoActiveSession):
		// Валюта выбирается кнопками, текст на этом шаге просто
		// игнорируется.
		return nil
	default:
		return err
	}
}
