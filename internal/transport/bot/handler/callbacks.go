package handler

import (
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"tg_escrow/internal/domain"
	"tg_escrow/internal/transport/bot/view"
	"tg_escrow/pkg/errcodes"
)

// OnCreateDeal запускает мастер создания сделки с первого шага.
func (h *Handler) OnCreateDeal(ctx *th.Context, query telego.CallbackQuery) error {
	_, err := h.wizard.Start(ctx, query.From.ID, query.From.Username)
	if err != nil {
		if domain.HasCode(err, errcodes.DealLimitReached) {
			return h.answerAlert(ctx, query.ID, view.LimitReached)
		}
		return err
	}

	if err := h.editHTML(ctx, query, view.StepItemMessage, view.CancelOnly()); err != nil {
		return err
	}

	return h.answer(ctx, query.ID)
}

// OnCancelDeal прерывает мастер и возвращает главное меню.
func (h *Handler) OnCancelDeal(ctx *th.Context, query telego.CallbackQuery) error {
	h.wizard.Cancel(query.From.ID)

	if err := h.editHTML(ctx, query, view.WizardCancelled, h.mainMenu(query.From.ID)); err != nil {
		return err
	}

	return h.answer(ctx, query.ID)
}

// OnCurrency фиксирует валюту, выбранную кнопкой на втором шаге.
func (h *Handler) OnCurrency(ctx *th.Context, query telego.CallbackQuery) error {
	currency, ok := view.ParseCurrency(query.Data)
	if !ok {
		return h.answer(ctx, query.ID)
	}

	res, err := h.wizard.Choose(ctx, query.From.ID, currency)
	if err != nil {
		// Сессии уже нет (отмена, рестарт бота) либо кнопка нажата не
		// на своём шаге.
		return h.answerAlert(ctx, query.ID, view.SessionLost)
	}

	if err := h.editHTML(ctx, query, view.StepPrice(res.Session.Currency), view.CancelOnly()); err != nil {
		return err
	}

	return h.answer(ctx, query.ID)
}

// OnPayNow — кнопка оплаты в окне сделки.
func (h *Handler) OnPayNow(ctx *th.Context, query telego.CallbackQuery) error {
	dealID := strings.TrimPrefix(query.Data, view.CallbackPayPrefix)

	if _, err := h.deals.Settle(ctx, dealID, query.From.ID); err != nil {
		if domain.HasCode(err, errcodes.DealNotFound) {
			if err := h.editHTML(ctx, query, view.DealNotFound, h.mainMenu(query.From.ID)); err != nil {
				return err
			}
			return h.answer(ctx, query.ID)
		}
		return err
	}

	if err := h.answerText(ctx, query.ID, view.PaymentAccepted); err != nil {
		return err
	}

	return h.editHTML(ctx, query, view.PaymentDone, h.mainMenu(query.From.ID))
}

// OnForcePay — операторская фиксация оплаты из окна сделки. Кнопку
// видят только операторы, но callback-данные подделываемы, поэтому
// полномочия перепроверяются.
func (h *Handler) OnForcePay(ctx *th.Context, query telego.CallbackQuery) error {
	if !h.policy.IsOperator(query.From.ID) {
		return h.answerText(ctx, query.ID, view.NoAccess)
	}

	dealID := strings.TrimPrefix(query.Data, view.CallbackForcePayPrefix)

	if _, err := h.deals.Settle(ctx, dealID, query.From.ID); err != nil {
		if domain.HasCode(err, errcodes.DealNotFound) {
			return h.answerText(ctx, query.ID, view.DealNotFound)
		}
		return err
	}

	return h.answerText(ctx, query.ID, view.ForcedPayment)
}

// OnMainMenu возвращает главное меню поверх текущего сообщения.
func (h *Handler) OnMainMenu(ctx *th.Context, query telego.CallbackQuery) error {
	if err := h.editHTML(ctx, query, view.MainMenuMessage, h.mainMenu(query.From.ID)); err != nil {
		return err
	}

	return h.answer(ctx, query.ID)
}

// OnMyStats показывает личные счётчики всплывающим уведомлением.
func (h *Handler) OnMyStats(ctx *th.Context, query telego.CallbackQuery) error {
	text := view.Stats(h.stats.Settled(query.From.ID), h.stats.Created(query.From.ID))

	return h.answerAlert(ctx, query.ID, text)
}

// Вспомогательные методы

func (h *Handler) editHTML(ctx *th.Context, query telego.CallbackQuery, text string, kb *telego.InlineKeyboardMarkup) error {
	if query.Message == nil {
		return nil
	}

	_, err := ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      tu.ID(query.Message.GetChat().ID),
		MessageID:   query.Message.GetMessageID(),
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: kb,
	})
	// Telegram возвращает ошибку, если текст не изменился; для меню это
	// штатный случай.
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}

	return err
}

func (h *Handler) answer(ctx *th.Context, queryID string) error {
	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(queryID))
}

func (h *Handler) answerText(ctx *th.Context, queryID, text string) error {
	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(queryID).WithText(text))
}

func (h *Handler) answerAlert(ctx *th.Context, queryID, text string) error {
	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(queryID).WithText(text).WithShowAlert())
}
