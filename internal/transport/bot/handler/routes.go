package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"tg_escrow/internal/transport/bot/middleware"
	"tg_escrow/internal/transport/bot/view"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler) {
	// Операторские команды. Группа сужена до самих команд, чтобы
	// миддлварь не съедала чужие сообщения: не-операторам эти команды
	// молча не отвечают.
	opGroup := bh.Group(th.Or(
		th.CommandEqual("setdeals"),
		th.CommandEqual("set_success"),
		th.CommandEqual("grant"),
		th.CommandEqual("deals"),
	))
	opGroup.Use(middleware.OperatorOnly(h.policy))

	opGroup.HandleMessage(h.OnSetDeals, th.CommandEqual("setdeals"))
	opGroup.HandleMessage(h.OnSetSuccess, th.CommandEqual("set_success"))
	opGroup.HandleMessage(h.OnGrant, th.CommandEqual("grant"))
	opGroup.HandleMessage(h.OnDeals, th.CommandEqual("deals"))

	// Публичные команды
	bh.HandleMessage(h.OnStart, th.CommandEqual("start"))
	bh.HandleMessage(h.OnStats, th.CommandEqual("stats"))
	bh.HandleMessage(h.OnPaid, th.CommandEqual("paid"))

	// Любой другой текст — ввод для мастера создания сделки.
	bh.HandleMessage(h.OnText, th.AnyMessage())

	// Кнопки
	bh.HandleCallbackQuery(h.OnCreateDeal, th.CallbackDataEqual(view.CallbackCreateDeal))
	bh.HandleCallbackQuery(h.OnCancelDeal, th.CallbackDataEqual(view.CallbackCancelDeal))
	bh.HandleCallbackQuery(h.OnCurrency, th.CallbackDataPrefix(view.CallbackCurrencyPrefix))
	bh.HandleCallbackQuery(h.OnPayNow, th.CallbackDataPrefix(view.CallbackPayPrefix))
	bh.HandleCallbackQuery(h.OnForcePay, th.CallbackDataPrefix(view.CallbackForcePayPrefix))
	bh.HandleCallbackQuery(h.OnMainMenu, th.CallbackDataEqual(view.CallbackMainMenu))
	bh.HandleCallbackQuery(h.OnMyStats, th.CallbackDataEqual(view.CallbackMyStats))
}
