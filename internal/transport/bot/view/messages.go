package view

import (
	"fmt"

	"github.com/samber/lo"

	"tg_escrow/internal/domain/entity"
)

// Тексты сообщений бота. Все шаблоны — HTML.
const (
	StartMessage = "🎁 <b>Безопасная торговля подарками</b>"

	MainMenuMessage = "🏠 Главное меню"

	StepItemMessage = "🎁 <b>Шаг 1/4 — Товар</b>\n\n📦 Название товара:"

	WizardCancelled = "❌ Создание отменено"

	DealNotFound  = "❌ Сделка не найдена"
	DealCompleted = "✅ Сделка выполнена"

	PaymentDone = "✅ <b>Оплата прошла!</b>\n⏳ Ожидайте товар от продавца"

	PaymentAccepted = "✅ Оплата принята!"
	ForcedPayment   = "🔥 Накручено!"

	NoAccess     = "❌ Нет доступа"
	NothingToPay = "❌ У вас нет открытой сделки. Перейдите по ссылке продавца."

	ItemInvalid       = "❌ 3-100 символов"
	PriceInvalid      = "❌ Цена 1-100000"
	RequisitesInvalid = "❌ Реквизиты не могут быть пустыми"
	LimitReached      = "⏳ Лимит сделок исчерпан"
	SessionLost       = "❌ Сессия не найдена, начните заново"
	IDExhausted       = "❌ Не удалось создать сделку, попробуйте ещё раз"

	SetDealsUsage   = "❌ /setdeals 90"
	SetSuccessUsage = "❌ /set_success 90"
	GrantUsage      = "❌ /grant 123456789"
	NotANumber      = "❌ Число!"

	OpenDealsEmpty = "📋 Открытых сделок нет"
)

// Symbol — символ валюты для денежных сумм в сообщениях.
func Symbol(c entity.Currency) string {
	return lo.Ternary(c == entity.CurrencyRub, "₽", "⭐")
}

// StepCurrency — подтверждение товара и запрос валюты.
func StepCurrency(item string) string {
	return fmt.Sprintf("✅ <b>Товар: %s</b>\n\n💰 Шаг 2/4 — валюта:", item)
}

// StepPrice — подтверждение валюты и запрос цены.
func StepPrice(currency entity.Currency) string {
	return fmt.Sprintf("✅ <b>%s</b>\n\n💵 Шаг 3/4 — цена (1-100000):", currencyName(currency))
}

// StepRequisites — подтверждение цены и запрос реквизитов. Вид
// реквизитов зависит от валюты.
func StepRequisites(price int64, currency entity.Currency) string {
	reqType := "@username"
	if currency == entity.CurrencyRub {
		reqType = "номер карты"
	}
	return fmt.Sprintf("✅ <b>%d</b>\n\n💳 Шаг 4/4 — %s:", price, reqType)
}

// DealCreated — итоговая карточка после завершения мастера.
func DealCreated(deal entity.Deal) string {
	return fmt.Sprintf(
		"✅ <b>Сделка создана #%s</b>\n\n"+
			"🎁 %s\n"+
			"💰 %d %s\n\n"+
			"📤 <b>ПЕРЕСЛАТЬ:</b> Нажмите кнопку выше!",
		deal.ID, deal.Item, deal.Price, Symbol(deal.Currency),
	)
}

// ShareText — текст, который продавец пересылает покупателю вместе с
// глубокой ссылкой на окно оплаты.
func ShareText(deal entity.Deal, botUsername string) string {
	return fmt.Sprintf(
		"Сделка #%s\n%s за %d %s\n🔗 https://t.me/%s?start=deal_%s",
		deal.ID, deal.Item, deal.Price, Symbol(deal.Currency), botUsername, deal.ID,
	)
}

// PaymentWindow — карточка оплаты для покупателя, перешедшего по ссылке.
func PaymentWindow(deal entity.Deal, sellerSuccess int) string {
	return fmt.Sprintf(
		"💳 <b>ОПЛАТА СДЕЛКИ #%s</b>\n\n"+
			"📦 <b>%s</b>\n"+
			"💰 <b>%d %s</b>\n"+
			"💳 <b>%s</b>\n"+
			"✅ <b>Продавец: %d успехов</b>\n\n"+
			"<i>🔥 Нажмите ОПЛАТИТЬ СЕЙЧАС</i>",
		deal.ID, deal.Item, deal.Price, Symbol(deal.Currency),
		currencyName(deal.Currency), sellerSuccess,
	)
}

// Stats — личная статистика пользователя.
func Stats(success, total int) string {
	return fmt.Sprintf("📊 Успехов: %d\n📦 Сделок: %d", success, total)
}

func currencyName(c entity.Currency) string {
	return lo.Ternary(c == entity.CurrencyRub, "Рубли", "Звёзды Telegram")
}
