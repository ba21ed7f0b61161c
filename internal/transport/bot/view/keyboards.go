package view

import (
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"tg_escrow/internal/domain/entity"
)

// Callback-данные инлайн-кнопок.
const (
	CallbackCreateDeal = "create_deal"
	CallbackCancelDeal = "cancel_deal"
	CallbackMainMenu   = "main_menu"
	CallbackMyStats    = "my_stats"

	CallbackCurrencyPrefix = "currency_"
	CallbackCurrencyRub    = "currency_rub"
	CallbackCurrencyStars  = "currency_stars"

	CallbackPayPrefix      = "pay_now_"
	CallbackForcePayPrefix = "admin_pay_"
)

const (
	supportURL = "https://t.me/Donatovgift_manager"
	reviewsURL = "https://t.me/Donatovgifts_review"
)

// MainMenu — главное меню со счётчиком успехи/всего текущего
// пользователя. Операторам добавляется панель.
func MainMenu(success, total int, isOperator bool) *telego.InlineKeyboardMarkup {
	rows := []telego.InlineKeyboardButton{
		tu.InlineKeyboardButton("💼 Создать сделку").WithCallbackData(CallbackCreateDeal),
		tu.InlineKeyboardButton(fmt.Sprintf("✅ %d/%d", success, total)).WithCallbackData(CallbackMyStats),
	}

	if isOperator {
		rows = append(rows, tu.InlineKeyboardButton("👑 ОПЕРАТОР: /deals").WithCallbackData(CallbackMyStats))
	}

	rows = append(rows,
		tu.InlineKeyboardButton("💬 Поддержка").WithURL(supportURL),
		tu.InlineKeyboardButton("⭐ Отзывы").WithURL(reviewsURL),
	)

	keyboardRows := make([][]telego.InlineKeyboardButton, 0, len(rows))
	for _, b := range rows {
		keyboardRows = append(keyboardRows, tu.InlineKeyboardRow(b))
	}

	return &telego.InlineKeyboardMarkup{InlineKeyboard: keyboardRows}
}

// CancelOnly — единственная кнопка отмены мастера.
func CancelOnly() *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("❌ Отмена").WithCallbackData(CallbackCancelDeal),
		),
	)
}

// CurrencyChoice — выбор валюты на втором шаге мастера.
func CurrencyChoice() *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("₽ Рубли").WithCallbackData(CallbackCurrencyRub),
		),
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("⭐ Звёзды").WithCallbackData(CallbackCurrencyStars),
		),
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("❌ Отмена").WithCallbackData(CallbackCancelDeal),
		),
	)
}

// ShareDeal — кнопка пересылки созданной сделки покупателю.
func ShareDeal(shareText string) *telego.InlineKeyboardMarkup {
	share := tu.InlineKeyboardButton("📤 ПЕРЕСЛАТЬ ПОКУПАТЕЛЮ")
	share.SwitchInlineQuery = &shareText

	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(share),
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("🏠 В меню").WithCallbackData(CallbackMainMenu),
		),
	)
}

// PaymentKeyboard — кнопки окна оплаты. Операторам добавляется
// принудительная фиксация.
func PaymentKeyboard(dealID string, isOperator bool) *telego.InlineKeyboardMarkup {
	rows := [][]telego.InlineKeyboardButton{
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("💳 ОПЛАТИТЬ СЕЙЧАС").WithCallbackData(CallbackPayPrefix + dealID),
		),
	}

	if isOperator {
		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("🔥 НАКРУТИТЬ").WithCallbackData(CallbackForcePayPrefix+dealID),
		))
	}

	rows = append(rows, tu.InlineKeyboardRow(
		tu.InlineKeyboardButton("❌ Отмена").WithCallbackData(CallbackMainMenu),
	))

	return &telego.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ParseCurrency переводит callback-данные кнопки в валюту.
func ParseCurrency(data string) (entity.Currency, bool) {
	switch data {
	case CallbackCurrencyRub:
		return entity.CurrencyRub, true
	case CallbackCurrencyStars:
		return entity.CurrencyStars, true
	default:
		return "", false
	}
}
