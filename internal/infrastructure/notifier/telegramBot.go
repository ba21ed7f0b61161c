package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"tg_escrow/internal/domain/entity"
	"tg_escrow/pkg/contextx"
	"tg_escrow/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	eventDedupTTL     = time.Minute
	eventsCleanupTick = 5 * time.Minute
)

// TelegramBot доставляет служебные сообщения: продавцу об оплате его
// сделки и оператору в лог-чат о действиях пользователей. Доставка
// best-effort, сделочный код от сбоев Telegram не зависит.
type TelegramBot struct {
	bot       *telego.Bot
	logChatID int64
	manager   string

	// Дедупликация событий лог-чата: один и тот же пользователь,
	// долбящий одну кнопку, не засоряет чат.
	processedEvents *cache.Cache
}

func NewTelegramBot(bot *telego.Bot, logChatID int64, managerUsername string) *TelegramBot {
	return &TelegramBot{
		bot:             bot,
		logChatID:       logChatID,
		manager:         managerUsername,
		processedEvents: cache.New(eventDedupTTL, eventsCleanupTick),
	}
}

// DealSettled шлёт продавцу уведомление об оплате с реквизитами сделки
// и его текущим счётчиком успехов. Отправка уходит в фоновую горутину:
// фиксация оплаты не ждёт Telegram.
func (b *TelegramBot) DealSettled(ctx context.Context, deal entity.Deal, sellerSuccess int) {
	text := fmt.Sprintf(
		"💰 <b>Пользователь переслал деньги!</b>\n\n"+
			"Для успешной сделки передайте товар менеджеру %s\n"+
			"<b>!Строго ему — критически важное правило!</b>\n\n"+
			"━━━━━━━━━━━━━━━━━━━\n"+
			"🆔 <b>Сделка #%s</b>\n"+
			"🎁 <b>%s</b>\n"+
			"💰 <b>%d %s</b>\n"+
			"💳 <b>Реквизиты:</b> <code>%s</code>\n\n"+
			"✅ Теперь у вас <b>%d успехов</b>",
		b.manager,
		deal.ID,
		deal.Item,
		deal.Price,
		currencySymbol(deal.Currency),
		deal.Requisites,
		sellerSuccess,
	)

	go func() {
		msg := tu.Message(tu.ID(deal.SellerID), text).WithParseMode(telego.ModeHTML)

		if _, err := b.bot.SendMessage(ctx, msg); err != nil {
			logger(ctx).Error("failed to notify seller",
				slog.String(logx.FieldDealID, deal.ID),
				slog.Int64(logx.FieldUserID, deal.SellerID),
				logx.Error(err),
			)
		}
	}()
}

// Event пишет действие пользователя в лог-чат оператора. Повторы одного
// события в течение минуты схлопываются.
func (b *TelegramBot) Event(ctx context.Context, userID int64, username, action, extra string) {
	if b.logChatID == 0 {
		return
	}

	dedupKey := fmt.Sprintf("%d:%s:%s", userID, action, extra)
	if _, seen := b.processedEvents.Get(dedupKey); seen {
		return
	}
	b.processedEvents.Set(dedupKey, struct{}{}, cache.DefaultExpiration)

	if username == "" {
		username = "нет"
	}

	text := fmt.Sprintf(
		"📊 <b>%s</b>\n👤 <code>%d</code>\n📝 @%s\n%s",
		action, userID, username, extra,
	)

	go func() {
		msg := tu.Message(tu.ID(b.logChatID), text).WithParseMode(telego.ModeHTML)

		if _, err := b.bot.SendMessage(ctx, msg); err != nil {
			logger(ctx).Warn("failed to send audit event",
				slog.String("action", action),
				slog.Int64(logx.FieldUserID, userID),
				logx.Error(err),
			)
		}
	}()
}

func currencySymbol(c entity.Currency) string {
	return lo.Ternary(c == entity.CurrencyRub, "₽", "⭐")
}
