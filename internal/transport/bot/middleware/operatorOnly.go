package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// OperatorChecker отвечает, оператор ли пользователь. Набор операторов
// живой, поэтому проверка делается на каждом апдейте, а не при
// регистрации маршрутов.
type OperatorChecker interface {
	IsOperator(userID int64) bool
}

// OperatorOnly пропускает дальше только апдейты операторов. Чужие
// апдейты молча глотаются.
func OperatorOnly(policy OperatorChecker) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		var userID int64

		if update.Message != nil {
			userID = update.Message.From.ID
		} else if update.CallbackQuery != nil {
			userID = update.CallbackQuery.From.ID
		} else {
			return nil
		}

		if policy.IsOperator(userID) {
			return ctx.Next(update)
		}

		return nil
	}
}
