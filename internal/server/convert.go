package server

import (
	"time"

	"tg_escrow/internal/domain/entity"
	"tg_escrow/pkg/rest"
)

// newRESTDeal конвертирует доменную сделку в модель ops-API.
// Реквизиты наружу не отдаются.
func newRESTDeal(d entity.Deal) rest.Deal {
	return rest.Deal{
		ID:             d.ID,
		SellerID:       d.SellerID,
		SellerUsername: d.SellerUsername,
		Item:           d.Item,
		Currency:       d.Currency.String(),
		Price:          d.Price,
		Status:         d.Status.String(),
		BuyerID:        d.BuyerID,
		SettledBy:      d.SettledBy,
		CreatedAt:      d.CreatedAt.UTC().Format(time.RFC3339),
	}
}
