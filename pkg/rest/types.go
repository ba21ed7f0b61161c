// Модели ops-API. При появлении openapi-спецификации файл должен
// генерироваться и называться types.gen.go.
package rest

// Deal — сделка в ответах ops-API. Реквизиты продавца наружу не
// отдаются.
type Deal struct {
	ID             string `json:"id"`
	SellerID       int64  `json:"sellerId"`
	SellerUsername string `json:"sellerUsername,omitempty"`
	Item           string `json:"item"`
	Currency       string `json:"currency"`
	Price          int64  `json:"price"`
	Status         string `json:"status"`
	BuyerID        int64  `json:"buyerId,omitempty"`
	SettledBy      int64  `json:"settledBy,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

type DealList struct {
	Deals []Deal `json:"deals"`
	Total int    `json:"total"`
}

// UserStats — прижизненные счётчики пользователя.
type UserStats struct {
	UserID   int64 `json:"userId"`
	Created  int   `json:"created"`
	Settled  int   `json:"settled"`
	Operator bool  `json:"operator"`
}

// SettleRequest — ручная фиксация оплаты оператором.
type SettleRequest struct {
	SettlerID int64 `json:"settlerId" validate:"required,gt=0"`
}

// GrantRequest — назначение оператора.
type GrantRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке
	Message string `json:"message"`

	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
