package entity

import "time"

// Currency — валюта расчёта по сделке. От неё зависит смысл реквизитов:
// для рублей это номер карты, для звёзд — @username.
type Currency string

const (
	CurrencyRub   Currency = "RUB"
	CurrencyStars Currency = "STARS"
)

func (c Currency) String() string {
	return string(c)
}

// DealStatus — статус жизненного цикла сделки. Переходы только вперёд:
// Open → Claimed → Settled либо Open → Settled, обратных нет.
type DealStatus string

const (
	DealOpen    DealStatus = "OPEN"
	DealClaimed DealStatus = "CLAIMED"
	DealSettled DealStatus = "SETTLED"
)

func (s DealStatus) String() string {
	return string(s)
}

// Deal — одно предложение продавца. Владелец записи — dealstore.Store,
// все мутации идут через его синхронизированные методы.
type Deal struct {
	ID             string
	SellerID       int64
	SellerUsername string
	Item           string
	Currency       Currency
	Price          int64
	Requisites     string
	Status         DealStatus
	BuyerID        int64 // последний открывший сделку покупатель, 0 — никто
	SettledBy      int64 // кто зафиксировал оплату, 0 — не оплачена
	CreatedAt      time.Time
}

// IsSettled сообщает, зафиксирована ли оплата по сделке.
func (d Deal) IsSettled() bool {
	return d.Status == DealSettled
}

// DealDraft — поля будущей сделки, собранные мастером. ID, статус и
// время создания выставляет реестр при вставке.
type DealDraft struct {
	SellerID       int64
	SellerUsername string
	Item           string
	Currency       Currency
	Price          int64
	Requisites     string
}

// Лимиты полей сделки.
const (
	ItemMinLen = 3
	ItemMaxLen = 100
	PriceMin   = 1
	PriceMax   = 100000
)
