package deal

import (
	"context"

	"tg_escrow/internal/domain/entity"
	"tg_escrow/internal/metrics"
)

type Store interface {
	Get(id string) (entity.Deal, bool)
	Mutate(id string, fn func(deal *entity.Deal)) (entity.Deal, error)
	Delete(id string) bool
	ListOpen() []entity.Deal
}

type StatsRegistry interface {
	AddSettled(userID int64) int
	Settled(userID int64) int
}

// Notifier доставляет продавцу сообщение об оплате. Вызов не должен
// блокировать и не может вернуть ошибку в сделочный код: доставка
// best-effort, сбой — забота самого нотификатора.
type Notifier interface {
	DealSettled(ctx context.Context, deal entity.Deal, sellerSuccess int)
}

type Auditor interface {
	Event(ctx context.Context, userID int64, username, action, extra string)
}

// Service проводит сделку по жизненному циклу: claim покупателем,
// settle покупателем или оператором, поиск живой сделки покупателя.
// Все мутации идут через Mutate реестра, поэтому конкурирующие
// claim/settle не теряют друг друга.
type Service struct {
	store    Store
	stats    StatsRegistry
	notifier Notifier
	auditor  Auditor
}

func NewService(store Store, stats StatsRegistry, notifier Notifier, auditor Auditor) *Service {
	return &Service{
		store:    store,
		stats:    stats,
		notifier: notifier,
		auditor:  auditor,
	}
}

// Claim записывает claimant как последнего открывшего сделку. Повторный
// claim другого пользователя просто перезаписывает покупателя. На
// оплаченной сделке ничего не меняется — возвращается текущий снимок.
func (s *Service) Claim(ctx context.Context, id string, claimantID int64) (entity.Deal, error) {
	return s.store.Mutate(id, func(d *entity.Deal) {
		if d.Status == entity.DealSettled {
			return
		}

		d.BuyerID = claimantID
		if d.Status == entity.DealOpen {
			d.Status = entity.DealClaimed
		}
	})
}

// Settle — терминальный переход. Идемпотентен: повторная оплата
// возвращает запись как есть и счётчик успехов продавца не трогает.
// Claim для оплаты не обязателен. Уведомление продавцу уходит после
// фиксации мутации, вне критической секции реестра.
func (s *Service) Settle(ctx context.Context, id string, settlerID int64) (entity.Deal, error) {
	var settledNow bool

	deal, err := s.store.Mutate(id, func(d *entity.Deal) {
		if d.Status == entity.DealSettled {
			return
		}

		d.Status = entity.DealSettled
		d.SettledBy = settlerID
		settledNow = true
	})
	if err != nil {
		return entity.Deal{}, err
	}

	if !settledNow {
		return deal, nil
	}

	success := s.stats.AddSettled(deal.SellerID)
	metrics.DealsSettled.Inc()

	s.notifier.DealSettled(context.WithoutCancel(ctx), deal, success)
	s.auditor.Event(ctx, settlerID, "", "deal settled", deal.ID)

	return deal, nil
}

// QueryByClaimant возвращает живую (неоплаченную и не вычищенную)
// сделку, которую пользователь открывал последней, — чтобы при «я
// оплатил» не спрашивать ID заново.
func (s *Service) QueryByClaimant(userID int64) (entity.Deal, bool) {
	var (
		found entity.Deal
		ok    bool
	)

	for _, deal := range s.store.ListOpen() {
		if deal.BuyerID == userID {
			found = deal
			ok = true
		}
	}

	return found, ok
}

// Get возвращает снимок сделки по ID.
func (s *Service) Get(id string) (entity.Deal, bool) {
	return s.store.Get(id)
}

// ListOpen — неоплаченные сделки в порядке создания, для операторских
// панелей.
func (s *Service) ListOpen() []entity.Deal {
	return s.store.ListOpen()
}

// Evict безусловно удаляет запись. Операторская операция, сделочный
// поток сделки не удаляет.
func (s *Service) Evict(id string) bool {
	return s.store.Delete(id)
}

// SellerSuccess — счётчик успешных продаж пользователя.
func (s *Service) SellerSuccess(userID int64) int {
	return s.stats.Settled(userID)
}
