package dealstore

import (
	"sync"
	"time"

	"tg_escrow/internal/domain"
	"tg_escrow/internal/domain/entity"
	"tg_escrow/pkg/errcodes"
)

// Store — единственный владелец записей Deal. Все остальные компоненты
// получают копии и проводят каждую мутацию через Mutate, поэтому
// потерянных обновлений при конкурентных claim/settle не бывает.
type Store struct {
	mu        sync.Mutex
	deals     map[string]*entity.Deal
	order     []string // ID в порядке вставки, для ListOpen
	allocator *Allocator
}

func New() *Store {
	return &Store{
		deals:     make(map[string]*entity.Deal),
		allocator: NewAllocator(),
	}
}

// Create выделяет уникальный ID и вставляет сделку со статусом Open.
// Выделение и вставка происходят под одной блокировкой, так что между
// ними никто не успеет занять тот же ID.
func (s *Store) Create(draft entity.DealDraft) (entity.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.allocator.Allocate(func(id string) bool {
		_, exists := s.deals[id]
		return exists
	})
	if err != nil {
		return entity.Deal{}, err
	}

	deal := &entity.Deal{
		ID:             id,
		SellerID:       draft.SellerID,
		SellerUsername: draft.SellerUsername,
		Item:           draft.Item,
		Currency:       draft.Currency,
		Price:          draft.Price,
		Requisites:     draft.Requisites,
		Status:         entity.DealOpen,
		CreatedAt:      time.Now(),
	}

	s.deals[id] = deal
	s.order = append(s.order, id)

	return *deal, nil
}

// Get возвращает снимок сделки. Отсутствие — не ошибка.
func (s *Store) Get(id string) (entity.Deal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal, ok := s.deals[id]
	if !ok {
		return entity.Deal{}, false
	}

	return *deal, true
}

// Mutate применяет fn к сделке атомарно и возвращает снимок результата.
func (s *Store) Mutate(id string, fn func(deal *entity.Deal)) (entity.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal, ok := s.deals[id]
	if !ok {
		return entity.Deal{}, domain.NewError(errcodes.DealNotFound, "deal not found")
	}

	fn(deal)

	return *deal, nil
}

// Delete безусловно удаляет запись. Сделочный код её не зовёт:
// оплата сделку не удаляет, удаление — дело свипера и оператора.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.deleteLocked(id)
}

func (s *Store) deleteLocked(id string) bool {
	if _, ok := s.deals[id]; !ok {
		return false
	}

	delete(s.deals, id)

	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return true
}

// ListOpen возвращает снимок всех неоплаченных сделок в порядке вставки.
func (s *Store) ListOpen() []entity.Deal {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]entity.Deal, 0, len(s.order))
	for _, id := range s.order {
		deal, ok := s.deals[id]
		if !ok || deal.Status == entity.DealSettled {
			continue
		}
		result = append(result, *deal)
	}

	return result
}

// DeleteExpired удаляет неоплаченные сделки старше maxAge и возвращает
// снимки удалённых. Фильтр по статусу и возрасту проверяется под той же
// блокировкой, что и удаление: сделка, оплаченная за мгновение до
// зачистки, остаётся в реестре.
func (s *Store) DeleteExpired(maxAge time.Duration) []entity.Deal {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	var expired []entity.Deal
	for _, deal := range s.deals {
		if deal.Status == entity.DealSettled {
			continue
		}
		if now.Sub(deal.CreatedAt) <= maxAge {
			continue
		}
		expired = append(expired, *deal)
	}

	for _, deal := range expired {
		s.deleteLocked(deal.ID)
	}

	return expired
}

// Len возвращает число записей в реестре, включая оплаченные.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.deals)
}
