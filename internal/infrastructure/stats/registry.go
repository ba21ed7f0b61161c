package stats

import "sync"

// Registry хранит счётчики пользователей: сколько сделок создано и
// сколько успешно закрыто как продавец. Отсутствие записи — валидное
// начальное состояние, счётчик равен нулю.
type Registry struct {
	mu      sync.RWMutex
	created map[int64]int
	settled map[int64]int
}

func NewRegistry() *Registry {
	return &Registry{
		created: make(map[int64]int),
		settled: make(map[int64]int),
	}
}

func (r *Registry) Created(userID int64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.created[userID]
}

func (r *Registry) Settled(userID int64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.settled[userID]
}

// AddCreated увеличивает счётчик созданных сделок и возвращает новое значение.
func (r *Registry) AddCreated(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.created[userID]++
	return r.created[userID]
}

// AddSettled увеличивает счётчик успехов продавца и возвращает новое значение.
func (r *Registry) AddSettled(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settled[userID]++
	return r.settled[userID]
}

// SetCreated — операторская перезапись счётчика.
func (r *Registry) SetCreated(userID int64, value int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.created[userID] = value
}

// SetSettled — операторская перезапись счётчика.
func (r *Registry) SetSettled(userID int64, value int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settled[userID] = value
}
