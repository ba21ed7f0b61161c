package access

import "sync"

// StatsReader отдаёт прижизненный счётчик созданных сделок.
type StatsReader interface {
	Created(userID int64) int
}

// Policy решает два вопроса: кто оператор и кому ещё можно создавать
// сделки. Набор операторов засеивается одним ID из конфигурации и
// расширяется только явным Grant от действующего оператора —
// самоназначение из исходного бота намеренно не воспроизводится.
type Policy struct {
	mu        sync.RWMutex
	operators map[int64]struct{}

	stats       StatsReader
	createLimit int
}

func NewPolicy(initialOperator int64, stats StatsReader, createLimit int) *Policy {
	operators := make(map[int64]struct{})
	if initialOperator != 0 {
		operators[initialOperator] = struct{}{}
	}

	return &Policy{
		operators:   operators,
		stats:       stats,
		createLimit: createLimit,
	}
}

func (p *Policy) IsOperator(userID int64) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.operators[userID]
	return ok
}

// Grant добавляет пользователя в набор операторов. Проверка полномочий
// вызывающего — на совести транспорта.
func (p *Policy) Grant(userID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.operators[userID] = struct{}{}
}

// CanCreate сообщает, пустит ли квота пользователя в мастер создания.
// Операторов квота не касается.
func (p *Policy) CanCreate(userID int64) bool {
	if p.IsOperator(userID) {
		return true
	}

	return p.stats.Created(userID) < p.createLimit
}
