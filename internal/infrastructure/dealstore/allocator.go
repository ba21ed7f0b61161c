package dealstore

import (
	"crypto/rand"
	"math/big"

	"tg_escrow/internal/domain"
	"tg_escrow/pkg/errcodes"
)

const (
	idLength            = 8
	idAlphabet          = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	maxAllocateAttempts = 50
)

// Allocator генерирует короткие неугадываемые ID сделок из crypto/rand.
// Сам по себе ID не резервирует: проверка занятости и вставка должны
// происходить под одной блокировкой Store.
type Allocator struct {
	length   int
	attempts int
}

func NewAllocator() *Allocator {
	return &Allocator{
		length:   idLength,
		attempts: maxAllocateAttempts,
	}
}

// Allocate возвращает ID, для которого taken вернул false. Если за
// отведённые попытки свободный ID не нашёлся — AllocationExhausted,
// занятый ID не возвращается никогда.
func (a *Allocator) Allocate(taken func(id string) bool) (string, error) {
	for i := 0; i < a.attempts; i++ {
		id, err := a.randomID()
		if err != nil {
			return "", domain.WrapError(err, errcodes.InternalServerError, "failed to read random source")
		}

		if !taken(id) {
			return id, nil
		}
	}

	return "", domain.NewError(errcodes.AllocationExhausted, "failed to allocate unique deal id")
}

func (a *Allocator) randomID() (string, error) {
	alphabetLen := big.NewInt(int64(len(idAlphabet)))

	buf := make([]byte, a.length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		buf[i] = idAlphabet[n.Int64()]
	}

	return string(buf), nil
}
