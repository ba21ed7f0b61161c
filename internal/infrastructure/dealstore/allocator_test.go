package dealstore_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"tg_escrow/internal/domain"
	"tg_escrow/internal/infrastructure/dealstore"
	"tg_escrow/pkg/errcodes"
)

func TestAllocatorFormat(t *testing.T) {
	rq := require.New(t)

	allocator := dealstore.NewAllocator()
	idPattern := regexp.MustCompile(`^[0-9A-Z]{8}$`)

	for i := 0; i < 100; i++ {
		id, err := allocator.Allocate(func(string) bool { return false })
		rq.NoError(err)
		rq.Regexp(idPattern, id)
	}
}

func TestAllocatorSkipsTaken(t *testing.T) {
	rq := require.New(t)

	allocator := dealstore.NewAllocator()

	var first string
	id, err := allocator.Allocate(func(candidate string) bool {
		if first == "" {
			first = candidate
			return true
		}
		return false
	})
	rq.NoError(err)
	rq.NotEqual(first, id)
}

func TestAllocatorExhausted(t *testing.T) {
	rq := require.New(t)

	allocator := dealstore.NewAllocator()

	attempts := 0
	_, err := allocator.Allocate(func(string) bool {
		attempts++
		return true
	})
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.AllocationExhausted))
	rq.Equal(50, attempts)
}
