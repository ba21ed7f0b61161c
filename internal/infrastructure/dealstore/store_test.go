package dealstore_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tg_escrow/internal/domain"
	"tg_escrow/internal/domain/entity"
	"tg_escrow/internal/infrastructure/dealstore"
	"tg_escrow/pkg/errcodes"
)

func testParams(item string) entity.DealDraft {
	return entity.DealDraft{
		SellerID:       101,
		SellerUsername: "seller",
		Item:           item,
		Currency:       entity.CurrencyStars,
		Price:          500,
		Requisites:     "@seller_wallet",
	}
}

func TestStoreCreate(t *testing.T) {
	rq := require.New(t)

	store := dealstore.New()

	deal, err := store.Create(testParams("Gift Card"))
	rq.NoError(err)
	rq.Len(deal.ID, 8)
	rq.Equal(entity.DealOpen, deal.Status)
	rq.Equal("Gift Card", deal.Item)
	rq.Equal(int64(500), deal.Price)
	rq.False(deal.CreatedAt.IsZero())

	got, ok := store.Get(deal.ID)
	rq.True(ok)
	rq.Equal(deal, got)
}

func TestStoreCreateUniqueIDs(t *testing.T) {
	rq := require.New(t)

	store := dealstore.New()
	seen := make(map[string]struct{})

	for i := 0; i < 500; i++ {
		deal, err := store.Create(testParams("Gift Card"))
		rq.NoError(err)

		_, dup := seen[deal.ID]
		rq.False(dup, "duplicate id %s", deal.ID)
		seen[deal.ID] = struct{}{}
	}
}

func TestStoreGetAbsent(t *testing.T) {
	rq := require.New(t)

	store := dealstore.New()

	_, ok := store.Get("NOSUCHID")
	rq.False(ok)
}

func TestStoreMutate(t *testing.T) {
	rq := require.New(t)

	store := dealstore.New()

	deal, err := store.Create(testParams("Gift Card"))
	rq.NoError(err)

	updated, err := store.Mutate(deal.ID, func(d *entity.Deal) {
		d.Status = entity.DealClaimed
		d.BuyerID = 202
	})
	rq.NoError(err)
	rq.Equal(entity.DealClaimed, updated.Status)
	rq.Equal(int64(202), updated.BuyerID)

	got, ok := store.Get(deal.ID)
	rq.True(ok)
	rq.Equal(updated, got)
}

func TestStoreMutateNotFound(t *testing.T) {
	rq := require.New(t)

	store := dealstore.New()

	_, err := store.Mutate("NOSUCHID", func(*entity.Deal) {})
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.DealNotFound))
}

func TestStoreListOpenOrderAndFilter(t *testing.T) {
	rq := require.New(t)

	store := dealstore.New()

	first, err := store.Create(testParams("First"))
	rq.NoError(err)
	second, err := store.Create(testParams("Second"))
	rq.NoError(err)
	third, err := store.Create(testParams("Third"))
	rq.NoError(err)

	_, err = store.Mutate(second.ID, func(d *entity.Deal) {
		d.Status = entity.DealSettled
	})
	rq.NoError(err)

	open := store.ListOpen()
	rq.Len(open, 2)
	rq.Equal(first.ID, open[0].ID)
	rq.Equal(third.ID, open[1].ID)
}

func TestStoreDelete(t *testing.T) {
	rq := require.New(t)

	store := dealstore.New()

	deal, err := store.Create(testParams("Gift Card"))
	rq.NoError(err)

	rq.True(store.Delete(deal.ID))
	rq.False(store.Delete(deal.ID))

	_, ok := store.Get(deal.ID)
	rq.False(ok)
	rq.Empty(store.ListOpen())
}

func TestStoreDeleteExpired(t *testing.T) {
	rq := require.New(t)

	store := dealstore.New()

	stale, err := store.Create(testParams("Stale"))
	rq.NoError(err)
	settled, err := store.Create(testParams("Settled"))
	rq.NoError(err)
	fresh, err := store.Create(testParams("Fresh"))
	rq.NoError(err)

	// Состариваем первые две сделки, вторую при этом оплачиваем.
	backdate := func(id string) {
		_, err := store.Mutate(id, func(d *entity.Deal) {
			d.CreatedAt = d.CreatedAt.Add(-2 * time.Hour)
		})
		rq.NoError(err)
	}
	backdate(stale.ID)
	backdate(settled.ID)

	_, err = store.Mutate(settled.ID, func(d *entity.Deal) {
		d.Status = entity.DealSettled
	})
	rq.NoError(err)

	expired := store.DeleteExpired(time.Hour)
	rq.Len(expired, 1)
	rq.Equal(stale.ID, expired[0].ID)

	_, ok := store.Get(stale.ID)
	rq.False(ok)

	// Оплаченная сделка не зачищается независимо от возраста.
	got, ok := store.Get(settled.ID)
	rq.True(ok)
	rq.Equal(entity.DealSettled, got.Status)

	_, ok = store.Get(fresh.ID)
	rq.True(ok)
}

func TestStoreConcurrentAccess(t *testing.T) {
	rq := require.New(t)

	store := dealstore.New()

	const workers = 20
	const perWorker = 25

	ids := make(chan string, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				deal, err := store.Create(testParams("Concurrent"))
				if err != nil {
					t.Error(err)
					return
				}
				ids <- deal.ID

				_, err = store.Mutate(deal.ID, func(d *entity.Deal) {
					d.Status = entity.DealClaimed
				})
				if err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{})
	for id := range ids {
		_, dup := seen[id]
		rq.False(dup)
		seen[id] = struct{}{}
	}
	rq.Equal(workers*perWorker, store.Len())
}
