package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tg_escrow/internal/domain/entity"
	"tg_escrow/internal/infrastructure/dealstore"
	"tg_escrow/internal/worker"
)

func createDeal(t *testing.T, store *dealstore.Store, age time.Duration) entity.Deal {
	t.Helper()

	d, err := store.Create(entity.DealDraft{
		SellerID:       101,
		SellerUsername: "seller",
		Item:           "Gift Card",
		Currency:       entity.CurrencyRub,
		Price:          500,
		Requisites:     "2200 7001 2345 6789",
	})
	require.NoError(t, err)

	if age > 0 {
		d, err = store.Mutate(d.ID, func(deal *entity.Deal) {
			deal.CreatedAt = deal.CreatedAt.Add(-age)
		})
		require.NoError(t, err)
	}

	return d
}

func TestSweepOnce(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := dealstore.New()
	sweeper := worker.NewExpirySweeper(store, 5*time.Minute, time.Hour)

	stale := createDeal(t, store, 2*time.Hour)
	fresh := createDeal(t, store, 0)

	// Оплаченная сделка любого возраста переживает зачистку.
	settled := createDeal(t, store, 2*time.Hour)
	_, err := store.Mutate(settled.ID, func(d *entity.Deal) {
		d.Status = entity.DealSettled
	})
	rq.NoError(err)

	rq.Equal(1, sweeper.SweepOnce(ctx))

	_, ok := store.Get(stale.ID)
	rq.False(ok)
	_, ok = store.Get(fresh.ID)
	rq.True(ok)

	got, ok := store.Get(settled.ID)
	rq.True(ok)
	rq.Equal(entity.DealSettled, got.Status)

	// Повторный проход ничего не находит.
	rq.Equal(0, sweeper.SweepOnce(ctx))
}

func TestSweeperStartStop(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := dealstore.New()
	sweeper := worker.NewExpirySweeper(store, 10*time.Millisecond, time.Hour)

	rq.False(sweeper.IsRunning())
	rq.NoError(sweeper.Start(ctx))
	rq.True(sweeper.IsRunning())

	rq.Error(sweeper.Start(ctx), "double start must fail")

	sweeper.Stop()
	rq.False(sweeper.IsRunning())

	// Повторный Stop безопасен.
	sweeper.Stop()
}

func TestSweeperEvictsInBackground(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := dealstore.New()
	sweeper := worker.NewExpirySweeper(store, 10*time.Millisecond, time.Hour)

	stale := createDeal(t, store, 2*time.Hour)

	rq.NoError(sweeper.Start(ctx))
	defer sweeper.Stop()

	rq.Eventually(func() bool {
		_, ok := store.Get(stale.ID)
		return !ok
	}, time.Second, 10*time.Millisecond)
}
