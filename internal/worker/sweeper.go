package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tg_escrow/internal/domain/entity"
	"tg_escrow/internal/metrics"
	"tg_escrow/pkg/contextx"
	"tg_escrow/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type DealStore interface {
	DeleteExpired(maxAge time.Duration) []entity.Deal
}

// ExpirySweeper периодически вычищает неоплаченные сделки старше
// maxAge. Зачистка — необязательная уборка: claim/settle, успевший
// раньше, выигрывает, потому что фильтр по статусу проверяется в
// реестре в момент удаления, а не здесь.
type ExpirySweeper struct {
	store    DealStore
	interval time.Duration
	maxAge   time.Duration

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewExpirySweeper(store DealStore, interval, maxAge time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		store:    store,
		interval: interval,
		maxAge:   maxAge,
	}
}

func (w *ExpirySweeper) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("sweeper is already running")
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(sweepCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(sweepCtx).Error("sweeper stopped with error", logx.Error(err))
		}
	}()

	return nil
}

func (w *ExpirySweeper) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// IsRunning возвращает текущий статус
func (w *ExpirySweeper) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

func (w *ExpirySweeper) Run(ctx context.Context) error {
	logger(ctx).Info("expiry sweeper started",
		slog.Duration("interval", w.interval),
		slog.Duration("max_age", w.maxAge),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("expiry sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			w.SweepOnce(ctx)
		}
	}
}

// SweepOnce выполняет один проход зачистки и возвращает число
// удалённых сделок.
func (w *ExpirySweeper) SweepOnce(ctx context.Context) int {
	expired := w.store.DeleteExpired(w.maxAge)
	if len(expired) == 0 {
		return 0
	}

	metrics.DealsExpired.Add(float64(len(expired)))

	for _, deal := range expired {
		logger(ctx).Debug("expired deal evicted",
			slog.String(logx.FieldDealID, deal.ID),
			slog.Int64(logx.FieldUserID, deal.SellerID),
			slog.String("status", deal.Status.String()),
		)
	}

	logger(ctx).Info("sweep cycle completed", slog.Int("evicted", len(expired)))

	return len(expired)
}
