package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mymmrac/telego"
	"golang.org/x/sync/errgroup"

	"tg_escrow/internal/config"
	"tg_escrow/internal/domain/service/access"
	"tg_escrow/internal/domain/service/deal"
	"tg_escrow/internal/domain/service/wizard"
	"tg_escrow/internal/infrastructure/dealstore"
	"tg_escrow/internal/infrastructure/notifier"
	"tg_escrow/internal/infrastructure/stats"
	"tg_escrow/internal/server"
	"tg_escrow/internal/transport/bot"
	"tg_escrow/internal/transport/bot/handler"
	"tg_escrow/internal/worker"
	"tg_escrow/pkg/application/modules"
	"tg_escrow/pkg/logx"
	"tg_escrow/pkg/middlewarex"
)

func Run(ctx context.Context, log *slog.Logger) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	// 2. Хранилища
	store := dealstore.New()
	registry := stats.NewRegistry()
	policy := access.NewPolicy(cfg.Bot.AdminID, registry, cfg.Deal.CreateLimit)

	// 3. Telegram
	tgBot, err := telego.NewBot(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	notify := notifier.NewTelegramBot(tgBot, cfg.Bot.LogChatID, cfg.Bot.Manager)

	// 4. Доменные сервисы
	wizardSvc := wizard.New(store, policy, registry, notify)
	dealSvc := deal.NewService(store, registry, notify, notify)

	// 5. Транспорт бота
	commandHandler := handler.New(wizardSvc, dealSvc, policy, registry, notify, cfg.Bot.Username)

	tgTransport, err := bot.New(tgBot, commandHandler)
	if err != nil {
		return fmt.Errorf("bot transport: %w", err)
	}

	// 6. Зачистка просроченных сделок
	sweeper := worker.NewExpirySweeper(store, cfg.Deal.SweepInterval, cfg.Deal.Timeout)
	if err := sweeper.Start(ctx); err != nil {
		return fmt.Errorf("sweeper start: %w", err)
	}
	defer sweeper.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tgTransport.Run(ctx)
	})

	// 7. Ops-API
	opsServer := server.NewServer(
		server.NewDealServer(dealSvc),
		server.NewUserServer(registry, policy),
	)

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), cfg.HTTP.LogFieldMaxLen),
	)
	opsServer.RegisterRoutes(router)

	httpServer := modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}
	httpServer.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:    cfg.HTTP.OpsAddress,
		Handler: router,
	})

	metricServer := modules.MetricServer{ListenAddress: cfg.HTTP.MetricsAddress}
	metricServer.Run(ctx, g)

	probeServer := modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeAddress,
	}
	probeServer.Run(ctx, g)

	log.Info("application started",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)

	return g.Wait()
}
