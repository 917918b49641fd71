package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"

	docs "journal_server/docs"
	"journal_server/internal/config"
	"journal_server/internal/infra/db"
	"journal_server/internal/infra/httpclient"
	applogger "journal_server/internal/infra/logger"
	"journal_server/internal/infra/repository"
	httptransport "journal_server/internal/transport/http"
	"journal_server/internal/usecase"
)

// @title Trade Journal Server API
// @version 1.0
// @description API for journal trades, strategies, analytics, calendar and dashboard views.
// @BasePath /api/v1

func main() {
	rootCtx := context.Background()

	applogger.Init("info")
	logger := applogger.Logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	applogger.Init(cfg.Logging.Level)
	logger = applogger.Logger
	logger.Info().Str("level", cfg.Logging.Level).Msg("logger initialized")

	docs.SwaggerInfo.Title = "Trade Journal Server API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Description = "API for journal trades, strategies, analytics, calendar and dashboard views."
	docs.SwaggerInfo.BasePath = "/api/v1"

	logger.Info().Str("dsn", maskDSN(cfg.Database.DSN)).Msg("connecting to database")
	gormDB, err := db.Connect(rootCtx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("underlying sql db")
	}
	defer sqlDB.Close()

	if err := db.ApplyMigrations(rootCtx, gormDB); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}
	logger.Info().Msg("migrations applied")

	tradeRepo, err := repository.NewGormTradeRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init trade repository")
	}
	strategyRepo, err := repository.NewGormStrategyRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init strategy repository")
	}

	tradeService, err := usecase.NewTradeService(tradeRepo, strategyRepo)
	if err != nil {
		logger.Fatal().Err(err).Msg("init trade service")
	}
	analyticsService, err := usecase.NewAnalyticsService(tradeRepo)
	if err != nil {
		logger.Fatal().Err(err).Msg("init analytics service")
	}
	calendarService, err := usecase.NewCalendarService(tradeRepo)
	if err != nil {
		logger.Fatal().Err(err).Msg("init calendar service")
	}
	dashboardService, err := usecase.NewDashboardService(tradeRepo)
	if err != nil {
		logger.Fatal().Err(err).Msg("init dashboard service")
	}

	var importService *usecase.ImportService
	if cfg.Feed.URL != "" {
		feed, err := httpclient.NewJournalFeed(cfg.Feed.URL)
		if err != nil {
			logger.Fatal().Err(err).Msg("init journal feed")
		}
		importService, err = usecase.NewImportService(feed, tradeRepo, strategyRepo)
		if err != nil {
			logger.Fatal().Err(err).Msg("init import service")
		}
	}

	logger.Info().Msg("all services initialized")

	var importer httptransport.ImportService
	if importService != nil {
		importer = importService
	}
	router := httptransport.New(tradeService, analyticsService, calendarService, dashboardService, importer)

	if importService != nil {
		logger.Info().Dur("interval", cfg.Scheduler.Interval).Msg("initializing scheduler")
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			logger.Fatal().Err(err).Msg("init scheduler")
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				logger.Error().Err(err).Msg("scheduler shutdown error")
			}
		}()

		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Scheduler.Interval),
			gocron.NewTask(func(ctx context.Context) {
				logger.Info().Msg("scheduled journal import started")
				count, err := importService.Sync(ctx)
				if err != nil && err != usecase.ErrNoTrades {
					logger.Error().Err(err).Msg("scheduled import error")
				} else if err == nil {
					logger.Info().Int("count", count).Msg("scheduled journal import completed")
				}
			}),
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("schedule job")
		}
		scheduler.Start()
		logger.Info().Msg("scheduler started")
	}

	serverErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info().Str("addr", addr).Msg("server listening")
		serverErr <- router.App().Listen(addr)
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal().Err(err).Msg("fiber server error")
		}
	case sig := <-signalCh:
		logger.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.App().ShutdownWithContext(ctx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		logger.Info().Msg("server shutdown complete")
	}
}

func maskDSN(dsn string) string {
	if len(dsn) > 20 {
		return dsn[:10] + "***" + dsn[len(dsn)-10:]
	}
	return "***"
}
