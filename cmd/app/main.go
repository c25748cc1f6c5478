package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"telegram-smm-storefront/internal/application"
	"telegram-smm-storefront/internal/config"
	"telegram-smm-storefront/internal/domain/ports/adapter"
	"telegram-smm-storefront/internal/domain/ports/repository"
	tele "telegram-smm-storefront/internal/infra/adapters/telegram"
	pg "telegram-smm-storefront/internal/infra/db/postgres"
	"telegram-smm-storefront/internal/infra/i18n"
	"telegram-smm-storefront/internal/infra/logging"
	"telegram-smm-storefront/internal/infra/memory"
	"telegram-smm-storefront/internal/infra/metrics"
	red "telegram-smm-storefront/internal/infra/redis"
	"telegram-smm-storefront/internal/infra/web"
	"telegram-smm-storefront/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "developer mode: console logs, noop bot without a token")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	// ---- Session store + rate limiter ----
	var (
		sessions    repository.SessionStore
		rateLimiter *red.RateLimiter
	)
	switch strings.ToLower(cfg.Session.Store) {
	case "memory":
		sessions = memory.NewSessionStore()
		logger.Warn().Msg("using in-memory session store, conversations do not survive restarts")
	default:
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect failed")
		}
		sessions = red.NewSessionStore(redisClient, cfg.Redis.TTL)
		rateLimiter = red.NewRateLimiter(redisClient)
	}

	// ---- Repositories ----
	userRepo := pg.NewPostgresUserRepo(pool)
	packageRepo := pg.NewPostgresPackageRepo(pool)
	orderRepo := pg.NewPostgresOrderRepo(pool)

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, logger)
	catalogUC := usecase.NewCatalogUseCase(packageRepo, logger)
	orderUC := usecase.NewOrderUseCase(orderRepo, logger)
	flowUC := usecase.NewFlowUseCase(
		sessions,
		packageRepo,
		userRepo,
		orderUC,
		usecase.RejectAllCoupons{},
		logger,
	)

	// ---- Presentation ----
	translator, err := i18n.NewTranslator(i18n.LocalesFS, "en")
	if err != nil {
		logger.Fatal().Err(err).Msg("translator init failed")
	}
	presenter := application.NewPresenter(translator)

	// ---- Telegram ----
	var botPort adapter.TelegramBotAdapter
	if cfg.Bot.Token == "" {
		logger.Warn().Msg("no bot token, telegram polling disabled")
		botPort = tele.NewNoopBotAdapter(logger)
	} else {
		botAdapter, err := tele.NewRealBotAdapter(cfg, flowUC, userUC, orderUC, catalogUC, presenter, rateLimiter, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram connect failed")
		}
		botPort = botAdapter
		go func() {
			if err := botAdapter.StartPolling(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("telegram polling stopped")
			}
		}()
	}

	// ---- Admin API + ops endpoints ----
	auth := web.NewAuthManager(cfg.Web.AuthSecret, cfg.Web.AdminUser, cfg.Web.AdminPass, cfg.Web.Secure, 30*time.Minute)
	webServer := web.NewServer(&cfg.Web, auth, orderUC, catalogUC, userUC, botPort, presenter, logger)
	go func() {
		if err := webServer.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("web server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := webServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("web server shutdown failed")
	}
}
