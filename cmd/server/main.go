package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmshop/internal/config"
	"github.com/mamadbah2/farmshop/internal/repository/local"
	"github.com/mamadbah2/farmshop/internal/repository/mongodb"
	"github.com/mamadbah2/farmshop/internal/repository/sheets"
	"github.com/mamadbah2/farmshop/internal/scheduler"
	"github.com/mamadbah2/farmshop/internal/server/handlers"
	"github.com/mamadbah2/farmshop/internal/server/router"
	authsvc "github.com/mamadbah2/farmshop/internal/service/auth"
	shopsvc "github.com/mamadbah2/farmshop/internal/service/shop"
	"github.com/mamadbah2/farmshop/internal/service/syncing"
	whatsappsvc "github.com/mamadbah2/farmshop/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/farmshop/pkg/clients/whatsapp"
	"github.com/mamadbah2/farmshop/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// Validate already checked the timezone.
	loc, _ := cfg.Reporting.Location()

	ctx := context.Background()

	store, err := sheets.New(ctx, *cfg, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init remote store", zap.Error(err))
	}
	baseLogger.Info("remote store selected", zap.String("backend", cfg.Store.Backend))

	snapshots, err := local.NewSQLiteRepository(ctx, cfg.Local.DSN, baseLogger.Named("repo.local"))
	if err != nil {
		baseLogger.Fatal("failed to open local store", zap.Error(err))
	}
	defer func() {
		if err := snapshots.Close(); err != nil {
			baseLogger.Error("failed to close local store", zap.Error(err))
		}
	}()

	shop := shopsvc.NewService(
		syncing.NewClient(store, baseLogger.Named("svc.syncing")),
		snapshots,
		shopsvc.Options{Location: loc, DecrementOnSale: cfg.Shop.DecrementStockOnSale},
		baseLogger.Named("svc.shop"),
	)
	shop.Load(ctx)

	auth, err := authsvc.NewService(cfg.Auth, baseLogger.Named("svc.auth"))
	if err != nil {
		baseLogger.Fatal("failed to init auth", zap.Error(err))
	}

	var archive scheduler.Archive
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		archive = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI missing, daily report archive disabled")
	}

	var notifier scheduler.Notifier
	if cfg.WhatsApp.Enabled() {
		notifier = whatsappsvc.NewNotifier(cfg.WhatsApp, whatsappclient.NewClient(cfg.WhatsApp), baseLogger.Named("svc.whatsapp"))
	} else {
		baseLogger.Warn("whatsapp not configured, weekly summary disabled")
	}

	sched := scheduler.NewScheduler(cfg.Reporting, loc, shop, archive, notifier, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	engine := router.New(
		handlers.NewAuthHandler(auth, baseLogger.Named("handlers.auth")),
		handlers.NewShopHandler(shop, baseLogger.Named("handlers.shop")),
		baseLogger.Named("router"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-sigCtx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
