package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/catalogadmin/auth"
	"github.com/princinho/catalogadmin/config"
	"github.com/princinho/catalogadmin/database"
	"github.com/princinho/catalogadmin/router"
	"github.com/princinho/catalogadmin/utils"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogMode, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	if err := stores.EnsureIndexes(ctx); err != nil {
		return err
	}

	tokens, err := utils.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		return err
	}
	authSvc := auth.NewService(stores.Admins, utils.NewPasswordHasher(cfg.BcryptCost), tokens, logger.Named("auth"))

	if err := authSvc.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	images, err := utils.NewImageStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if images == nil {
		logger.Info("image uploads disabled, STORAGE_DRIVER not set")
	}
	if closer, ok := images.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	gin.SetMode(cfg.GinMode)
	logger.Info("allowed origins", zap.Strings("origins", cfg.AllowedOrigins))

	handler := router.New(router.Deps{
		Stores:         stores,
		Auth:           authSvc,
		Tokens:         tokens,
		Images:         images,
		Validator:      utils.NewImageValidator(cfg.Storage.MaxUploadSizeMB),
		AllowedOrigins: cfg.AllowedOrigins,
		Log:            logger.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*database.Stores, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return database.NewMemoryStores(), func() {}, nil
	}

	client, err := database.Connect(ctx, cfg.MongoURI, cfg.DBTimeout)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("connected to mongodb", zap.String("database", cfg.DatabaseName))

	closeFn := func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			logger.Warn("mongo disconnect", zap.Error(err))
		}
	}
	return database.NewMongoStores(client, cfg.DatabaseName, cfg.DBTimeout), closeFn, nil
}
