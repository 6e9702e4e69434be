package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boutique-tailoring/config"
	"boutique-tailoring/database"
	"boutique-tailoring/helpers"
	"boutique-tailoring/realtime"
	"boutique-tailoring/repository"
	"boutique-tailoring/routes"
	"boutique-tailoring/services"
	"boutique-tailoring/uploads"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		ran, err := database.MigrateUp(cfg.DB)
		if err != nil {
			return err
		}
		log.Info("migrations checked", slog.Bool("applied", ran))
	}

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	repo := repository.New(db)

	var inbox services.NotificationStore
	if cfg.Mongo.Enabled() {
		client, err := database.MongoConnect(ctx, cfg.Mongo.URI)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		inbox = repository.NewNotificationRepository(database.OpenCollection(client, cfg.Mongo.Database, "notifications"))
		log.Info("notification inbox enabled", slog.String("database", cfg.Mongo.Database))
	} else {
		log.Warn("MONGO_URI not set, notifications are broadcast only")
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	files := uploads.NewStore(cfg.Upload.Dir, uploads.Policy{MaxSize: cfg.Upload.MaxSize, AllowedTypes: cfg.Upload.AllowedTypes})

	hub := realtime.NewHub(log)
	notifications := services.NewNotificationService(hub, inbox, log)
	tokens := helpers.NewTokenMaker(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)

	deps := routes.Dependencies{
		Log:           log,
		Orders:        services.NewOrderService(repo, files.Sub("orders"), notifications, log),
		Purchases:     services.NewPurchaseService(repo, files, log),
		Stores:        services.NewStoreService(repo),
		Masters:       services.NewMasterService(repo, files, log),
		Auth:          services.NewAuthService(repo, tokens),
		Notifications: notifications,
		Hub:           hub,
		UploadDir:     cfg.Upload.Dir,
		AllowOrigins:  cfg.CORS.AllowOrigins,
	}
	if cfg.Auth.Enabled {
		if cfg.Auth.SecretKey == "" {
			return errors.New("SECRET_KEY is required when AUTH_ENABLED is true")
		}
		deps.Tokens = tokens
	} else {
		log.Warn("authentication disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
