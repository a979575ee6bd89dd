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

	"frontend-gin/internal/backend"
	"frontend-gin/internal/config"
	"frontend-gin/internal/dashboard"
	"frontend-gin/internal/database"
	"frontend-gin/internal/handlers"
	"frontend-gin/internal/session"
	"frontend-gin/internal/web"
	"frontend-gin/internal/wizard"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	drafts, err := draftStore(cfg)
	if err != nil {
		return err
	}

	catalog, err := dashboard.DefaultCatalog()
	if err != nil {
		return err
	}
	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}

	api := backend.NewClient(cfg.BackendBaseURL, cfg.GatewayBaseURL, cfg.RequestTimeout)
	loader := dashboard.NewLoader(catalog, dashboard.Deps{API: api, Drafts: drafts})
	h := handlers.New(api, session.NewManager(cfg.SessionSecret, cfg.CookieSecure), loader, renderer)

	server := &http.Server{
		Addr:              ":" + cfg.ListenPort,
		Handler:           handlers.SetupRouter(h, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info(fmt.Sprintf("Starting server on port: %s", cfg.ListenPort), "backend", cfg.BackendBaseURL, "drafts", cfg.DraftStore)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func draftStore(cfg *config.Config) (wizard.Store, error) {
	if cfg.DraftStore == config.DraftStoreMemory {
		slog.Warn("wizard drafts are kept in memory and lost on restart")
		return wizard.NewMemoryStore(), nil
	}
	if err := database.InitDB(cfg); err != nil {
		return nil, fmt.Errorf("init draft store: %w", err)
	}
	return database.NewDraftStore(database.DB), nil
}
