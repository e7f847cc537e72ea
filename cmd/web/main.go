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

	"go.uber.org/zap"

	"github.com/anns25/stayhub-web/internal/web/config"
	"github.com/anns25/stayhub-web/internal/web/httpserver"
	"github.com/anns25/stayhub-web/internal/web/i18n"
	"github.com/anns25/stayhub-web/internal/web/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("environment", cfg.Environment))

	bundle, err := i18n.LoadEmbedded(cfg.Pages.DefaultLanguage, cfg.Pages.Languages)
	if err != nil {
		logger.Fatal("load locales", zap.Error(err))
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:          cfg.Server.Address,
		BasePath:         cfg.Server.BasePath,
		AuthEndpoint:     cfg.Pages.AuthEndpoint,
		Theme:            cfg.Pages.Theme,
		Backdrop:         cfg.Pages.Backdrop,
		CSRFCookieName:   cfg.CSRF.CookieName,
		CSRFCookieSecure: cfg.CSRF.CookieSecure,
		CSRFHeaderName:   cfg.CSRF.HeaderName,
		ReadTimeout:      cfg.Server.ReadTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
		IdleTimeout:      cfg.Server.IdleTimeout,
		Logger:           logger,
		Bundle:           bundle,
		Metrics:          observability.NewMetrics(),
	})
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("web server listening",
		zap.String("addr", cfg.Server.Address),
		zap.String("base_path", cfg.Server.BasePath),
		zap.Strings("languages", bundle.Supported()),
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		cancel()
		stop()
		os.Exit(1)
	}
	logger.Info("web server stopped")
}
