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

	"github.com/hamed0406/uptimetracker/internal/app"
	"github.com/hamed0406/uptimetracker/internal/config"
	"github.com/hamed0406/uptimetracker/internal/httpapi"
	"github.com/hamed0406/uptimetracker/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup_error", zap.Error(err))
		log.Fatal(err)
	}

	web := httpapi.NewServer(logger, a.Session, a.Form, a.Banner)
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: web.Router(httpapi.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			CheckRPM:       cfg.CheckRPM,
			CheckBurst:     cfg.CheckBurst,
			TrustProxy:     cfg.TrustProxy,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		drained := make(chan struct{})
		go func() {
			web.Wait()
			close(drained)
		}()
		select {
		case <-drained:
		case <-shutdownCtx.Done():
			logger.Warn("inflight_checks_abandoned")
		}
		if err := a.Close(shutdownCtx); err != nil {
			logger.Warn("telemetry_shutdown_error", zap.Error(err))
		}
	}()

	logger.Info("web_listen", zap.String("addr", cfg.Addr), zap.String("endpoint", cfg.CheckEndpoint))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	<-stopped
	logger.Info("web_stopped")
}
