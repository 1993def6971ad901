package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/uptimetracker/internal/config"
	"github.com/hamed0406/uptimetracker/internal/devchecker"
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

	svc := devchecker.New(logger.Named("devchecker"), cfg.DevCheckerRegions)
	srv := &http.Server{
		Addr:              cfg.DevCheckerAddr,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("devchecker_listen",
		zap.String("addr", cfg.DevCheckerAddr),
		zap.Strings("regions", cfg.DevCheckerRegions),
	)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
