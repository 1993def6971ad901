// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hamed0406/uptimetracker/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fail(err.Error())
	}

	if err := cfg.Validate(); err != nil {
		fail(err.Error())
	}
	ok("CHECK_ENDPOINT=" + cfg.CheckEndpoint)

	if cfg.CheckTimeout == 0 {
		warn("CHECK_TIMEOUT_MS unset; a hung checking service keeps the page busy until it answers.")
	} else {
		ok("CHECK_TIMEOUT_MS=" + cfg.CheckTimeout.String())
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		fail("LOG_DIR not writable: " + err.Error())
	}
	probe := filepath.Join(cfg.LogDir, ".preflight")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		fail("LOG_DIR not writable: " + err.Error())
	}
	_ = os.Remove(probe)
	ok("LOG_DIR=" + cfg.LogDir)

	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			warn("ALLOWED_ORIGINS allows any origin for /api.")
		}
		if strings.Contains(o, " ") {
			warn("ALLOWED_ORIGINS contains spaces; use comma-separated with no spaces, e.g. https://a,https://b")
		}
	}

	if cfg.TrustProxy {
		warn("TRUST_PROXY=true; only enable behind a proxy that overwrites X-Forwarded-For.")
	}

	if cfg.CheckRPM == 0 {
		warn("CHECK_RPM=0 disables submission rate limiting.")
	}

	if cfg.SlackWebhook == "" {
		warn("NOTIFY_SLACK_WEBHOOK empty; failures are only shown in the page banner and logs.")
	} else {
		ok("NOTIFY_SLACK_WEBHOOK present")
	}

	if cfg.OTLPEndpoint == "" {
		warn("OTEL_EXPORTER_OTLP_ENDPOINT empty; tracing disabled.")
	} else {
		ok("OTEL_EXPORTER_OTLP_ENDPOINT=" + cfg.OTLPEndpoint)
	}

	ok("preflight passed")
}
