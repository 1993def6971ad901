package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hamed0406/uptimetracker/internal/app"
	"github.com/hamed0406/uptimetracker/internal/config"
	"github.com/hamed0406/uptimetracker/internal/form"
	"github.com/hamed0406/uptimetracker/internal/logging"
	"github.com/hamed0406/uptimetracker/internal/render"
	"github.com/hamed0406/uptimetracker/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Sync()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer a.Close(ctx)

	var raw string
	if len(os.Args) > 1 {
		raw = os.Args[1]
	} else {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Enter a site URL to check (e.g., https://example.com): ")
		raw, _ = reader.ReadString('\n')
	}
	raw = strings.TrimSpace(raw)
	if raw != "" && !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	a.Form.UpdateURL(raw)
	fmt.Println("Checking uptime...")
	out, err := a.Form.Submit(ctx, a.Session)
	if err != nil {
		fmt.Fprintln(os.Stderr, form.Message(err))
		return 1
	}
	if out.Err != nil {
		fmt.Fprintln(os.Stderr, session.FailureMessage)
		return 1
	}
	if err := render.Text(os.Stdout, out.Results); err != nil {
		return 1
	}
	return 0
}
