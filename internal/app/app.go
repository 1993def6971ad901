// Package app assembles the client core shared by every front end.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamed0406/uptimetracker/internal/checkclient"
	"github.com/hamed0406/uptimetracker/internal/config"
	"github.com/hamed0406/uptimetracker/internal/form"
	"github.com/hamed0406/uptimetracker/internal/notify"
	"github.com/hamed0406/uptimetracker/internal/session"
	"github.com/hamed0406/uptimetracker/internal/telemetry"
)

type App struct {
	Session *session.Orchestrator
	Form    *form.Form
	Banner  *notify.Banner

	shutdown telemetry.Shutdown
}

// New validates cfg and wires client, notifiers and orchestrator.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tp, shutdown, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	banner := notify.NewBanner()
	notifiers := notify.Multi{banner}
	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		notifiers = append(notifiers, slack)
	}

	client := checkclient.New(cfg.CheckEndpoint, cfg.CheckTimeout, tp)
	return &App{
		Session:  session.New(logger, client, notifiers),
		Form:     form.New(),
		Banner:   banner,
		shutdown: shutdown,
	}, nil
}

// Close flushes pending traces.
func (a *App) Close(ctx context.Context) error {
	return a.shutdown(ctx)
}
