// Package form captures the URL draft and turns it into a check request.
package form

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/hamed0406/uptimetracker/internal/domain"
	"github.com/hamed0406/uptimetracker/internal/session"
)

var (
	ErrRequired   = errors.New("url is required")
	ErrInvalidURL = errors.New("url must be an absolute http or https address")
)

// Message is the text an input widget shows for a validation error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRequired):
		return "Please fill out this field."
	default:
		return "Please enter a URL."
	}
}

// Runner starts a check; *session.Orchestrator implements it.
type Runner interface {
	RunCheck(ctx context.Context, req domain.CheckRequest) session.Outcome
}

// Form holds the draft URL. The draft survives submission.
type Form struct {
	mu    sync.RWMutex
	value string
}

func New() *Form { return &Form{} }

// UpdateURL replaces the draft without validating it.
func (f *Form) UpdateURL(v string) {
	f.mu.Lock()
	f.value = v
	f.mu.Unlock()
}

func (f *Form) Value() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// Request validates the draft the way a required URL input does.
func (f *Form) Request() (domain.CheckRequest, error) {
	v := strings.TrimSpace(f.Value())
	if err := Validate(v); err != nil {
		return domain.CheckRequest{}, err
	}
	return domain.CheckRequest{URL: v}, nil
}

// Submit validates and, when valid, hands the request to r.
// Invalid input never reaches the runner.
func (f *Form) Submit(ctx context.Context, r Runner) (session.Outcome, error) {
	req, err := f.Request()
	if err != nil {
		return session.Outcome{}, err
	}
	return r.RunCheck(ctx, req), nil
}

// Validate accepts absolute http(s) URLs with a host.
func Validate(raw string) error {
	if raw == "" {
		return ErrRequired
	}
	if !isValidHTTPURL(raw) {
		return ErrInvalidURL
	}
	return nil
}

func isValidHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Hostname() != ""
}
