package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hamed0406/uptimetracker/internal/config"
	"github.com/hamed0406/uptimetracker/internal/domain"
	"github.com/hamed0406/uptimetracker/internal/session"
)

func TestNew_RequiresEndpoint(t *testing.T) {
	_, err := New(context.Background(), config.Default(), zap.NewNop())
	assert.True(t, errors.Is(err, config.ErrMissingEndpoint))
}

func TestNew_EndToEnd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"region":"us-east","status":"up","responseTime":120},{"region":"eu-west","status":"down","responseTime":null}]`))
	}))
	defer ts.Close()

	cfg := config.Default()
	cfg.CheckEndpoint = ts.URL + "/check"
	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close(context.Background())

	a.Form.UpdateURL("https://example.com")
	out, err := a.Form.Submit(context.Background(), a.Session)
	require.NoError(t, err)
	require.True(t, out.OK(), "outcome: %+v", out)

	snap := a.Session.Snapshot()
	assert.False(t, snap.Loading)
	assert.Len(t, snap.Results, 2)
	assert.Nil(t, a.Banner.Current())
}

func TestNew_FailureRaisesBanner(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	cfg := config.Default()
	cfg.CheckEndpoint = ts.URL
	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	out := a.Session.RunCheck(context.Background(), domain.CheckRequest{URL: "https://example.com"})
	require.Error(t, out.Err)

	n := a.Banner.Current()
	require.NotNil(t, n)
	assert.Equal(t, session.FailureMessage, n.Text)
}
