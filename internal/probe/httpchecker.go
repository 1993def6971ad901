package probe

import (
	"context"
	"net/http"
	"time"
)

type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
	}
}

// Check issues a HEAD and falls back to GET when HEAD is not allowed.
// 2xx and 3xx count as up.
func (h *HTTPChecker) Check(ctx context.Context, target string) Result {
	start := time.Now()
	res := h.do(ctx, http.MethodHead, target)
	if res.StatusCode == http.StatusMethodNotAllowed {
		res = h.do(ctx, http.MethodGet, target)
	}
	if res.Reached {
		res.LatencyMS = time.Since(start).Seconds() * 1000
	}
	return res
}

func (h *HTTPChecker) do(ctx context.Context, method, target string) Result {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return Result{Message: err.Error()}
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return Result{Message: err.Error()}
	}
	defer resp.Body.Close()

	return Result{
		Up:         resp.StatusCode >= 200 && resp.StatusCode < 400,
		Reached:    true,
		StatusCode: resp.StatusCode,
		Message:    resp.Status,
	}
}
