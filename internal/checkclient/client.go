// Package checkclient performs the outbound call to the remote checking service.
package checkclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/hamed0406/uptimetracker/internal/domain"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// ErrTransport wraps network-level failures (unreachable, reset, timeout).
var ErrTransport = errors.New("checking service unreachable")

// ErrResponseTooLarge is returned when the body exceeds maxBodyBytes.
var ErrResponseTooLarge = errors.New("checking service response too large")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("checking service returned %s", e.Status)
}

type Client struct {
	Endpoint string
	HTTP     *http.Client
	tracer   oteltrace.Tracer
}

// New builds a client for endpoint. A zero timeout leaves the request
// bounded only by the transport defaults and the caller's context.
func New(endpoint string, timeout time.Duration, tp oteltrace.TracerProvider) *Client {
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return &Client{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: timeout},
		tracer:   tp.Tracer("uptimetracker/checkclient"),
	}
}

// Check posts req to the endpoint and returns the validated result set.
func (c *Client) Check(ctx context.Context, req domain.CheckRequest) (rs domain.ResultSet, err error) {
	ctx, span := c.tracer.Start(ctx, "check_uptime",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(attribute.String("check.url", req.URL)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("check.regions", len(rs)))
		}
		span.End()
	}()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	if len(raw) > maxBodyBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, maxBodyBytes)
	}
	return domain.ParseResultSet(raw)
}
