// Package devchecker is a local stand-in for the remote checking service.
// Every configured region is probed from this host, so the numbers are only
// useful for exercising the client end to end.
package devchecker

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hamed0406/uptimetracker/internal/domain"
	"github.com/hamed0406/uptimetracker/internal/form"
	"github.com/hamed0406/uptimetracker/internal/probe"
)

type Service struct {
	Logger   *zap.Logger
	Checker  probe.Checker
	Resolver probe.Resolver
	Regions  []string
	Timeout  time.Duration
}

// New probes from the given regions. Duplicates are dropped since a result
// set may name each region once.
func New(logger *zap.Logger, regions []string) *Service {
	seen := make(map[string]struct{}, len(regions))
	var uniq []string
	for _, r := range regions {
		if _, dup := seen[r]; dup || r == "" {
			continue
		}
		seen[r] = struct{}{}
		uniq = append(uniq, r)
	}
	if len(uniq) == 0 {
		uniq = []string{"local"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Logger:  logger,
		Checker: probe.NewHTTPChecker(10 * time.Second),
		Regions: uniq,
		Timeout: 15 * time.Second,
	}
}

func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Post("/check", s.handleCheck)
	return r
}

func (s *Service) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || form.Validate(req.URL) != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.Timeout)
	defer cancel()

	rs := s.Run(ctx, req.URL)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rs)
}

// Run probes target once per region. Results follow the configured region order.
func (s *Service) Run(ctx context.Context, target string) domain.ResultSet {
	rs := make(domain.ResultSet, len(s.Regions))
	var wg sync.WaitGroup
	for i, region := range s.Regions {
		i, region := i, region
		wg.Add(1)
		go func() {
			defer wg.Done()
			rs[i] = s.probeRegion(ctx, region, target)
		}()
	}
	wg.Wait()
	return rs
}

func (s *Service) probeRegion(ctx context.Context, region, target string) domain.RegionResult {
	out := s.Checker.Check(ctx, target)

	res := domain.RegionResult{Region: region, Status: "down"}
	if out.Up {
		res.Status = "up"
	}
	if out.Reached {
		ms := math.Round(out.LatencyMS)
		res.ResponseTime = &ms
	}

	if !out.Up {
		dns := probe.LookupDNS(ctx, s.Resolver, probe.Host(target))
		s.Logger.Info("dns_check",
			zap.String("region", region),
			zap.String("domain", dns.Domain),
			zap.String("class", dns.Class),
			zap.Strings("nameservers", dns.Nameservers),
			zap.String("resolver_error", dns.ResolverError),
		)
	}

	s.Logger.Info("region_checked",
		zap.String("region", region),
		zap.String("url", target),
		zap.Bool("up", out.Up),
		zap.Int("status", out.StatusCode),
		zap.Float64("latency_ms", out.LatencyMS),
		zap.String("reason", out.Message),
	)
	return res
}
