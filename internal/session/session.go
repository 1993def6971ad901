// Package session owns the check lifecycle: one in-memory state snapshot,
// mutated only by RunCheck.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hamed0406/uptimetracker/internal/domain"
	"github.com/hamed0406/uptimetracker/internal/notify"
)

const (
	FailureTitle   = "Uptime check failed"
	FailureMessage = "Error checking uptime. Please try again."
)

// Checker performs one round trip to the checking service.
type Checker interface {
	Check(ctx context.Context, req domain.CheckRequest) (domain.ResultSet, error)
}

// Snapshot is the UI state. HasResults is false until the first successful check.
type Snapshot struct {
	Loading    bool             `json:"loading"`
	HasResults bool             `json:"has_results"`
	Results    domain.ResultSet `json:"results"`
	Seq        uint64           `json:"seq"`
}

// Outcome is what a single RunCheck produced.
type Outcome struct {
	Seq     uint64
	Results domain.ResultSet
	Err     error
	// Stale is set when a newer submission superseded this one; its
	// response was discarded.
	Stale bool
}

func (o Outcome) OK() bool { return o.Err == nil && !o.Stale }

type Orchestrator struct {
	logger   *zap.Logger
	checker  Checker
	notifier notify.Notifier

	mu      sync.Mutex
	state   Snapshot
	subs    map[int]chan Snapshot
	nextSub int
}

func New(logger *zap.Logger, checker Checker, notifier notify.Notifier) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		logger:   logger,
		checker:  checker,
		notifier: notifier,
		subs:     make(map[int]chan Snapshot),
	}
}

// Snapshot returns the current state. Results is shared; callers must not modify it.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// RunCheck performs one check and applies its outcome. Only the most recent
// submission may change state; older responses are dropped.
func (o *Orchestrator) RunCheck(ctx context.Context, req domain.CheckRequest) Outcome {
	seq := o.begin(req)
	return o.finish(ctx, seq, req)
}

// Start enters the loading state before returning and runs the check in the
// background. The channel receives the outcome once.
func (o *Orchestrator) Start(ctx context.Context, req domain.CheckRequest) <-chan Outcome {
	seq := o.begin(req)
	out := make(chan Outcome, 1)
	go func() {
		out <- o.finish(ctx, seq, req)
	}()
	return out
}

func (o *Orchestrator) begin(req domain.CheckRequest) uint64 {
	o.mu.Lock()
	o.state.Seq++
	seq := o.state.Seq
	o.state.Loading = true
	o.publishLocked()
	o.mu.Unlock()

	o.logger.Info("check_started", zap.Uint64("seq", seq), zap.String("url", req.URL))
	return seq
}

func (o *Orchestrator) finish(ctx context.Context, seq uint64, req domain.CheckRequest) Outcome {
	rs, err := o.checker.Check(ctx, req)

	o.mu.Lock()
	if seq != o.state.Seq {
		o.mu.Unlock()
		o.logger.Info("check_stale",
			zap.Uint64("seq", seq),
			zap.String("url", req.URL),
			zap.Error(err),
		)
		return Outcome{Seq: seq, Err: err, Stale: true}
	}
	o.state.Loading = false
	if err == nil {
		o.state.Results = rs
		o.state.HasResults = true
	}
	o.publishLocked()
	o.mu.Unlock()

	if err != nil {
		o.logger.Error("check_failed",
			zap.Uint64("seq", seq),
			zap.String("url", req.URL),
			zap.Error(err),
		)
		if o.notifier != nil {
			if nerr := o.notifier.Send(ctx, FailureTitle, FailureMessage); nerr != nil {
				o.logger.Warn("notify_error", zap.Error(nerr))
			}
		}
		return Outcome{Seq: seq, Err: err}
	}

	o.logger.Info("check_succeeded",
		zap.Uint64("seq", seq),
		zap.String("url", req.URL),
		zap.Int("regions", len(rs)),
	)
	return Outcome{Seq: seq, Results: rs}
}

// Subscribe delivers every state change. Slow subscribers only see the latest
// snapshot. The returned func unsubscribes and closes the channel.
func (o *Orchestrator) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	o.mu.Lock()
	id := o.nextSub
	o.nextSub++
	o.subs[id] = ch
	o.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
			close(ch)
		})
	}
}

func (o *Orchestrator) publishLocked() {
	for _, ch := range o.subs {
		select {
		case <-ch:
		default:
		}
		ch <- o.state
	}
}
