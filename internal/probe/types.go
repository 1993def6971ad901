package probe

import "context"

// Result is the outcome of one probe of a target URL.
//
// StatusCode is 0 for transport errors. LatencyMS is only meaningful when
// Reached is true.
type Result struct {
	Up         bool
	Reached    bool
	StatusCode int
	LatencyMS  float64
	Message    string
}

// Checker probes a single target URL.
type Checker interface {
	Check(ctx context.Context, target string) Result
}
