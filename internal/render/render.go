// Package render turns a result set into display lines. Everything here is
// a pure function of its input.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/hamed0406/uptimetracker/internal/domain"
)

const Heading = "Uptime Results:"

// Entry is one result prepared for a template.
type Entry struct {
	Region          string
	Status          string
	ResponseTime    string
	HasResponseTime bool
}

// Line formats one region, e.g. "us-east: up (Response Time: 120 ms)".
// The suffix is omitted when the response time was not measured.
func Line(r domain.RegionResult) string {
	s := r.Region + ": " + r.Status
	if r.ResponseTime != nil {
		s += " (Response Time: " + FormatMillis(*r.ResponseTime) + " ms)"
	}
	return s
}

func Lines(rs domain.ResultSet) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, Line(r))
	}
	return out
}

func Entries(rs domain.ResultSet) []Entry {
	out := make([]Entry, 0, len(rs))
	for _, r := range rs {
		e := Entry{Region: r.Region, Status: r.Status}
		if r.ResponseTime != nil {
			e.ResponseTime = FormatMillis(*r.ResponseTime)
			e.HasResponseTime = true
		}
		out = append(out, e)
	}
	return out
}

// Text writes the heading followed by one line per region.
func Text(w io.Writer, rs domain.ResultSet) error {
	if _, err := fmt.Fprintln(w, Heading); err != nil {
		return err
	}
	for _, l := range Lines(rs) {
		if _, err := fmt.Fprintln(w, "  "+l); err != nil {
			return err
		}
	}
	return nil
}

// FormatMillis prints the shortest exact form: 120, 120.5.
func FormatMillis(ms float64) string {
	return strconv.FormatFloat(ms, 'f', -1, 64)
}
