package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notice is a pending message shown until dismissed.
type Notice struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Text     string    `json:"text"`
	RaisedAt time.Time `json:"raised_at"`
}

// Banner holds at most one notice. Send never blocks the caller on the user.
type Banner struct {
	mu      sync.RWMutex
	current *Notice
	now     func() time.Time
}

func NewBanner() *Banner {
	return &Banner{now: time.Now}
}

// Send replaces any pending notice.
func (b *Banner) Send(_ context.Context, title, text string) error {
	n := &Notice{
		ID:       uuid.NewString(),
		Title:    title,
		Text:     text,
		RaisedAt: b.now().UTC(),
	}
	b.mu.Lock()
	b.current = n
	b.mu.Unlock()
	return nil
}

// Current returns a copy of the pending notice, or nil.
func (b *Banner) Current() *Notice {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.current == nil {
		return nil
	}
	n := *b.current
	return &n
}

// Dismiss clears the pending notice when id matches it (or id is empty).
// A stale id leaves a newer notice in place.
func (b *Banner) Dismiss(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return false
	}
	if id != "" && b.current.ID != id {
		return false
	}
	b.current = nil
	return true
}
