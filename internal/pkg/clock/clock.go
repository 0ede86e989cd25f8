// Package clock abstracts the wall clock so snapshot timestamps are testable
package clock

import (
	"sync"
	"time"
)

//go:generate mockgen -destination=mock/mock_clock.go -package=clockmock github.com/KirkDiggler/rpg-progression/internal/pkg/clock Clock

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// New returns the system clock in UTC
func New() Clock {
	return systemClock{}
}

// Fixed is a manually driven clock
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed returns a clock frozen at t
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

// Now returns the frozen time
func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
