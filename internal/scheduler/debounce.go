// Package scheduler rate-limits repeated calculations per organization.
package scheduler

import (
	"sync"
	"time"
)

const DefaultInterval = 200 * time.Millisecond

type Outcome int

const (
	// Ran means fn was executed; its error, if any, is returned alongside.
	Ran Outcome = iota
	// Skipped means the request was dropped. Nothing is queued.
	Skipped
)

func (o Outcome) String() string {
	if o == Skipped {
		return "skipped"
	}
	return "ran"
}

type SkipReason string

const (
	InFlight SkipReason = "in flight"
	TooSoon  SkipReason = "too soon"
)

type Result struct {
	Outcome Outcome
	Reason  SkipReason
}

type keyState struct {
	inFlight bool
	lastDone time.Time
}

// Debouncer refuses to start a run for a key while another one is in flight
// or within the interval after the previous run completed.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	now      func() time.Time
	keys     map[string]*keyState
}

type Option func(*Debouncer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Debouncer) {
		d.now = now
	}
}

func New(interval time.Duration, opts ...Option) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	d := &Debouncer{
		interval: interval,
		now:      time.Now,
		keys:     make(map[string]*keyState),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes fn unless the key is busy or debounced. A started run always
// completes; it cannot be cancelled by a later request.
func (d *Debouncer) Run(key string, fn func() error) (Result, error) {
	if reason, ok := d.acquire(key); !ok {
		return Result{Outcome: Skipped, Reason: reason}, nil
	}
	defer d.release(key)

	return Result{Outcome: Ran}, fn()
}

func (d *Debouncer) acquire(key string) (SkipReason, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.keys[key]
	if !ok {
		st = &keyState{}
		d.keys[key] = st
	}
	if st.inFlight {
		return InFlight, false
	}
	if !st.lastDone.IsZero() && d.now().Sub(st.lastDone) < d.interval {
		return TooSoon, false
	}
	st.inFlight = true
	return "", true
}

func (d *Debouncer) release(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := d.keys[key]
	st.inFlight = false
	st.lastDone = d.now()
}

// Interval reports the minimum gap between runs of one key.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}
