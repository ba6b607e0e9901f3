// Package tagger manages the morphological tagger and its readiness
// lifecycle. Building the tagger's dictionary is slow, so it happens
// asynchronously exactly once; until it finishes, analysis requests fail
// fast instead of queueing.
package tagger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yomikata/yomikata/internal/morph"
)

// Tagger tokenizes raw text into tagged morphemes.
type Tagger interface {
	Tokenize(text string) ([]morph.Token, error)
}

// State is the lifecycle state of the tagger.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrNotReady is returned when the tagger is requested before a
	// successful Load.
	ErrNotReady = errors.New("tagger not ready")
	// ErrLoadInProgress is returned by Load while another Load is running.
	ErrLoadInProgress = errors.New("tagger load already in progress")
	// ErrLoadTimeout is returned when the tagger does not become ready
	// within the configured bound.
	ErrLoadTimeout = errors.New("tagger load timed out")
)

// DefaultLoadTimeout bounds how long a Load may take.
const DefaultLoadTimeout = 10 * time.Second

// BuildFunc constructs a Tagger. The dictionary build is the slow part.
type BuildFunc func() (Tagger, error)

// Lifecycle owns the tagger instance and its readiness state. All methods
// are safe for concurrent use.
type Lifecycle struct {
	build   BuildFunc
	timeout time.Duration

	mu     sync.Mutex
	state  State
	tagger Tagger
	err    error
}

// NewLifecycle creates an idle lifecycle around build. A non-positive
// timeout falls back to DefaultLoadTimeout.
func NewLifecycle(build BuildFunc, timeout time.Duration) *Lifecycle {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &Lifecycle{build: build, timeout: timeout}
}

// Load builds the tagger, blocking until it is ready, the configured
// timeout elapses, or ctx is cancelled. It is the single initialization
// entry point: a Load on a Ready lifecycle is a no-op, a concurrent Load
// returns ErrLoadInProgress, and a Load after failure retries.
func (l *Lifecycle) Load(ctx context.Context) error {
	l.mu.Lock()
	switch l.state {
	case StateReady:
		l.mu.Unlock()
		return nil
	case StateLoading:
		l.mu.Unlock()
		return ErrLoadInProgress
	}
	l.state = StateLoading
	l.err = nil
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	type result struct {
		tagger Tagger
		err    error
	}
	// Buffered so a late build result never leaks a goroutine.
	ch := make(chan result, 1)
	go func() {
		tg, err := l.build()
		ch <- result{tagger: tg, err: err}
	}()

	select {
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrLoadTimeout
		}
		l.fail(err)
		return err
	case r := <-ch:
		if r.err != nil {
			err := fmt.Errorf("building tagger: %w", r.err)
			l.fail(err)
			return err
		}
		l.mu.Lock()
		l.state = StateReady
		l.tagger = r.tagger
		l.mu.Unlock()
		return nil
	}
}

func (l *Lifecycle) fail(err error) {
	l.mu.Lock()
	l.state = StateFailed
	l.err = err
	l.mu.Unlock()
}

// Tokenizer returns the ready tagger, or ErrNotReady (wrapping the load
// failure, if any) while the tagger is not ready. It never blocks.
func (l *Lifecycle) Tokenizer() (Tagger, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateReady {
		if l.err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotReady, l.err)
		}
		return nil, ErrNotReady
	}
	return l.tagger, nil
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err returns the most recent load failure, or nil.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
