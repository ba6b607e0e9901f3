// Package selection coordinates the currently selected word with its
// asynchronous dictionary lookup, guaranteeing that only the most recent
// selection's result is ever surfaced.
package selection

import (
	"context"

	"sync"

	"github.com/yomikata/yomikata/internal/dict"
	"github.com/yomikata/yomikata/internal/morph"
)

// State is the lookup outcome state for the current selection.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

// Snapshot is an immutable view of the controller for rendering.
type Snapshot struct {
	State      State
	Generation uint64
	Word       morph.Word
	// Entry is the first dictionary entry, or nil when the lookup
	// succeeded with no entries.
	Entry *dict.Entry
	Err   error
}

// Lookuper is the dictionary collaborator.
type Lookuper interface {
	Lookup(ctx context.Context, keyword string) ([]dict.Entry, error)
}

// Controller owns the current selection and its lookup outcome. Selecting
// a word starts exactly one lookup; a newer selection supersedes older
// in-flight lookups by generation rather than by cancelling them.
type Controller struct {
	dictionary Lookuper
	notify     func(Snapshot)

	mu   sync.Mutex
	gen  uint64
	snap Snapshot
}

// New creates an idle controller. notify, when non-nil, fires after every
// asynchronously applied transition; it is called without the controller
// lock held.
func New(dictionary Lookuper, notify func(Snapshot)) *Controller {
	return &Controller{dictionary: dictionary, notify: notify}
}

// Select makes word the active selection and starts its lookup, keyed on
// the word's base form. It returns the resulting Loading snapshot
// immediately; the completion arrives later through the notify hook or a
// Current poll. Any earlier in-flight lookup keeps running but its result
// will be discarded.
func (c *Controller) Select(ctx context.Context, word morph.Word) Snapshot {
	c.mu.Lock()
	c.gen++
	c.snap = Snapshot{State: StateLoading, Generation: c.gen, Word: word}
	snap := c.snap
	c.mu.Unlock()

	go c.lookup(ctx, snap.Generation, word)

	return snap
}

// Clear drops the selection. In-flight lookups are discarded when they
// complete: Idle has no generation to match.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.snap = Snapshot{State: StateIdle}
	c.mu.Unlock()
}

// Current returns the state for the most recently initiated selection.
func (c *Controller) Current() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

func (c *Controller) lookup(ctx context.Context, gen uint64, word morph.Word) {
	entries, err := c.dictionary.Lookup(ctx, word.BaseForm())

	c.mu.Lock()
	// Apply only if this lookup still belongs to the active selection.
	if c.snap.State == StateIdle || gen != c.gen {
		c.mu.Unlock()
		return
	}

	next := Snapshot{Generation: gen, Word: word}
	switch {
	case err != nil:
		next.State = StateFailed
		next.Err = err
	case len(entries) > 0:
		next.State = StateLoaded
		entry := entries[0]
		next.Entry = &entry
	default:
		// Successful lookup with no entries: loaded, definition absent.
		next.State = StateLoaded
	}
	c.snap = next
	notify := c.notify
	c.mu.Unlock()

	if notify != nil {
		notify(next)
	}
}
