package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomikata/yomikata/internal/dict"
	"github.com/yomikata/yomikata/internal/morph"
)

// gatedDict is a Lookuper whose completions are released by the test, so
// latency orderings are deterministic.
type gatedDict struct {
	calls chan call
}

type call struct {
	keyword string
	reply   chan result
}

type result struct {
	entries []dict.Entry
	err     error
}

func newGatedDict() *gatedDict {
	return &gatedDict{calls: make(chan call, 8)}
}

func (d *gatedDict) Lookup(ctx context.Context, keyword string) ([]dict.Entry, error) {
	c := call{keyword: keyword, reply: make(chan result)}
	d.calls <- c
	r := <-c.reply
	return r.entries, r.err
}

// next waits for the next lookup call.
func (d *gatedDict) next(t *testing.T) call {
	t.Helper()
	select {
	case c := <-d.calls:
		return c
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for lookup call")
		return call{}
	}
}

func word(surface string) morph.Word {
	return morph.Word{Tokens: []morph.Token{{Surface: surface, POS: morph.POSNoun}}}
}

// waitFor polls the controller until the predicate holds.
func waitFor(t *testing.T, c *Controller, pred func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if snap := c.Current(); pred(snap) {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not reached; last state %+v", c.Current())
	return Snapshot{}
}

func TestController_SelectLoadsEntry(t *testing.T) {
	d := newGatedDict()
	c := New(d, nil)

	snap := c.Select(context.Background(), word("猫"))
	assert.Equal(t, StateLoading, snap.State)
	assert.Equal(t, uint64(1), snap.Generation)

	lookup := d.next(t)
	assert.Equal(t, "猫", lookup.keyword)
	lookup.reply <- result{entries: []dict.Entry{{Slug: "猫"}, {Slug: "猫目"}}}

	final := waitFor(t, c, func(s Snapshot) bool { return s.State == StateLoaded })
	require.NotNil(t, final.Entry)
	assert.Equal(t, "猫", final.Entry.Slug, "first entry wins")
}

func TestController_SelectUsesBaseForm(t *testing.T) {
	d := newGatedDict()
	c := New(d, nil)

	w := morph.Word{Tokens: []morph.Token{
		{Surface: "食べ", BaseForm: "食べる", POS: morph.POSVerb},
		{Surface: "た", POS: morph.POSAuxiliaryVerb},
	}}
	c.Select(context.Background(), w)

	lookup := d.next(t)
	assert.Equal(t, "食べる", lookup.keyword)
	lookup.reply <- result{}
}

func TestController_NoEntriesIsLoadedAbsent(t *testing.T) {
	d := newGatedDict()
	c := New(d, nil)

	c.Select(context.Background(), word("ぬがが"))
	d.next(t).reply <- result{entries: nil}

	final := waitFor(t, c, func(s Snapshot) bool { return s.State == StateLoaded })
	assert.Nil(t, final.Entry)
	assert.NoError(t, final.Err)
}

func TestController_LookupFailure(t *testing.T) {
	d := newGatedDict()
	c := New(d, nil)

	c.Select(context.Background(), word("猫"))
	d.next(t).reply <- result{err: errors.New("connection reset")}

	final := waitFor(t, c, func(s Snapshot) bool { return s.State == StateFailed })
	assert.Error(t, final.Err)

	// A failed lookup never blocks the next selection.
	c.Select(context.Background(), word("犬"))
	d.next(t).reply <- result{entries: []dict.Entry{{Slug: "犬"}}}

	final = waitFor(t, c, func(s Snapshot) bool { return s.State == StateLoaded })
	require.NotNil(t, final.Entry)
	assert.Equal(t, "犬", final.Entry.Slug)
}

// Selecting A (slow) then B (fast) must end in Loaded(B) even though A's
// result arrives last.
func TestController_Supersession(t *testing.T) {
	d := newGatedDict()
	c := New(d, nil)

	c.Select(context.Background(), word("A"))
	lookupA := d.next(t)

	c.Select(context.Background(), word("B"))
	lookupB := d.next(t)

	// B resolves first.
	lookupB.reply <- result{entries: []dict.Entry{{Slug: "B"}}}
	final := waitFor(t, c, func(s Snapshot) bool { return s.State == StateLoaded })
	assert.Equal(t, "B", final.Entry.Slug)
	genB := final.Generation

	// A's late result must be discarded silently.
	lookupA.reply <- result{entries: []dict.Entry{{Slug: "A"}}}
	time.Sleep(20 * time.Millisecond)

	snap := c.Current()
	assert.Equal(t, StateLoaded, snap.State)
	assert.Equal(t, genB, snap.Generation)
	assert.Equal(t, "B", snap.Entry.Slug)
}

func TestController_ClearDiscardsInFlight(t *testing.T) {
	d := newGatedDict()
	c := New(d, nil)

	c.Select(context.Background(), word("猫"))
	lookup := d.next(t)

	c.Clear()
	assert.Equal(t, StateIdle, c.Current().State)

	lookup.reply <- result{entries: []dict.Entry{{Slug: "猫"}}}
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, StateIdle, c.Current().State, "result after Clear must be discarded")
}

func TestController_NotifyFiresOnAppliedTransitions(t *testing.T) {
	d := newGatedDict()
	notified := make(chan Snapshot, 8)
	c := New(d, func(s Snapshot) { notified <- s })

	c.Select(context.Background(), word("A"))
	lookupA := d.next(t)
	c.Select(context.Background(), word("B"))
	lookupB := d.next(t)

	lookupB.reply <- result{entries: []dict.Entry{{Slug: "B"}}}
	select {
	case s := <-notified:
		assert.Equal(t, "B", s.Entry.Slug)
	case <-time.After(time.Second):
		t.Fatal("expected notify for applied transition")
	}

	// Discarded results never notify.
	lookupA.reply <- result{entries: []dict.Entry{{Slug: "A"}}}
	select {
	case s := <-notified:
		t.Fatalf("unexpected notify for stale result: %+v", s)
	case <-time.After(50 * time.Millisecond):
	}
}
