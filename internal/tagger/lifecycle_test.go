package tagger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yomikata/yomikata/internal/morph"
)

// fakeTagger satisfies Tagger for lifecycle tests.
type fakeTagger struct{}

func (fakeTagger) Tokenize(string) ([]morph.Token, error) { return nil, nil }

func TestLifecycle_LoadSuccess(t *testing.T) {
	lc := NewLifecycle(func() (Tagger, error) {
		return fakeTagger{}, nil
	}, time.Second)

	if got := lc.State(); got != StateIdle {
		t.Fatalf("initial state = %v, want idle", got)
	}

	if err := lc.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if got := lc.State(); got != StateReady {
		t.Fatalf("state after load = %v, want ready", got)
	}

	tg, err := lc.Tokenizer()
	if err != nil {
		t.Fatalf("Tokenizer() = %v", err)
	}
	if tg == nil {
		t.Fatal("Tokenizer() returned nil tagger")
	}

	// A second Load on a ready lifecycle is a no-op.
	if err := lc.Load(context.Background()); err != nil {
		t.Fatalf("second Load() = %v", err)
	}
}

func TestLifecycle_TokenizerBeforeLoad(t *testing.T) {
	built := false
	lc := NewLifecycle(func() (Tagger, error) {
		built = true
		return fakeTagger{}, nil
	}, time.Second)

	_, err := lc.Tokenizer()
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("Tokenizer() before load = %v, want ErrNotReady", err)
	}
	if built {
		t.Fatal("build func invoked without Load")
	}
}

func TestLifecycle_LoadTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	lc := NewLifecycle(func() (Tagger, error) {
		<-release
		return fakeTagger{}, nil
	}, 20*time.Millisecond)

	err := lc.Load(context.Background())
	if !errors.Is(err, ErrLoadTimeout) {
		t.Fatalf("Load() = %v, want ErrLoadTimeout", err)
	}
	if got := lc.State(); got != StateFailed {
		t.Fatalf("state after timeout = %v, want failed", got)
	}

	_, err = lc.Tokenizer()
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("Tokenizer() after timeout = %v, want ErrNotReady", err)
	}
	if !errors.Is(err, ErrLoadTimeout) {
		t.Fatalf("Tokenizer() error should carry the load failure, got %v", err)
	}
}

func TestLifecycle_LoadFailureAndRetry(t *testing.T) {
	buildErr := errors.New("dictionary corrupt")
	attempts := 0
	lc := NewLifecycle(func() (Tagger, error) {
		attempts++
		if attempts == 1 {
			return nil, buildErr
		}
		return fakeTagger{}, nil
	}, time.Second)

	err := lc.Load(context.Background())
	if !errors.Is(err, buildErr) {
		t.Fatalf("Load() = %v, want wrapped build error", err)
	}
	if got := lc.State(); got != StateFailed {
		t.Fatalf("state after failure = %v, want failed", got)
	}

	// Failure is retriable.
	if err := lc.Load(context.Background()); err != nil {
		t.Fatalf("retry Load() = %v", err)
	}
	if got := lc.State(); got != StateReady {
		t.Fatalf("state after retry = %v, want ready", got)
	}
}

func TestLifecycle_ConcurrentLoad(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	lc := NewLifecycle(func() (Tagger, error) {
		close(started)
		<-release
		return fakeTagger{}, nil
	}, time.Second)

	done := make(chan error, 1)
	go func() { done <- lc.Load(context.Background()) }()

	<-started
	if err := lc.Load(context.Background()); !errors.Is(err, ErrLoadInProgress) {
		t.Fatalf("concurrent Load() = %v, want ErrLoadInProgress", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Load() = %v", err)
	}
}

func TestFromFeatures(t *testing.T) {
	full := fromFeatures("食べ", []string{
		"動詞", "自立", "*", "*", "一段", "連用形", "食べる", "タベ", "タベ",
	})
	want := morph.Token{
		Surface:        "食べ",
		Reading:        "タベ",
		POS:            morph.POSVerb,
		Detail1:        morph.DetailOther, // 自立 is not a merge-relevant tag
		ConjugatedType: "一段",
		ConjugatedForm: "連用形",
		BaseForm:       "食べる",
	}
	if full != want {
		t.Errorf("fromFeatures() = %+v, want %+v", full, want)
	}

	// Unknown words carry a short feature vector; everything beyond the
	// POS stays empty and the reading falls back to the surface.
	short := fromFeatures("ABC", []string{"名詞", "固有名詞"})
	if short.POS != morph.POSNoun || short.Reading != "" || short.BaseForm != "" {
		t.Errorf("fromFeatures() short vector = %+v", short)
	}
	if got := short.EffectiveReading(); got != "ABC" {
		t.Errorf("EffectiveReading() = %q, want ABC", got)
	}
}
