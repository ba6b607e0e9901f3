package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yomikata/yomikata/internal/morph"
	"github.com/yomikata/yomikata/internal/tagger"
)

// funcTagger adapts a func into a tagger.Tagger.
type funcTagger func(string) ([]morph.Token, error)

func (f funcTagger) Tokenize(text string) ([]morph.Token, error) { return f(text) }

func readyLifecycle(t *testing.T, tg tagger.Tagger) *tagger.Lifecycle {
	t.Helper()
	lc := tagger.NewLifecycle(func() (tagger.Tagger, error) { return tg, nil }, time.Second)
	if err := lc.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	return lc
}

func TestAnalyze(t *testing.T) {
	tokens := []morph.Token{
		{Surface: "食べ", POS: morph.POSVerb},
		{Surface: "た", POS: morph.POSAuxiliaryVerb},
	}
	lc := readyLifecycle(t, funcTagger(func(text string) ([]morph.Token, error) {
		if text != "食べた" {
			t.Errorf("tagger got %q, want trimmed input", text)
		}
		return tokens, nil
	}))

	a := New(lc, nil)
	analysis, err := a.Analyze("  食べた \n")
	if err != nil {
		t.Fatalf("Analyze() = %v", err)
	}
	if len(analysis.Words) != 1 || analysis.Words[0].Surface() != "食べた" {
		t.Errorf("Analyze() words = %+v, want one word 食べた", analysis.Words)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	invoked := false
	lc := readyLifecycle(t, funcTagger(func(string) ([]morph.Token, error) {
		invoked = true
		return nil, nil
	}))

	a := New(lc, nil)
	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := a.Analyze(input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Analyze(%q) = %v, want ErrEmptyInput", input, err)
		}
	}
	if invoked {
		t.Error("tagger invoked for blank input")
	}
}

func TestAnalyze_NotReady(t *testing.T) {
	invoked := false
	lc := tagger.NewLifecycle(func() (tagger.Tagger, error) {
		invoked = true
		return funcTagger(func(string) ([]morph.Token, error) { return nil, nil }), nil
	}, time.Second)

	a := New(lc, nil)
	if _, err := a.Analyze("猫"); !errors.Is(err, tagger.ErrNotReady) {
		t.Fatalf("Analyze() before ready = %v, want ErrNotReady", err)
	}
	if invoked {
		t.Error("tagger built or invoked before Load")
	}
}

func TestAnalyze_TokenizeError(t *testing.T) {
	tokenizeErr := errors.New("lattice explosion")
	lc := readyLifecycle(t, funcTagger(func(string) ([]morph.Token, error) {
		return nil, tokenizeErr
	}))

	a := New(lc, nil)
	_, err := a.Analyze("猫")
	if !errors.Is(err, tokenizeErr) {
		t.Fatalf("Analyze() = %v, want wrapped tokenize error", err)
	}

	// The failure is scoped to that request; the analyzer still works.
	lc2 := readyLifecycle(t, funcTagger(func(string) ([]morph.Token, error) {
		return []morph.Token{{Surface: "猫", POS: morph.POSNoun}}, nil
	}))
	a2 := New(lc2, nil)
	if _, err := a2.Analyze("猫"); err != nil {
		t.Fatalf("subsequent Analyze() = %v", err)
	}
}
