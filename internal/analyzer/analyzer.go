// Package analyzer ties the tagger lifecycle and the grouping engine into
// a single sentence-analysis entry point.
package analyzer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yomikata/yomikata/internal/morph"
	"github.com/yomikata/yomikata/internal/tagger"
)

// ErrEmptyInput is returned when the input is empty or blank.
var ErrEmptyInput = errors.New("empty input")

// Analyzer analyzes sentences once the tagger is ready.
type Analyzer struct {
	lifecycle *tagger.Lifecycle
	log       *slog.Logger
}

// New creates an analyzer over the given tagger lifecycle. A nil logger
// falls back to slog.Default.
func New(lifecycle *tagger.Lifecycle, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{lifecycle: lifecycle, log: log}
}

// Analyze tokenizes text and groups the morphemes into display words.
// Blank input returns ErrEmptyInput; requests before the tagger is ready
// fail fast with tagger.ErrNotReady without invoking the tagger. Errors
// are scoped to this request and never corrupt other state.
func (a *Analyzer) Analyze(text string) (morph.Analysis, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return morph.Analysis{}, ErrEmptyInput
	}

	tg, err := a.lifecycle.Tokenizer()
	if err != nil {
		return morph.Analysis{}, err
	}

	tokens, err := tg.Tokenize(trimmed)
	if err != nil {
		return morph.Analysis{}, fmt.Errorf("tokenizing: %w", err)
	}

	words := morph.Group(tokens)
	a.log.Debug("analyzed sentence", "tokens", len(tokens), "words", len(words))

	return morph.Analysis{Words: words}, nil
}
