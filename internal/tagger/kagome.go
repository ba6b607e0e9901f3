package tagger

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/yomikata/yomikata/internal/morph"
)

// Kagome IPA feature vector layout:
//
//	0: part of speech      4: conjugated type   7: reading
//	1-3: sub-POS details   5: conjugated form   8: pronunciation
//	                       6: base form
const (
	featPOS = iota
	featDetail1
	featDetail2
	featDetail3
	featConjType
	featConjForm
	featBaseForm
	featReading
)

// Kagome is a Tagger backed by the kagome tokenizer with the bundled
// IPA dictionary.
type Kagome struct {
	t *tokenizer.Tokenizer
}

// NewKagome builds the kagome tokenizer. This loads the full IPA
// dictionary and is the slow step the Lifecycle guards.
func NewKagome() (Tagger, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("creating kagome tokenizer: %w", err)
	}
	return &Kagome{t: t}, nil
}

// Tokenize splits text into tagged morphemes.
func (k *Kagome) Tokenize(text string) ([]morph.Token, error) {
	kagomeTokens := k.t.Tokenize(text)

	tokens := make([]morph.Token, 0, len(kagomeTokens))
	for _, kt := range kagomeTokens {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		tokens = append(tokens, fromFeatures(kt.Surface, kt.Features()))
	}
	return tokens, nil
}

// fromFeatures maps one kagome surface + feature vector onto a Token.
// Unknown words carry a short feature vector; missing fields stay empty
// and the reading falls back to the surface at display time.
func fromFeatures(surface string, features []string) morph.Token {
	feat := func(i int) string {
		if i < len(features) && features[i] != "*" {
			return features[i]
		}
		return ""
	}

	return morph.Token{
		Surface:        surface,
		Reading:        feat(featReading),
		POS:            morph.ParsePOS(feat(featPOS)),
		Detail1:        morph.ParseDetail(feat(featDetail1)),
		Detail2:        morph.ParseDetail(feat(featDetail2)),
		Detail3:        morph.ParseDetail(feat(featDetail3)),
		ConjugatedType: feat(featConjType),
		ConjugatedForm: feat(featConjForm),
		BaseForm:       feat(featBaseForm),
	}
}
