// Package morph provides core types and logic for Japanese morphological analysis.
package morph

import "strings"

// PartOfSpeech is a closed enumeration over the POS categories the
// grouping rules recognize. Tagger labels outside this set map to POSOther.
type PartOfSpeech string

const (
	POSNoun          PartOfSpeech = "noun"           // 名詞
	POSVerb          PartOfSpeech = "verb"           // 動詞
	POSAuxiliaryVerb PartOfSpeech = "auxiliary_verb" // 助動詞
	POSParticle      PartOfSpeech = "particle"       // 助詞
	POSAdjective     PartOfSpeech = "adjective"      // 形容詞
	POSAdverb        PartOfSpeech = "adverb"         // 副詞
	POSSymbol        PartOfSpeech = "symbol"         // 記号
	POSOther         PartOfSpeech = "other"
)

// POSDetail is a closed enumeration over the sub-POS tags the grouping
// rules reference. Anything else maps to DetailOther.
type POSDetail string

const (
	DetailConjunctiveParticle   POSDetail = "conjunctive_particle"   // 接続助詞
	DetailSentenceFinalParticle POSDetail = "sentence_final_particle" // 終助詞
	DetailNonIndependent        POSDetail = "non_independent"        // 非自立
	DetailSuffix                POSDetail = "suffix"                 // 接尾
	DetailOther                 POSDetail = "other"
	DetailNone                  POSDetail = ""
)

// IPAdic label constants for the tags the parser cares about.
const (
	labelNoun          = "名詞"
	labelVerb          = "動詞"
	labelAuxiliary     = "助動詞"
	labelParticle      = "助詞"
	labelAdjective     = "形容詞"
	labelAdverb        = "副詞"
	labelSymbol        = "記号"
	labelConjParticle  = "接続助詞"
	labelFinalParticle = "終助詞"
	labelNonIndep      = "非自立"
	labelSuffix        = "接尾"
	labelEmpty         = "*"
)

// ParsePOS maps an IPAdic part-of-speech label to the closed enum.
func ParsePOS(label string) PartOfSpeech {
	switch label {
	case labelNoun:
		return POSNoun
	case labelVerb:
		return POSVerb
	case labelAuxiliary:
		return POSAuxiliaryVerb
	case labelParticle:
		return POSParticle
	case labelAdjective:
		return POSAdjective
	case labelAdverb:
		return POSAdverb
	case labelSymbol:
		return POSSymbol
	default:
		return POSOther
	}
}

// ParseDetail maps an IPAdic sub-POS label to the closed enum.
func ParseDetail(label string) POSDetail {
	switch label {
	case labelConjParticle:
		return DetailConjunctiveParticle
	case labelFinalParticle:
		return DetailSentenceFinalParticle
	case labelNonIndep:
		return DetailNonIndependent
	case labelSuffix:
		return DetailSuffix
	case labelEmpty, "":
		return DetailNone
	default:
		return DetailOther
	}
}

// Token is a single tagged morpheme produced by the tagger.
// Immutable once produced.
type Token struct {
	Surface        string       `json:"surface"`
	Reading        string       `json:"reading"`
	POS            PartOfSpeech `json:"pos"`
	Detail1        POSDetail    `json:"detail1,omitempty"`
	Detail2        POSDetail    `json:"detail2,omitempty"`
	Detail3        POSDetail    `json:"detail3,omitempty"`
	ConjugatedType string       `json:"conjugated_type,omitempty"`
	ConjugatedForm string       `json:"conjugated_form,omitempty"`
	BaseForm       string       `json:"base_form,omitempty"`
}

// EffectiveReading returns the token's reading, falling back to the
// surface form when the tagger supplied none.
func (t Token) EffectiveReading() string {
	if t.Reading == "" {
		return t.Surface
	}
	return t.Reading
}

// Word is a non-empty run of contiguous tokens grouped for display and
// dictionary lookup.
type Word struct {
	Tokens []Token `json:"tokens"`
}

// Surface returns the concatenated surface text of the word.
func (w Word) Surface() string {
	var b strings.Builder
	for _, t := range w.Tokens {
		b.WriteString(t.Surface)
	}
	return b.String()
}

// Reading returns the concatenated reading of the word.
func (w Word) Reading() string {
	var b strings.Builder
	for _, t := range w.Tokens {
		b.WriteString(t.EffectiveReading())
	}
	return b.String()
}

// BaseForm returns the dictionary form used as the lookup key: the first
// token's base form, or its surface when the tagger gave no base form.
func (w Word) BaseForm() string {
	if len(w.Tokens) == 0 {
		return ""
	}
	if bf := w.Tokens[0].BaseForm; bf != "" && bf != labelEmpty {
		return bf
	}
	return w.Tokens[0].Surface
}

// Analysis is the result of grouping one token stream.
type Analysis struct {
	Words []Word `json:"words"`
}

// Surface returns the concatenated surface of all words, which always
// equals the concatenated surface of the input tokens.
func (a Analysis) Surface() string {
	var b strings.Builder
	for _, w := range a.Words {
		b.WriteString(w.Surface())
	}
	return b.String()
}
