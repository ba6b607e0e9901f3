package morph

// Group folds a tagged token stream into display words with a single
// left-to-right scan. It is pure and total: any input, including nil,
// produces a valid (possibly nil) word list, and the concatenated
// surfaces of the output always equal the concatenated surfaces of the
// input.
func Group(tokens []Token) []Word {
	if len(tokens) == 0 {
		return nil
	}

	words := make([]Word, 0, len(tokens))
	open := Word{Tokens: make([]Token, 0, 4)}

	for _, tok := range tokens {
		if len(open.Tokens) == 0 || continuesWord(open.Tokens[len(open.Tokens)-1], tok) {
			open.Tokens = append(open.Tokens, tok)
			continue
		}
		words = append(words, open)
		open = Word{Tokens: []Token{tok}}
	}
	words = append(words, open)

	return words
}

// continuesWord reports whether tok belongs to the same display word as
// prev, where prev is the last token of the currently open word — not the
// previous emitted word. The clauses are independent ORs over distinct
// tag combinations, not a priority chain.
func continuesWord(prev, tok Token) bool {
	// 食べ+た, 行か+ない: auxiliary verb trailing a verb.
	if tok.POS == POSAuxiliaryVerb && prev.POS == POSVerb {
		return true
	}
	// Conjunctive (て, ので) and sentence-final (の, よ, ね) particles
	// attach to whatever precedes them.
	if tok.POS == POSParticle &&
		(tok.Detail1 == DetailConjunctiveParticle || tok.Detail1 == DetailSentenceFinalParticle) {
		return true
	}
	// 読み+込む: a non-independent verb continues a verb. Because prev is
	// always the last token of the open word, chains of non-independent
	// verbs keep merging.
	if tok.POS == POSVerb && prev.POS == POSVerb && tok.Detail1 == DetailNonIndependent {
		return true
	}
	// 猫+たち, 私+達: noun suffixes never stand alone.
	if tok.POS == POSNoun && tok.Detail1 == DetailSuffix {
		return true
	}
	return false
}
