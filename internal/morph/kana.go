package morph

// Katakana letters ァ..ヶ sit exactly 0x60 above their hiragana
// counterparts. The prolonged sound mark ー and middle dot have no
// hiragana form and pass through.
const kanaOffset = 0x60

// ToHiragana converts katakana letters to hiragana, leaving everything
// else untouched. Tagger readings are katakana; furigana is shown in
// hiragana.
func ToHiragana(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'ァ' && r <= 'ヶ' {
			r -= kanaOffset
		}
		out = append(out, r)
	}
	return string(out)
}
