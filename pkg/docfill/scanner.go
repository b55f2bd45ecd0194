package docfill

import (
	"iter"
	"regexp"
)

// placeholderPattern finds both bracket grammars. The inner text may not
// contain the closing delimiter character, so tokens never nest; extra closing
// delimiters after the token are folded into the match.
var placeholderPattern = regexp.MustCompile(`{{([^}]*)}}+|\[\[([^\]]*)\]\]+`)

// Match is one placeholder occurrence. Start and End are byte offsets into the
// scanned text, End exclusive.
type Match struct {
	Start int
	End   int
	Token string
}

// Scan yields the placeholder tokens in text from left to right. Matches never
// overlap. The sequence is lazy and can be ranged over any number of times.
func Scan(text string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		pos := 0
		for pos < len(text) {
			loc := placeholderPattern.FindStringIndex(text[pos:])
			if loc == nil {
				return
			}
			m := Match{Start: pos + loc[0], End: pos + loc[1]}
			m.Token = text[m.Start:m.End]
			if !yield(m) {
				return
			}
			pos = m.End
		}
	}
}

// ScanTokens returns the token texts found in text, in order of appearance.
func ScanTokens(text string) []string {
	var tokens []string
	for m := range Scan(text) {
		tokens = append(tokens, m.Token)
	}
	return tokens
}
