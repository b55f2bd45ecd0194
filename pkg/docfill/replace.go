package docfill

import (
	"regexp"
	"strings"

	"github.com/applytrack/docfill/pkg/docfill/xml"
)

// RunText is the view of a run the replacer needs. *xml.Run implements it.
type RunText interface {
	Text() string
	SetText(string)
	Detach() bool
}

// escapedText matches author-only annotations such as "|note|" inside a value.
var escapedText = regexp.MustCompile(`\|.*?\|`)

// StripEscaped removes every |...| span from a replacement value and trims the result.
func StripEscaped(value string) string {
	return strings.TrimSpace(escapedText.ReplaceAllString(value, ""))
}

// runSpan locates a match inside the run offset table.
type runSpan struct {
	first, last         int
	startOffset, endOff int
}

// locateRuns finds the runs covering [start, end) of the concatenated text.
// The first run is the one with start < runEnd; the last is the first run with
// end <= runEnd. Offsets are relative to those runs' texts.
func locateRuns(texts []string, start, end int) (runSpan, error) {
	span := runSpan{first: -1, last: -1}
	pos := 0
	for i, t := range texts {
		runEnd := pos + len(t)
		if span.first < 0 && start < runEnd {
			span.first = i
			span.startOffset = start - pos
		}
		if span.last < 0 && end <= runEnd {
			span.last = i
			span.endOff = end - pos
			break
		}
		pos = runEnd
	}
	if span.first < 0 || span.last < 0 {
		return span, errMissingRunMapping
	}
	return span, nil
}

// ReplaceRuns rewrites the placeholders found in the concatenated text of runs
// and returns how many were replaced.
//
// Matches are applied right to left. The offset table is computed once before
// any mutation; because a replacement only changes text at or after its own
// start, every match further left still finds its prefix exactly where the
// table says it is. Applying left to right would shift those offsets.
//
// A match inside one run keeps that run's prefix and suffix around the value.
// A match spanning several runs leaves prefix+value in the first run and only
// the suffix in the last; runs strictly in between are detached when they are
// non-empty. Empty in-between runs stay where they are, and so do the first and
// last runs even when they end up empty.
func ReplaceRuns(runs []RunText, replacements map[string]string) int {
	if len(runs) == 0 || len(replacements) == 0 {
		return 0
	}

	texts := make([]string, len(runs))
	for i, r := range runs {
		texts[i] = r.Text()
	}
	full := strings.Join(texts, "")

	var matches []Match
	for m := range Scan(full) {
		matches = append(matches, m)
	}

	applied := 0
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		value, ok := replacements[m.Token]
		if !ok {
			continue
		}

		span, err := locateRuns(texts, m.Start, m.End)
		if err != nil {
			WithField("token", m.Token).Debug("skipping placeholder: %v", err)
			continue
		}
		value = StripEscaped(value)

		if span.first == span.last {
			r := runs[span.first]
			t := r.Text()
			r.SetText(t[:span.startOffset] + value + t[span.endOff:])
			applied++
			continue
		}

		first := runs[span.first]
		first.SetText(first.Text()[:span.startOffset] + value)

		last := runs[span.last]
		last.SetText(last.Text()[span.endOff:])

		for _, r := range runs[span.first+1 : span.last] {
			if r.Text() != "" {
				r.Detach()
			}
		}
		applied++
	}
	return applied
}

// ReplaceInParagraph applies ReplaceRuns to a paragraph's runs.
func ReplaceInParagraph(p *xml.Paragraph, replacements map[string]string) int {
	runs := p.Runs()
	if len(runs) == 0 {
		return 0
	}
	rt := make([]RunText, len(runs))
	for i, r := range runs {
		rt[i] = r
	}
	return ReplaceRuns(rt, replacements)
}
