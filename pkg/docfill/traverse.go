package docfill

import (
	"slices"
	"strings"

	"github.com/applytrack/docfill/pkg/docfill/xml"
)

// Inventory accumulates the placeholders found in a document, mapping each
// token to its current value.
type Inventory map[string]string

// HarvestValue is the value a freshly found token starts with: the inner text
// for [[...]] tokens, empty for {{...}} tokens.
func HarvestValue(token string) string {
	if strings.HasPrefix(token, defaultOpen) && strings.HasSuffix(token, defaultClose) && len(token) >= 4 {
		return token[2 : len(token)-2]
	}
	return ""
}

// Add records token. A token seen before keeps its value unless that value is empty.
func (inv Inventory) Add(token string) {
	if prev, ok := inv[token]; ok && prev != "" {
		return
	}
	inv[token] = HarvestValue(token)
}

// Fill copies values from snap into every token whose value is empty and
// returns how many were filled.
func (inv Inventory) Fill(snap Snapshot) int {
	filled := 0
	for token, value := range inv {
		if value != "" {
			continue
		}
		if prev := snap[token]; prev != "" {
			inv[token] = prev
			filled++
		}
	}
	return filled
}

// Merge overwrites inventory values with values, ignoring tokens the
// inventory does not contain. It returns the tokens it ignored.
func (inv Inventory) Merge(values map[string]string) []string {
	var unknown []string
	for token, value := range values {
		if _, ok := inv[token]; !ok {
			unknown = append(unknown, token)
			continue
		}
		inv[token] = value
	}
	slices.Sort(unknown)
	return unknown
}

// Tokens returns the tokens in sorted order.
func (inv Inventory) Tokens() []string {
	tokens := make([]string, 0, len(inv))
	for token := range inv {
		tokens = append(tokens, token)
	}
	slices.Sort(tokens)
	return tokens
}

// Fields parses every token with parse and returns the fields sorted by token.
// Tokens that fail to parse are left out and reported together in the error.
func (inv Inventory) Fields(parse func(string) (FieldData, error)) ([]FieldData, error) {
	if parse == nil {
		parse = Parse
	}
	errs := NewMultiError()
	fields := make([]FieldData, 0, len(inv))
	for _, token := range inv.Tokens() {
		f, err := parse(token)
		if err != nil {
			errs.Add(err)
			continue
		}
		fields = append(fields, f)
	}
	return fields, errs.Err()
}

// HarvestParagraph adds the tokens of one paragraph to inv.
func HarvestParagraph(p *xml.Paragraph, inv Inventory) {
	for m := range Scan(p.Text()) {
		inv.Add(m.Token)
	}
}

// HarvestContainer adds the tokens of every paragraph in c, table cells included.
func HarvestContainer(c xml.Container, inv Inventory) {
	for p := range xml.AllParagraphs(c) {
		HarvestParagraph(p, inv)
	}
}

// Harvest collects the placeholders of doc into inv, creating it when nil.
// Headers are visited first, then footers, then the body.
func Harvest(doc *Document, inv Inventory) Inventory {
	if inv == nil {
		inv = make(Inventory)
	}
	for _, part := range doc.HeaderParts() {
		HarvestContainer(part.Container(), inv)
	}
	for _, part := range doc.FooterParts() {
		HarvestContainer(part.Container(), inv)
	}
	HarvestContainer(doc.Body(), inv)
	return inv
}

// ReplaceContainer replaces placeholders in every paragraph of c and returns
// the number of replacements.
func ReplaceContainer(c xml.Container, values map[string]string) int {
	n := 0
	for p := range xml.AllParagraphs(c) {
		n += ReplaceInParagraph(p, values)
	}
	return n
}

// Replace substitutes values into the body, then headers and footers, and
// returns the number of placeholders replaced. Parts that changed are marked
// for rewriting on save.
func Replace(doc *Document, values map[string]string) int {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, part := range doc.StoryParts() {
		n := ReplaceContainer(part.Container(), values)
		if n > 0 {
			part.MarkModified()
			WithFields(Fields{"part": part.Name, "count": n}).Debug("replaced placeholders")
		}
		total += n
	}
	return total
}
