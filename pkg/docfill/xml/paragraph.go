package xml

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// inlineWrappers are paragraph-level elements whose runs still belong to the
// paragraph's visible text.
var inlineWrappers = map[string]bool{
	"hyperlink":  true,
	"smartTag":   true,
	"ins":        true,
	"fldSimple":  true,
	"sdt":        true,
	"sdtContent": true,
	"customXml":  true,
	"dir":        true,
	"bdo":        true,
}

// Paragraph wraps a w:p element
type Paragraph struct {
	el *Element
}

// NewParagraph wraps an existing w:p element.
func NewParagraph(el *Element) *Paragraph {
	return &Paragraph{el: el}
}

// Element returns the underlying w:p element.
func (p *Paragraph) Element() *Element { return p.el }

// Runs returns the paragraph's runs in document order, including runs nested in
// hyperlinks, smart tags, insertions, simple fields and inline content controls.
// Deleted text (w:del) is not part of the visible text and is skipped.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	collectRuns(p.el, &runs)
	return runs
}

func collectRuns(el *Element, runs *[]*Run) {
	for _, c := range el.Elements() {
		if c.URI != NamespaceW {
			continue
		}
		switch {
		case c.Name.Local == "r":
			*runs = append(*runs, &Run{el: c})
		case inlineWrappers[c.Name.Local]:
			collectRuns(c, runs)
		}
	}
}

// Text returns the paragraph's logical text: the concatenation of its run texts.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// Hyperlinks returns every w:hyperlink inside the paragraph.
func (p *Paragraph) Hyperlinks() []*Hyperlink {
	var out []*Hyperlink
	for el := range p.el.Descendants(NamespaceW, "hyperlink") {
		out = append(out, &Hyperlink{el: el})
	}
	return out
}

// Hyperlink wraps a w:hyperlink element
type Hyperlink struct {
	el *Element
}

// Element returns the underlying w:hyperlink element.
func (h *Hyperlink) Element() *Element { return h.el }

// RelationshipID returns the r:id attribute; internal anchors have none.
func (h *Hyperlink) RelationshipID() string {
	id, _ := h.el.AttrValue(NamespaceR, "id")
	return id
}

// TextNodes returns the first w:t of every run under the hyperlink.
// A hyperlink's display text may be split over several runs.
func (h *Hyperlink) TextNodes() []*Element {
	var nodes []*Element
	for run := range h.el.Descendants(NamespaceW, "r") {
		for t := range run.Descendants(NamespaceW, "t") {
			nodes = append(nodes, t)
			break
		}
	}
	return nodes
}

// Text returns the concatenated content of TextNodes.
func (h *Hyperlink) Text() string {
	var sb strings.Builder
	for _, t := range h.TextNodes() {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

// SetTextNode sets the content of a w:t element, marking whitespace as significant when needed.
func SetTextNode(t *Element, s string) {
	t.SetText(s)
	if needsPreserve(s) {
		t.SetAttr("xml", "space", "preserve")
	}
}

func needsPreserve(s string) bool {
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(first) || unicode.IsSpace(last)
}
