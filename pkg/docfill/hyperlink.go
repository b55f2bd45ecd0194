package docfill

import (
	"github.com/applytrack/docfill/pkg/docfill/xml"
)

// HyperlinkInfo describes one external hyperlink of a document.
type HyperlinkInfo struct {
	Part   string `json:"part"`
	RelID  string `json:"rel_id"`
	Target string `json:"target"`
	Text   string `json:"text"`
}

// visitHyperlinks calls fn for every hyperlink with a relationship in every
// story part: body, table cells at any depth, headers, footers.
func visitHyperlinks(doc *Document, fn func(part *Part, h *xml.Hyperlink, rel *xml.Relationship)) {
	for _, part := range doc.StoryParts() {
		c := part.Container()
		if c == nil {
			continue
		}
		for p := range xml.AllParagraphs(c) {
			for _, h := range p.Hyperlinks() {
				id := h.RelationshipID()
				if id == "" {
					continue
				}
				rel := part.Relationships().Find(id)
				if rel == nil {
					WithFields(Fields{"part": part.Name, "id": id}).Debug("hyperlink without relationship")
					continue
				}
				fn(part, h, rel)
			}
		}
	}
}

// Hyperlinks lists the document's hyperlinks in traversal order.
func Hyperlinks(doc *Document) []HyperlinkInfo {
	var out []HyperlinkInfo
	visitHyperlinks(doc, func(part *Part, h *xml.Hyperlink, rel *xml.Relationship) {
		out = append(out, HyperlinkInfo{
			Part:   part.Name,
			RelID:  rel.ID,
			Target: rel.Target,
			Text:   h.Text(),
		})
	})
	return out
}

// RewriteHyperlinks retargets every hyperlink whose target is oldTarget and
// whose display text is exactly oldText. The first text node receives newText
// and the remaining ones are emptied, keeping their runs and formatting. A
// partial text match is left alone. It returns the number of hyperlinks rewritten.
//
// Hyperlinks are checked one after another, so when two share a relationship
// the first rewrite changes the target the second one is compared against.
func RewriteHyperlinks(doc *Document, oldTarget, oldText, newTarget, newText string) int {
	n := 0
	visitHyperlinks(doc, func(part *Part, h *xml.Hyperlink, rel *xml.Relationship) {
		if rel.Target != oldTarget || h.Text() != oldText {
			return
		}
		nodes := h.TextNodes()
		if len(nodes) == 0 {
			return
		}

		rel.Target = newTarget
		part.MarkRelationshipsModified()

		xml.SetTextNode(nodes[0], newText)
		for _, t := range nodes[1:] {
			xml.SetTextNode(t, "")
		}
		part.MarkModified()
		n++
	})
	if n > 0 {
		WithFields(Fields{"target": newTarget, "count": n}).Debug("rewrote hyperlinks")
	}
	return n
}
