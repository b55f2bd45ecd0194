package xml

import (
	"strings"
)

// Run wraps a w:r element
type Run struct {
	el *Element
}

// NewRun wraps an existing w:r element.
func NewRun(el *Element) *Run {
	return &Run{el: el}
}

// Element returns the underlying w:r element.
func (r *Run) Element() *Element { return r.el }

// Properties returns the run's w:rPr element, or nil.
func (r *Run) Properties() *Element {
	return r.el.Child(NamespaceW, "rPr")
}

// textOf returns the text a run child contributes and whether the child is
// text-bearing at all. Page and column breaks are content but not text.
func textOf(el *Element) (string, bool) {
	if el.URI != NamespaceW {
		return "", false
	}
	switch el.Name.Local {
	case "t":
		return el.Text(), true
	case "tab":
		return "\t", true
	case "cr":
		return "\n", true
	case "noBreakHyphen":
		return "-", true
	case "br":
		if typ, ok := el.AttrValue(NamespaceW, "type"); ok && typ != "textWrapping" {
			return "", false
		}
		return "\n", true
	}
	return "", false
}

// Text returns the run's text. Tabs and line breaks map to "\t" and "\n".
func (r *Run) Text() string {
	var sb strings.Builder
	for _, c := range r.el.Elements() {
		if s, ok := textOf(c); ok {
			sb.WriteString(s)
		}
	}
	return sb.String()
}

// SetText replaces the run's text-bearing children with s.
//
// Only w:t, w:tab, w:br, w:cr and w:noBreakHyphen are replaced. The run
// properties and any other content (drawings, field characters, page breaks)
// stay where they are. The new text is inserted where the first text-bearing
// child used to be, or at the end when the run had none.
func (r *Run) SetText(s string) {
	at := -1
	kept := make([]Node, 0, len(r.el.Children))
	for _, c := range r.el.Children {
		if el, ok := c.(*Element); ok {
			if _, isText := textOf(el); isText {
				if at < 0 {
					at = len(kept)
				}
				el.parent = nil
				continue
			}
		}
		kept = append(kept, c)
	}
	r.el.Children = kept
	if at < 0 {
		at = len(kept)
	}

	for i, n := range r.textNodes(s) {
		r.el.InsertChild(at+i, n)
	}
}

// textNodes converts s into w:t, w:tab and w:br elements.
func (r *Run) textNodes(s string) []Node {
	prefix := r.el.Name.Space
	var nodes []Node
	var sb strings.Builder
	flush := func() {
		if sb.Len() == 0 {
			return
		}
		t := NewElement(prefix, "t", NamespaceW)
		SetTextNode(t, sb.String())
		nodes = append(nodes, t)
		sb.Reset()
	}
	for _, ch := range s {
		switch ch {
		case '\t':
			flush()
			nodes = append(nodes, NewElement(prefix, "tab", NamespaceW))
		case '\n':
			flush()
			nodes = append(nodes, NewElement(prefix, "br", NamespaceW))
		default:
			sb.WriteRune(ch)
		}
	}
	flush()
	return nodes
}

// Detach removes the run from whatever element holds it.
func (r *Run) Detach() bool {
	return r.el.Detach()
}

// Attached reports whether the run still has a parent.
func (r *Run) Attached() bool {
	return r.el.parent != nil
}
