package xml

import (
	"encoding/xml"
	"iter"
	"strings"
)

// NewElement creates a detached element. The prefix is written as-is; uri is
// the namespace the prefix is expected to resolve to once the element is attached.
func NewElement(prefix, local, uri string) *Element {
	return &Element{
		Name: xml.Name{Space: prefix, Local: local},
		URI:  uri,
	}
}

// Parent returns the parent element, or nil for a root or detached element.
func (e *Element) Parent() *Element {
	return e.parent
}

// Is reports whether the element has the given namespace URI and local name.
func (e *Element) Is(uri, local string) bool {
	return e != nil && e.URI == uri && e.Name.Local == local
}

// lookupPrefix resolves a prefix against the xmlns declarations in scope.
func (e *Element) lookupPrefix(prefix string) string {
	switch prefix {
	case "xml":
		return NamespaceXML
	case "xmlns":
		return namespaceXMLNS
	}
	for el := e; el != nil; el = el.parent {
		for _, a := range el.Attr {
			if prefix == "" && a.Name.Space == "" && a.Name.Local == "xmlns" {
				return a.Value
			}
			if prefix != "" && a.Name.Space == "xmlns" && a.Name.Local == prefix {
				return a.Value
			}
		}
	}
	return ""
}

func (e *Element) attrURI(a xml.Attr) string {
	if a.Name.Space == "" {
		// unprefixed attributes are in no namespace
		return ""
	}
	return e.lookupPrefix(a.Name.Space)
}

// AttrValue returns the value of the attribute with the given namespace URI and local name.
func (e *Element) AttrValue(uri, local string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Local == local && e.attrURI(a) == uri {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute by prefix and local name, adding it when missing.
func (e *Element) SetAttr(prefix, local, value string) {
	for i, a := range e.Attr {
		if a.Name.Space == prefix && a.Name.Local == local {
			e.Attr[i].Value = value
			return
		}
	}
	e.Attr = append(e.Attr, xml.Attr{Name: xml.Name{Space: prefix, Local: local}, Value: value})
}

// RemoveAttr removes an attribute by prefix and local name.
func (e *Element) RemoveAttr(prefix, local string) {
	for i, a := range e.Attr {
		if a.Name.Space == prefix && a.Name.Local == local {
			e.Attr = append(e.Attr[:i], e.Attr[i+1:]...)
			return
		}
	}
}

// Elements returns the child elements in order.
func (e *Element) Elements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// Child returns the first child element with the given name, or nil.
func (e *Element) Child(uri, local string) *Element {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Is(uri, local) {
			return el
		}
	}
	return nil
}

// Descendants yields every descendant element with the given name in document order.
func (e *Element) Descendants(uri, local string) iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		e.walk(func(el *Element) bool {
			if el.Is(uri, local) {
				return yield(el)
			}
			return true
		})
	}
}

// walk visits descendants depth first; it stops as soon as fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	for _, c := range e.Children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if !fn(el) || !el.walk(fn) {
			return false
		}
	}
	return true
}

// IndexOf returns the index of n among the children, or -1.
func (e *Element) IndexOf(n Node) int {
	for i, c := range e.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// AppendChild adds n as the last child.
func (e *Element) AppendChild(n Node) {
	e.InsertChild(len(e.Children), n)
}

// InsertChild inserts n before index i.
func (e *Element) InsertChild(i int, n Node) {
	if el, ok := n.(*Element); ok {
		el.parent = e
	}
	e.Children = append(e.Children, nil)
	copy(e.Children[i+1:], e.Children[i:])
	e.Children[i] = n
}

// RemoveChild detaches n from e. It reports whether n was a child.
func (e *Element) RemoveChild(n Node) bool {
	i := e.IndexOf(n)
	if i < 0 {
		return false
	}
	e.Children = append(e.Children[:i], e.Children[i+1:]...)
	if el, ok := n.(*Element); ok {
		el.parent = nil
	}
	return true
}

// Detach removes the element from its parent.
func (e *Element) Detach() bool {
	if e.parent == nil {
		return false
	}
	return e.parent.RemoveChild(e)
}

// Text returns the concatenated character data of the direct children.
func (e *Element) Text() string {
	var sb strings.Builder
	for _, c := range e.Children {
		if cd, ok := c.(CharData); ok {
			sb.WriteString(string(cd))
		}
	}
	return sb.String()
}

// SetText replaces all children with a single character data node.
func (e *Element) SetText(s string) {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			el.parent = nil
		}
	}
	e.Children = e.Children[:0]
	if s != "" {
		e.Children = append(e.Children, CharData(s))
	}
}
