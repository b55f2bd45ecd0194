package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Tree is a parsed XML part: the nodes before the root element (declaration,
// comments), the root itself, and anything trailing it.
type Tree struct {
	Prolog []Node
	Root   *Element
	Epilog []Node
}

// Parse reads an XML part into a lossless tree.
//
// Tokens are read with RawToken so prefixes are kept exactly as written;
// namespace URIs are resolved afterwards from the xmlns attributes in scope.
func Parse(r io.Reader) (*Tree, error) {
	d := xml.NewDecoder(r)
	tree := &Tree{}
	var stack []*Element

	appendNode := func(n Node) {
		switch {
		case len(stack) > 0:
			stack[len(stack)-1].AppendChild(n)
		case tree.Root == nil:
			tree.Prolog = append(tree.Prolog, n)
		default:
			tree.Epilog = append(tree.Epilog, n)
		}
	}

	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, Attr: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) > 0 {
				stack[len(stack)-1].AppendChild(el)
			} else {
				if tree.Root != nil {
					return nil, errors.New("failed to parse xml: multiple root elements")
				}
				tree.Root = el
			}
			el.URI = el.lookupPrefix(el.Name.Space)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("failed to parse xml: unexpected end element %s", qualifiedName(t.Name))
			}
			top := stack[len(stack)-1]
			if top.Name != t.Name {
				return nil, fmt.Errorf("failed to parse xml: element %s closed by %s",
					qualifiedName(top.Name), qualifiedName(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			appendNode(CharData(string(t)))
		case xml.Comment:
			appendNode(Comment(string(t)))
		case xml.ProcInst:
			appendNode(ProcInst{Target: t.Target, Inst: string(t.Inst)})
		case xml.Directive:
			appendNode(Directive(string(t)))
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("failed to parse xml: unclosed element %s", qualifiedName(stack[len(stack)-1].Name))
	}
	if tree.Root == nil {
		return nil, errors.New("failed to parse xml: no root element")
	}
	return tree, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(data []byte) (*Tree, error) {
	return Parse(bytes.NewReader(data))
}

// Bytes serialises the tree.
func (t *Tree) Bytes() []byte {
	var buf bytes.Buffer
	for _, n := range t.Prolog {
		writeNode(&buf, n)
	}
	if t.Root != nil {
		writeNode(&buf, t.Root)
	}
	for _, n := range t.Epilog {
		writeNode(&buf, n)
	}
	return buf.Bytes()
}

// WriteTo implements io.WriterTo.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.Bytes())
	return int64(n), err
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\t", "&#x9;", "\n", "&#xA;", "\r", "&#xD;",
	)
)

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func writeNode(buf *bytes.Buffer, n Node) {
	switch v := n.(type) {
	case *Element:
		name := qualifiedName(v.Name)
		buf.WriteByte('<')
		buf.WriteString(name)
		for _, a := range v.Attr {
			buf.WriteByte(' ')
			buf.WriteString(qualifiedName(a.Name))
			buf.WriteString(`="`)
			attrEscaper.WriteString(buf, a.Value)
			buf.WriteByte('"')
		}
		if len(v.Children) == 0 {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for _, c := range v.Children {
			writeNode(buf, c)
		}
		buf.WriteString("</")
		buf.WriteString(name)
		buf.WriteByte('>')
	case CharData:
		textEscaper.WriteString(buf, string(v))
	case Comment:
		buf.WriteString("<!--")
		buf.WriteString(string(v))
		buf.WriteString("-->")
	case ProcInst:
		buf.WriteString("<?")
		buf.WriteString(v.Target)
		if v.Inst != "" {
			buf.WriteByte(' ')
			buf.WriteString(v.Inst)
		}
		buf.WriteString("?>")
	case Directive:
		buf.WriteString("<!")
		buf.WriteString(string(v))
		buf.WriteByte('>')
	}
}

// Body returns the w:body of a main document part, or nil when the root is
// not a w:document.
func (t *Tree) Body() *Body {
	if t.Root == nil || !t.Root.Is(NamespaceW, "document") {
		return nil
	}
	el := t.Root.Child(NamespaceW, "body")
	if el == nil {
		return nil
	}
	return &Body{el: el}
}

// Story returns the root of a header or footer part, or nil for any other part.
func (t *Tree) Story() *Story {
	if t.Root == nil || !(t.Root.Is(NamespaceW, "hdr") || t.Root.Is(NamespaceW, "ftr")) {
		return nil
	}
	return &Story{el: t.Root}
}

// Body is the w:body element of the main document part
type Body struct {
	el *Element
}

// Element returns the underlying w:body element.
func (b *Body) Element() *Element { return b.el }

// Paragraphs implements Container.
func (b *Body) Paragraphs() []*Paragraph { return blockParagraphs(b.el) }

// Tables implements Container.
func (b *Body) Tables() []*Table { return blockTables(b.el) }

// Sections returns the section properties of the body in document order:
// those ending a section inside a paragraph's w:pPr, then the trailing body-level one.
func (b *Body) Sections() []*SectionProperties {
	var out []*SectionProperties
	for el := range b.el.Descendants(NamespaceW, "sectPr") {
		out = append(out, &SectionProperties{el: el})
	}
	return out
}

// SectionProperties wraps a w:sectPr element
type SectionProperties struct {
	el *Element
}

// HeaderRefs returns the relationship IDs of the section's header references.
func (s *SectionProperties) HeaderRefs() []string {
	return s.refs("headerReference")
}

// FooterRefs returns the relationship IDs of the section's footer references.
func (s *SectionProperties) FooterRefs() []string {
	return s.refs("footerReference")
}

func (s *SectionProperties) refs(local string) []string {
	var ids []string
	for _, el := range s.el.Elements() {
		if !el.Is(NamespaceW, local) {
			continue
		}
		if id, ok := el.AttrValue(NamespaceR, "id"); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
