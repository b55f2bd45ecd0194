package xml

import (
	"encoding/xml"
)

const (
	// NamespaceW is the main WordprocessingML namespace.
	NamespaceW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	// NamespaceR is the officeDocument relationships namespace used by r:id attributes.
	NamespaceR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	// NamespaceXML is the namespace bound to the reserved xml: prefix.
	NamespaceXML = "http://www.w3.org/XML/1998/namespace"
	// NamespacePackageRels is the namespace of .rels parts.
	NamespacePackageRels = "http://schemas.openxmlformats.org/package/2006/relationships"

	namespaceXMLNS = "http://www.w3.org/2000/xmlns/"
)

// Node is any item that can appear in the tree
type Node interface {
	isNode()
}

// CharData is text content. It holds the decoded text; escaping happens on write.
type CharData string

// Comment is an XML comment without the <!-- --> delimiters.
type Comment string

// Directive is a <!...> directive without its delimiters.
type Directive string

// ProcInst is a processing instruction such as the <?xml ...?> declaration.
type ProcInst struct {
	Target string
	Inst   string
}

// Element is an XML element. Name.Space holds the prefix exactly as written in
// the source; URI holds the namespace that prefix resolved to.
type Element struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []Node
	URI      string

	parent *Element
}

func (CharData) isNode()  {}
func (Comment) isNode()   {}
func (Directive) isNode() {}
func (ProcInst) isNode()  {}
func (*Element) isNode()  {}
