package xml

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// Relationship types the engine follows.
const (
	RelTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	RelTypeHeader    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	RelTypeFooter    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
)

// Relationship represents a relationship in a .rels part
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships of one part
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// ParseRelationships decodes a .rels part.
func ParseRelationships(data []byte) (*Relationships, error) {
	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return &rels, nil
}

// Marshal encodes the relationships with an XML declaration.
func (r *Relationships) Marshal() ([]byte, error) {
	out := Relationships{
		XMLName:      xml.Name{Local: "Relationships"},
		Namespace:    NamespacePackageRels,
		Relationship: r.Relationship,
	}
	data, err := xml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal relationships: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// Find returns the relationship with the given ID, or nil.
func (r *Relationships) Find(id string) *Relationship {
	if r == nil {
		return nil
	}
	for i := range r.Relationship {
		if r.Relationship[i].ID == id {
			return &r.Relationship[i]
		}
	}
	return nil
}

// RelationshipsPartName maps a part name to the name of its relationships part,
// e.g. "word/document.xml" -> "word/_rels/document.xml.rels".
func RelationshipsPartName(partName string) string {
	dir, base := path.Split(partName)
	return dir + "_rels/" + base + ".rels"
}

// ResolveTarget resolves an internal relationship target against the source
// part's directory, e.g. ("word/document.xml", "header1.xml") -> "word/header1.xml".
func ResolveTarget(sourcePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(sourcePart), target)
}
