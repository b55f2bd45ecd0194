package docfill

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/applytrack/docfill/pkg/docfill/xml"
)

const (
	defaultMainPart       = "word/document.xml"
	packageRelsPart       = "_rels/.rels"
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
)

// Part is one parsed XML part of the package together with its relationships.
type Part struct {
	Name string

	tree         *xml.Tree
	rels         *xml.Relationships
	relsName     string
	modified     bool
	relsModified bool
}

// Tree returns the parsed XML of the part.
func (p *Part) Tree() *xml.Tree { return p.tree }

// Relationships returns the part's relationships. It is never nil; a part
// without a .rels file gets an empty set.
func (p *Part) Relationships() *xml.Relationships { return p.rels }

// Container returns the block container of the part: the body for the main
// document, the story for headers and footers, nil otherwise.
func (p *Part) Container() xml.Container {
	if body := p.tree.Body(); body != nil {
		return body
	}
	if story := p.tree.Story(); story != nil {
		return story
	}
	return nil
}

// MarkModified flags the part's XML for rewriting on save.
func (p *Part) MarkModified() { p.modified = true }

// MarkRelationshipsModified flags the part's .rels for rewriting on save.
func (p *Part) MarkRelationshipsModified() { p.relsModified = true }

// Section lists the header and footer parts referenced by one w:sectPr.
type Section struct {
	Headers []*Part
	Footers []*Part
}

// Document is an opened DOCX package. Only the parts the engine touches are
// parsed; everything else is copied through unchanged on save.
type Document struct {
	files    []*zip.File
	byName   map[string]*zip.File
	main     *Part
	parts    map[string]*Part
	sections []Section
}

// Read opens a DOCX package from r.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewDocumentError("read", "", fmt.Errorf("failed to read zip file: %w", err))
	}

	doc := &Document{
		files:  zr.File,
		byName: make(map[string]*zip.File, len(zr.File)),
		parts:  make(map[string]*Part),
	}
	for _, f := range zr.File {
		doc.byName[f.Name] = f
	}

	mainName := doc.mainPartName()
	if _, ok := doc.byName[mainName]; !ok {
		return nil, NewDocumentError("read", mainName, fmt.Errorf("not a valid DOCX file: missing main document part"))
	}

	doc.main, err = doc.loadPart(mainName)
	if err != nil {
		return nil, err
	}
	body := doc.main.tree.Body()
	if body == nil {
		return nil, NewDocumentError("read", mainName, fmt.Errorf("main document part has no w:body"))
	}

	for _, sp := range body.Sections() {
		var sec Section
		for _, id := range sp.HeaderRefs() {
			if p := doc.referencedPart(id, xml.RelTypeHeader); p != nil {
				sec.Headers = append(sec.Headers, p)
			}
		}
		for _, id := range sp.FooterRefs() {
			if p := doc.referencedPart(id, xml.RelTypeFooter); p != nil {
				sec.Footers = append(sec.Footers, p)
			}
		}
		doc.sections = append(doc.sections, sec)
	}

	return doc, nil
}

// ReadBytes opens a DOCX package held in memory.
func ReadBytes(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Open reads the DOCX file at path.
func Open(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	doc, err := ReadBytes(content)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	return doc, nil
}

// mainPartName follows the package's officeDocument relationship, falling
// back to word/document.xml when the package rels are missing or unreadable.
func (d *Document) mainPartName() string {
	data, err := d.readFile(packageRelsPart)
	if err != nil {
		return defaultMainPart
	}
	rels, err := xml.ParseRelationships(data)
	if err != nil {
		return defaultMainPart
	}
	for _, rel := range rels.Relationship {
		if rel.Type == relTypeOfficeDocument {
			return xml.ResolveTarget("", rel.Target)
		}
	}
	return defaultMainPart
}

func (d *Document) readFile(name string) ([]byte, error) {
	f, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", name, err)
	}
	return content, nil
}

// loadPart parses a part and its relationships once; later calls return the same *Part.
func (d *Document) loadPart(name string) (*Part, error) {
	if p, ok := d.parts[name]; ok {
		return p, nil
	}

	data, err := d.readFile(name)
	if err != nil {
		return nil, NewDocumentError("read", name, err)
	}
	tree, err := xml.ParseBytes(data)
	if err != nil {
		return nil, NewDocumentError("parse", name, err)
	}

	p := &Part{
		Name:     name,
		tree:     tree,
		relsName: xml.RelationshipsPartName(name),
		rels:     &xml.Relationships{},
	}
	if relsData, err := d.readFile(p.relsName); err == nil {
		rels, err := xml.ParseRelationships(relsData)
		if err != nil {
			return nil, NewDocumentError("parse", p.relsName, err)
		}
		p.rels = rels
	}

	d.parts[name] = p
	return p, nil
}

// referencedPart loads the header or footer behind a section reference. Broken
// references are logged and skipped so one bad part does not hide the rest.
func (d *Document) referencedPart(id, relType string) *Part {
	rel := d.main.rels.Find(id)
	if rel == nil || rel.Type != relType {
		WithFields(Fields{"id": id, "type": relType}).Warn("section references a missing relationship")
		return nil
	}
	name := xml.ResolveTarget(d.main.Name, rel.Target)
	p, err := d.loadPart(name)
	if err != nil {
		WithField("part", name).Warn("skipping unreadable part: %v", err)
		return nil
	}
	if p.Container() == nil {
		WithField("part", name).Warn("skipping part without a header or footer root")
		return nil
	}
	return p
}

// Main returns the main document part.
func (d *Document) Main() *Part { return d.main }

// Body returns the body of the main document part.
func (d *Document) Body() *xml.Body { return d.main.tree.Body() }

// Sections returns the sections of the document in order.
func (d *Document) Sections() []Section { return d.sections }

// HeaderParts returns every distinct header part across all sections.
func (d *Document) HeaderParts() []*Part {
	return d.distinct(func(s Section) []*Part { return s.Headers })
}

// FooterParts returns every distinct footer part across all sections.
func (d *Document) FooterParts() []*Part {
	return d.distinct(func(s Section) []*Part { return s.Footers })
}

func (d *Document) distinct(pick func(Section) []*Part) []*Part {
	seen := make(map[*Part]bool)
	var out []*Part
	for _, s := range d.sections {
		for _, p := range pick(s) {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// StoryParts returns the main part followed by all header and footer parts.
func (d *Document) StoryParts() []*Part {
	parts := []*Part{d.main}
	parts = append(parts, d.HeaderParts()...)
	return append(parts, d.FooterParts()...)
}

// Save writes the package to w. Modified parts are re-serialized; all other
// entries are copied raw, keeping their original compression.
func (d *Document) Save(w io.Writer) error {
	replaced := make(map[string][]byte)
	for _, p := range d.parts {
		if p.modified {
			replaced[p.Name] = p.tree.Bytes()
		}
		if p.relsModified {
			data, err := p.rels.Marshal()
			if err != nil {
				return NewDocumentError("save", p.relsName, err)
			}
			replaced[p.relsName] = data
		}
	}

	zw := zip.NewWriter(w)
	for _, f := range d.files {
		data, ok := replaced[f.Name]
		if !ok {
			if err := zw.Copy(f); err != nil {
				return NewDocumentError("save", f.Name, err)
			}
			continue
		}
		delete(replaced, f.Name)

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return NewDocumentError("save", f.Name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return NewDocumentError("save", f.Name, err)
		}
	}

	// A part that had no .rels before but gained relationships.
	for name, data := range replaced {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return NewDocumentError("save", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return NewDocumentError("save", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return NewDocumentError("save", "", err)
	}
	return nil
}

// SaveFile writes the package to path through a temporary file in the same
// directory, so a failed save never leaves a truncated document behind.
func (d *Document) SaveFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewDocumentError("save", path, err)
	}
	tmp, err := os.CreateTemp(dir, ".docfill-*.docx")
	if err != nil {
		return NewDocumentError("save", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := d.Save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return NewDocumentError("save", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return NewDocumentError("save", path, err)
	}
	return nil
}
