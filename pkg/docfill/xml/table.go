package xml

import (
	"iter"
)

// Container is anything that holds block-level paragraphs and tables: the
// document body, a table cell, a header or a footer.
type Container interface {
	Paragraphs() []*Paragraph
	Tables() []*Table
}

// AllParagraphs yields the container's paragraphs followed by the paragraphs
// of every cell of every table, recursing into nested tables.
func AllParagraphs(c Container) iter.Seq[*Paragraph] {
	return func(yield func(*Paragraph) bool) {
		walkParagraphs(c, yield)
	}
}

func walkParagraphs(c Container, yield func(*Paragraph) bool) bool {
	for _, p := range c.Paragraphs() {
		if !yield(p) {
			return false
		}
	}
	for _, t := range c.Tables() {
		for _, cell := range t.Cells() {
			if !walkParagraphs(cell, yield) {
				return false
			}
		}
	}
	return true
}

// blockWrappers hold block content that still belongs to the enclosing container.
var blockWrappers = map[string]bool{
	"sdt":        true,
	"sdtContent": true,
	"customXml":  true,
}

func blockChildren(el *Element, local string, visit func(*Element)) {
	for _, c := range el.Elements() {
		if c.URI != NamespaceW {
			continue
		}
		switch {
		case c.Name.Local == local:
			visit(c)
		case blockWrappers[c.Name.Local]:
			blockChildren(c, local, visit)
		}
	}
}

func blockParagraphs(el *Element) []*Paragraph {
	var out []*Paragraph
	blockChildren(el, "p", func(c *Element) {
		out = append(out, &Paragraph{el: c})
	})
	return out
}

func blockTables(el *Element) []*Table {
	var out []*Table
	blockChildren(el, "tbl", func(c *Element) {
		out = append(out, &Table{el: c})
	})
	return out
}

// Table wraps a w:tbl element
type Table struct {
	el *Element
}

// Element returns the underlying w:tbl element.
func (t *Table) Element() *Element { return t.el }

// Rows returns the table rows in order.
func (t *Table) Rows() []*Row {
	var rows []*Row
	blockChildren(t.el, "tr", func(c *Element) {
		rows = append(rows, &Row{el: c})
	})
	return rows
}

// Cells returns every cell of every row. Each w:tc is returned once, even
// when it spans several grid columns.
func (t *Table) Cells() []*Cell {
	var cells []*Cell
	for _, r := range t.Rows() {
		cells = append(cells, r.Cells()...)
	}
	return cells
}

// Row wraps a w:tr element
type Row struct {
	el *Element
}

// Cells returns the row's cells.
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	blockChildren(r.el, "tc", func(c *Element) {
		cells = append(cells, &Cell{el: c})
	})
	return cells
}

// Cell wraps a w:tc element
type Cell struct {
	el *Element
}

// Element returns the underlying w:tc element.
func (c *Cell) Element() *Element { return c.el }

// Paragraphs implements Container.
func (c *Cell) Paragraphs() []*Paragraph { return blockParagraphs(c.el) }

// Tables implements Container.
func (c *Cell) Tables() []*Table { return blockTables(c.el) }

// Story is the root of a header (w:hdr) or footer (w:ftr) part
type Story struct {
	el *Element
}

// Element returns the underlying root element.
func (s *Story) Element() *Element { return s.el }

// IsHeader reports whether the story is a header.
func (s *Story) IsHeader() bool { return s.el.Name.Local == "hdr" }

// Paragraphs implements Container.
func (s *Story) Paragraphs() []*Paragraph { return blockParagraphs(s.el) }

// Tables implements Container.
func (s *Story) Tables() []*Table { return blockTables(s.el) }
