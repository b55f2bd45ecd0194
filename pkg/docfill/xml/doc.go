// Package xml provides a lossless element tree and WordprocessingML views for DOCX parts.
//
// DOCX files are ZIP archives of XML parts. The substitution engine must rewrite
// text inside runs without disturbing anything else in the part, so this package
// does not map the schema onto Go structs. Instead it keeps every token of the
// source (elements, attributes, character data, comments, processing
// instructions) in a generic tree and serialises it back with the original
// namespace prefixes.
//
// # Structure Organization
//
//   - types.go: Node kinds and namespace constants
//   - element.go: Element navigation and mutation
//   - document.go: Tree parsing/serialisation, Body and section properties
//   - paragraph.go: Paragraph and Hyperlink views
//   - run.go: Run view (text get/set that leaves formatting untouched)
//   - table.go: Table, Row, Cell, Story and the Container capability
//   - relationships.go: the package relationship part model
//
// # Key Concepts
//
// Container: anything that holds block-level paragraphs and tables (the
// document body, a table cell, a header or footer). Traversal code depends only
// on this capability.
//
// Run: a contiguous sequence of text with consistent formatting. Runs are the
// atomic units of text formatting in DOCX files.
//
// Example:
//
//	tree, err := xml.Parse(r)
//	if err != nil {
//	    return err
//	}
//	for p := range xml.AllParagraphs(tree.Body()) {
//	    fmt.Println(p.Text())
//	}
//
// # XML Namespaces
//
// Element and attribute prefixes are resolved through the in-scope xmlns
// declarations, so views match on namespace URI rather than on the literal
// "w:" or "r:" prefix.
package xml
