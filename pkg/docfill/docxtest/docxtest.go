// Package docxtest builds small DOCX packages in memory for tests and examples.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// NS declares the w and r prefixes on a root element.
const NS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

const (
	RelsHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`
	RelsFooter = `</Relationships>`
)

const (
	TypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	TypeHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	TypeFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	TypeHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	TypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
)

// P builds a paragraph with one run per text.
func P(texts ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	for _, t := range texts {
		sb.WriteString(`<w:r><w:t xml:space="preserve">`)
		sb.WriteString(t)
		sb.WriteString(`</w:t></w:r>`)
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

// Table builds a one-row table with one cell per content string.
func Table(cells ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:tbl><w:tr>")
	for _, c := range cells {
		sb.WriteString("<w:tc>" + c + "</w:tc>")
	}
	sb.WriteString("</w:tr></w:tbl>")
	return sb.String()
}

// Link builds a paragraph holding a hyperlink with one run per text.
func Link(relID string, texts ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<w:p><w:hyperlink r:id="%s">`, relID)
	for _, t := range texts {
		sb.WriteString(`<w:r><w:rPr><w:rStyle w:val="Hyperlink"/></w:rPr><w:t xml:space="preserve">` + t + `</w:t></w:r>`)
	}
	sb.WriteString("</w:hyperlink></w:p>")
	return sb.String()
}

// Rel builds a relationship element. Hyperlinks are marked external.
func Rel(id, typ, target string) string {
	mode := ""
	if typ == TypeHyperlink {
		mode = ` TargetMode="External"`
	}
	return fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="%s"%s/>`, id, typ, target, mode)
}

// Doc describes a package with a body and an optional header and footer.
// The header is reached through rIdH1 and the footer through rIdF1.
type Doc struct {
	Body       string
	Header     string
	Footer     string
	DocRels    []string
	HeaderRels []string
	Extra      map[string]string

	// SkipSectPr leaves out the trailing body w:sectPr.
	SkipSectPr bool
	// UnreferencedHeader ships header1.xml without a section reference.
	UnreferencedHeader bool
}

// Bytes returns the zipped package.
func (d Doc) Bytes() ([]byte, error) {
	var sectPr string
	rels := append([]string{Rel("rIdStyles", TypeStyles, "styles.xml")}, d.DocRels...)
	if d.Header != "" {
		rels = append(rels, Rel("rIdH1", TypeHeader, "header1.xml"))
		if !d.UnreferencedHeader {
			sectPr += `<w:headerReference w:type="default" r:id="rIdH1"/>`
		}
	}
	if d.Footer != "" {
		rels = append(rels, Rel("rIdF1", TypeFooter, "footer1.xml"))
		sectPr += `<w:footerReference w:type="default" r:id="rIdF1"/>`
	}
	body := d.Body
	if !d.SkipSectPr {
		body += `<w:sectPr>` + sectPr + `<w:pgSz w:w="12240" w:h="15840"/></w:sectPr>`
	}

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`</Types>`,
		"_rels/.rels": RelsHeader + Rel("rId1", TypeOfficeDocument, "word/document.xml") + RelsFooter,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document ` + NS + `><w:body>` + body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": RelsHeader + strings.Join(rels, "") + RelsFooter,
		"word/styles.xml":              `<w:styles ` + NS + `/>`,
	}
	if d.Header != "" {
		files["word/header1.xml"] = `<w:hdr ` + NS + `>` + d.Header + `</w:hdr>`
		if len(d.HeaderRels) > 0 {
			files["word/_rels/header1.xml.rels"] = RelsHeader + strings.Join(d.HeaderRels, "") + RelsFooter
		}
	}
	if d.Footer != "" {
		files["word/footer1.xml"] = `<w:ftr ` + NS + `>` + d.Footer + `</w:ftr>`
	}
	for name, content := range d.Extra {
		files[name] = content
	}
	return Zip(files)
}

// WriteFile writes the package to path.
func (d Doc) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Zip writes files in a fixed order so the archive layout is stable: the
// standard parts first, then the rest by name.
func Zip(files map[string]string) ([]byte, error) {
	order := []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/_rels/document.xml.rels", "word/styles.xml"}
	seen := make(map[string]bool)
	var names []string
	for _, n := range order {
		if _, ok := files[n]; ok {
			names = append(names, n)
			seen[n] = true
		}
	}
	var rest []string
	for n := range files {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	slices.Sort(rest)
	names = append(names, rest...)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, n := range names {
		f, err := w.Create(n)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(f, files[n]); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
