package docfill

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/applytrack/docfill/pkg/docfill/docxtest"
	"github.com/applytrack/docfill/pkg/docfill/xml"
)

const (
	nsDecl     = docxtest.NS
	relsHeader = docxtest.RelsHeader
	relsFooter = docxtest.RelsFooter

	typeHeader    = docxtest.TypeHeader
	typeFooter    = docxtest.TypeFooter
	typeHyperlink = docxtest.TypeHyperlink
	typeStyles    = docxtest.TypeStyles
)

var (
	p    = docxtest.P
	tbl  = docxtest.Table
	link = docxtest.Link
	rel  = docxtest.Rel
)

// testDocx describes a package to build in memory.
type testDocx struct {
	body       string
	header     string // header1.xml content; empty for none
	footer     string // footer1.xml content; empty for none
	docRels    []string
	headerRels []string
	extraFiles map[string]string
	skipSectPr bool
	unrefHdr   bool // ship header1.xml without a sectPr reference
}

func (d testDocx) bytes(t *testing.T) []byte {
	t.Helper()
	data, err := docxtest.Doc{
		Body:               d.body,
		Header:             d.header,
		Footer:             d.footer,
		DocRels:            d.docRels,
		HeaderRels:         d.headerRels,
		Extra:              d.extraFiles,
		SkipSectPr:         d.skipSectPr,
		UnreferencedHeader: d.unrefHdr,
	}.Bytes()
	require.NoError(t, err)
	return data
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	data, err := docxtest.Zip(files)
	require.NoError(t, err)
	return data
}

func openTestDocx(t *testing.T, d testDocx) *Document {
	t.Helper()
	doc, err := ReadBytes(d.bytes(t))
	require.NoError(t, err)
	return doc
}

// saveAndReopen writes doc and reads it back.
func saveAndReopen(t *testing.T, doc *Document) *Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	again, err := ReadBytes(buf.Bytes())
	require.NoError(t, err)
	return again
}

// zipEntries returns the raw content of every entry in a package.
func zipEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = string(content)
	}
	return out
}

// partTexts returns the text of every paragraph of a part, tables included.
func partTexts(part *Part) []string {
	var out []string
	for para := range xml.AllParagraphs(part.Container()) {
		out = append(out, para.Text())
	}
	return out
}
