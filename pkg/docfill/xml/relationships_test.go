package xml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/a?x=1&amp;y=2" TargetMode="External"/>
</Relationships>`

func TestRelationships_ParseAndFind(t *testing.T) {
	rels, err := ParseRelationships([]byte(testRels))
	require.NoError(t, err)
	require.Len(t, rels.Relationship, 2)

	hdr := rels.Find("rId1")
	require.NotNil(t, hdr)
	assert.Equal(t, RelTypeHeader, hdr.Type)
	assert.Equal(t, "header1.xml", hdr.Target)

	link := rels.Find("rId2")
	require.NotNil(t, link)
	assert.Equal(t, "https://example.com/a?x=1&y=2", link.Target)
	assert.Equal(t, "External", link.TargetMode)

	assert.Nil(t, rels.Find("rId99"))

	var none *Relationships
	assert.Nil(t, none.Find("rId1"))
}

func TestRelationships_MarshalRoundTrip(t *testing.T) {
	rels, err := ParseRelationships([]byte(testRels))
	require.NoError(t, err)

	rels.Find("rId2").Target = "https://example.org/"
	data, err := rels.Marshal()
	require.NoError(t, err)

	assert.Contains(t, string(data), `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, string(data), `xmlns="`+NamespacePackageRels+`"`)

	again, err := ParseRelationships(data)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/", again.Find("rId2").Target)
	assert.Equal(t, "header1.xml", again.Find("rId1").Target)
	assert.Equal(t, "", again.Find("rId1").TargetMode)
}

func TestRelationships_Invalid(t *testing.T) {
	_, err := ParseRelationships([]byte(`<Relationships>`))
	assert.Error(t, err)
}

func TestRelationshipsPartName(t *testing.T) {
	assert.Equal(t, "word/_rels/document.xml.rels", RelationshipsPartName("word/document.xml"))
	assert.Equal(t, "word/_rels/header2.xml.rels", RelationshipsPartName("word/header2.xml"))
	assert.Equal(t, "_rels/.rels", RelationshipsPartName(""))
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		source, target, want string
	}{
		{"word/document.xml", "header1.xml", "word/header1.xml"},
		{"word/document.xml", "/word/footer1.xml", "word/footer1.xml"},
		{"word/document.xml", "../customXml/item1.xml", "customXml/item1.xml"},
		{"", "word/document.xml", "word/document.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTarget(tt.source, tt.target))
		})
	}
}
