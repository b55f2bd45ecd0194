package root

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applytrack/docfill/pkg/docfill"
	"github.com/applytrack/docfill/pkg/docfill/docxtest"
)

type workspace struct {
	dir    string
	config string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	ws := &workspace{dir: dir, config: filepath.Join(dir, "config.yml")}
	cfg := fmt.Sprintf("templates_dir: %s\noutput_dir: %s\nsnapshot_dir: %s\nrecords_file: %s\ncascade: none\nlog_level: off\n",
		filepath.Join(dir, "templates"), filepath.Join(dir, "out"), filepath.Join(dir, "placeholders"), filepath.Join(dir, "records.jsonl"))
	require.NoError(t, os.WriteFile(ws.config, []byte(cfg), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	return ws
}

func (ws *workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCmdRoot()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append([]string{"-c", ws.config, "--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestFillFieldsHistory(t *testing.T) {
	ws := newWorkspace(t)
	doc := docxtest.Doc{
		Header: docxtest.P("{{Job@Company}}"),
		Body:   docxtest.P("Role: {{Job@Ti", "tle}}"),
	}
	require.NoError(t, doc.WriteFile(filepath.Join(ws.dir, "templates", "letter.docx")))

	out, err := ws.run(t, "fill", "letter.docx", "--set", "{{Job@Company}}=Acme", "--set", "{{Job@Title}}=Engineer", "-o", "json")
	require.NoError(t, err)

	var results []struct {
		Output       string `json:"output"`
		Replacements int    `json:"replacements"`
		RecordID     string `json:"record_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(ws.dir, "out", "letter.docx"), results[0].Output)
	assert.Equal(t, 2, results[0].Replacements)

	filled, err := docfill.Open(results[0].Output)
	require.NoError(t, err)
	assert.Equal(t, "Role: Engineer", filled.Body().Paragraphs()[0].Text())

	// the snapshot now supplies the values
	out, err = ws.run(t, "fields", "letter.docx", "-o", "plain")
	require.NoError(t, err)
	assert.Equal(t,
		"{{Job@Company}}\trequired\tJob\tCompany\t\tAcme\n"+
			"{{Job@Title}}\trequired\tJob\tTitle\t\tEngineer\n",
		out)

	out, err = ws.run(t, "history", "--id", results[0].RecordID, "-o", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "{{Job@Title}}\tEngineer\n")
}

func TestRelink(t *testing.T) {
	ws := newWorkspace(t)
	path := filepath.Join(ws.dir, "templates", "resume.docx")
	doc := docxtest.Doc{
		Body:    docxtest.Link("rIdL1", "Site"),
		DocRels: []string{docxtest.Rel("rIdL1", docxtest.TypeHyperlink, "https://a.example")},
	}
	require.NoError(t, doc.WriteFile(path))

	_, err := ws.run(t, "relink", "resume.docx", "--old-url", "https://a.example", "--old-text", "Site", "--new-url", "https://b.example")
	require.NoError(t, err)

	out, err := ws.run(t, "relink", "resume.docx", "--list", "-o", "plain")
	require.NoError(t, err)
	assert.Equal(t, "word/document.xml\trIdL1\thttps://b.example\tSite\n", out)
}

func TestErrors(t *testing.T) {
	ws := newWorkspace(t)

	_, err := ws.run(t, "fill", "missing.docx")
	assert.Error(t, err)

	_, err = ws.run(t, "fields", "x.docx", "-o", "yaml")
	assert.ErrorContains(t, err, "invalid output format")

	_, err = ws.run(t, "fill", "a.docx", "b.docx", "--name", "out")
	assert.ErrorContains(t, err, "--name can only be used with a single template")
}

func TestVersionFlag(t *testing.T) {
	ws := newWorkspace(t)
	out, err := ws.run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "docfill version ")
}
