package relink

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applytrack/docfill/internal/cmd/cmdutil"
	"github.com/applytrack/docfill/internal/config"
	"github.com/applytrack/docfill/internal/view"
	"github.com/applytrack/docfill/pkg/docfill"
	"github.com/applytrack/docfill/pkg/docfill/docxtest"
)

func testEnv(t *testing.T, format view.Format) (*cmdutil.Env, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.TemplatesDir = t.TempDir()

	out := new(bytes.Buffer)
	r := view.NewRenderer(format, true)
	r.SetWriter(out)
	return &cmdutil.Env{
		Config:   cfg,
		Engine:   docfill.NewWithConfig(&docfill.Config{LogLevel: "off"}),
		Renderer: r,
	}, out
}

func writeLinked(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "resume.docx")
	doc := docxtest.Doc{
		Body:    docxtest.Link("rIdL1", "Port", "folio") + docxtest.Link("rIdL2", "GitHub"),
		DocRels: []string{
			docxtest.Rel("rIdL1", docxtest.TypeHyperlink, "https://old.example.com"),
			docxtest.Rel("rIdL2", docxtest.TypeHyperlink, "https://github.com/someone"),
		},
	}
	require.NoError(t, doc.WriteFile(path))
	return path
}

func linksOf(t *testing.T, path string) []docfill.HyperlinkInfo {
	t.Helper()
	tmpl, err := docfill.NewWithConfig(&docfill.Config{LogLevel: "off"}).PrepareFile(path)
	require.NoError(t, err)
	defer tmpl.Close()
	return tmpl.Hyperlinks()
}

func TestRunRelink_List(t *testing.T) {
	env, out := testEnv(t, view.FormatPlain)
	writeLinked(t, env.Config.TemplatesDir)

	require.NoError(t, runRelink(env, "resume.docx", &relinkOptions{list: true}))
	assert.Equal(t,
		"word/document.xml\trIdL1\thttps://old.example.com\tPortfolio\n"+
			"word/document.xml\trIdL2\thttps://github.com/someone\tGitHub\n",
		out.String())
}

func TestRunRelink_ToOut(t *testing.T) {
	env, out := testEnv(t, view.FormatPlain)
	src := writeLinked(t, env.Config.TemplatesDir)
	dst := filepath.Join(t.TempDir(), "relinked.docx")

	err := runRelink(env, src, &relinkOptions{
		oldURL:  "https://old.example.com",
		oldText: "Portfolio",
		newURL:  "https://new.example.com",
		newText: "My portfolio",
		out:     dst,
	})
	require.NoError(t, err)
	assert.Equal(t, "rewritten\t1\n", out.String())

	got := linksOf(t, dst)
	require.Len(t, got, 2)
	assert.Equal(t, "https://new.example.com", got[0].Target)
	assert.Equal(t, "My portfolio", got[0].Text)
	assert.Equal(t, "https://github.com/someone", got[1].Target)

	// source is untouched
	assert.Equal(t, "https://old.example.com", linksOf(t, src)[0].Target)
}

func TestRunRelink_InPlaceKeepsText(t *testing.T) {
	env, _ := testEnv(t, view.FormatTable)
	src := writeLinked(t, env.Config.TemplatesDir)

	err := runRelink(env, src, &relinkOptions{
		oldURL:  "https://github.com/someone",
		oldText: "GitHub",
		newURL:  "https://github.com/someone-else",
	})
	require.NoError(t, err)

	got := linksOf(t, src)
	assert.Equal(t, "https://github.com/someone-else", got[1].Target)
	assert.Equal(t, "GitHub", got[1].Text)
}

func TestRunRelink_NoMatch(t *testing.T) {
	env, out := testEnv(t, view.FormatTable)
	src := writeLinked(t, env.Config.TemplatesDir)
	dst := filepath.Join(t.TempDir(), "relinked.docx")

	err := runRelink(env, src, &relinkOptions{
		oldURL:  "https://old.example.com",
		oldText: "Port",
		newURL:  "https://new.example.com",
		out:     dst,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no hyperlink matched")
	assert.NoFileExists(t, dst)
}

func TestNewCmdRelink_RequiresTargets(t *testing.T) {
	cmd := NewCmdRelink()
	cmd.SetArgs([]string{"resume.docx", "--old-url", "https://old.example.com"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	err := cmd.Execute()
	assert.ErrorContains(t, err, "required unless --list")
}
