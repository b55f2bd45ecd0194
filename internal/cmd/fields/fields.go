// Package fields provides the fields command.
package fields

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/applytrack/docfill/internal/cmd/cmdutil"
	"github.com/applytrack/docfill/internal/paths"
	"github.com/applytrack/docfill/internal/view"
	"github.com/applytrack/docfill/pkg/docfill"
)

// Field is one row of the fields listing.
type Field struct {
	docfill.FieldData
	Value string `json:"value"`
}

// NewCmdFields creates the fields command.
func NewCmdFields() *cobra.Command {
	var noSnapshot bool

	cmd := &cobra.Command{
		Use:   "fields <template>",
		Short: "List the placeholders of a template",
		Long: `List every placeholder found in the body, headers and footers of a
template, with the value it would get from the last snapshot.`,
		Example: `  # List placeholders
  docfill fields "Cover Letter.docx"

  # Output as JSON
  docfill fields "Cover Letter.docx" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			return runFields(env, args[0], noSnapshot)
		},
	}

	cmd.Flags().BoolVar(&noSnapshot, "no-snapshot", false, "Ignore the saved snapshot")

	return cmd
}

func runFields(env *cmdutil.Env, name string, noSnapshot bool) error {
	path := env.Config.TemplatePath(name)
	tmpl, err := env.Engine.PrepareFile(path)
	if err != nil {
		return err
	}
	defer tmpl.Close()

	if !noSnapshot {
		snap, err := docfill.LoadSnapshot(paths.SnapshotPath(env.Config.SnapshotDir, path))
		if err != nil {
			return err
		}
		tmpl.FillFrom(snap)
	}

	parsed, err := tmpl.Fields()
	if err != nil {
		return err
	}
	inv := tmpl.Placeholders()
	rows := make([]Field, 0, len(parsed))
	for _, f := range parsed {
		rows = append(rows, Field{FieldData: f, Value: inv[f.OriginalText]})
	}

	r := env.Renderer
	if r.Format() == view.FormatJSON {
		return r.RenderJSON(rows)
	}
	if len(rows) == 0 {
		r.RenderText("No placeholders found.")
		return nil
	}

	headers := []string{"TOKEN", "TYPE", "GROUPS", "LABEL", "DEFAULT", "VALUE"}
	table := make([][]string, 0, len(rows))
	for _, f := range rows {
		table = append(table, []string{
			f.OriginalText,
			f.Kind.String(),
			strings.Join(f.Groups, "/"),
			f.Label,
			f.DefaultValue,
			f.Value,
		})
	}
	r.RenderTable(headers, table)
	return nil
}
