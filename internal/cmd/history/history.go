// Package history provides the history command.
package history

import (
	"errors"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/applytrack/docfill/internal/cmd/cmdutil"
	"github.com/applytrack/docfill/internal/records"
	"github.com/applytrack/docfill/internal/view"
)

type historyOptions struct {
	id    string
	limit int
}

// NewCmdHistory creates the history command.
func NewCmdHistory() *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history [template]",
		Short: "List generated documents",
		Long: `List the documents produced by fill, newest first, optionally only
those made from one template. With --id, show the values one document was
filled with.`,
		Example: `  # Everything generated so far
  docfill history

  # Documents made from one template
  docfill history "Cover Letter.docx"

  # Values used for one document
  docfill history --id 3f2a`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			var template string
			if len(args) == 1 {
				template = args[0]
			}
			return runHistory(env, template, opts)
		},
	}

	cmd.Flags().StringVar(&opts.id, "id", "", "Show one record by id or id prefix")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 0, "Show at most this many records (0 for all)")

	return cmd
}

func runHistory(env *cmdutil.Env, template string, opts *historyOptions) error {
	if env.Config.RecordsFile == "" {
		return errors.New("records are disabled: records_file is not set")
	}
	store := records.NewStore(env.Config.RecordsFile)
	r := env.Renderer

	if opts.id != "" {
		rec, err := store.Get(opts.id)
		if err != nil {
			return err
		}
		return renderRecord(r, rec)
	}

	var (
		list []records.Record
		err  error
	)
	if template != "" {
		list, err = store.ForTemplate(template)
	} else {
		list, err = store.List()
	}
	if err != nil {
		return err
	}

	// newest first
	slices.Reverse(list)
	if opts.limit > 0 && len(list) > opts.limit {
		list = list[:opts.limit]
	}

	if r.Format() == view.FormatJSON {
		if list == nil {
			list = []records.Record{}
		}
		return r.RenderJSON(list)
	}
	if len(list) == 0 {
		r.RenderText("No documents generated yet.")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, rec := range list {
		rows = append(rows, []string{
			rec.ID.String()[:8],
			rec.CreatedAt.Local().Format(time.DateTime),
			filepath.Base(rec.Template),
			rec.Output,
		})
	}
	r.RenderTable([]string{"ID", "CREATED", "TEMPLATE", "OUTPUT"}, rows)
	return nil
}

func renderRecord(r *view.Renderer, rec *records.Record) error {
	if r.Format() == view.FormatJSON {
		return r.RenderJSON(rec)
	}

	r.RenderKeyValue("ID", rec.ID.String())
	r.RenderKeyValue("Created", rec.CreatedAt.Local().Format(time.DateTime))
	r.RenderKeyValue("Template", rec.Template)
	r.RenderKeyValue("Output", rec.Output)
	if rec.Snapshot != "" {
		r.RenderKeyValue("Snapshot", rec.Snapshot)
	}

	tokens := make([]string, 0, len(rec.Placeholders))
	for token := range rec.Placeholders {
		tokens = append(tokens, token)
	}
	slices.Sort(tokens)
	rows := make([][]string, 0, len(tokens))
	for _, token := range tokens {
		rows = append(rows, []string{token, rec.Placeholders[token]})
	}
	if len(rows) > 0 {
		r.RenderText("")
		r.RenderTable([]string{"PLACEHOLDER", "VALUE"}, rows)
	}
	return nil
}
