// Package relink provides the relink command.
package relink

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/applytrack/docfill/internal/cmd/cmdutil"
	"github.com/applytrack/docfill/internal/view"
)

type relinkOptions struct {
	oldURL  string
	oldText string
	newURL  string
	newText string
	out     string
	list    bool
}

// Result is the outcome of a relink run.
type Result struct {
	Template  string `json:"template"`
	Output    string `json:"output,omitempty"`
	Rewritten int    `json:"rewritten"`
}

// NewCmdRelink creates the relink command.
func NewCmdRelink() *cobra.Command {
	opts := &relinkOptions{}

	cmd := &cobra.Command{
		Use:   "relink <template>",
		Short: "Retarget a hyperlink in a template",
		Long: `Retarget every hyperlink whose URL and display text both match exactly.

The document is rewritten in place unless --out is given. Use --list to see
the hyperlinks a document currently has.`,
		Example: `  # Show current hyperlinks
  docfill relink letter.docx --list

  # Point the portfolio link somewhere else
  docfill relink letter.docx --old-url https://old.example.com --old-text "Portfolio" \
    --new-url https://new.example.com --new-text "My portfolio"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.list && (opts.oldURL == "" || opts.oldText == "" || opts.newURL == "") {
				return errors.New("--old-url, --old-text and --new-url are required unless --list is given")
			}
			env, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			return runRelink(env, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.oldURL, "old-url", "", "Current hyperlink target")
	cmd.Flags().StringVar(&opts.oldText, "old-text", "", "Current hyperlink display text")
	cmd.Flags().StringVar(&opts.newURL, "new-url", "", "New hyperlink target")
	cmd.Flags().StringVar(&opts.newText, "new-text", "", "New display text (default: keep the old text)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Write the result here instead of rewriting the template")
	cmd.Flags().BoolVar(&opts.list, "list", false, "List hyperlinks and exit")

	return cmd
}

func runRelink(env *cmdutil.Env, name string, opts *relinkOptions) error {
	path := env.Config.TemplatePath(name)
	tmpl, err := env.Engine.PrepareFile(path)
	if err != nil {
		return err
	}
	defer tmpl.Close()

	r := env.Renderer
	if opts.list {
		links := tmpl.Hyperlinks()
		if r.Format() == view.FormatJSON {
			return r.RenderJSON(links)
		}
		if len(links) == 0 {
			r.RenderText("No hyperlinks found.")
			return nil
		}
		rows := make([][]string, 0, len(links))
		for _, l := range links {
			rows = append(rows, []string{l.Part, l.RelID, l.Target, l.Text})
		}
		r.RenderTable([]string{"PART", "RELID", "TARGET", "TEXT"}, rows)
		return nil
	}

	newText := opts.newText
	if newText == "" {
		newText = opts.oldText
	}
	res := &Result{Template: path}
	res.Rewritten = tmpl.ReplaceHyperlink(opts.oldURL, opts.oldText, opts.newURL, newText)

	if res.Rewritten > 0 {
		res.Output = path
		if opts.out != "" {
			res.Output = opts.out
		}
		if err := tmpl.SaveFile(res.Output); err != nil {
			return err
		}
	}

	switch r.Format() {
	case view.FormatJSON:
		return r.RenderJSON(res)
	case view.FormatPlain:
		r.RenderKeyValue("rewritten", strconv.Itoa(res.Rewritten))
	default:
		if res.Rewritten == 0 {
			r.Warning(fmt.Sprintf("no hyperlink matched %s with text %q", opts.oldURL, opts.oldText))
			return nil
		}
		r.Success(fmt.Sprintf("rewrote %d hyperlink(s) in %s", res.Rewritten, res.Output))
	}
	return nil
}
