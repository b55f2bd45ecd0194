// Package fill provides the fill command.
package fill

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/applytrack/docfill/internal/cmd/cmdutil"
	"github.com/applytrack/docfill/internal/form"
	"github.com/applytrack/docfill/internal/paths"
	"github.com/applytrack/docfill/internal/records"
	"github.com/applytrack/docfill/internal/view"
	"github.com/applytrack/docfill/pkg/docfill"
)

type fillOptions struct {
	set         []string
	valuesFile  string
	interactive bool
	name        string
	outDir      string
	noSnapshot  bool
	allowEmpty  bool
}

// Result describes one filled template.
type Result struct {
	Template     string   `json:"template"`
	Output       string   `json:"output"`
	Snapshot     string   `json:"snapshot,omitempty"`
	RecordID     string   `json:"record_id,omitempty"`
	Replacements int      `json:"replacements"`
	Empty        []string `json:"empty,omitempty"`
	Unknown      []string `json:"unknown,omitempty"`
}

// NewCmdFill creates the fill command.
func NewCmdFill() *cobra.Command {
	opts := &fillOptions{}

	cmd := &cobra.Command{
		Use:   "fill <template>...",
		Short: "Fill the placeholders of one or more templates",
		Long: `Fill a template's placeholders and save the result as a new document.

Values come from, in increasing priority: the template's last snapshot,
--values, --set, and the interactive form. Placeholders left without a
value stay in the document as they are unless --allow-empty is given.`,
		Example: `  # Fill from the command line
  docfill fill letter.docx --set "{{Job@Company}}=Acme" --set "{{Job@Title}}=Engineer"

  # Fill from a file and review the values in a form
  docfill fill letter.docx --values acme.yaml --interactive

  # Fill several templates with the same values
  docfill fill letter.docx resume.docx --values acme.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.name != "" && len(args) > 1 {
				return errors.New("--name can only be used with a single template")
			}
			env, err := cmdutil.Load(cmd)
			if err != nil {
				return err
			}
			return runFill(cmd.Context(), env, args, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "Set a placeholder value (TOKEN=VALUE, repeatable)")
	cmd.Flags().StringVar(&opts.valuesFile, "values", "", "JSON or YAML file with placeholder values")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Review and edit values in a form")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Output file name (default: template name)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Output directory (default: output_dir from config)")
	cmd.Flags().BoolVar(&opts.noSnapshot, "no-snapshot", false, "Neither read nor write the template's snapshot")
	cmd.Flags().BoolVar(&opts.allowEmpty, "allow-empty", false, "Replace placeholders that have no value with empty text")

	return cmd
}

func runFill(ctx context.Context, env *cmdutil.Env, templates []string, opts *fillOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	values := make(map[string]string)
	if opts.valuesFile != "" {
		fileValues, err := cmdutil.ReadValues(opts.valuesFile)
		if err != nil {
			return err
		}
		maps.Copy(values, fileValues)
	}
	setValues, err := cmdutil.ParseSet(opts.set)
	if err != nil {
		return err
	}
	maps.Copy(values, setValues)

	f := &Filler{
		Engine:      env.Engine,
		OutputDir:   env.Config.OutputDir,
		Cascade:     env.Config.Cascade,
		SnapshotDir: env.Config.SnapshotDir,
		Name:        opts.name,
		NoSnapshot:  opts.noSnapshot,
		AllowEmpty:  opts.allowEmpty,
		Now:         time.Now,
	}
	if opts.outDir != "" {
		f.OutputDir = opts.outDir
	}
	if env.Config.RecordsFile != "" {
		f.Records = records.NewStore(env.Config.RecordsFile)
	}
	if opts.interactive {
		f.Prompt = func(fields []docfill.FieldData, values map[string]string) error {
			return form.New(fields, values).Run()
		}
	}

	files := make([]string, len(templates))
	for i, t := range templates {
		files[i] = env.Config.TemplatePath(t)
	}
	results, err := f.FillAll(ctx, files, values)
	if err != nil {
		return err
	}
	render(env.Renderer, results)
	return nil
}

func render(r *view.Renderer, results []*Result) {
	if r.Format() == view.FormatJSON {
		_ = r.RenderJSON(results)
		return
	}

	headers := []string{"TEMPLATE", "OUTPUT", "REPLACED", "EMPTY"}
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			filepath.Base(res.Template),
			res.Output,
			strconv.Itoa(res.Replacements),
			strconv.Itoa(len(res.Empty)),
		})
	}
	r.RenderTable(headers, rows)

	if r.Format() == view.FormatPlain {
		return
	}
	for _, res := range results {
		if len(res.Unknown) > 0 {
			r.Warning(fmt.Sprintf("%s: no such placeholders: %s", filepath.Base(res.Template), strings.Join(res.Unknown, ", ")))
		}
		if len(res.Empty) > 0 {
			r.Warning(fmt.Sprintf("%s: left unfilled: %s", filepath.Base(res.Template), strings.Join(res.Empty, ", ")))
		}
	}
}

// Filler fills templates and writes their outputs, snapshots and records.
type Filler struct {
	Engine      *docfill.Engine
	OutputDir   string
	Cascade     string
	SnapshotDir string
	// Name overrides the output file name; empty uses the template name.
	Name       string
	NoSnapshot bool
	AllowEmpty bool
	// Records receives one record per filled document; nil disables records.
	Records *records.Store
	// Prompt edits the values before they are applied; nil skips prompting.
	Prompt func(fields []docfill.FieldData, values map[string]string) error
	Now    func() time.Time

	// held while an output name is picked and written, so concurrent fills
	// of same-named templates get distinct files
	saveMu sync.Mutex
}

// FillAll fills every template with values. Templates are independent and
// run concurrently unless a Prompt is set, which needs the terminal to itself.
// Results are returned in template order.
func (f *Filler) FillAll(ctx context.Context, templates []string, values map[string]string) ([]*Result, error) {
	results := make([]*Result, len(templates))

	g, ctx := errgroup.WithContext(ctx)
	if f.Prompt != nil {
		g.SetLimit(1)
	} else {
		g.SetLimit(runtime.NumCPU())
	}
	for i, tmpl := range templates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := f.Fill(tmpl, values)
			if err != nil {
				return fmt.Errorf("%s: %w", tmpl, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Fill fills a single template. values is not modified.
func (f *Filler) Fill(template string, values map[string]string) (*Result, error) {
	tmpl, err := f.Engine.PrepareFile(template)
	if err != nil {
		return nil, err
	}
	defer tmpl.Close()

	res := &Result{Template: template}
	inv := tmpl.Placeholders()

	if !f.NoSnapshot {
		res.Snapshot = paths.SnapshotPath(f.SnapshotDir, template)
		snap, err := docfill.LoadSnapshot(res.Snapshot)
		if err != nil {
			return nil, err
		}
		if n := tmpl.FillFrom(snap); n > 0 {
			docfill.WithField("template", template).Debug("prefilled %d placeholders from snapshot", n)
		}
	}
	res.Unknown = inv.Merge(values)

	if f.Prompt != nil {
		fields, err := tmpl.Fields()
		if err != nil {
			return nil, err
		}
		if err := f.Prompt(fields, inv); err != nil {
			return nil, err
		}
	}

	mapping := make(map[string]string, len(inv))
	for _, token := range inv.Tokens() {
		v := inv[token]
		if v == "" && !f.AllowEmpty {
			res.Empty = append(res.Empty, token)
			continue
		}
		mapping[token] = v
	}
	res.Replacements = tmpl.Apply(mapping)

	name := f.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(template), filepath.Ext(template))
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	if err := f.save(tmpl, name, now(), res); err != nil {
		return nil, err
	}

	if !f.NoSnapshot {
		written, err := docfill.SaveSnapshot(res.Snapshot, nonEmpty(inv))
		if err != nil {
			return nil, err
		}
		if !written {
			res.Snapshot = ""
		}
	}

	if f.Records != nil {
		rec, err := records.NewRecord(template, res.Output, res.Snapshot, mapping)
		if err != nil {
			return nil, err
		}
		if err := f.Records.Append(rec); err != nil {
			return nil, err
		}
		res.RecordID = rec.ID.String()
	}

	return res, nil
}

func (f *Filler) save(tmpl *docfill.Template, name string, now time.Time, res *Result) error {
	f.saveMu.Lock()
	defer f.saveMu.Unlock()

	out, err := paths.OutputPath(f.OutputDir, f.Cascade, name, now)
	if err != nil {
		return err
	}
	if err := tmpl.SaveFile(out); err != nil {
		return err
	}
	res.Output = out
	return nil
}

func nonEmpty(inv docfill.Inventory) map[string]string {
	out := make(map[string]string, len(inv))
	for k, v := range inv {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
