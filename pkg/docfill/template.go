package docfill

import (
	"errors"
	"io"
)

// ErrTemplateClosed is returned when a closed Template is used.
var ErrTemplateClosed = errors.New("template is closed")

// Template is an opened document together with its harvested placeholders.
// A Template is not safe for concurrent use; process independent documents
// with independent Templates.
type Template struct {
	name   string
	doc    *Document
	engine *Engine
	inv    Inventory
}

// Name returns the path the template was prepared from, or "" for readers.
func (t *Template) Name() string { return t.name }

// Document returns the underlying document, or nil once the template is closed.
func (t *Template) Document() *Document { return t.doc }

// Placeholders returns the harvested inventory, harvesting on first use. The
// returned map is the template's own; edits to it are seen by later calls.
func (t *Template) Placeholders() Inventory {
	if t.doc == nil {
		return Inventory{}
	}
	if t.inv == nil {
		t.inv = Harvest(t.doc, nil)
		Debug("harvested %d placeholders", len(t.inv))
	}
	return t.inv
}

// Refresh discards the inventory and harvests the document again.
func (t *Template) Refresh() Inventory {
	t.inv = nil
	return t.Placeholders()
}

// FillFrom gives every empty placeholder the value it had in snap and returns
// how many were filled.
func (t *Template) FillFrom(snap Snapshot) int {
	return t.Placeholders().Fill(snap)
}

// Fields parses the inventory into FieldData sorted by token. Tokens that do
// not parse are logged and skipped, or reported as an error in strict mode.
func (t *Template) Fields() ([]FieldData, error) {
	fields, err := t.Placeholders().Fields(t.engine.Parse)
	if err == nil {
		return fields, nil
	}
	if t.engine.config.StrictMode {
		return fields, err
	}

	var multi *MultiError
	if errors.As(err, &multi) {
		for _, e := range multi.Errors() {
			WithField("template", t.name).Warn("ignoring placeholder: %v", e)
		}
	} else {
		WithField("template", t.name).Warn("ignoring placeholder: %v", err)
	}
	return fields, nil
}

// Apply replaces placeholders throughout the document with values and
// returns the number of replacements made.
func (t *Template) Apply(values map[string]string) int {
	if t.doc == nil {
		return 0
	}
	n := Replace(t.doc, values)
	WithFields(Fields{"template": t.name, "count": n}).Info("applied replacements")
	return n
}

// ReplaceHyperlink rewrites hyperlinks matching oldURL and oldText exactly.
func (t *Template) ReplaceHyperlink(oldURL, oldText, newURL, newText string) int {
	if t.doc == nil {
		return 0
	}
	return RewriteHyperlinks(t.doc, oldURL, oldText, newURL, newText)
}

// Hyperlinks lists the document's hyperlinks.
func (t *Template) Hyperlinks() []HyperlinkInfo {
	if t.doc == nil {
		return nil
	}
	return Hyperlinks(t.doc)
}

// Save writes the document to w.
func (t *Template) Save(w io.Writer) error {
	if t.doc == nil {
		return ErrTemplateClosed
	}
	return t.doc.Save(w)
}

// SaveFile writes the document to path atomically.
func (t *Template) SaveFile(path string) error {
	if t.doc == nil {
		return ErrTemplateClosed
	}
	if err := t.doc.SaveFile(path); err != nil {
		return err
	}
	WithFields(Fields{"template": t.name, "output": path}).Info("saved document")
	return nil
}

// Close releases the document. Closing twice is a no-op.
func (t *Template) Close() error {
	t.doc = nil
	t.inv = nil
	return nil
}
