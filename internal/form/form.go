// Package form prompts for placeholder values with an interactive terminal form.
package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/applytrack/docfill/pkg/docfill"
)

// GeneralSection titles the fields that belong to no group.
const GeneralSection = "General"

// ErrCancelled is returned when the user aborts the form.
var ErrCancelled = errors.New("form cancelled")

// Section is one page of the form: the fields sharing a top-level group.
type Section struct {
	Title  string
	Fields []docfill.FieldData
}

// Sections splits fields by their first group. Ungrouped fields come first,
// then the groups in name order; fields keep their token order inside a section.
func Sections(fields []docfill.FieldData) []Section {
	sorted := make([]docfill.FieldData, len(fields))
	copy(sorted, fields)
	docfill.SortFields(sorted)

	var general []docfill.FieldData
	byGroup := make(map[string][]docfill.FieldData)
	for _, f := range sorted {
		if len(f.Groups) == 0 {
			general = append(general, f)
			continue
		}
		byGroup[f.Groups[0]] = append(byGroup[f.Groups[0]], f)
	}

	var out []Section
	if len(general) > 0 {
		out = append(out, Section{Title: GeneralSection, Fields: general})
	}
	names := make([]string, 0, len(byGroup))
	for name := range byGroup {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, Section{Title: name, Fields: byGroup[name]})
	}
	return out
}

// Validator returns the input check for a field: required placeholders must
// not be left blank.
func Validator(f docfill.FieldData) func(string) error {
	return func(s string) error {
		if f.Kind == docfill.KindRequired && strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", f.Label)
		}
		return nil
	}
}

// Description is the help line under a field's title.
func Description(f docfill.FieldData) string {
	var parts []string
	if len(f.Groups) > 1 {
		parts = append(parts, strings.Join(f.Groups[1:], " / "))
	}
	if f.DefaultValue != "" && f.DefaultValue != f.Label {
		parts = append(parts, "default: "+f.DefaultValue)
	}
	parts = append(parts, f.OriginalText)
	return strings.Join(parts, " · ")
}

// Form edits a set of placeholder values.
type Form struct {
	sections []Section
	values   map[string]string
	inputs   map[string]*string
}

// New builds a form over fields, prefilled from values. Run writes the
// answers back into values.
func New(fields []docfill.FieldData, values map[string]string) *Form {
	f := &Form{
		sections: Sections(fields),
		values:   values,
		inputs:   make(map[string]*string, len(fields)),
	}
	for _, field := range fields {
		v := values[field.OriginalText]
		f.inputs[field.OriginalText] = &v
	}
	return f
}

// Sections returns the form layout.
func (f *Form) Sections() []Section { return f.sections }

func (f *Form) build() *huh.Form {
	groups := make([]*huh.Group, 0, len(f.sections))
	for _, sec := range f.sections {
		fields := make([]huh.Field, 0, len(sec.Fields))
		for _, fd := range sec.Fields {
			input := huh.NewInput().
				Title(fd.Label).
				Description(Description(fd)).
				Value(f.inputs[fd.OriginalText]).
				Validate(Validator(fd))
			if fd.DefaultValue != "" {
				input = input.Placeholder(fd.DefaultValue)
			}
			fields = append(fields, input)
		}
		groups = append(groups, huh.NewGroup(fields...).Title(sec.Title))
	}
	return huh.NewForm(groups...)
}

// Run shows the form and stores the answers. Nothing is stored when the
// user aborts.
func (f *Form) Run() error {
	if len(f.sections) == 0 {
		return nil
	}
	if err := f.build().Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}
	f.commit()
	return nil
}

func (f *Form) commit() {
	for token, v := range f.inputs {
		f.values[token] = *v
	}
}
