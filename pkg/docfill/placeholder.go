package docfill

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Kind classifies a placeholder token.
type Kind int

const (
	KindInvalid Kind = iota
	KindRequired
	KindDefault
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindDefault:
		return "default"
	default:
		return "invalid"
	}
}

// MarshalText renders the kind by name so it reads well in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

const (
	requiredOpen  = "{{"
	requiredClose = "}}"
	defaultOpen   = "[["
	defaultClose  = "]]"
	groupSep      = "@"
)

// defaultWithGroups matches the inner text of [[ |groups@label| default ]].
// The default may not contain brackets or further pipes.
var defaultWithGroups = regexp.MustCompile(`^\|\s*([^|]*)\s*\|\s*([^\[\]|]+)\s*$`)

// FieldData is the parsed projection of one placeholder token.
//
// OriginalText is the identity of a field: two FieldData with the same
// OriginalText are the same field regardless of the other values.
type FieldData struct {
	OriginalText string   `json:"original_text"`
	Kind         Kind     `json:"type"`
	Groups       []string `json:"groups"`
	Label        string   `json:"label"`
	DefaultValue string   `json:"default_value"`
}

// Equal reports whether both fields stand for the same token.
func (f FieldData) Equal(other FieldData) bool {
	return f.OriginalText == other.OriginalText
}

// Less orders fields by token text.
func (f FieldData) Less(other FieldData) bool {
	return f.OriginalText < other.OriginalText
}

// IsZero reports whether the field has no token text.
func (f FieldData) IsZero() bool {
	return f.OriginalText == ""
}

// SortFields orders fields by token text in place.
func SortFields(fields []FieldData) {
	slices.SortFunc(fields, func(a, b FieldData) int {
		return strings.Compare(a.OriginalText, b.OriginalText)
	})
}

// Parse turns a placeholder token into its FieldData.
//
// Required tokens look like {{label}} or {{group@group@label}}; their default
// value is always empty. Default tokens look like [[label]], where the label is
// also the default value, or [[|group@label|default]].
func Parse(token string) (FieldData, error) {
	if !utf8.ValidString(token) {
		return FieldData{OriginalText: token}, newPlaceholderError(token, ErrInvalidInput, "not valid UTF-8")
	}

	t := strings.TrimSpace(token)
	field := FieldData{OriginalText: token, Groups: []string{}}

	switch {
	case len(t) >= 4 && strings.HasPrefix(t, requiredOpen) && strings.HasSuffix(t, requiredClose):
		inner := strings.TrimSpace(t[2 : len(t)-2])
		if inner == "" || inner == groupSep {
			return FieldData{OriginalText: token}, newPlaceholderError(token, ErrMalformedPlaceholder, "empty required placeholder")
		}
		parts := strings.Split(inner, groupSep)
		field.Kind = KindRequired
		field.Groups = append(field.Groups, parts[:len(parts)-1]...)
		field.Label = parts[len(parts)-1]
		return field, nil

	case len(t) >= 4 && strings.HasPrefix(t, defaultOpen) && strings.HasSuffix(t, defaultClose):
		inner := strings.TrimSpace(t[2 : len(t)-2])
		if inner == "" {
			return FieldData{OriginalText: token}, newPlaceholderError(token, ErrMalformedPlaceholder, "empty default placeholder")
		}
		field.Kind = KindDefault
		if !strings.Contains(inner, "|") {
			field.Label = inner
			field.DefaultValue = inner
			return field, nil
		}

		m := defaultWithGroups.FindStringSubmatch(inner)
		if m == nil {
			return FieldData{OriginalText: token}, newPlaceholderError(token, ErrMalformedPlaceholder, "expected [[|group@label|default]]")
		}
		field.DefaultValue = m[2]
		if m[1] != "" {
			parts := strings.Split(m[1], groupSep)
			field.Groups = append(field.Groups, parts[:len(parts)-1]...)
			field.Label = parts[len(parts)-1]
		}
		return field, nil
	}

	return FieldData{OriginalText: token}, newPlaceholderError(token, ErrUnrecognizedGrammar, "")
}
