package docfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Match
	}{
		{
			name: "no placeholders",
			text: "Dear hiring manager,",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "both grammars in order",
			text: "At {{Company}} as [[Engineer]].",
			want: []Match{
				{Start: 3, End: 14, Token: "{{Company}}"},
				{Start: 18, End: 30, Token: "[[Engineer]]"},
			},
		},
		{
			name: "trailing closers fold into the match",
			text: "{{a}}}} and [[b]]]",
			want: []Match{
				{Start: 0, End: 7, Token: "{{a}}}}"},
				{Start: 12, End: 18, Token: "[[b]]]"},
			},
		},
		{
			name: "opening braces do not nest",
			text: "{{outer {{inner}} }}",
			want: []Match{
				{Start: 0, End: 17, Token: "{{outer {{inner}}"},
			},
		},
		{
			name: "unclosed is ignored",
			text: "{{open and [[closed]]",
			want: []Match{
				{Start: 11, End: 21, Token: "[[closed]]"},
			},
		},
		{
			name: "byte offsets with multibyte text",
			text: "Grüße {{Name}}",
			want: []Match{
				{Start: 8, End: 16, Token: "{{Name}}"},
			},
		},
		{
			name: "extended default form",
			text: "[[|Letter@Greeting|Dear team]],",
			want: []Match{
				{Start: 0, End: 30, Token: "[[|Letter@Greeting|Dear team]]"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Match
			for m := range Scan(tt.text) {
				got = append(got, m)
				assert.Equal(t, m.Token, tt.text[m.Start:m.End])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan_Restartable(t *testing.T) {
	seq := Scan("{{a}} {{b}} {{c}}")

	var first []string
	for m := range seq {
		first = append(first, m.Token)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"{{a}}", "{{b}}"}, first)

	var second []string
	for m := range seq {
		second = append(second, m.Token)
	}
	assert.Equal(t, []string{"{{a}}", "{{b}}", "{{c}}"}, second)
}

func TestScanTokens(t *testing.T) {
	assert.Equal(t, []string{"{{x}}", "[[y]]", "{{x}}"}, ScanTokens("{{x}}[[y]]{{x}}"))
	assert.Empty(t, ScanTokens("nothing here"))
}
