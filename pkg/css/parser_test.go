package css

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AttributeSelectorRule(t *testing.T) {
	sheet, err := Parse("test [foo=bar] { aa: bb; cc: 1em }")
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)

	rule := sheet.Rules[0]
	assert.Equal(t, []Selector{{
		Type:      AttributeSelector,
		TagName:   "test",
		Attribute: "foo",
		Op:        OpEq,
		Value:     "bar",
	}}, rule.Selectors)
	assert.Equal(t, []Declaration{
		{Name: "aa", Value: Keyword("bb")},
		{Name: "cc", Value: Length(1, Em)},
	}, rule.Declarations)
}

func TestParse_MultipleRules(t *testing.T) {
	sheet, err := Parse("test [foo=bar] { aa: bb; cc: 1em } rule { ee: dd;  }")
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 2)

	assert.Equal(t, []Selector{{Type: TypeSelector, TagName: "rule"}}, sheet.Rules[1].Selectors)
	assert.Equal(t, []Declaration{{Name: "ee", Value: Keyword("dd")}}, sheet.Rules[1].Declarations)
}

func TestParse_DefaultStylesheetShape(t *testing.T) {
	sheet, err := Parse("script, style { display: none } p, div { display: block }")
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 2)

	assert.Equal(t, []Selector{
		{Type: TypeSelector, TagName: "script"},
		{Type: TypeSelector, TagName: "style"},
	}, sheet.Rules[0].Selectors)
	assert.Equal(t, Keyword("none"), sheet.Rules[0].Declarations[0].Value)
	assert.Equal(t, Keyword("block"), sheet.Rules[1].Declarations[0].Value)
}

func TestParse_Selectors(t *testing.T) {
	sheet, err := Parse("* { a: b }\n.note { a: b }\ninput [ class~=big ] { a: b }")
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 3)

	assert.Equal(t, Selector{Type: UniversalSelector}, sheet.Rules[0].Selectors[0])
	assert.Equal(t, Selector{Type: ClassSelector, ClassName: "note"}, sheet.Rules[1].Selectors[0])
	assert.Equal(t, Selector{
		Type:      AttributeSelector,
		TagName:   "input",
		Attribute: "class",
		Op:        OpContain,
		Value:     "big",
	}, sheet.Rules[2].Selectors[0])
}

func TestParse_Declarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Declaration
	}{
		{"empty", "p {}", nil},
		{"whitespace only", "p {   }", nil},
		{"no trailing semicolon", "p { a: b }", []Declaration{{Name: "a", Value: Keyword("b")}}},
		{"trailing semicolon", "p { a: b; }", []Declaration{{Name: "a", Value: Keyword("b")}}},
		{"spaces around colon", "p { a : 12em }", []Declaration{{Name: "a", Value: Length(12, Em)}}},
		{"hyphenated names", "a { text-decoration: line-through }", []Declaration{
			{Name: "text-decoration", Value: Keyword("line-through")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := Parse(tt.src)
			require.NoError(t, err)
			require.Len(t, sheet.Rules, 1)
			assert.Equal(t, tt.want, sheet.Rules[0].Declarations)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, src := range []string{"", "   \n  ", "/* nothing */"} {
		sheet, err := Parse(src)
		require.NoError(t, err)
		assert.Empty(t, sheet.Rules)
	}
}

func TestParse_CommentsAreWhitespace(t *testing.T) {
	sheet, err := Parse("/* head */ p /* x */ { /* y */ a: b /* z */ }")
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, []Declaration{{Name: "a", Value: Keyword("b")}}, sheet.Rules[0].Declarations)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"missing brace":        "p { a: b",
		"missing selector":     "{ a: b }",
		"unsupported unit":     "p { a: 12px }",
		"bare number":          "p { a: 12 }",
		"fractional length":    "p { a: 1.5em }",
		"id selector":          "#main { a: b }",
		"missing colon":        "p { a b }",
		"double semicolon":     "p { a: b;; }",
		"bad attribute op":     "p[a|=b] { a: b }",
		"unterminated bracket": "p[a=b { a: b }",
		"trailing comma":       "p, { a: b }",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidResource), "got %v", err)
		})
	}
}

func TestParse_ErrorOffset(t *testing.T) {
	_, err := Parse("p { a: b }\nq { c: 3px }")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 18, perr.Offset)
}

func TestStylesheet_String(t *testing.T) {
	sheet, err := Parse("a, .b { x: y; z: 2em } c[d~=e] {}")
	require.NoError(t, err)
	assert.Equal(t, "a, .b { x: y; z: 2em }\nc[d~=e] { }", sheet.String())
}

func TestParseSelectors(t *testing.T) {
	sels, err := ParseSelectors(" p, .note ,a[href~=x] ")
	require.NoError(t, err)
	assert.Equal(t, []Selector{
		{Type: TypeSelector, TagName: "p"},
		{Type: ClassSelector, ClassName: "note"},
		{Type: AttributeSelector, TagName: "a", Attribute: "href", Op: OpContain, Value: "x"},
	}, sels)

	for _, src := range []string{"", "p,", "p {", "#id", "p q"} {
		_, err := ParseSelectors(src)
		assert.ErrorIs(t, err, ErrInvalidResource, "source %q", src)
	}
}
