package css

import (
	"strconv"
	"strings"
)

// Stylesheet is an ordered list of rules. Order matters: when two matching
// rules set the same property the later one wins.
type Stylesheet struct {
	Rules []*Rule
}

// Rule applies its declarations to every node matched by any of its
// selectors.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

type Declaration struct {
	Name  string
	Value Value
}

type SelectorType int

const (
	UniversalSelector SelectorType = iota // *
	TypeSelector                          // p
	ClassSelector                         // .note
	AttributeSelector                     // input[type=text]
)

type AttributeOp int

const (
	OpEq      AttributeOp = iota // =
	OpContain                    // ~=
)

func (op AttributeOp) String() string {
	if op == OpContain {
		return "~="
	}
	return "="
}

// Selector is a simple selector. Only the fields relevant to Type are set.
type Selector struct {
	Type      SelectorType
	TagName   string // TypeSelector, AttributeSelector
	ClassName string // ClassSelector
	Attribute string // AttributeSelector
	Op        AttributeOp
	Value     string // AttributeSelector
}

func (s Selector) String() string {
	switch s.Type {
	case UniversalSelector:
		return "*"
	case ClassSelector:
		return "." + s.ClassName
	case AttributeSelector:
		return s.TagName + "[" + s.Attribute + s.Op.String() + s.Value + "]"
	}
	return s.TagName
}

type ValueType int

const (
	KeywordValue ValueType = iota
	LengthValue
)

type Unit int

const (
	Em Unit = iota
)

func (u Unit) String() string {
	return "em"
}

// Value is either a keyword or a length.
type Value struct {
	Type    ValueType
	Keyword string
	Length  uint
	Unit    Unit
}

func Keyword(s string) Value {
	return Value{Type: KeywordValue, Keyword: s}
}

func Length(n uint, unit Unit) Value {
	return Value{Type: LengthValue, Length: n, Unit: unit}
}

func (v Value) String() string {
	if v.Type == LengthValue {
		return strconv.FormatUint(uint64(v.Length), 10) + v.Unit.String()
	}
	return v.Keyword
}

func (r *Rule) String() string {
	var sb strings.Builder
	for i, sel := range r.Selectors {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(sel.String())
	}
	sb.WriteString(" {")
	for i, d := range r.Declarations {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(" " + d.Name + ": " + d.Value.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// String renders the stylesheet back into source form.
func (s *Stylesheet) String() string {
	lines := make([]string, len(s.Rules))
	for i, r := range s.Rules {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
