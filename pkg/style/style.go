package style

import (
	"wisp/pkg/css"
	"wisp/pkg/dom"
)

// PropertyMap holds the resolved value of each property for one node.
type PropertyMap map[string]css.Value

type Display int

const (
	Inline Display = iota
	Block
	None
)

func (d Display) String() string {
	switch d {
	case Block:
		return "block"
	case None:
		return "none"
	}
	return "inline"
}

// StyledNode pairs a copy of a DOM node's content with its resolved
// properties. It does not reference the DOM it was built from, so mutating
// the DOM afterwards leaves it unchanged.
type StyledNode struct {
	Type       dom.NodeType
	TagName    string
	Attributes dom.AttrMap
	Text       string

	// DocumentNode
	URL         string
	DocumentURI string

	Properties PropertyMap
	Children   []*StyledNode
}

// Resolve builds the styled tree for n. Rules are applied in stylesheet
// order and a later declaration of the same property overwrites an earlier
// one. A nil sheet styles nothing.
func Resolve(n *dom.Node, sheet *css.Stylesheet) *StyledNode {
	sn := &StyledNode{
		Type:        n.Type,
		TagName:     n.TagName,
		Attributes:  n.Attributes.Clone(),
		Text:        n.Text,
		URL:         n.URL,
		DocumentURI: n.DocumentURI,
		Properties:  ComputeProperties(n, sheet),
	}
	if len(n.Children) > 0 {
		sn.Children = make([]*StyledNode, len(n.Children))
		for i, child := range n.Children {
			sn.Children[i] = Resolve(child, sheet)
		}
	}
	return sn
}

// ComputeProperties runs the cascade for a single node.
func ComputeProperties(n *dom.Node, sheet *css.Stylesheet) PropertyMap {
	props := PropertyMap{}
	if sheet == nil {
		return props
	}
	for _, rule := range sheet.Rules {
		if !rule.Matches(n) {
			continue
		}
		for _, decl := range rule.Declarations {
			props[decl.Name] = decl.Value
		}
	}
	return props
}

// Value returns the resolved value of the named property.
func (n *StyledNode) Value(name string) (css.Value, bool) {
	v, ok := n.Properties[name]
	return v, ok
}

// Display maps the display property to a Display. Anything other than the
// keywords block and none, including an absent property, is Inline.
func (n *StyledNode) Display() Display {
	v, ok := n.Value("display")
	if !ok || v.Type != css.KeywordValue {
		return Inline
	}
	switch v.Keyword {
	case "block":
		return Block
	case "none":
		return None
	}
	return Inline
}

func (n *StyledNode) GetAttribute(name string) (string, bool) {
	v, ok := n.Attributes[name]
	return v, ok
}
