package layout

import (
	"strings"

	"wisp/pkg/dom"
	"wisp/pkg/style"
)

type BoxType int

const (
	BlockBox BoxType = iota
	InlineBox
	NoneBox
	AnonymousBox
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case NoneBox:
		return "none"
	case AnonymousBox:
		return "anonymous"
	}
	return "unknown"
}

// BoxProps is the part of a styled node a box needs to be rendered.
type BoxProps struct {
	NodeType   dom.NodeType
	TagName    string
	Attributes dom.AttrMap
	Text       string
	Properties style.PropertyMap
}

// Box is a node of the box tree. Anonymous boxes have no props. No geometry
// is computed here.
type Box struct {
	Type     BoxType
	Props    *BoxProps
	Children []*Box
}

// Document is the box tree of a styled document.
type Document struct {
	URL         string
	DocumentURI string
	Root        *Box
}

func LayoutDocument(doc *style.StyledDocument) *Document {
	return &Document{
		URL:         doc.URL,
		DocumentURI: doc.DocumentURI,
		Root:        Build(doc.DocumentElement),
	}
}

// Build constructs the box tree for n. Block children are appended directly
// and runs of inline children are collected in anonymous boxes, so a block
// box never has an inline box as a direct child. Children with display none
// are skipped, and a none box gets no children at all.
func Build(n *style.StyledNode) *Box {
	box := newBox(n)
	if box.Type == NoneBox {
		return box
	}
	for _, child := range n.Children {
		switch child.Display() {
		case style.Block:
			box.Children = append(box.Children, Build(child))
		case style.Inline:
			container := box.InlineContainer()
			container.Children = append(container.Children, Build(child))
		}
	}
	return box
}

func newBox(n *style.StyledNode) *Box {
	var typ BoxType
	switch n.Display() {
	case style.Block:
		typ = BlockBox
	case style.None:
		typ = NoneBox
	default:
		typ = InlineBox
	}
	return &Box{
		Type: typ,
		Props: &BoxProps{
			NodeType:   n.Type,
			TagName:    n.TagName,
			Attributes: n.Attributes.Clone(),
			Text:       n.Text,
			Properties: n.Properties,
		},
	}
}

// InlineContainer returns the box inline children of b are appended to. A
// block box reuses its trailing anonymous box or appends a new one; every
// other box is its own inline container.
func (b *Box) InlineContainer() *Box {
	if b.Type != BlockBox {
		return b
	}
	if n := len(b.Children); n > 0 && b.Children[n-1].Type == AnonymousBox {
		return b.Children[n-1]
	}
	anon := &Box{Type: AnonymousBox}
	b.Children = append(b.Children, anon)
	return anon
}

// IsText reports whether b was generated by a text node.
func (b *Box) IsText() bool {
	return b.Props != nil && b.Props.NodeType == dom.TextNode
}

// TagName returns the tag of the element that generated b, or "".
func (b *Box) TagName() string {
	if b.Props == nil || b.Props.NodeType != dom.ElementNode {
		return ""
	}
	return b.Props.TagName
}

func (b *Box) Attribute(name string) string {
	if b.Props == nil {
		return ""
	}
	return b.Props.Attributes[name]
}

// InnerText concatenates the text of every text box below b.
func (b *Box) InnerText() string {
	var sb strings.Builder
	b.writeText(&sb)
	return sb.String()
}

func (b *Box) writeText(sb *strings.Builder) {
	for _, child := range b.Children {
		if child.IsText() {
			sb.WriteString(child.Props.Text)
			continue
		}
		child.writeText(sb)
	}
}
