package render

import (
	"strings"

	"wisp/pkg/layout"
)

// Widget is a node of the widget tree built from a box tree. The concrete
// types are Container, Text, Link, Button and TextInput.
type Widget interface {
	widget()
}

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Container lays its children out in a row or a column.
type Container struct {
	Orientation Orientation
	Children    []Widget
}

type Text struct {
	Text   string
	Italic bool
}

// Link navigates to Href when activated. Href is not resolved.
type Link struct {
	Label string
	Href  string
}

// Button runs the OnClick script, if any, when pressed.
type Button struct {
	Label   string
	OnClick string
}

// TextInput is an editable single line field.
type TextInput struct {
	Name  string
	Value string
	Width int
}

func (*Container) widget() {}
func (*Text) widget()      {}
func (*Link) widget()      {}
func (*Button) widget()    {}
func (*TextInput) widget() {}

// Build converts a box tree into widgets. Block boxes become vertical
// containers, inline and anonymous boxes horizontal ones, and none boxes
// empty containers. Elements with a registered handler are rendered by it.
func Build(b *layout.Box) *Container {
	c := &Container{Orientation: Horizontal}
	switch b.Type {
	case layout.NoneBox:
		return c
	case layout.BlockBox:
		c.Orientation = Vertical
	}

	if h := lookup(b.TagName()); h != nil {
		if w := h(b); w != nil {
			c.Children = append(c.Children, w)
		}
		return c
	}
	if b.IsText() {
		if text := displayText(b.Props.Text); text != "" {
			c.Children = append(c.Children, &Text{Text: text})
		}
		return c
	}
	for _, child := range b.Children {
		c.Children = append(c.Children, Build(child))
	}
	return c
}

// displayText drops line breaks and surrounding whitespace.
func displayText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", ""))
}

// Walk calls fn for w and every widget below it, depth first.
func Walk(w Widget, fn func(Widget)) {
	fn(w)
	if c, ok := w.(*Container); ok {
		for _, child := range c.Children {
			Walk(child, fn)
		}
	}
}
