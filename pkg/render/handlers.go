package render

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/net/html/atom"

	"wisp/pkg/layout"
)

// Handler renders the box of an element in place of its children.
type Handler func(b *layout.Box) Widget

const defaultInputWidth = 10

var (
	handlersMu sync.RWMutex
	handlers   = map[atom.Atom]Handler{
		atom.A:      renderLink,
		atom.I:      renderItalic,
		atom.Input:  renderInput,
		atom.Button: renderButton,
	}
)

// Register installs h for elements named tag, replacing any previous
// handler. Only standard HTML tag names can be registered.
func Register(tag string, h Handler) error {
	a := atom.Lookup([]byte(tag))
	if a == 0 {
		return fmt.Errorf("render: %q is not a known tag name", tag)
	}
	handlersMu.Lock()
	defer handlersMu.Unlock()
	if h == nil {
		delete(handlers, a)
	} else {
		handlers[a] = h
	}
	return nil
}

// Handled lists the tag names with a registered handler, sorted.
func Handled() []string {
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	tags := make([]string, 0, len(handlers))
	for a := range handlers {
		tags = append(tags, a.String())
	}
	sort.Strings(tags)
	return tags
}

func lookup(tag string) Handler {
	if tag == "" {
		return nil
	}
	a := atom.Lookup([]byte(tag))
	if a == 0 {
		return nil
	}
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	return handlers[a]
}

func renderLink(b *layout.Box) Widget {
	return &Link{Label: b.InnerText(), Href: b.Attribute("href")}
}

func renderItalic(b *layout.Box) Widget {
	return &Text{Text: b.InnerText(), Italic: true}
}

func renderButton(b *layout.Box) Widget {
	return &Button{Label: b.InnerText(), OnClick: b.Attribute("onclick")}
}

func renderInput(b *layout.Box) Widget {
	switch b.Attribute("type") {
	case "button", "submit":
		return &Button{Label: b.Attribute("value"), OnClick: b.Attribute("onclick")}
	}
	return &TextInput{
		Name:  b.Attribute("name"),
		Value: b.Attribute("value"),
		Width: defaultInputWidth,
	}
}
