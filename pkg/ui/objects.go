package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"wisp/pkg/render"
)

// Actions receives the user interactions of rendered widgets.
type Actions interface {
	// Follow is called with the unresolved href of an activated link.
	Follow(href string)
	// Click is called with the onclick script of a pressed button.
	Click(script string)
}

// Objects maps a widget tree to fyne canvas objects.
func Objects(w render.Widget, actions Actions) fyne.CanvasObject {
	switch w := w.(type) {
	case *render.Container:
		objs := make([]fyne.CanvasObject, 0, len(w.Children))
		for _, child := range w.Children {
			objs = append(objs, Objects(child, actions))
		}
		if w.Orientation == render.Vertical {
			return container.NewVBox(objs...)
		}
		return container.NewHBox(objs...)
	case *render.Text:
		label := widget.NewLabel(w.Text)
		label.TextStyle = fyne.TextStyle{Italic: w.Italic}
		return label
	case *render.Link:
		href := w.Href
		link := widget.NewHyperlink(w.Label, nil)
		link.OnTapped = func() { actions.Follow(href) }
		return link
	case *render.Button:
		script := w.OnClick
		return widget.NewButton(w.Label, func() {
			if script != "" {
				actions.Click(script)
			}
		})
	case *render.TextInput:
		entry := widget.NewEntry()
		entry.SetText(w.Value)
		width := fyne.MeasureText(strings.Repeat("M", w.Width), theme.TextSize(), fyne.TextStyle{}).Width
		return container.NewGridWrap(fyne.NewSize(width+2*theme.InnerPadding(), entry.MinSize().Height), entry)
	}
	return container.NewVBox()
}
