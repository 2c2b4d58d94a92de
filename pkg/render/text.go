package render

import (
	"io"
	"strings"
	"unicode/utf8"
)

// WriteText writes a plain text rendering of w. Columns are stacked, rows
// are placed side by side separated by a space.
func WriteText(out io.Writer, w Widget) error {
	lines := textLines(w)
	if len(lines) == 0 {
		return nil
	}
	_, err := io.WriteString(out, strings.Join(lines, "\n")+"\n")
	return err
}

func textLines(w Widget) []string {
	switch w := w.(type) {
	case *Text:
		if w.Italic {
			return []string{"_" + w.Text + "_"}
		}
		return []string{w.Text}
	case *Link:
		return []string{"[" + w.Label + "](" + w.Href + ")"}
	case *Button:
		return []string{"< " + w.Label + " >"}
	case *TextInput:
		pad := w.Width - utf8.RuneCountInString(w.Value)
		if pad < 0 {
			pad = 0
		}
		return []string{"[" + w.Value + strings.Repeat("_", pad) + "]"}
	case *Container:
		if w.Orientation == Vertical {
			var lines []string
			for _, child := range w.Children {
				lines = append(lines, textLines(child)...)
			}
			return lines
		}
		return joinColumns(w.Children)
	}
	return nil
}

// joinColumns renders each widget as a block and places the blocks next to
// each other, padding shorter lines.
func joinColumns(children []Widget) []string {
	var blocks [][]string
	height := 0
	for _, child := range children {
		lines := textLines(child)
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, lines)
		if len(lines) > height {
			height = len(lines)
		}
	}
	if len(blocks) == 0 {
		return nil
	}

	rows := make([]string, height)
	for i, block := range blocks {
		width := 0
		for _, l := range block {
			if n := utf8.RuneCountInString(l); n > width {
				width = n
			}
		}
		for row := 0; row < height; row++ {
			var cell string
			if row < len(block) {
				cell = block[row]
			}
			if i < len(blocks)-1 {
				cell += strings.Repeat(" ", width-utf8.RuneCountInString(cell)) + " "
			}
			rows[row] += cell
		}
	}
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}
	return rows
}
