package style

import (
	"strings"

	"go.uber.org/zap"

	"wisp/pkg/css"
	"wisp/pkg/dom"
)

// DefaultStylesheet is prepended to the styles of every document.
const DefaultStylesheet = "script, style { display: none } p, div { display: block }"

// StyledDocument is the styled counterpart of a document node.
type StyledDocument struct {
	URL             string
	DocumentURI     string
	DocumentElement *StyledNode
}

// Stylesheet parses the default stylesheet followed by the contents of every
// <style> element of doc. Malformed CSS is logged and yields an empty
// stylesheet, so the page still renders without styling.
func Stylesheet(doc *dom.Node, log *zap.Logger) *css.Stylesheet {
	if log == nil {
		log = zap.NewNop()
	}
	src := DefaultStylesheet + "\n" + strings.Join(doc.StyleInners(), "\n")
	sheet, err := css.Parse(src)
	if err != nil {
		log.Warn("Failed to parse stylesheet, rendering unstyled", zap.Error(err))
		return &css.Stylesheet{}
	}
	return sheet
}

// StyleDocument styles the document element of doc, which must be a
// document node.
func StyleDocument(doc *dom.Node, log *zap.Logger) *StyledDocument {
	sheet := Stylesheet(doc, log)
	return &StyledDocument{
		URL:             doc.URL,
		DocumentURI:     doc.DocumentURI,
		DocumentElement: Resolve(doc.DocumentElement(), sheet),
	}
}
