package html

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wisp/pkg/dom"
)

func TestParser_SingleElement(t *testing.T) {
	root, err := Parse([]byte("<p>Hello World</p>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := dom.NewElement("p", nil, dom.NewText("Hello World"))
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	if _, err := dom.NewDocument("u", "u", root); err != nil {
		t.Errorf("document construction failed: %v", err)
	}
}

func TestParser_MultipleTopLevelWrapped(t *testing.T) {
	root, err := Parse([]byte("<p>Hello World (1)</p><p>Hello World (2)</p>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := dom.NewElement("html", nil,
		dom.NewElement("p", nil, dom.NewText("Hello World (1)")),
		dom.NewElement("p", nil, dom.NewText("Hello World (2)")),
	)
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_EmptyInput(t *testing.T) {
	root, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.TagName != "html" || len(root.Children) != 0 {
		t.Errorf("expected empty <html>, got <%s> with %d children", root.TagName, len(root.Children))
	}
}

func TestParser_Attributes(t *testing.T) {
	root, err := Parse([]byte("<div id=\"main\"   class = \"a b\"\n data-x=\"\" >x</div>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := dom.AttrMap{"id": "main", "class": "a b", "data-x": ""}
	if diff := cmp.Diff(want, root.Attributes); diff != "" {
		t.Errorf("attribute mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_NestedElements(t *testing.T) {
	root, err := Parse([]byte("<div><p>one</p>text<span><i>two</i></span></div>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(root.Children))
	}
	if root.Children[1].Type != dom.TextNode || root.Children[1].Text != "text" {
		t.Errorf("expected text child 'text', got %+v", root.Children[1])
	}
	if got := root.Children[2].Children[0].TagName; got != "i" {
		t.Errorf("expected nested <i>, got <%s>", got)
	}
}

func TestParser_TextKeptVerbatim(t *testing.T) {
	for _, text := range []string{"a", "  leading and trailing  ", "line\nbreak", "&amp; > \"quotes\""} {
		nodes, err := ParseFragment([]byte(text))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", text, err)
		}
		if len(nodes) != 1 || nodes[0].Type != dom.TextNode || nodes[0].Text != text {
			t.Errorf("%q: expected a single identical text node, got %+v", text, nodes)
		}
	}
}

func TestParser_ElementTagMismatch(t *testing.T) {
	_, err := NewParser("<p>Hello World</div>").element()
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	if !errors.Is(err, ErrInvalidResource) {
		t.Errorf("expected ErrInvalidResource, got %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Offset != 14 {
		t.Errorf("expected error at offset 14, got %v", err)
	}
}

func TestParser_ElementMatchingNames(t *testing.T) {
	for _, name := range []string{"p", "div", "h1", "customTag"} {
		el, err := NewParser("<" + name + ">x</" + name + ">").element()
		if err != nil {
			t.Fatalf("<%s>: unexpected error: %v", name, err)
		}
		if el.TagName != name {
			t.Errorf("expected tag '%s', got '%s'", name, el.TagName)
		}
	}
}

func TestParser_Errors(t *testing.T) {
	cases := map[string]string{
		"attribute without value": `<p id>x</p>`,
		"unquoted value":          `<p id=x>x</p>`,
		"unterminated value":      `<p id="x>x</p>`,
		"unterminated tag":        `<p`,
		"missing close tag":       `<p>text`,
		"stray close tag":         `<p>x</p></div>`,
		"case sensitive names":    `<P>x</p>`,
		"lone angle bracket":      `a < b`,
		"unterminated comment":    `<!-- x`,
		"unterminated script":     `<script>x`,
	}
	for name, input := range cases {
		if _, err := Parse([]byte(input)); !errors.Is(err, ErrInvalidResource) {
			t.Errorf("%s: expected ErrInvalidResource, got %v", name, err)
		}
	}
}

func TestParser_InvalidUTF8(t *testing.T) {
	if _, err := Parse([]byte{'<', 'p', '>', 0xff, '<', '/', 'p', '>'}); !errors.Is(err, ErrInvalidResource) {
		t.Errorf("expected ErrInvalidResource, got %v", err)
	}
}

func TestParser_CommentsAndDoctypeSkipped(t *testing.T) {
	root, err := Parse([]byte("<!DOCTYPE html><!-- c --><html><body>hi<!-- inner --></body></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := dom.NewElement("html", nil, dom.NewElement("body", nil, dom.NewText("hi")))
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_SelfClosing(t *testing.T) {
	root, err := Parse([]byte(`<div>a<br/>b<input type="text" /></div>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 4 {
		t.Fatalf("expected 4 children, got %d", len(root.Children))
	}
	if root.Children[1].TagName != "br" || len(root.Children[1].Children) != 0 {
		t.Errorf("expected empty <br>, got %+v", root.Children[1])
	}
	if typ, _ := root.Children[3].GetAttribute("type"); typ != "text" {
		t.Errorf("expected type=text, got '%s'", typ)
	}
}

func TestParser_RawTextElements(t *testing.T) {
	root, err := Parse([]byte(`<div><script>if (a < b) { x("<p>"); }</script><style></style></div>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	script := root.Children[0]
	if got := script.InnerText(); got != `if (a < b) { x("<p>"); }` {
		t.Errorf("unexpected script text '%s'", got)
	}
	if len(root.Children[1].Children) != 0 {
		t.Error("empty <style> should have no children")
	}
}

func TestParser_ErrorPosition(t *testing.T) {
	_, err := Parse([]byte("<div>\n  <p>x</b>\n</div>"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Line != 2 || perr.Column != 7 {
		t.Errorf("expected line 2 column 7, got line %d column %d", perr.Line, perr.Column)
	}
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument("file:///tmp/a.html", []byte("<p>a</p><p>b</p>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.URL != "file:///tmp/a.html" || doc.DocumentURI != doc.URL {
		t.Errorf("unexpected urls %q %q", doc.URL, doc.DocumentURI)
	}
	if doc.DocumentElement().TagName != "html" {
		t.Error("expected synthesized html document element")
	}
}

func TestSetInnerHTML(t *testing.T) {
	n := dom.NewElement("div", nil, dom.NewText("old"))
	if err := SetInnerHTML(n, `<b>new</b> text`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := n.InnerHTML(); got != "<b>new</b> text" {
		t.Errorf("unexpected innerHTML '%s'", got)
	}

	if err := SetInnerHTML(n, `<b>broken</i>`); !errors.Is(err, ErrInvalidResource) {
		t.Errorf("expected ErrInvalidResource, got %v", err)
	}
	if got := n.InnerHTML(); got != "<b>new</b> text" {
		t.Errorf("failed innerHTML must leave children untouched, got '%s'", got)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	src := `<div class="x" id="a"><p>one</p>two<span title="t">three</span></div>`
	root, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := root.OuterHTML(); got != src {
		t.Errorf("expected '%s', got '%s'", src, got)
	}
}
