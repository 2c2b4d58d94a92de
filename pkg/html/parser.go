package html

import (
	"fmt"
	"unicode/utf8"

	"wisp/pkg/dom"
)

// Parser implements the strict markup grammar:
//
//	nodes    := (element | text)*
//	element  := "<" name attrs ">" nodes "</" name ">"  |  "<" name attrs "/>"
//	attrs    := (ws* attr)* ws*
//	attr     := name ws* "=" ws* '"' [^"]* '"'
//	text     := [^<]+
//
// Comments and markup declarations are skipped. There is no error recovery:
// a mismatched close tag fails the whole parse.
type Parser struct {
	*Tokenizer
}

func NewParser(input string) *Parser {
	return &Parser{Tokenizer: NewTokenizer(input)}
}

// Parse parses a complete document and returns its document element. A
// single top-level node is returned as is; any other number of top-level
// nodes is wrapped in a synthesized <html> element.
func Parse(data []byte) (*dom.Node, error) {
	nodes, err := parseNodes(data)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return dom.NewElement("html", nil, nodes...), nil
}

// ParseDocument parses data and wraps the result into a document node
// stamped with url.
func ParseDocument(url string, data []byte) (*dom.Node, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return dom.NewDocument(url, url, root)
}

// ParseFragment parses markup meant to be spliced into an existing element
// and returns the top-level nodes without wrapping them.
func ParseFragment(data []byte) ([]*dom.Node, error) {
	return parseNodes(data)
}

// SetInnerHTML replaces the children of n with the parsed fragment src. On
// error n is left untouched.
func SetInnerHTML(n *dom.Node, src string) error {
	nodes, err := ParseFragment([]byte(src))
	if err != nil {
		return fmt.Errorf("setting innerHTML of <%s>: %w", n.TagName, err)
	}
	n.ReplaceChildren(nodes...)
	return nil
}

func parseNodes(data []byte) ([]*dom.Node, error) {
	if !utf8.Valid(data) {
		return nil, &ParseError{Line: 1, Column: 1, Msg: "input is not valid UTF-8"}
	}
	p := NewParser(string(data))
	nodes, err := p.nodes()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		start := p.pos
		name, _ := p.closeTag()
		return nil, p.errorAt(start, "unexpected close tag </%s>", name)
	}
	return nodes, nil
}

// nodes parses siblings until end of input or the start of a close tag.
func (p *Parser) nodes() ([]*dom.Node, error) {
	var nodes []*dom.Node
	for !p.eof() {
		if p.peek() != '<' {
			nodes = append(nodes, dom.NewText(p.readText()))
			continue
		}
		if p.hasPrefix("</") {
			break
		}
		skipped, err := p.skipMarkupDeclaration()
		if err != nil {
			return nil, err
		}
		if skipped {
			continue
		}
		el, err := p.element()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, el)
	}
	return nodes, nil
}

func (p *Parser) element() (*dom.Node, error) {
	name, attrs, selfClosing, err := p.openTag()
	if err != nil {
		return nil, err
	}
	if selfClosing {
		return dom.NewElement(name, attrs), nil
	}

	var children []*dom.Node
	if isRawTextElement(name) {
		text, err := p.readRawText(name)
		if err != nil {
			return nil, err
		}
		if text != "" {
			children = append(children, dom.NewText(text))
		}
	} else {
		children, err = p.nodes()
		if err != nil {
			return nil, err
		}
	}

	closeStart := p.pos
	closeName, err := p.closeTag()
	if err != nil {
		return nil, err
	}
	if closeName != name {
		return nil, p.errorAt(closeStart,
			"tag name of open tag <%s> and close tag </%s> mismatched", name, closeName)
	}
	return dom.NewElement(name, attrs, children...), nil
}

func (p *Parser) openTag() (name string, attrs dom.AttrMap, selfClosing bool, err error) {
	if err = p.expect("<"); err != nil {
		return
	}
	if name = p.readName(isTagNameChar); name == "" {
		err = p.errorf("expected tag name")
		return
	}
	attrs = dom.AttrMap{}
	for {
		p.skipWhitespace()
		switch {
		case p.eof():
			err = p.errorf("unexpected end of input in <%s> tag", name)
			return
		case p.peek() == '>':
			p.pos++
			return
		case p.hasPrefix("/>"):
			p.pos += 2
			selfClosing = true
			return
		}
		var key, value string
		if key, value, err = p.attribute(); err != nil {
			return
		}
		attrs[key] = value
	}
}

func (p *Parser) attribute() (string, string, error) {
	name := p.readName(isAttributeNameChar)
	if name == "" {
		return "", "", p.errorf("expected attribute name")
	}
	p.skipWhitespace()
	if err := p.expect("="); err != nil {
		return "", "", err
	}
	p.skipWhitespace()
	value, err := p.readQuoted()
	if err != nil {
		return "", "", err
	}
	return name, value, nil
}

func (p *Parser) closeTag() (string, error) {
	if err := p.expect("</"); err != nil {
		return "", err
	}
	name := p.readName(isTagNameChar)
	if name == "" {
		return "", p.errorf("expected tag name in close tag")
	}
	if err := p.expect(">"); err != nil {
		return "", err
	}
	return name, nil
}

func isRawTextElement(name string) bool {
	return name == "script" || name == "style"
}
