package css

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	lex "github.com/tdewolff/parse/v2/css"
)

// ErrInvalidResource is matched by every error Parse returns.
var ErrInvalidResource = errors.New("invalid resource")

type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: offset %d: %s", ErrInvalidResource, e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrInvalidResource }

type token struct {
	tt     lex.TokenType
	data   string
	offset int
}

// Parser enforces the stylesheet grammar on top of the token stream:
//
//	stylesheet := ws* (rule ws*)*
//	rule       := selector (ws* "," ws* selector)* ws* "{" ws* declarations ws* "}"
//	selector   := "*" | "." ident | ident (ws* "[" ident ("=" | "~=") ident "]")?
//	declarations := (declaration (ws* ";" ws* declaration)*)? ";"?
//	declaration  := ident ws* ":" ws* (ident | digits "em")
//
// Comments count as whitespace.
type Parser struct {
	toks []token
	pos  int
	end  int
}

// Parse parses a complete stylesheet.
func Parse(src string) (*Stylesheet, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	return p.Stylesheet()
}

func NewParser(src string) (*Parser, error) {
	l := lex.NewLexer(parse.NewInputString(src))
	p := &Parser{end: len(src)}
	offset := 0
	for {
		tt, data := l.Next()
		if tt == lex.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, &ParseError{Offset: offset, Msg: err.Error()}
			}
			break
		}
		if tt == lex.CommentToken {
			tt = lex.WhitespaceToken
		}
		if tt == lex.WhitespaceToken && len(p.toks) > 0 && p.toks[len(p.toks)-1].tt == lex.WhitespaceToken {
			offset += len(data)
			continue
		}
		p.toks = append(p.toks, token{tt: tt, data: string(data), offset: offset})
		offset += len(data)
	}
	return p, nil
}

func (p *Parser) peek() token {
	if p.pos >= len(p.toks) {
		return token{tt: lex.ErrorToken, offset: p.end}
	}
	return p.toks[p.pos]
}

func (p *Parser) next() token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) skipWhitespace() {
	for p.peek().tt == lex.WhitespaceToken {
		p.pos++
	}
}

func (p *Parser) errorf(t token, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if t.tt == lex.ErrorToken {
		msg += ", found end of input"
	} else {
		msg += fmt.Sprintf(", found %q", t.data)
	}
	return &ParseError{Offset: t.offset, Msg: msg}
}

func (p *Parser) expect(tt lex.TokenType, what string) error {
	if t := p.next(); t.tt != tt {
		return p.errorf(t, "expected %s", what)
	}
	return nil
}

func (p *Parser) Stylesheet() (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p.skipWhitespace()
	for p.peek().tt != lex.ErrorToken {
		rule, err := p.rule()
		if err != nil {
			return nil, err
		}
		sheet.Rules = append(sheet.Rules, rule)
		p.skipWhitespace()
	}
	return sheet, nil
}

func (p *Parser) rule() (*Rule, error) {
	sels, err := p.selectorList()
	if err != nil {
		return nil, err
	}
	rule := &Rule{Selectors: sels}

	if err := p.expect(lex.LeftBraceToken, `"{"`); err != nil {
		return nil, err
	}
	p.skipWhitespace()
	decls, err := p.declarations()
	if err != nil {
		return nil, err
	}
	rule.Declarations = decls
	p.skipWhitespace()
	if err := p.expect(lex.RightBraceToken, `"}"`); err != nil {
		return nil, err
	}
	return rule, nil
}

// ParseSelectors parses a comma separated selector list, as accepted by
// querySelector.
func ParseSelectors(src string) ([]Selector, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	sels, err := p.selectorList()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.tt != lex.ErrorToken {
		return nil, p.errorf(t, "unexpected token after selector")
	}
	return sels, nil
}

func (p *Parser) selectorList() ([]Selector, error) {
	var sels []Selector
	for {
		sel, err := p.selector()
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
		p.skipWhitespace()
		if p.peek().tt != lex.CommaToken {
			return sels, nil
		}
		p.next()
		p.skipWhitespace()
	}
}

func (p *Parser) selector() (Selector, error) {
	t := p.next()
	switch {
	case t.tt == lex.DelimToken && t.data == "*":
		return Selector{Type: UniversalSelector}, nil
	case t.tt == lex.DelimToken && t.data == ".":
		name := p.next()
		if name.tt != lex.IdentToken {
			return Selector{}, p.errorf(name, "expected class name")
		}
		return Selector{Type: ClassSelector, ClassName: name.data}, nil
	case t.tt == lex.IdentToken:
		return p.attributeSelector(t.data)
	}
	return Selector{}, p.errorf(t, "expected selector")
}

// attributeSelector parses the optional [attr op value] part following a
// tag name.
func (p *Parser) attributeSelector(tagName string) (Selector, error) {
	mark := p.pos
	p.skipWhitespace()
	if p.peek().tt != lex.LeftBracketToken {
		p.pos = mark
		return Selector{Type: TypeSelector, TagName: tagName}, nil
	}
	p.next()
	p.skipWhitespace()

	sel := Selector{Type: AttributeSelector, TagName: tagName}
	attr := p.next()
	if attr.tt != lex.IdentToken {
		return Selector{}, p.errorf(attr, "expected attribute name")
	}
	sel.Attribute = attr.data

	switch op := p.next(); {
	case op.tt == lex.DelimToken && op.data == "=":
		sel.Op = OpEq
	case op.tt == lex.IncludeMatchToken:
		sel.Op = OpContain
	default:
		return Selector{}, p.errorf(op, `expected "=" or "~="`)
	}

	switch val := p.next(); val.tt {
	case lex.IdentToken:
		sel.Value = val.data
	case lex.StringToken:
		sel.Value = val.data[1 : len(val.data)-1]
	default:
		return Selector{}, p.errorf(val, "expected attribute value")
	}
	p.skipWhitespace()
	if err := p.expect(lex.RightBracketToken, `"]"`); err != nil {
		return Selector{}, err
	}
	return sel, nil
}

func (p *Parser) declarations() ([]Declaration, error) {
	var decls []Declaration
	if p.peek().tt != lex.IdentToken {
		return decls, nil
	}
	for {
		d, err := p.declaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
		p.skipWhitespace()
		if p.peek().tt != lex.SemicolonToken {
			return decls, nil
		}
		p.next()
		p.skipWhitespace()
		if p.peek().tt != lex.IdentToken {
			return decls, nil
		}
	}
}

func (p *Parser) declaration() (Declaration, error) {
	name := p.next()
	if name.tt != lex.IdentToken {
		return Declaration{}, p.errorf(name, "expected property name")
	}
	p.skipWhitespace()
	if err := p.expect(lex.ColonToken, `":"`); err != nil {
		return Declaration{}, err
	}
	p.skipWhitespace()
	value, err := p.value()
	if err != nil {
		return Declaration{}, err
	}
	return Declaration{Name: name.data, Value: value}, nil
}

func (p *Parser) value() (Value, error) {
	t := p.next()
	switch t.tt {
	case lex.IdentToken:
		return Keyword(t.data), nil
	case lex.DimensionToken:
		digits := strings.TrimSuffix(t.data, "em")
		if digits == t.data || digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
			return Value{}, p.errorf(t, "expected length in em")
		}
		n, err := strconv.ParseUint(digits, 10, 0)
		if err != nil {
			return Value{}, p.errorf(t, "length out of range")
		}
		return Length(uint(n), Em), nil
	}
	return Value{}, p.errorf(t, "expected keyword or length")
}
