package html

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidResource is matched by every error the parser returns.
var ErrInvalidResource = errors.New("invalid resource")

// ParseError describes malformed markup. The whole parse fails with it; no
// partial tree is produced.
type ParseError struct {
	Offset int // byte offset into the input
	Line   int // 1-based
	Column int // 1-based, in bytes
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d, column %d: %s", ErrInvalidResource, e.Line, e.Column, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrInvalidResource }

// Tokenizer is the byte-level reader under the parser. It only knows how to
// consume lexical pieces; the grammar lives in parser.go.
type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input, pos: 0}
}

func (t *Tokenizer) eof() bool {
	return t.pos >= len(t.input)
}

func (t *Tokenizer) peek() byte {
	if t.eof() {
		return 0
	}
	return t.input[t.pos]
}

func (t *Tokenizer) hasPrefix(s string) bool {
	return strings.HasPrefix(t.input[t.pos:], s)
}

// expect consumes s or fails.
func (t *Tokenizer) expect(s string) error {
	if !t.hasPrefix(s) {
		if t.eof() {
			return t.errorf("expected %q, found end of input", s)
		}
		return t.errorf("expected %q, found %q", s, t.input[t.pos])
	}
	t.pos += len(s)
	return nil
}

func (t *Tokenizer) errorf(format string, args ...interface{}) *ParseError {
	return t.errorAt(t.pos, format, args...)
}

func (t *Tokenizer) errorAt(offset int, format string, args ...interface{}) *ParseError {
	consumed := t.input[:offset]
	line := strings.Count(consumed, "\n") + 1
	col := offset - strings.LastIndexByte(consumed, '\n')
	return &ParseError{
		Offset: offset,
		Line:   line,
		Column: col,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// skipWhitespace consumes spaces, tabs and line breaks and reports whether
// anything was consumed.
func (t *Tokenizer) skipWhitespace() bool {
	start := t.pos
	for !t.eof() && isWhitespace(t.input[t.pos]) {
		t.pos++
	}
	return t.pos > start
}

// readName reads an ASCII letter followed by bytes accepted by rest.
func (t *Tokenizer) readName(rest func(byte) bool) string {
	if t.eof() || !isLetter(t.input[t.pos]) {
		return ""
	}
	start := t.pos
	t.pos++
	for !t.eof() && rest(t.input[t.pos]) {
		t.pos++
	}
	return t.input[start:t.pos]
}

// readText consumes a run of bytes up to the next '<' verbatim.
func (t *Tokenizer) readText() string {
	start := t.pos
	if i := strings.IndexByte(t.input[t.pos:], '<'); i >= 0 {
		t.pos += i
	} else {
		t.pos = len(t.input)
	}
	return t.input[start:t.pos]
}

// readRawText consumes everything up to the close tag of tagName, which is
// left unconsumed.
func (t *Tokenizer) readRawText(tagName string) (string, error) {
	end := strings.Index(t.input[t.pos:], "</"+tagName+">")
	if end < 0 {
		return "", t.errorf("unterminated <%s> element", tagName)
	}
	text := t.input[t.pos : t.pos+end]
	t.pos += end
	return text, nil
}

// readQuoted reads a double-quoted run of any bytes except '"'.
func (t *Tokenizer) readQuoted() (string, error) {
	if err := t.expect(`"`); err != nil {
		return "", err
	}
	end := strings.IndexByte(t.input[t.pos:], '"')
	if end < 0 {
		return "", t.errorf("unterminated attribute value")
	}
	value := t.input[t.pos : t.pos+end]
	t.pos += end + 1
	return value, nil
}

// skipMarkupDeclaration skips a <!-- comment --> or a <!DOCTYPE ...>
// declaration at the current position and reports whether one was found.
func (t *Tokenizer) skipMarkupDeclaration() (bool, error) {
	switch {
	case t.hasPrefix("<!--"):
		end := strings.Index(t.input[t.pos+4:], "-->")
		if end < 0 {
			return false, t.errorf("unterminated comment")
		}
		t.pos += 4 + end + 3
		return true, nil
	case t.hasPrefix("<!"):
		end := strings.IndexByte(t.input[t.pos:], '>')
		if end < 0 {
			return false, t.errorf("unterminated markup declaration")
		}
		t.pos += end + 1
		return true, nil
	}
	return false, nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isTagNameChar(c byte) bool {
	return isLetter(c) || isDigit(c)
}

func isAttributeNameChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}
