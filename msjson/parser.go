package msjson

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/elrt/MotiveSyz/msmem"
)

// Input caps. Numbers longer than maxNumberLen characters and strings whose
// decoded content exceeds maxStringLen bytes are rejected; maxRawStringLen
// short-circuits pathological input before the content is measured.
const (
	maxNumberLen    = 64
	maxStringLen    = 1 << 20
	maxRawStringLen = 2 << 20
)

// parser is the transient state of one Parse call: the input slice, a byte
// cursor, the resolved options and the count of currently open containers.
type parser struct {
	input []byte
	pos   int
	opts  Options
	alloc msmem.Allocator
	depth int
}

// Parse reads one JSON value from input and returns its tree. Parsing is
// all-or-nothing: trailing non-whitespace content fails the whole call and
// no tree is returned. A nil opts selects DefaultOptions.
func Parse(input []byte, opts *Options) (*Value, error) {
	if input == nil {
		return nil, &ParseError{Err: ErrInvalidArgument, msg: "nil input"}
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	p := &parser{input: input, opts: o, alloc: o.allocator()}

	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if p.pos < len(p.input) {
		return nil, p.syntaxf("trailing content after top-level value")
	}
	return v, nil
}

// parseValue dispatches on the first non-whitespace byte.
func (p *parser) parseValue() (*Value, error) {
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if p.pos >= len(p.input) {
		return nil, p.errAt(ErrUnexpectedEOF, "expected a value")
	}
	switch c := p.input[p.pos]; {
	case c == 'n':
		return p.parseNull()
	case c == 't' || c == 'f':
		return p.parseBool()
	case c == '"':
		return p.parseString()
	case c == '[':
		return p.parseArray()
	case c == '{':
		return p.parseObject()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, p.syntaxf("unexpected character %q", c)
	}
}

// skipSpace advances past JSON whitespace and, when enabled, comments.
// It fails only on an unterminated block comment.
func (p *parser) skipSpace() error {
	for p.pos < len(p.input) {
		switch c := p.input[p.pos]; c {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			p.pos++
		case '/':
			if !p.opts.AllowComments {
				return nil
			}
			if p.pos+1 >= len(p.input) {
				return nil
			}
			switch p.input[p.pos+1] {
			case '/':
				p.skipLineComment()
			case '*':
				if err := p.skipBlockComment(); err != nil {
					return err
				}
			default:
				// A lone slash is not whitespace; let the value
				// dispatcher report it.
				return nil
			}
		default:
			return nil
		}
	}
	return nil
}

func (p *parser) skipLineComment() {
	p.pos += 2
	for p.pos < len(p.input) && p.input[p.pos] != '\n' {
		p.pos++
	}
	if p.pos < len(p.input) {
		p.pos++
	}
}

func (p *parser) skipBlockComment() error {
	start := p.pos
	p.pos += 2
	for p.pos+1 < len(p.input) {
		if p.input[p.pos] == '*' && p.input[p.pos+1] == '/' {
			p.pos += 2
			return nil
		}
		p.pos++
	}
	return &ParseError{Offset: start, Err: ErrSyntax, msg: "unterminated block comment"}
}

func (p *parser) parseNull() (*Value, error) {
	if p.pos+4 > len(p.input) {
		return nil, p.errAt(ErrUnexpectedEOF, "in literal")
	}
	if !bytes.Equal(p.input[p.pos:p.pos+4], []byte("null")) {
		return nil, p.syntaxf("invalid literal")
	}
	p.pos += 4
	return NewNull(), nil
}

func (p *parser) parseBool() (*Value, error) {
	if p.pos+4 > len(p.input) {
		return nil, p.errAt(ErrUnexpectedEOF, "in literal")
	}
	if bytes.Equal(p.input[p.pos:p.pos+4], []byte("true")) {
		p.pos += 4
		return NewBool(true), nil
	}
	if p.pos+5 <= len(p.input) && bytes.Equal(p.input[p.pos:p.pos+5], []byte("false")) {
		p.pos += 5
		return NewBool(false), nil
	}
	return nil, p.syntaxf("invalid literal")
}

func (p *parser) parseNumber() (*Value, error) {
	start := p.pos
	for p.pos < len(p.input) && p.pos-start < maxNumberLen {
		c := p.input[p.pos]
		if !(c >= '0' && c <= '9') && c != '-' && c != '+' && c != '.' && c != 'e' && c != 'E' {
			break
		}
		p.pos++
	}
	n := p.pos - start
	if n == 0 || (n == 1 && (p.input[start] == '-' || p.input[start] == '+')) {
		return nil, p.syntaxf("invalid number")
	}
	lit := string(p.input[start:p.pos])
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		numErr, ok := err.(*strconv.NumError)
		if !ok || numErr.Err != strconv.ErrRange {
			return nil, &ParseError{Offset: start, Err: ErrSyntax, msg: "malformed number " + strconv.Quote(lit)}
		}
		// Out-of-range falls through to the overflow guard below with
		// f set to ±Inf (overflow) or a denormal/zero (underflow).
	}
	if f >= math.MaxFloat64 || f <= -math.MaxFloat64 {
		// Guard against false positives on legitimate zero literals.
		if !isZeroLiteral(lit) {
			return nil, &ParseError{Offset: start, Err: ErrSyntax, msg: "number out of range"}
		}
	}
	return NewNumber(f), nil
}

func isZeroLiteral(lit string) bool {
	for i := 0; i < len(lit); i++ {
		switch lit[i] {
		case '0', '.', '-', '+':
		default:
			return false
		}
	}
	return true
}

func (p *parser) parseString() (*Value, error) {
	s, err := p.parseStringLiteral()
	if err != nil {
		return nil, err
	}
	return NewString(s), nil
}

// parseStringLiteral scans a quoted string, measuring the decoded content
// length first and decoding escapes in a second pass through a buffer from
// the configured allocator. Escapes: the eight standard single-character
// forms; any other byte after a backslash passes through literally.
func (p *parser) parseStringLiteral() (string, error) {
	if p.pos >= len(p.input) || p.input[p.pos] != '"' {
		return "", p.syntaxf("expected string")
	}
	if len(p.input)-p.pos > maxRawStringLen {
		return "", p.syntaxf("string too long")
	}
	open := p.pos
	p.pos++
	start := p.pos
	contentLen := 0
	for p.pos < len(p.input) && p.input[p.pos] != '"' {
		if contentLen >= maxStringLen {
			return "", &ParseError{Offset: open, Err: ErrSyntax, msg: "string too long"}
		}
		if p.input[p.pos] == '\\' {
			p.pos++
			if p.pos >= len(p.input) {
				return "", &ParseError{Offset: open, Err: ErrSyntax, msg: "unterminated escape sequence"}
			}
		}
		p.pos++
		contentLen++
	}
	if p.pos >= len(p.input) {
		return "", &ParseError{Offset: open, Err: ErrSyntax, msg: "unterminated string"}
	}
	if contentLen == 0 {
		p.pos++
		return "", nil
	}

	buf, err := p.alloc.Alloc(contentLen)
	if err != nil {
		return "", &ParseError{Offset: open, Err: ErrMemory, msg: "string buffer"}
	}
	w := 0
	for i := start; i < p.pos; i++ {
		c := p.input[i]
		if c == '\\' && i+1 < p.pos {
			i++
			c = decodeEscape(p.input[i])
		}
		buf[w] = c
		w++
	}
	s := string(buf[:w])
	_ = p.alloc.Free(buf)
	p.pos++ // closing quote
	return s, nil
}

func decodeEscape(c byte) byte {
	switch c {
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		// Covers ", \ and / plus the lenient pass-through of every
		// other byte.
		return c
	}
}

func (p *parser) parseArray() (*Value, error) {
	if err := p.enterContainer(); err != nil {
		return nil, err
	}
	defer p.leaveContainer()
	p.pos++ // '['

	arr := NewArray()
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if p.pos < len(p.input) && p.input[p.pos] == ']' {
		p.pos++
		return arr, nil
	}
	for p.pos < len(p.input) {
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := arr.Append(elem); err != nil {
			return nil, err
		}
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.pos >= len(p.input) {
			break
		}
		if p.input[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		if p.input[p.pos] != ',' {
			return nil, p.syntaxf("expected ',' or ']' in array")
		}
		p.pos++
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
	}
	return nil, p.errAt(ErrUnexpectedEOF, "in array")
}

func (p *parser) parseObject() (*Value, error) {
	if err := p.enterContainer(); err != nil {
		return nil, err
	}
	defer p.leaveContainer()
	p.pos++ // '{'

	obj := NewObject()
	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if p.pos < len(p.input) && p.input[p.pos] == '}' {
		p.pos++
		return obj, nil
	}
	for p.pos < len(p.input) {
		// Keys must be string literals; parseStringLiteral rejects
		// anything else as a syntax error.
		key, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.pos >= len(p.input) || p.input[p.pos] != ':' {
			return nil, p.syntaxf("expected ':' after object key")
		}
		p.pos++
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		// Duplicate keys take builder semantics: last value wins,
		// position stays from the first occurrence.
		if err := obj.Set(key, val); err != nil {
			return nil, err
		}
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.pos >= len(p.input) {
			break
		}
		if p.input[p.pos] == '}' {
			p.pos++
			return obj, nil
		}
		if p.input[p.pos] != ',' {
			return nil, p.syntaxf("expected ',' or '}' in object")
		}
		p.pos++
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
	}
	return nil, p.errAt(ErrUnexpectedEOF, "in object")
}

// enterContainer enforces the depth limit before any allocation for the
// container happens.
func (p *parser) enterContainer() error {
	if p.opts.MaxDepth > 0 && p.depth >= p.opts.MaxDepth {
		return p.errAt(ErrDepth, "")
	}
	p.depth++
	return nil
}

func (p *parser) leaveContainer() { p.depth-- }

func (p *parser) errAt(sentinel error, msg string) *ParseError {
	return &ParseError{Offset: p.pos, Err: sentinel, msg: msg}
}

func (p *parser) syntaxf(format string, args ...interface{}) *ParseError {
	return &ParseError{Offset: p.pos, Err: ErrSyntax, msg: fmt.Sprintf(format, args...)}
}
