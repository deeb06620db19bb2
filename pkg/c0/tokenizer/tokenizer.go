/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tokenizer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dburkart/c0/pkg/common/parse"
)

// Error is returned for malformed input. Its code is always
// parse.InvalidInput.
type Error struct {
	Kind     parse.ErrorCode
	Position parse.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Kind.ToString(), e.Position)
}

func (e *Error) Code() parse.ErrorCode {
	return e.Kind
}

func (e *Error) Pos() parse.Position {
	return e.Position
}

func (e *Error) Is(target error) bool {
	return parse.MatchCode(e, target)
}

// Tokenizer is a pull source of tokens. It keeps no state besides the
// cursor, so it never buffers lookahead on behalf of its caller.
type Tokenizer struct {
	it *Cursor
}

func New(input string) *Tokenizer {
	return &Tokenizer{it: NewCursor(input)}
}

// Tokenize returns every token in input, ending with TOK_EOF.
func Tokenize(input string) ([]Token, error) {
	t := New(input)
	var tokens []Token

	for {
		tok, err := t.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TOK_EOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token found in the input. Once the input is
// exhausted every call returns a TOK_EOF token.
func (t *Tokenizer) NextToken() (Token, error) {
	t.skipSpace()

	if t.it.EOF() {
		pos := t.it.CurrentPos()
		return Token{Type: TOK_EOF, Location: parse.Location{Start: pos, End: pos}}, nil
	}

	r := t.it.Peek()
	switch {
	case isDigit(r):
		return t.lexUIntOrDouble()
	case unicode.IsLetter(r) || r == '_':
		return t.lexIdentOrKeyword()
	case r == '\'':
		return t.lexChar()
	case r == '"':
		return t.lexString()
	}

	return t.lexOperatorOrUnknown()
}

// lexUIntOrDouble scans a number literal
//
// Grammar:
//
//	uint-literal    = 1*DIGIT
//	double-literal  = 1*DIGIT ( "." 1*DIGIT [ exponent ] / exponent )
//	exponent        = ( "e" / "E" ) [ "+" / "-" ] 1*DIGIT
func (t *Tokenizer) lexUIntOrDouble() (Token, error) {
	start := t.it.CurrentPos()
	isDouble := false

	t.matchDigits()

	if t.it.Peek() == '.' {
		t.it.Next()
		if !isDigit(t.it.Peek()) {
			return Token{}, t.invalidAt(t.it.CurrentPos())
		}
		isDouble = true
		t.matchDigits()
	}

	if r := t.it.Peek(); r == 'e' || r == 'E' {
		t.it.Next()
		if r = t.it.Peek(); r == '+' || r == '-' {
			t.it.Next()
		}
		if !isDigit(t.it.Peek()) {
			return Token{}, t.invalidAt(t.it.CurrentPos())
		}
		isDouble = true
		t.matchDigits()
	}

	end := t.it.CurrentPos()
	lexeme := t.it.Slice(start, end)

	if isDouble {
		value, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return Token{}, t.invalidAt(start)
		}
		return t.emit(TOK_DOUBLE_LITERAL, value, start), nil
	}

	value, err := strconv.ParseUint(lexeme, 10, 64)
	if err != nil {
		return Token{}, t.invalidAt(start)
	}
	return t.emit(TOK_UINT_LITERAL, value, start), nil
}

// lexIdentOrKeyword scans an identifier. Keywords are matched without
// regard to case, and keep the text as written as their value.
//
// Grammar:
//
//	ident           = ( ALPHA / "_" ) *( ALPHA / DIGIT / "_" )
func (t *Tokenizer) lexIdentOrKeyword() (Token, error) {
	start := t.it.CurrentPos()

	for r := t.it.Peek(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = t.it.Peek() {
		t.it.Next()
	}

	text := t.it.Slice(start, t.it.CurrentPos())
	if kw, ok := keywords[strings.ToLower(text)]; ok {
		return t.emit(kw, text, start), nil
	}

	return t.emit(TOK_IDENT, text, start), nil
}

// lexChar scans a character literal. The value is the character itself, or
// the two-character escape sequence.
//
// Grammar:
//
//	char-literal    = "'" ( char-regular / escape ) "'"
//	escape          = "\" ( "\" / "'" / DQUOTE / "n" / "r" / "t" )
func (t *Tokenizer) lexChar() (Token, error) {
	start := t.it.CurrentPos()
	t.it.Next()

	var value string

	switch r := t.it.Peek(); {
	case t.it.EOF() || r == '\'':
		return Token{}, t.invalidAt(t.it.CurrentPos())
	case r == '\\':
		escape := t.it.CurrentPos()
		t.it.Next()
		if t.it.EOF() || !isEscape(t.it.Peek()) {
			return Token{}, t.invalidAt(escape)
		}
		value = `\` + string(t.it.Next())
	default:
		value = string(t.it.Next())
	}

	if t.it.EOF() || t.it.Peek() != '\'' {
		return Token{}, t.invalidAt(t.it.CurrentPos())
	}
	t.it.Next()

	return t.emit(TOK_CHAR_LITERAL, value, start), nil
}

// lexString scans a string literal. Escape sequences are validated but kept
// verbatim in the value; Unescape decodes them.
//
// Grammar:
//
//	string-literal  = DQUOTE *( string-regular / escape ) DQUOTE
func (t *Tokenizer) lexString() (Token, error) {
	start := t.it.CurrentPos()
	t.it.Next()

	var value strings.Builder

	for {
		if t.it.EOF() {
			return Token{}, t.invalidAt(t.it.CurrentPos())
		}

		r := t.it.Peek()
		if r == '"' {
			t.it.Next()
			break
		}

		if r == '\\' {
			escape := t.it.CurrentPos()
			t.it.Next()
			if t.it.EOF() || !isEscape(t.it.Peek()) {
				return Token{}, t.invalidAt(escape)
			}
			value.WriteRune('\\')
			value.WriteRune(t.it.Next())
			continue
		}

		value.WriteRune(t.it.Next())
	}

	return t.emit(TOK_STRING_LITERAL, value.String(), start), nil
}

func (t *Tokenizer) lexOperatorOrUnknown() (Token, error) {
	start := t.it.CurrentPos()
	var tt TokenType

	switch t.it.Next() {
	case '+':
		tt = TOK_PLUS
	case '-':
		tt = TOK_MINUS
		if t.it.Peek() == '>' {
			t.it.Next()
			tt = TOK_ARROW
		}
	case '*':
		tt = TOK_STAR
	case '/':
		if t.it.Peek() == '/' {
			t.skipLineComment()
			return t.NextToken()
		}
		tt = TOK_SLASH
	case '=':
		tt = TOK_ASSIGN
		if t.it.Peek() == '=' {
			t.it.Next()
			tt = TOK_EQ_EQ
		}
	case '!':
		if t.it.Peek() != '=' {
			return Token{}, t.invalidAt(start)
		}
		t.it.Next()
		tt = TOK_NOT_EQ
	case '<':
		tt = TOK_LESS
		if t.it.Peek() == '=' {
			t.it.Next()
			tt = TOK_LESS_EQ
		}
	case '>':
		tt = TOK_GREATER
		if t.it.Peek() == '=' {
			t.it.Next()
			tt = TOK_GREATER_EQ
		}
	case '(':
		tt = TOK_PAREN_L
	case ')':
		tt = TOK_PAREN_R
	case '{':
		tt = TOK_BRACE_L
	case '}':
		tt = TOK_BRACE_R
	case ',':
		tt = TOK_COMMA
	case ':':
		tt = TOK_COLON
	case ';':
		tt = TOK_SEMICOLON
	default:
		return Token{}, t.invalidAt(start)
	}

	return t.emit(tt, nil, start), nil
}

func (t *Tokenizer) emit(tt TokenType, value any, start parse.Position) Token {
	end := t.it.CurrentPos()
	return Token{
		Type:     tt,
		Value:    value,
		Lexeme:   t.it.Slice(start, end),
		Location: parse.Location{Start: start, End: end},
	}
}

func (t *Tokenizer) invalidAt(pos parse.Position) error {
	return &Error{Kind: parse.InvalidInput, Position: pos}
}

func (t *Tokenizer) matchDigits() {
	for isDigit(t.it.Peek()) {
		t.it.Next()
	}
}

func (t *Tokenizer) skipSpace() {
	for !t.it.EOF() && unicode.IsSpace(t.it.Peek()) {
		t.it.Next()
	}
}

// skipLineComment discards everything up to and including the next line
// break. The first '/' has already been consumed.
func (t *Tokenizer) skipLineComment() {
	for !t.it.EOF() {
		if r := t.it.Next(); r == '\n' || r == '\r' {
			return
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isEscape(r rune) bool {
	switch r {
	case '\\', '\'', '"', 'n', 'r', 't':
		return true
	}
	return false
}

// Unescape decodes the escape sequences kept in string and char literal
// values.
func Unescape(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}

	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			b.WriteByte(c)
			continue
		}

		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte(raw[i])
		}
	}

	return b.String()
}
