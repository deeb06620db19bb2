/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tokenizer

import (
	"fmt"

	"github.com/dburkart/c0/pkg/common/parse"
)

type TokenType int

const (
	TOK_EOF TokenType = iota

	// Keywords
	TOK_FN
	TOK_LET
	TOK_CONST
	TOK_AS
	TOK_WHILE
	TOK_IF
	TOK_ELSE
	TOK_RETURN
	TOK_BREAK
	TOK_CONTINUE

	// Literals
	TOK_UINT_LITERAL
	TOK_DOUBLE_LITERAL
	TOK_STRING_LITERAL
	TOK_CHAR_LITERAL

	TOK_IDENT

	// Expressions
	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_SLASH
	TOK_ASSIGN
	TOK_EQ_EQ
	TOK_NOT_EQ
	TOK_LESS
	TOK_GREATER
	TOK_LESS_EQ
	TOK_GREATER_EQ

	TOK_PAREN_L
	TOK_PAREN_R
	TOK_BRACE_L
	TOK_BRACE_R
	TOK_ARROW
	TOK_COMMA
	TOK_COLON
	TOK_SEMICOLON
)

var tokenNames = [...]string{
	TOK_EOF:            "TOK_EOF",
	TOK_FN:             "TOK_FN",
	TOK_LET:            "TOK_LET",
	TOK_CONST:          "TOK_CONST",
	TOK_AS:             "TOK_AS",
	TOK_WHILE:          "TOK_WHILE",
	TOK_IF:             "TOK_IF",
	TOK_ELSE:           "TOK_ELSE",
	TOK_RETURN:         "TOK_RETURN",
	TOK_BREAK:          "TOK_BREAK",
	TOK_CONTINUE:       "TOK_CONTINUE",
	TOK_UINT_LITERAL:   "TOK_UINT_LITERAL",
	TOK_DOUBLE_LITERAL: "TOK_DOUBLE_LITERAL",
	TOK_STRING_LITERAL: "TOK_STRING_LITERAL",
	TOK_CHAR_LITERAL:   "TOK_CHAR_LITERAL",
	TOK_IDENT:          "TOK_IDENT",
	TOK_PLUS:           "TOK_PLUS",
	TOK_MINUS:          "TOK_MINUS",
	TOK_STAR:           "TOK_STAR",
	TOK_SLASH:          "TOK_SLASH",
	TOK_ASSIGN:         "TOK_ASSIGN",
	TOK_EQ_EQ:          "TOK_EQ_EQ",
	TOK_NOT_EQ:         "TOK_NOT_EQ",
	TOK_LESS:           "TOK_LESS",
	TOK_GREATER:        "TOK_GREATER",
	TOK_LESS_EQ:        "TOK_LESS_EQ",
	TOK_GREATER_EQ:     "TOK_GREATER_EQ",
	TOK_PAREN_L:        "TOK_PAREN_L",
	TOK_PAREN_R:        "TOK_PAREN_R",
	TOK_BRACE_L:        "TOK_BRACE_L",
	TOK_BRACE_R:        "TOK_BRACE_R",
	TOK_ARROW:          "TOK_ARROW",
	TOK_COMMA:          "TOK_COMMA",
	TOK_COLON:          "TOK_COLON",
	TOK_SEMICOLON:      "TOK_SEMICOLON",
}

// keywords maps the lower-cased keyword text to its TokenType.
var keywords = map[string]TokenType{
	"fn":       TOK_FN,
	"let":      TOK_LET,
	"const":    TOK_CONST,
	"as":       TOK_AS,
	"while":    TOK_WHILE,
	"if":       TOK_IF,
	"else":     TOK_ELSE,
	"return":   TOK_RETURN,
	"break":    TOK_BREAK,
	"continue": TOK_CONTINUE,
}

func (t TokenType) ToString() string {
	if int(t) >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "TOK_UNKNOWN"
}

func (t TokenType) String() string {
	return t.ToString()
}

// IsKeyword reports whether t is one of the reserved words.
func (t TokenType) IsKeyword() bool {
	return t >= TOK_FN && t <= TOK_CONTINUE
}

// Token is a single lexical unit. Value holds the literal payload:
//
//	TOK_UINT_LITERAL    uint64
//	TOK_DOUBLE_LITERAL  float64
//	TOK_STRING_LITERAL  string, escapes kept verbatim (see Unescape)
//	TOK_CHAR_LITERAL    string, the character or its escape pair
//	TOK_IDENT, keywords string, the matched text
//
// and is nil for operators and punctuation.
type Token struct {
	Type     TokenType
	Value    any
	Lexeme   string
	Location parse.Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Type.ToString(), t.Lexeme, t.Location)
}
