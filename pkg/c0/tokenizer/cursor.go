/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tokenizer

import (
	"strings"
	"unicode/utf8"

	"github.com/dburkart/c0/pkg/common/parse"
)

// Cursor walks the source text one rune at a time and keeps track of where
// it is. Both "\n" and "\r" end a line; "\r\n" counts as a single break.
type Cursor struct {
	input  string
	offset int
	line   int
	column int
	prev   parse.Position
}

func NewCursor(input string) *Cursor {
	c := &Cursor{input: input, line: 1, column: 1}
	c.prev = c.CurrentPos()
	return c
}

func (c *Cursor) EOF() bool {
	return c.offset >= len(c.input)
}

// Peek returns the next rune without consuming it, or 0 at end of input.
func (c *Cursor) Peek() rune {
	if c.EOF() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.offset:])
	return r
}

// Next consumes and returns the next rune, or 0 at end of input.
func (c *Cursor) Next() rune {
	if c.EOF() {
		return 0
	}

	r, width := utf8.DecodeRuneInString(c.input[c.offset:])
	c.prev = c.CurrentPos()
	c.offset += width

	switch {
	case r == '\n':
		c.line++
		c.column = 1
	case r == '\r' && !strings.HasPrefix(c.input[c.offset:], "\n"):
		c.line++
		c.column = 1
	default:
		c.column++
	}

	return r
}

// CurrentPos is the position of the rune Peek would return.
func (c *Cursor) CurrentPos() parse.Position {
	return parse.Position{Offset: c.offset, Line: c.line, Column: c.column}
}

// PreviousPos is the position of the rune most recently returned by Next.
func (c *Cursor) PreviousPos() parse.Position {
	return c.prev
}

// Slice returns the source text between two positions.
func (c *Cursor) Slice(start, end parse.Position) string {
	return c.input[start.Offset:end.Offset]
}
