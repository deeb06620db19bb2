/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package analyser

import (
	"fmt"
	"strings"

	"github.com/dburkart/c0/pkg/c0/tokenizer"
	"github.com/dburkart/c0/pkg/common/parse"
)

// Error is a semantic error found while analysing.
type Error struct {
	Kind     parse.ErrorCode
	Message  string
	Position parse.Position
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s at %s", e.Kind.ToString(), e.Position)
	}
	return fmt.Sprintf("%s: %s at %s", e.Kind.ToString(), e.Message, e.Position)
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

// ExpectedTokenError is returned when the next token is not one the grammar
// allows at that point.
type ExpectedTokenError struct {
	Expected []tokenizer.TokenType
	Found    tokenizer.Token
}

func (e *ExpectedTokenError) Error() string {
	var expected []string
	for _, tt := range e.Expected {
		expected = append(expected, tt.ToString())
	}
	return fmt.Sprintf("%s: expected %s, found %s at %s",
		parse.ExpectedToken.ToString(),
		strings.Join(expected, " or "),
		e.Found.Type.ToString(),
		e.Found.Location.Start,
	)
}

func (e *ExpectedTokenError) Code() parse.ErrorCode {
	return parse.ExpectedToken
}

func (e *ExpectedTokenError) Pos() parse.Position {
	return e.Found.Location.Start
}

func (e *ExpectedTokenError) Is(target error) bool {
	return parse.MatchCode(e, target)
}

// bailout carries the first error out of the recursive descent. It is only
// ever raised by the analyser and recovered in Analyse.
type bailout struct {
	err error
}
