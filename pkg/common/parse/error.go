/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a diagnostic. It implements error so that callers
// can test for a kind with errors.Is(err, parse.NotDeclared).
type ErrorCode int

const (
	NoError ErrorCode = iota

	// Tokenizer
	InvalidInput

	// Analyser
	DuplicateDeclaration
	NotDeclared
	NotInitialized
	AssignToConstant
	ExpectedToken
	InvalidAssignment
	UnknownType
	ExpectedValue
	ArgumentMismatch
	InvalidReturn
	NotInLoop
)

var codeNames = [...]string{
	NoError:              "NoError",
	InvalidInput:         "InvalidInput",
	DuplicateDeclaration: "DuplicateDeclaration",
	NotDeclared:          "NotDeclared",
	NotInitialized:       "NotInitialized",
	AssignToConstant:     "AssignToConstant",
	ExpectedToken:        "ExpectedToken",
	InvalidAssignment:    "InvalidAssignment",
	UnknownType:          "UnknownType",
	ExpectedValue:        "ExpectedValue",
	ArgumentMismatch:     "ArgumentMismatch",
	InvalidReturn:        "InvalidReturn",
	NotInLoop:            "NotInLoop",
}

func (c ErrorCode) ToString() string {
	if int(c) >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

func (c ErrorCode) Error() string {
	return c.ToString()
}

// ParseErrorCode is the inverse of ToString. It is used to rebuild
// diagnostics that crossed the wire.
func ParseErrorCode(s string) (ErrorCode, bool) {
	for i, name := range codeNames {
		if name == s {
			return ErrorCode(i), true
		}
	}
	return NoError, false
}

// Error is implemented by every diagnostic the compiler produces.
type Error interface {
	error
	Code() ErrorCode
	Pos() Position
}

// MatchCode reports whether target is the ErrorCode carried by err. Error
// implementations use it for their Is method.
func MatchCode(err Error, target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == err.Code()
}

// FormatError renders err together with the source line it points into,
// marking the offending column with a caret.
func FormatError(err Error, input string) string {
	pos := err.Pos()

	errorString := fmt.Sprintf("Error: %s\n", err.Error())

	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(strings.ReplaceAll(input, "\r", "\n"), "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return errorString
	}
	line := lines[pos.Line-1]

	// Keep tabs so the caret lines up with the echoed source
	var marker strings.Builder
	col := 1
	for _, r := range line {
		if col >= pos.Column {
			break
		}
		if r == '\t' {
			marker.WriteRune('\t')
		} else {
			marker.WriteRune(' ')
		}
		col++
	}
	for ; col < pos.Column; col++ {
		marker.WriteRune(' ')
	}

	errorString += fmt.Sprintf("%4d | %s\n", pos.Line, line)
	errorString += fmt.Sprintf("     | %s^\n", marker.String())
	return errorString
}
