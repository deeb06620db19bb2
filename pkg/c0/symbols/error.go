/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package symbols

import (
	"fmt"

	"github.com/dburkart/c0/pkg/common/parse"
)

// Error reports a failed declaration or lookup of Name.
type Error struct {
	Kind     parse.ErrorCode
	Name     string
	Position parse.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %q at %s", e.Kind.ToString(), e.Name, e.Position)
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
