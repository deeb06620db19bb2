/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import "fmt"

// Position is a coordinate in the source text. Offset is a 0-based byte
// offset, Line and Column are 1-based, and Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is the half-open span [Start, End) covered by a token.
type Location struct {
	Start Position
	End   Position
}

func (l Location) String() string {
	return l.Start.String() + "-" + l.End.String()
}
