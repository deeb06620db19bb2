/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"

	"github.com/dburkart/c0/pkg/c0/tokenizer"
)

// TokenTable prints a token stream, one token per row.
type TokenTable []tokenizer.Token

func (t TokenTable) Headers() []string {
	return []string{"Position", "Type", "Lexeme", "Value"}
}

func (t TokenTable) Values() [][]string {
	rows := make([][]string, 0, len(t))
	for _, tok := range t {
		value := ""
		if tok.Value != nil {
			value = fmt.Sprint(tok.Value)
		}
		rows = append(rows, []string{tok.Location.Start.String(), tok.Type.ToString(), tok.Lexeme, value})
	}
	return rows
}
