/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package casefile

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

const document = "# Declarations\n" +
	"\n" +
	"Some prose that is ignored.\n" +
	"\n" +
	"## Test: global\n" +
	"\n" +
	"```c0\n" +
	"let x: int = 1;\n" +
	"```\n" +
	"\n" +
	"```listing\n" +
	".global 0 x\n" +
	"```\n" +
	"\n" +
	"## Test: undeclared\n" +
	"\n" +
	"```c0\n" +
	"y = 2;\n" +
	"```\n" +
	"\n" +
	"```error\n" +
	"NotDeclared 1:1\n" +
	"```\n"

func TestExtract(t *testing.T) {
	cases, err := Extract([]byte(document))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	be.Equal(t, cases[0].Name, "global")
	be.Equal(t, cases[0].Input, "let x: int = 1;\n")
	be.Equal(t, cases[0].Assertions[0].Type, FenceListing)
	be.Equal(t, cases[0].Assertions[0].Content, ".global 0 x")

	be.Equal(t, cases[1].Name, "undeclared")
	be.Equal(t, cases[1].Assertions[0].Type, FenceError)
	be.Equal(t, cases[1].Assertions[0].Content, "NotDeclared 1:1")
	be.Equal(t, cases[1].Assertions[0].Line, 22)
}

func TestExtractErrors(t *testing.T) {
	t.Run("no input", func(t *testing.T) {
		_, err := Extract([]byte("## Test: empty\n\n```error\nNotDeclared 1:1\n```\n"))
		be.Err(t, err)
		be.True(t, strings.Contains(err.Error(), "has no c0 fence"))
	})

	t.Run("no assertions", func(t *testing.T) {
		_, err := Extract([]byte("## Test: bare\n\n```c0\nlet x: int;\n```\n"))
		be.Err(t, err)
		be.True(t, strings.Contains(err.Error(), "has no assertions"))
	})

	t.Run("unknown fence", func(t *testing.T) {
		_, err := Extract([]byte("## Test: odd\n\n```c0\n;\n```\n\n```ast\n(x)\n```\n"))
		be.Err(t, err)
		be.True(t, strings.Contains(err.Error(), "unknown fence"))
	})

	t.Run("fence outside case", func(t *testing.T) {
		_, err := Extract([]byte("```c0\n;\n```\n"))
		be.Err(t, err)
		be.True(t, strings.Contains(err.Error(), "outside of a case"))
	})
}
