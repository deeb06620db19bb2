/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/spf13/viper"
)

func TestReadSource(t *testing.T) {
	name, src, err := ReadSource(nil, strings.NewReader("putln();"))
	be.Err(t, err, nil)
	be.Equal(t, name, "<stdin>")
	be.Equal(t, src, "putln();")

	path := filepath.Join(t.TempDir(), "a.c0")
	be.Err(t, os.WriteFile(path, []byte("putint(1);"), 0o644), nil)

	name, src, err = ReadSource([]string{path}, nil)
	be.Err(t, err, nil)
	be.Equal(t, name, path)
	be.Equal(t, src, "putint(1);")

	_, _, err = ReadSource([]string{filepath.Join(t.TempDir(), "nope.c0")}, nil)
	be.Err(t, err)
}

func TestRequest(t *testing.T) {
	defer viper.Set("c0.stdlib", nil)

	viper.Set("c0.stdlib", false)
	be.True(t, Request("a", "").NoStdlib)

	viper.Set("c0.stdlib", true)
	be.True(t, !Request("a", "").NoStdlib)
}

func TestCheckOutput(t *testing.T) {
	be.Err(t, CheckOutput("csv"), nil)
	be.Err(t, CheckOutput("yaml"))
}

func TestRenderError(t *testing.T) {
	out := RenderError("Error: NotDeclared: \"b\" at 2:1\n   2 | b = a;\n     | ^\n")
	be.True(t, strings.Contains(out, "Error: NotDeclared"))
	be.True(t, strings.Contains(out, "b = a;"))
	be.Equal(t, strings.Count(out, "\n"), 3)
}
