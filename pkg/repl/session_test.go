/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	c0 "github.com/dburkart/c0/api"
	"github.com/dburkart/c0/pkg/common/parse"
)

func newSession(t *testing.T) *Session {
	t.Helper()

	client, err := c0.NewClient("local")
	be.Err(t, err, nil)
	return NewSession(client)
}

func TestSessionKeepsOnlyCompilingSource(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "let x: int = 2;")
	be.Err(t, err, nil)

	_, err = s.Add(ctx, "putint(y);")
	be.Err(t, err, parse.NotDeclared)
	be.Equal(t, s.Source(), "let x: int = 2;\n")
	be.Equal(t, s.Describe(err), "Error: NotDeclared: \"y\" at 2:8\n   2 | putint(y);\n     |        ^\n")

	program, err := s.Add(ctx, "putint(x);")
	be.Err(t, err, nil)
	be.Equal(t, program, s.Program())
	be.Equal(t, s.Source(), "let x: int = 2;\nputint(x);\n")

	s.Reset()
	be.Equal(t, s.Source(), "")
	be.True(t, s.Program() == nil)
}

func TestSessionWithoutStdlib(t *testing.T) {
	s := newSession(t)
	s.NoStdlib = true

	_, err := s.Add(context.Background(), "putint(1);")
	be.Err(t, err, parse.NotDeclared)
}

func TestSessionLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.c0")
	be.Err(t, os.WriteFile(path, []byte("fn main() -> void { putln(); }"), 0o644), nil)

	s := newSession(t)
	program, err := s.Load(context.Background(), path)
	be.Err(t, err, nil)
	be.True(t, program.Function("main") != nil)

	_, err = s.Load(context.Background(), filepath.Join(t.TempDir(), "missing.c0"))
	be.Err(t, err)
	be.True(t, strings.HasPrefix(s.Describe(err), "Error: unable to load"))
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	run := func(s *Session, line string) (string, bool, error) {
		var out bytes.Buffer
		cmd, err := ParseCommand(line)
		be.Err(t, err, nil)
		more, err := s.Execute(ctx, cmd, NewOutputWriter(&out, "csv"), &out)
		return out.String(), more, err
	}

	t.Run("source", func(t *testing.T) {
		out, more, err := run(newSession(t), "putint(1);")
		be.Err(t, err, nil)
		be.True(t, more)
		be.Equal(t, out, "Function,Index,Op,Operand\n_start,0,push,1\n_start,1,call,putint#4/1\n_start,2,ret,\n")
	})

	t.Run("show", func(t *testing.T) {
		s := newSession(t)
		out, _, err := run(s, ":show")
		be.Err(t, err, nil)
		be.Equal(t, out, "nothing compiled yet\n")

		run(s, "putint(1);")
		out, _, err = run(s, ":show")
		be.Err(t, err, nil)
		be.True(t, strings.Contains(out, "putint#4/1"))
	})

	t.Run("tokens", func(t *testing.T) {
		out, _, err := run(newSession(t), ":tokens let x")
		be.Err(t, err, nil)
		be.Equal(t, out, "Position,Type,Lexeme,Value\n1:1,TOK_LET,let,let\n1:5,TOK_IDENT,x,x\n1:6,TOK_EOF,,\n")
	})

	t.Run("tokens error", func(t *testing.T) {
		s := newSession(t)
		out, _, err := run(s, ":tokens x @")
		be.Err(t, err, parse.InvalidInput)
		be.True(t, strings.Contains(out, "TOK_IDENT"))
		be.True(t, strings.Contains(s.Describe(err), "   1 | x @\n"))
	})

	t.Run("help", func(t *testing.T) {
		out, more, err := run(newSession(t), "help")
		be.Err(t, err, nil)
		be.True(t, more)
		be.True(t, strings.HasPrefix(out, "usage:\n"))
	})

	t.Run("exit", func(t *testing.T) {
		_, more, err := run(newSession(t), "exit")
		be.Err(t, err, nil)
		be.True(t, !more)
	})
}
