/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	c0 "github.com/dburkart/c0/api"
	"github.com/dburkart/c0/pkg/c0/instruction"
	"github.com/dburkart/c0/pkg/c0/tokenizer"
	"github.com/dburkart/c0/pkg/common/parse"
	"github.com/dburkart/c0/pkg/proto"
)

// Session accumulates the source entered at the prompt. Every new line is
// compiled together with everything before it and is kept only when the
// whole unit compiles.
type Session struct {
	client   c0.Client
	NoStdlib bool

	source  string
	program *instruction.Program

	// pending is the text of the last compile or tokenize attempt
	pending string
}

func NewSession(client c0.Client) *Session {
	return &Session{client: client}
}

func (s *Session) Source() string {
	return s.source
}

func (s *Session) Program() *instruction.Program {
	return s.program
}

func (s *Session) Reset() {
	s.source, s.program, s.pending = "", nil, ""
}

// Add compiles the session source followed by src.
func (s *Session) Add(ctx context.Context, src string) (*instruction.Program, error) {
	unit := s.source + src + "\n"
	s.pending = unit

	program, err := s.client.Compile(ctx, proto.CompileRequest{Name: "repl", Source: unit, NoStdlib: s.NoStdlib})
	if err != nil {
		return nil, err
	}

	s.source, s.program = unit, program
	return program, nil
}

func (s *Session) Load(ctx context.Context, path string) (*instruction.Program, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load %s", path)
	}
	return s.Add(ctx, string(b))
}

// Describe renders err. Diagnostics are shown against the source they were
// found in.
func (s *Session) Describe(err error) string {
	var perr parse.Error
	if errors.As(err, &perr) {
		return parse.FormatError(perr, s.pending)
	}
	return "Error: " + err.Error() + "\n"
}

// Execute runs one command, writing results to out through w. It returns
// false once the session should end.
func (s *Session) Execute(ctx context.Context, cmd Command, w OutputWriter, out io.Writer) (bool, error) {
	switch cmd.Type {
	case CommandExit:
		return false, nil

	case CommandHelp:
		fmt.Fprintln(out, "usage:")
		fmt.Fprintln(out, "    <c0 source>      compile the session with the new line appended")
		fmt.Fprintln(out, "    :tokens [source] dump the tokens of source (or of the session)")
		fmt.Fprintln(out, "    :show            print the last compiled program")
		fmt.Fprintln(out, "    :reset           forget the session source")
		fmt.Fprintln(out, "    :load <file>     append a file to the session")
		fmt.Fprintln(out, "    exit")

	case CommandReset:
		s.Reset()

	case CommandShow:
		if s.program == nil {
			fmt.Fprintln(out, "nothing compiled yet")
			return true, nil
		}
		return true, w.Write(s.program)

	case CommandTokens:
		src := cmd.Arg
		if src == "" {
			src = s.source
		}
		s.pending = src

		tokens, err := tokenizer.Tokenize(src)
		if len(tokens) > 0 {
			if werr := w.Write(TokenTable(tokens)); werr != nil {
				return true, werr
			}
		}
		return true, err

	case CommandLoad:
		program, err := s.Load(ctx, cmd.Arg)
		if err != nil {
			return true, err
		}
		return true, w.Write(program)

	case CommandSource:
		if cmd.Arg == "" {
			return true, nil
		}
		program, err := s.Add(ctx, cmd.Arg)
		if err != nil {
			return true, err
		}
		return true, w.Write(program)
	}

	return true, nil
}
