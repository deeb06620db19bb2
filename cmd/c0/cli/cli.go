/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package cli holds what the c0 subcommands share.
package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/dburkart/c0/pkg/proto"
	"github.com/dburkart/c0/pkg/repl"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Logger is the logger built by the root command.
func Logger() zerolog.Logger {
	return viper.Get("logger").(zerolog.Logger)
}

// ReadSource reads the file named by args, or stdin when args is empty.
func ReadSource(args []string, stdin io.Reader) (name string, source string, err error) {
	if len(args) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "unable to read stdin")
		}
		return "<stdin>", string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", errors.Wrapf(err, "unable to read %s", args[0])
	}
	return args[0], string(b), nil
}

// Request builds a compile request honoring the c0.stdlib setting.
func Request(name, source string) proto.CompileRequest {
	return proto.CompileRequest{Name: name, Source: source, NoStdlib: !viper.GetBool("c0.stdlib")}
}

func CheckOutput(format string) error {
	if !slices.Contains(repl.Formats, format) {
		return fmt.Errorf("unsupported output format %q (want one of %s)", format, strings.Join(repl.Formats, ", "))
	}
	return nil
}

// RenderError styles a rendered diagnostic: the headline stands out and
// the echoed source is dimmed.
func RenderError(text string) string {
	headline, rest, _ := strings.Cut(strings.TrimRight(text, "\n"), "\n")

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(headline))
	sb.WriteString("\n")
	if rest != "" {
		for _, line := range strings.Split(rest, "\n") {
			sb.WriteString(faintStyle.Render(line))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
