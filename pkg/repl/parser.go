/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"
	"strings"
)

type CommandType int

const (
	CommandSource CommandType = iota
	CommandTokens
	CommandShow
	CommandReset
	CommandLoad
	CommandHelp
	CommandExit
)

// Meta-commands start with a colon. Everything else is c0 source.
var metaCommands = map[string]CommandType{
	":tokens": CommandTokens,
	":show":   CommandShow,
	":reset":  CommandReset,
	":load":   CommandLoad,
}

// MetaCommands lists the REPL commands for completion and help output.
var MetaCommands = []string{":tokens", ":show", ":reset", ":load", "help", "exit"}

type Command struct {
	Type CommandType
	Arg  string
}

// ParseCommand parses a line read at the REPL prompt
//
// This function assumes there is no '\n'
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)

	switch strings.ToUpper(line) {
	case "HELP":
		return Command{Type: CommandHelp}, nil
	case "EXIT":
		return Command{Type: CommandExit}, nil
	}

	if !strings.HasPrefix(line, ":") {
		return Command{Type: CommandSource, Arg: line}, nil
	}

	// all commands with an argument have a space after them, if not then
	// they are command only like :show
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	t, ok := metaCommands[strings.ToLower(cmd)]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %s", cmd)
	}

	switch t {
	case CommandShow, CommandReset:
		if arg != "" {
			return Command{}, fmt.Errorf("%s takes no argument", cmd)
		}
	case CommandLoad:
		if arg == "" {
			return Command{}, fmt.Errorf("%s needs a file name", cmd)
		}
	}

	return Command{Type: t, Arg: arg}, nil
}
