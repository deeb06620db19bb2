/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	c0 "github.com/dburkart/c0/api"
	"github.com/dburkart/c0/cmd/c0/cli"
	"github.com/dburkart/c0/pkg/repl"
)

var Command = &cobra.Command{
	Use:   "repl",
	Short: "Interactive prompt that compiles c0 as you type",

	Run: func(cmd *cobra.Command, args []string) {
		log := cli.Logger()

		output := viper.GetString("repl.output")
		if err := cli.CheckOutput(output); err != nil {
			log.Fatal().Err(err).Send()
		}

		client, err := c0.NewClientWithLogger(viper.GetString("c0.host"), log)
		if err != nil {
			log.Fatal().Err(err).Str("host", viper.GetString("c0.host")).Msg("unable to create client")
		}
		defer client.Close()

		session := repl.NewSession(client)
		session.NoStdlib = !viper.GetBool("c0.stdlib")

		readlinePrompt(session, output)
	},
}

func init() {
	// Flags for this command
	Command.Flags().StringP("output", "o", "text", "Output format of results [csv, json, text]")

	// Bind flags to viper
	viper.BindPFlag("repl.output", Command.Flags().Lookup("output"))
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// listFiles completes the argument of :load with c0 files in the working
// directory.
func listFiles(line string) []string {
	matches, err := filepath.Glob("*.c0")
	if err != nil {
		return []string{}
	}
	return matches
}

func readlinePrompt(session *repl.Session, output string) {
	log := cli.Logger()

	// Configure the completer
	items := []readline.PrefixCompleterInterface{}
	for _, name := range repl.MetaCommands {
		if name == ":load" {
			items = append(items, readline.PcItem(name, readline.PcItemDynamic(listFiles)))
			continue
		}
		items = append(items, readline.PcItem(name))
	}
	completer := readline.NewPrefixCompleter(items...)

	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mc0>\033[0m ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("unable to start prompt")
	}
	defer rl.Close()

	// Configure output writer
	writer := repl.NewOutputWriter(os.Stdout, output)
	ctx := context.Background()

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}
		line := strings.TrimSpace(ln.Line)

		cmd, err := repl.ParseCommand(line)
		if err != nil {
			log.Error().Err(err).Send()
			continue
		}

		more, err := session.Execute(ctx, cmd, writer, os.Stdout)
		if err != nil {
			fmt.Fprint(os.Stderr, cli.RenderError(session.Describe(err)))
		}
		if !more {
			break
		}
		fmt.Println()
	}
	rl.Clean()
}
