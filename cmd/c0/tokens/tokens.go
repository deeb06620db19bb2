/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tokens

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dburkart/c0/cmd/c0/cli"
	"github.com/dburkart/c0/pkg/c0/tokenizer"
	"github.com/dburkart/c0/pkg/common/parse"
	"github.com/dburkart/c0/pkg/repl"
)

var Command = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the tokens of a c0 program",
	Args:  cobra.MaximumNArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		log := cli.Logger()

		output := viper.GetString("tokens.output")
		if err := cli.CheckOutput(output); err != nil {
			log.Fatal().Err(err).Send()
		}

		_, source, err := cli.ReadSource(args, os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Send()
		}

		toks, tokErr := tokenizer.Tokenize(source)
		if err := repl.NewOutputWriter(os.Stdout, output).Write(repl.TokenTable(toks)); err != nil {
			log.Fatal().Err(err).Msg("unable to write tokens")
		}

		var perr parse.Error
		if errors.As(tokErr, &perr) {
			fmt.Fprint(os.Stderr, cli.RenderError(parse.FormatError(perr, source)))
			os.Exit(1)
		}
	},
}

func init() {
	// Flags for this command
	Command.Flags().StringP("output", "o", "text", "Output format of the tokens [csv, json, text]")

	// Bind flags to viper
	viper.BindPFlag("tokens.output", Command.Flags().Lookup("output"))
}
