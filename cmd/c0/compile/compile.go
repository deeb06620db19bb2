/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	c0 "github.com/dburkart/c0/api"
	"github.com/dburkart/c0/cmd/c0/cli"
	"github.com/dburkart/c0/pkg/common/parse"
	"github.com/dburkart/c0/pkg/repl"
)

var Command = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a c0 program and print its instructions",
	Args:  cobra.MaximumNArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		log := cli.Logger()

		output := viper.GetString("c0.output")
		if err := cli.CheckOutput(output); err != nil {
			log.Fatal().Err(err).Send()
		}

		name, source, err := cli.ReadSource(args, os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Send()
		}

		client, err := c0.NewClientWithLogger(viper.GetString("c0.host"), log)
		if err != nil {
			log.Fatal().Err(err).Str("host", viper.GetString("c0.host")).Msg("unable to create client")
		}
		defer client.Close()

		start := time.Now()
		program, err := client.Compile(context.Background(), cli.Request(name, source))
		if err != nil {
			var perr parse.Error
			if errors.As(err, &perr) {
				fmt.Fprint(os.Stderr, cli.RenderError(parse.FormatError(perr, source)))
				os.Exit(1)
			}
			log.Fatal().Err(err).Msg("compilation failed")
		}

		if viper.GetBool("c0.listing") {
			fmt.Print(program.Listing())
		} else if err := repl.NewOutputWriter(os.Stdout, output).Write(program); err != nil {
			log.Fatal().Err(err).Msg("unable to write program")
		}

		log.Info().
			Str("unit", name).
			Str("source", humanize.Bytes(uint64(len(source)))).
			Str("instructions", humanize.Comma(int64(program.Count()))).
			Int("functions", len(program.Functions)).
			Dur("elapsed", time.Since(start)).
			Msg("compiled")
	},
}

func init() {
	// Flags for this command
	Command.Flags().StringP("output", "o", "text", "Output format of the instructions [csv, json, text]")
	Command.Flags().BoolP("listing", "l", false, "Print the plain text listing instead of a table")

	// Bind flags to viper
	viper.BindPFlag("c0.output", Command.Flags().Lookup("output"))
	viper.BindPFlag("c0.listing", Command.Flags().Lookup("listing"))
}
