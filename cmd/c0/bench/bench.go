/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package bench

import (
	"context"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	c0 "github.com/dburkart/c0/api"
	"github.com/dburkart/c0/cmd/c0/cli"
	"github.com/dburkart/c0/pkg/proto"
)

var Command = &cobra.Command{
	Use:   "bench [file]",
	Short: "Compile a program repeatedly and report the throughput",
	Args:  cobra.MaximumNArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		log := cli.Logger()

		name, source, err := cli.ReadSource(args, os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Send()
		}

		host := viper.GetString("c0.host")
		client, err := c0.NewClientWithLogger(host, zerolog.Nop())
		if err != nil {
			log.Fatal().Err(err).Str("host", host).Msg("unable to create client")
		}
		defer client.Close()

		timeIt(log, name, func() {
			compileN(log, client, cli.Request(name, source), viper.GetInt("bench.count"))
		})
	},
}

func init() {
	// Flags for this command
	Command.Flags().Int("count", 100, "Number of compilations")

	// Bind flags to viper
	viper.BindPFlag("bench.count", Command.Flags().Lookup("count"))
}

func timeIt(log zerolog.Logger, name string, f func()) {
	t := time.Now()
	defer func() {
		log.Info().Str("dur", time.Since(t).String()).Str("name", name).Send()
	}()
	f()
}

func compileN(log zerolog.Logger, client c0.Client, rq proto.CompileRequest, count int) {
	ctx := context.Background()
	start := time.Now()

	instructions := 0
	for i := 0; i < count; i++ {
		program, err := client.Compile(ctx, rq)
		if err != nil {
			log.Fatal().Err(err).Int("iteration", i).Msg("compilation failed")
		}
		instructions += program.Count()
	}

	elapsed := time.Since(start)
	bytes := uint64(len(rq.Source)) * uint64(count)
	log.Info().
		Str("compilations", humanize.Comma(int64(count))).
		Str("instructions", humanize.Comma(int64(instructions))).
		Str("throughput", humanize.Bytes(uint64(float64(bytes)/max(elapsed.Seconds(), 1e-9)))+"/s").
		Send()
}
