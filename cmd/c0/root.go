/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package c0

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dburkart/c0/cmd/c0/bench"
	"github.com/dburkart/c0/cmd/c0/compile"
	"github.com/dburkart/c0/cmd/c0/repl"
	"github.com/dburkart/c0/cmd/c0/serve"
	"github.com/dburkart/c0/cmd/c0/tokens"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "c0",
		Short: "c0 is a compiler front end for the c0 teaching language",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogLevel()
			traceConfig()
		},
		Version: Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("host", "H", "local", "Compile service to use (local or c0://host:port)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the c0 config file (default ./config.toml)")
	rootCmd.PersistentFlags().Bool("stdlib", true, "Declare the standard library functions")

	// Bind viper config to the root flags
	viper.BindPFlag("c0.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("c0.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("c0.host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("c0.stdlib", rootCmd.PersistentFlags().Lookup("stdlib"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("c0 version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	viper.AutomaticEnv()

	// Register commands on the root binary command
	for _, cmd := range []*cobra.Command{compile.Command, tokens.Command, repl.Command, serve.Command, bench.Command} {
		cmd.Version = rootCmd.Version
		rootCmd.AddCommand(cmd)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("root command failed")
		os.Exit(1)
	}
}
