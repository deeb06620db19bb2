/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package serve

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dburkart/c0/cmd/c0/cli"
	"github.com/dburkart/c0/pkg/server"
)

var Command = &cobra.Command{
	Use:   "serve",
	Short: "Compile service answering requests from c0 clients",

	Run: func(cmd *cobra.Command, args []string) {
		logger := cli.Logger()

		// Initialize compile server
		srv := server.New(
			logger,
			viper.GetInt("server.port"),
			viper.GetInt("server.prom-port"),
		)
		srv.MaxSourceBytes = viper.GetInt64("server.max-source-bytes")

		// Serve the metrics endpoint
		go func() {
			if err := srv.ServeMetrics(); err != nil {
				logger.Error().Err(err).Msg("metrics endpoint stopped")
			}
		}()

		// Serve compile requests
		if err := srv.ServeCompile(); err != nil {
			logger.Fatal().Err(err).Msg("error listening and serving")
		}
	},
}

func init() {
	// Flags for this command
	Command.Flags().IntP("port", "p", 8001, "Port for compile requests")
	Command.Flags().Int("prom-port", 2112, "Set the port for /metrics")
	Command.Flags().Int64("max-source-bytes", server.DefaultMaxSourceBytes, "Largest accepted compile request body")

	// Bind flags to viper
	viper.BindPFlag("server.port", Command.Flags().Lookup("port"))
	viper.BindPFlag("server.prom-port", Command.Flags().Lookup("prom-port"))
	viper.BindPFlag("server.max-source-bytes", Command.Flags().Lookup("max-source-bytes"))
}
