/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package c0

import (
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// defaults apply when neither a flag, the environment nor the config file
// sets a key.
var defaults = map[string]any{
	"c0.host":                 "local",
	"c0.stdlib":               true,
	"c0.output":               "text",
	"server.port":             8001,
	"server.prom-port":        2112,
	"server.max-source-bytes": 1 << 20,
}

// verbosityLevels maps the number of -v flags to a log level.
var verbosityLevels = []zerolog.Level{zerolog.InfoLevel, zerolog.DebugLevel, zerolog.TraceLevel}

func initConfig(configFile string) {
	log := viper.Get("logger").(zerolog.Logger)

	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	// C0_SERVER_PORT overrides server.port and so on
	viper.SetEnvPrefix("c0")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath("/etc/c0")
	viper.AddConfigPath("$HOME/.c0")
	viper.AddConfigPath(".")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	}

	err := viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Debug().Msg("no config file found, using defaults")
		return
	} else if err != nil {
		log.Error().Err(err).Str("file", configFile).Msg("unable to load config file")
		return
	}

	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("loaded config from file")
}

func levelFor(verbosity int) zerolog.Level {
	return verbosityLevels[max(0, min(verbosity, len(verbosityLevels)-1))]
}

func initLogLevel() {
	zerolog.SetGlobalLevel(levelFor(viper.GetInt("c0.verbose")))
}

// newLogger builds the process logger. Console output is for people at a
// terminal; the caller is only recorded when tracing.
func newLogger(w io.Writer, console bool, level zerolog.Level) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			PartsOrder: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.CallerFieldName, zerolog.MessageFieldName},
		}
	}

	ctx := zerolog.New(w).With().Timestamp()
	if level <= zerolog.TraceLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

func initLogging() {
	// stdout carries listings and token dumps, so logs always go to stderr
	logger := newLogger(os.Stderr, viper.GetBool("c0.local"), levelFor(viper.GetInt("c0.verbose")))
	viper.Set("logger", logger)
}

func traceConfig() {
	log := viper.Get("logger").(zerolog.Logger)

	keys := viper.AllKeys()
	slices.Sort(keys)
	for _, k := range keys {
		if k == "logger" {
			continue
		}
		log.Trace().Str("key", k).Interface("value", viper.Get(k)).Msg("config")
	}
}
