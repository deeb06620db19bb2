/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package c0

import (
	"github.com/rs/zerolog"

	"github.com/dburkart/c0/pkg/proto"
)

// NewClient creates a Client for the given connection string. "local" (or
// an empty string) compiles in process, while c0://host:port talks to a
// compile service started with `c0 serve`.
func NewClient(connstr string) (Client, error) {
	return NewClientWithLogger(connstr, zerolog.Nop())
}

// NewClientWithLogger is NewClient with a logger handed down to the
// analyser (local) or used for transport retries (remote).
func NewClientWithLogger(connstr string, log zerolog.Logger) (Client, error) {
	target, err := proto.ParseConnectionString(connstr)
	if err != nil {
		return nil, err
	}

	if target.Local {
		return &LocalClient{log: log}, nil
	}

	return NewRemoteClient(target, log), nil
}
