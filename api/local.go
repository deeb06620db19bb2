/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package c0

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dburkart/c0/pkg/c0/instruction"
	"github.com/dburkart/c0/pkg/proto"
	"github.com/dburkart/c0/pkg/server"
)

// LocalClient runs the tokenizer and analyser in the calling goroutine.
type LocalClient struct {
	log zerolog.Logger
}

func (client *LocalClient) Compile(ctx context.Context, rq proto.CompileRequest) (*instruction.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return server.Compile(rq, client.log)
}

func (client *LocalClient) Close() error {
	return nil
}
