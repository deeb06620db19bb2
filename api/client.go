/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package c0

import (
	"context"

	"github.com/dburkart/c0/pkg/c0/instruction"
	"github.com/dburkart/c0/pkg/proto"
)

// Client compiles c0 source. Diagnostics are returned as parse.Error values
// no matter where the compilation ran.
type Client interface {
	Compile(context.Context, proto.CompileRequest) (*instruction.Program, error)
	Close() error
}
