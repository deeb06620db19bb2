/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/dburkart/c0/pkg/c0/instruction"
	"github.com/dburkart/c0/pkg/common/parse"
)

// Printable is anything the output writers can render as a table.
type Printable interface {
	Headers() []string
	Values() [][]string
}

type (
	CompileRequest struct {
		Name     string `json:"name,omitempty"`
		Source   string `json:"source"`
		NoStdlib bool   `json:"no_stdlib,omitempty"`
	}

	CompileResponse struct {
		ID         string               `json:"id"`
		Program    *instruction.Program `json:"program,omitempty"`
		Diagnostic *Diagnostic          `json:"diagnostic,omitempty"`
	}

	// Diagnostic is a compile error as it travels over the wire.
	Diagnostic struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Line    int    `json:"line"`
		Column  int    `json:"column"`
		Offset  int    `json:"offset"`
	}
)

func NewDiagnostic(err parse.Error) *Diagnostic {
	pos := err.Pos()
	return &Diagnostic{
		Code:    err.Code().ToString(),
		Message: err.Error(),
		Line:    pos.Line,
		Column:  pos.Column,
		Offset:  pos.Offset,
	}
}

func (d Diagnostic) Position() parse.Position {
	return parse.Position{Offset: d.Offset, Line: d.Line, Column: d.Column}
}

func (d Diagnostic) MarshalZerologObject(e *zerolog.Event) {
	e.Str("code", d.Code).Int("line", d.Line).Int("column", d.Column)
}

func (rq CompileRequest) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", rq.Name).Int("bytes", len(rq.Source)).Bool("no_stdlib", rq.NoStdlib)
}

// ReadCompileRequest decodes a request, reading at most limit bytes.
func ReadCompileRequest(r io.Reader, limit int64) (CompileRequest, error) {
	var rq CompileRequest

	dec := json.NewDecoder(io.LimitReader(r, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rq); err != nil {
		return CompileRequest{}, fmt.Errorf("malformed compile request: %w", err)
	}

	return rq, nil
}
