/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dburkart/c0/pkg/c0/analyser"
	"github.com/dburkart/c0/pkg/c0/instruction"
	"github.com/dburkart/c0/pkg/c0/symbols"
	"github.com/dburkart/c0/pkg/c0/tokenizer"
	"github.com/dburkart/c0/pkg/common/parse"
	"github.com/dburkart/c0/pkg/proto"
)

// Compile analyses a single compilation unit.
func Compile(rq proto.CompileRequest, log zerolog.Logger) (*instruction.Program, error) {
	a := analyser.New(tokenizer.New(rq.Source))
	a.Log = log.With().Str("unit", rq.Name).Logger()
	if rq.NoStdlib {
		a.Functions = symbols.NewFunctionTable()
	}

	return a.Analyse()
}

// CompileResponse compiles rq and returns the response together with its
// HTTP status and the metrics result label.
func CompileResponse(id string, rq proto.CompileRequest, log zerolog.Logger) (proto.CompileResponse, int, string) {
	resp := proto.CompileResponse{ID: id}

	program, err := Compile(rq, log)
	if err == nil {
		resp.Program = program
		return resp, http.StatusOK, ResultOK
	}

	var perr parse.Error
	if errors.As(err, &perr) {
		resp.Diagnostic = proto.NewDiagnostic(perr)
		return resp, http.StatusUnprocessableEntity, ResultDiagnostic
	}

	resp.Diagnostic = &proto.Diagnostic{Code: parse.NoError.ToString(), Message: err.Error()}
	return resp, http.StatusInternalServerError, ResultError
}

func writeJSON(w http.ResponseWriter, status int, v any, log zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("unable to write response")
	}
}
