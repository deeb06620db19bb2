/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/rs/zerolog"

	"github.com/dburkart/c0/pkg/c0/instruction"
	"github.com/dburkart/c0/pkg/proto"
	"github.com/dburkart/c0/pkg/server"
)

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, proto.CompileResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, proto.EndpointCompile, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp proto.CompileResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		be.Err(t, json.Unmarshal(rec.Body.Bytes(), &resp), nil)
	}
	return rec, resp
}

func TestCompileEndpoint(t *testing.T) {
	srv := server.New(zerolog.Nop(), 0, 0)
	h := srv.Handler()

	t.Run("program", func(t *testing.T) {
		rec, resp := post(t, h, `{"name":"one","source":"putint(1);"}`)
		be.Equal(t, rec.Code, http.StatusOK)
		be.True(t, resp.ID != "")
		be.True(t, resp.Diagnostic == nil)
		be.Equal(t, resp.Program.Count(), 3)
		be.Equal(t, resp.Program.Functions[0].Body[1].Operand, any(instruction.Callee{ID: 4, Name: "putint", Argc: 1}))
	})

	t.Run("diagnostic", func(t *testing.T) {
		rec, resp := post(t, h, `{"source":"let a: int = 1;\nb = a;"}`)
		be.Equal(t, rec.Code, http.StatusUnprocessableEntity)
		be.True(t, resp.Program == nil)
		be.Equal(t, resp.Diagnostic.Code, "NotDeclared")
		be.Equal(t, resp.Diagnostic.Line, 2)
		be.Equal(t, resp.Diagnostic.Column, 1)
		be.Equal(t, resp.Diagnostic.Offset, 16)
	})

	t.Run("without stdlib", func(t *testing.T) {
		rec, resp := post(t, h, `{"source":"putint(1);","no_stdlib":true}`)
		be.Equal(t, rec.Code, http.StatusUnprocessableEntity)
		be.Equal(t, resp.Diagnostic.Code, "NotDeclared")
	})

	t.Run("malformed", func(t *testing.T) {
		rec, _ := post(t, h, `{"source":`)
		be.Equal(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, proto.EndpointCompile, nil))
		be.Equal(t, rec.Code, http.StatusMethodNotAllowed)
		be.Equal(t, rec.Header().Get("Allow"), http.MethodPost)
	})
}

func TestRequestSizeLimit(t *testing.T) {
	srv := server.New(zerolog.Nop(), 0, 0)
	srv.MaxSourceBytes = 16

	rec, _ := post(t, srv.Handler(), `{"source":"putint(1); putint(2);"}`)
	be.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestHealth(t *testing.T) {
	srv := server.New(zerolog.Nop(), 0, 0)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, proto.EndpointHealth, nil))
	be.Equal(t, rec.Code, http.StatusOK)
}

func TestMetrics(t *testing.T) {
	srv := server.New(zerolog.Nop(), 0, 0)
	h := srv.Handler()

	post(t, h, `{"source":"putint(1);"}`)
	post(t, h, `{"source":"x;"}`)
	post(t, h, `{"source":`)

	rec := httptest.NewRecorder()
	srv.Metrics().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, proto.EndpointMetrics, nil))
	body, err := io.ReadAll(rec.Body)
	be.Err(t, err, nil)

	metrics := string(body)
	be.True(t, strings.Contains(metrics, `c0_compile_requests{result="ok"} 1`))
	be.True(t, strings.Contains(metrics, `c0_compile_requests{result="diagnostic"} 1`))
	be.True(t, strings.Contains(metrics, `c0_compile_requests{result="rejected"} 1`))
	be.True(t, strings.Contains(metrics, "c0_instructions_emitted 3"))
	be.True(t, strings.Contains(metrics, "c0_source_bytes 12"))
	be.True(t, strings.Contains(metrics, "c0_compile_ns_bucket"))
}
