/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"fmt"
	stdlog "log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dburkart/c0/pkg/proto"
)

// DefaultMaxSourceBytes bounds the size of a compile request body.
const DefaultMaxSourceBytes = 1 << 20

type Server struct {
	log     zerolog.Logger
	metrics MetricsStore

	compilePort int
	metricsPort int

	MaxSourceBytes int64
}

func New(log zerolog.Logger, compilePort, metricsPort int) Server {
	return Server{
		log:            log,
		metrics:        NewMetricsStore(),
		compilePort:    compilePort,
		metricsPort:    metricsPort,
		MaxSourceBytes: DefaultMaxSourceBytes,
	}
}

func (s *Server) Metrics() MetricsStore {
	return s.metrics
}

// Handler routes the compile service endpoints. The metrics endpoint is
// served separately by ServeMetrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(proto.EndpointCompile, s.handleCompile)
	mux.HandleFunc(proto.EndpointHealth, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return mux
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := uuid.NewString()
	log := s.log.With().Str("id", id).Logger()

	if r.Method != http.MethodPost {
		s.metrics.IncRequests(ResultRejected)
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rq, err := proto.ReadCompileRequest(r.Body, s.MaxSourceBytes)
	if err != nil {
		s.metrics.IncRequests(ResultRejected)
		log.Debug().Err(err).Msg("rejected compile request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Debug().EmbedObject(rq).Msg("compile request")
	s.metrics.AddSourceBytes(len(rq.Source))

	resp, status, result := CompileResponse(id, rq, log)

	s.metrics.IncRequests(result)
	s.metrics.ObserveCompileNS(result, time.Since(start).Nanoseconds())
	if resp.Program != nil {
		s.metrics.AddInstructions(resp.Program.Count())
	}

	if resp.Diagnostic != nil {
		log.Debug().Object("diagnostic", resp.Diagnostic).Msg("compile failed")
	}
	log.Trace().Int("status", status).Dur("elapsed", time.Since(start)).Msg("wrote response")

	writeJSON(w, status, resp, log)
}

// Timeouts applied to every connection of the compile and metrics
// listeners.
var (
	ReadHeaderTimeout = 5 * time.Second
	ReadTimeout       = 30 * time.Second
	WriteTimeout      = 30 * time.Second
	IdleTimeout       = 2 * time.Minute
)

func (s *Server) httpServer(port int, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		ErrorLog:          stdlog.New(s.log.With().Str("port", fmt.Sprint(port)).Logger(), "", 0),
	}
}

func (s *Server) ServeCompile() error {
	s.log.Info().Int("port", s.compilePort).Msg("listening for compile requests")
	return s.httpServer(s.compilePort, s.Handler()).ListenAndServe()
}

func (s *Server) ServeMetrics() error {
	s.log.Info().Int("port", s.metricsPort).Msg("/metrics endpoint started")

	mux := http.NewServeMux()
	mux.Handle(proto.EndpointMetrics, s.metrics.Handler())
	return s.httpServer(s.metricsPort, mux).ListenAndServe()
}
