/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsStore interface {
	Registry() *prometheus.Registry
	RegisterCollector(c prometheus.Collector)
	Handler() http.Handler

	// Compilation
	IncRequests(result string)
	ObserveCompileNS(result string, t int64)
	AddInstructions(n int)
	AddSourceBytes(n int)
}

type metricsStore struct {
	registry     *prometheus.Registry
	Requests     *prometheus.CounterVec
	CompileNS    *prometheus.HistogramVec
	Instructions prometheus.Counter
	SourceBytes  prometheus.Counter
}

var ResultLabel = "result"

// Values of ResultLabel
const (
	ResultOK         = "ok"
	ResultDiagnostic = "diagnostic"
	ResultRejected   = "rejected"
	ResultError      = "error"
)

func NewMetricsStore() MetricsStore {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsAll),
		),
	)

	buckets := []float64{}
	for i := 1; i < 20; i++ {
		buckets = append(buckets, float64(50*i*int(time.Microsecond)))
	}

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "c0_compile_requests",
			Help: "Compile requests by outcome",
		}, []string{ResultLabel}),
		CompileNS: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "c0_compile_ns",
			Help:    "Time spent tokenizing and analysing a compilation unit",
			Buckets: buckets,
		}, []string{ResultLabel}),
		Instructions: factory.NewCounter(prometheus.CounterOpts{
			Name: "c0_instructions_emitted",
			Help: "The total number of instructions emitted",
		}),
		SourceBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "c0_source_bytes",
			Help: "The total number of source bytes compiled",
		}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) RegisterCollector(c prometheus.Collector) {
	ms.registry.MustRegister(c)
}

func (ms *metricsStore) Handler() http.Handler {
	return promhttp.HandlerFor(ms.Registry(), promhttp.HandlerOpts{Registry: ms.Registry()})
}

func (ms *metricsStore) IncRequests(result string) {
	ms.Requests.With(prometheus.Labels{ResultLabel: result}).Inc()
}

func (ms *metricsStore) ObserveCompileNS(result string, t int64) {
	ms.CompileNS.
		With(prometheus.Labels{ResultLabel: result}).
		Observe(float64(t))
}

func (ms *metricsStore) AddInstructions(n int) {
	ms.Instructions.Add(float64(n))
}

func (ms *metricsStore) AddSourceBytes(n int) {
	ms.SourceBytes.Add(float64(n))
}
