/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

var (
	// EndpointCompile accepts a CompileRequest and answers with a CompileResponse
	EndpointCompile = "/compile"
	// EndpointMetrics serves the prometheus metrics of the compile service
	EndpointMetrics = "/metrics"
	// EndpointHealth answers 200 while the service is up
	EndpointHealth = "/healthz"
)
