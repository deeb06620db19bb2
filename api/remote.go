/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package c0

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/dburkart/c0/pkg/c0/instruction"
	"github.com/dburkart/c0/pkg/common/parse"
	"github.com/dburkart/c0/pkg/proto"
)

// A RemoteClient sends compile requests to a c0 compile service.
type RemoteClient struct {
	target proto.ConnectionString
	http   *http.Client
	log    zerolog.Logger

	// Attempts is how many times a request is sent before a transport
	// error is returned. Backoff is the delay before the first retry; it
	// doubles with every attempt.
	Attempts int
	Backoff  time.Duration
}

func NewRemoteClient(target proto.ConnectionString, log zerolog.Logger) *RemoteClient {
	return &RemoteClient{
		target:   target,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log,
		Attempts: 3,
		Backoff:  time.Second,
	}
}

// RemoteError is a diagnostic produced by a compile service.
type RemoteError struct {
	Kind     parse.ErrorCode
	Message  string
	Position parse.Position
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Code() parse.ErrorCode {
	return e.Kind
}

func (e *RemoteError) Pos() parse.Position {
	return e.Position
}

func (e *RemoteError) Is(target error) bool {
	return parse.MatchCode(e, target)
}

// diagnosticError turns a diagnostic back into an error. Failures that are
// not compile errors arrive with the NoError code.
func diagnosticError(d *proto.Diagnostic) error {
	code, ok := parse.ParseErrorCode(d.Code)
	if !ok {
		return errors.Errorf("unknown diagnostic code %q: %s", d.Code, d.Message)
	}
	if code == parse.NoError {
		return errors.Errorf("compile service failed: %s", d.Message)
	}

	return &RemoteError{Kind: code, Message: d.Message, Position: d.Position()}
}

func (client *RemoteClient) Compile(ctx context.Context, rq proto.CompileRequest) (*instruction.Program, error) {
	body, err := json.Marshal(rq)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal compile request")
	}

	resp, err := client.send(ctx, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var response proto.CompileResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, errors.Wrapf(err, "unable to decode response (%s)", resp.Status)
	}

	client.log.Debug().Str("id", response.ID).Int("status", resp.StatusCode).Msg("compile response")

	if response.Diagnostic != nil {
		return nil, diagnosticError(response.Diagnostic)
	}

	if resp.StatusCode != http.StatusOK || response.Program == nil {
		return nil, errors.Errorf("compile service answered %s without a program", resp.Status)
	}

	return response.Program, nil
}

// send posts body to the compile endpoint, retrying transport failures
// with an exponential backoff.
func (client *RemoteClient) send(ctx context.Context, body []byte) (*http.Response, error) {
	url := client.target.Endpoint(proto.EndpointCompile)

	var lastErr error
	for i := 0; i < max(client.Attempts, 1); i++ {
		if i > 0 {
			delay := time.Duration(math.Exp2(float64(i-1))) * client.Backoff
			client.log.Debug().Err(lastErr).Dur("delay", delay).Msg("retrying compile request")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, errors.Wrap(err, "unable to build compile request")
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.http.Do(req)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	return nil, errors.Wrapf(lastErr, "unable to reach compile service at %s", client.target.Address)
}

func (client *RemoteClient) Close() error {
	client.http.CloseIdleConnections()
	return nil
}
