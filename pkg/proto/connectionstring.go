/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"errors"
	"fmt"
	"net/url"
)

var Protocol = "c0"

type ConnectionString struct {
	Local   bool
	Address string
}

// ParseConnectionString takes a connection string and parses it into the parts
// the application needs to reach a compiler. It will return an error if the
// protocol is not "c0", or if a remote connection string names no host.
//
// Formats:
//
//	local
//	c0://<host:port>
func ParseConnectionString(connStr string) (ConnectionString, error) {
	ret := ConnectionString{
		Local:   true,
		Address: "local",
	}

	if connStr == "" || connStr == "local" {
		return ret, nil
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return ConnectionString{}, err
	}

	if u.Scheme != Protocol {
		return ConnectionString{}, fmt.Errorf("unrecognized scheme: %s", u.Scheme)
	}

	if u.Host == "" {
		return ConnectionString{}, errors.New("missing host in connection string")
	}
	if u.Path != "" && u.Path != "/" {
		return ConnectionString{}, fmt.Errorf("unexpected path %s", u.Path)
	}

	ret.Local = false
	ret.Address = u.Host
	return ret, nil
}

// Endpoint is the URL of a compile service endpoint for a remote connection.
func (c ConnectionString) Endpoint(path string) string {
	return "http://" + c.Address + path
}
