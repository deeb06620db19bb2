/*
 * Copyright (c) 2023, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/dburkart/c0/pkg/proto"
)

// Formats accepted by NewOutputWriter
var Formats = []string{"text", "csv", "json"}

type OutputWriter interface {
	Write(v proto.Printable) error
}

type CSVWriter struct {
	w io.Writer
}

type TextWriter struct {
	w io.Writer
}

type JSONWriter struct {
	w io.Writer
}

func NewOutputWriter(w io.Writer, t string) OutputWriter {
	switch t {
	case "csv":
		return CSVWriter{
			w,
		}
	case "json":
		return JSONWriter{
			w,
		}
	}
	return TextWriter{
		w,
	}
}

func (w CSVWriter) Write(v proto.Printable) error {
	wtr := csv.NewWriter(w.w)
	if err := wtr.Write(v.Headers()); err != nil {
		return err
	}
	return wtr.WriteAll(v.Values())
}

func (w TextWriter) Write(v proto.Printable) error {
	headers := make([]any, 0, len(v.Headers()))
	for _, h := range v.Headers() {
		headers = append(headers, h)
	}

	table := tablewriter.NewWriter(w.w)
	table.Header(headers...)
	if err := table.Bulk(v.Values()); err != nil {
		return err
	}
	return table.Render()
}

func (w JSONWriter) Write(v proto.Printable) error {
	enc := json.NewEncoder(w.w)
	return enc.Encode(v)
}
