/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package instruction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dburkart/c0/pkg/c0/symbols"
)

type Function struct {
	Name   string        `json:"name"`
	ID     int           `json:"id"`
	Params int           `json:"params"`
	Return symbols.Type  `json:"return"`
	Locals int           `json:"locals"`
	Body   []Instruction `json:"body"`
}

// Emit appends an instruction and returns its index.
func (f *Function) Emit(op Operation, operand any) int {
	f.Body = append(f.Body, Instruction{Op: op, Operand: operand})
	return len(f.Body) - 1
}

// Patch points the branch at index at to target.
func (f *Function) Patch(at int, target int) {
	f.Body[at].Operand = Target(target)
}

// Next is the index the next emitted instruction will get.
func (f *Function) Next() int {
	return len(f.Body)
}

type Global struct {
	Name     string `json:"name"`
	Slot     int    `json:"slot"`
	Constant bool   `json:"constant,omitempty"`
}

// Program is the output of analysis. Functions[0] is the entry function.
type Program struct {
	Globals   []Global    `json:"globals"`
	Functions []*Function `json:"functions"`
}

func (p *Program) Function(name string) *Function {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Count is the total number of instructions in the program.
func (p *Program) Count() int {
	n := 0
	for _, f := range p.Functions {
		n += len(f.Body)
	}
	return n
}

// Listing renders the program as text, one instruction per line.
func (p *Program) Listing() string {
	var sb strings.Builder

	for _, g := range p.Globals {
		fmt.Fprintf(&sb, ".global %d %s", g.Slot, g.Name)
		if g.Constant {
			sb.WriteString(" const")
		}
		sb.WriteString("\n")
	}

	for _, f := range p.Functions {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "fn %s #%d params %d locals %d -> %s\n", f.Name, f.ID, f.Params, f.Locals, f.Return)
		for i, ins := range f.Body {
			fmt.Fprintf(&sb, "%4d  %s\n", i, ins)
		}
	}

	return sb.String()
}

func (p *Program) Headers() []string {
	return []string{"Function", "Index", "Op", "Operand"}
}

func (p *Program) Values() [][]string {
	var rows [][]string
	for _, f := range p.Functions {
		for i, ins := range f.Body {
			operand := ""
			if ins.Operand != nil {
				operand = formatOperand(ins.Operand)
			}
			rows = append(rows, []string{f.Name, strconv.Itoa(i), ins.Op.String(), operand})
		}
	}
	return rows
}
