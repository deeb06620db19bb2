/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package instruction

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/dburkart/c0/pkg/c0/symbols"
)

func sample() *Program {
	start := &Function{Name: symbols.EntryName, Return: symbols.Void}
	start.Emit(Push, uint64(1))
	start.Emit(Store, Slot{Kind: symbols.Global, Index: 0})
	br := start.Emit(BrFalse, nil)
	start.Emit(Push, "hi\n")
	start.Emit(Call, Callee{ID: 7, Name: "putstr", Argc: 1})
	start.Patch(br, start.Next())
	start.Emit(Push, 2.5)
	start.Emit(Cast, symbols.Int)
	start.Emit(Pop, nil)

	return &Program{
		Globals:   []Global{{Name: "x", Slot: 0}, {Name: "k", Slot: 1, Constant: true}},
		Functions: []*Function{start},
	}
}

func TestListing(t *testing.T) {
	want := strings.Join([]string{
		".global 0 x",
		".global 1 k const",
		"",
		"fn _start #0 params 0 locals 0 -> void",
		"   0  push 1",
		"   1  store global[0]",
		"   2  br.false @5",
		`   3  push "hi\n"`,
		"   4  call putstr#7/1",
		"   5  push 2.5",
		"   6  cast int",
		"   7  pop",
		"",
	}, "\n")

	be.Equal(t, sample().Listing(), want)
}

func TestValues(t *testing.T) {
	p := sample()
	rows := p.Values()

	be.Equal(t, len(p.Headers()), 4)
	be.Equal(t, len(rows), p.Count())
	be.Equal(t, rows[1], []string{"_start", "1", "store", "global[0]"})
	be.Equal(t, rows[7], []string{"_start", "7", "pop", ""})
}

func TestInstructionJSON(t *testing.T) {
	p := sample()

	data, err := json.Marshal(p)
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(data), `{"op":"store","slot":{"kind":"global","index":0}}`))
	be.True(t, strings.Contains(string(data), `{"op":"cast","type":"int"}`))
	be.True(t, strings.Contains(string(data), `{"op":"br.false","target":5}`))

	var decoded Program
	be.Err(t, json.Unmarshal(data, &decoded), nil)
	be.Equal(t, decoded.Listing(), p.Listing())
	be.Equal(t, decoded.Functions[0].Body[0].Operand, any(uint64(1)))
	be.Equal(t, decoded.Functions[0].Body[5].Operand, any(2.5))
}

func TestUnknownOperation(t *testing.T) {
	var ins Instruction
	err := json.Unmarshal([]byte(`{"op":"jump"}`), &ins)
	be.Err(t, err)

	_, err = json.Marshal(Instruction{Op: Push, Operand: int32(4)})
	be.Err(t, err)
}
