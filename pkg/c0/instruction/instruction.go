/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package instruction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dburkart/c0/pkg/c0/symbols"
)

type Operation int

const (
	Nop Operation = iota
	Push
	Pop
	Load
	Store
	Neg
	Add
	Sub
	Mul
	Div
	CmpEq
	CmpNe
	CmpLt
	CmpGt
	CmpLe
	CmpGe
	Cast
	BrFalse
	Jmp
	Call
	Ret
)

var opNames = [...]string{
	Nop:     "nop",
	Push:    "push",
	Pop:     "pop",
	Load:    "load",
	Store:   "store",
	Neg:     "neg",
	Add:     "add",
	Sub:     "sub",
	Mul:     "mul",
	Div:     "div",
	CmpEq:   "cmp.eq",
	CmpNe:   "cmp.ne",
	CmpLt:   "cmp.lt",
	CmpGt:   "cmp.gt",
	CmpLe:   "cmp.le",
	CmpGe:   "cmp.ge",
	Cast:    "cast",
	BrFalse: "br.false",
	Jmp:     "jmp",
	Call:    "call",
	Ret:     "ret",
}

func (o Operation) String() string {
	if int(o) >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

func ParseOperation(name string) (Operation, bool) {
	for i, n := range opNames {
		if n == name {
			return Operation(i), true
		}
	}
	return Nop, false
}

// Slot addresses a variable by storage kind and index.
type Slot struct {
	Kind  symbols.Kind `json:"kind"`
	Index int          `json:"index"`
}

func (s Slot) String() string {
	return fmt.Sprintf("%s[%d]", s.Kind, s.Index)
}

// Target is the absolute index of an instruction in the same function body.
type Target int

// Callee is the operand of a call.
type Callee struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Argc int    `json:"argc"`
}

func (c Callee) String() string {
	return fmt.Sprintf("%s#%d/%d", c.Name, c.ID, c.Argc)
}

// Instruction is one operation of the stack machine. Operand is one of
//
//	nil          no operand
//	uint64       push of an integer or char
//	float64      push of a double
//	string       push of a decoded string constant
//	Slot         load, store
//	Target       br.false, jmp
//	Callee       call
//	symbols.Type cast
type Instruction struct {
	Op      Operation
	Operand any
}

func (i Instruction) String() string {
	if i.Operand == nil {
		return i.Op.String()
	}
	return i.Op.String() + " " + formatOperand(i.Operand)
}

func formatOperand(operand any) string {
	switch v := operand.(type) {
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	case string:
		return strconv.Quote(v)
	case Target:
		return fmt.Sprintf("@%d", int(v))
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(operand)
}

type wireInstruction struct {
	Op     string        `json:"op"`
	Uint   *uint64       `json:"uint,omitempty"`
	Double *float64      `json:"double,omitempty"`
	Str    *string       `json:"string,omitempty"`
	Slot   *Slot         `json:"slot,omitempty"`
	Target *int          `json:"target,omitempty"`
	Call   *Callee       `json:"call,omitempty"`
	Type   *symbols.Type `json:"type,omitempty"`
}

func (i Instruction) MarshalJSON() ([]byte, error) {
	w := wireInstruction{Op: i.Op.String()}

	switch v := i.Operand.(type) {
	case nil:
	case uint64:
		w.Uint = &v
	case float64:
		w.Double = &v
	case string:
		w.Str = &v
	case Slot:
		w.Slot = &v
	case Target:
		target := int(v)
		w.Target = &target
	case Callee:
		w.Call = &v
	case symbols.Type:
		w.Type = &v
	default:
		return nil, fmt.Errorf("cannot encode operand of type %T", i.Operand)
	}

	return json.Marshal(w)
}

func (i *Instruction) UnmarshalJSON(data []byte) error {
	var w wireInstruction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	op, ok := ParseOperation(w.Op)
	if !ok {
		return fmt.Errorf("unknown operation %q", w.Op)
	}
	i.Op = op
	i.Operand = nil

	switch {
	case w.Uint != nil:
		i.Operand = *w.Uint
	case w.Double != nil:
		i.Operand = *w.Double
	case w.Str != nil:
		i.Operand = *w.Str
	case w.Slot != nil:
		i.Operand = *w.Slot
	case w.Target != nil:
		i.Operand = Target(*w.Target)
	case w.Call != nil:
		i.Operand = *w.Call
	case w.Type != nil:
		i.Operand = *w.Type
	}

	return nil
}
