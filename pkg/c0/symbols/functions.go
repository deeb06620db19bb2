/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package symbols

import (
	"fmt"
	"strings"

	"github.com/dburkart/c0/pkg/common/parse"
)

// EntryName is the function holding global initializers and top-level
// statements. It always has ID 0.
const EntryName = "_start"

type Param struct {
	Name     string
	Constant bool
	Type     Type
}

type Signature struct {
	Name    string
	ID      int
	Params  []Param
	Return  Type
	Builtin bool
}

func (s Signature) String() string {
	var params []string
	for _, p := range s.Params {
		params = append(params, p.Type.String())
	}
	return fmt.Sprintf("%s(%s) -> %s", s.Name, strings.Join(params, ", "), s.Return)
}

// FunctionTable maps function names to signatures. IDs are handed out in
// registration order.
type FunctionTable struct {
	byName map[string]*Signature
	order  []*Signature
}

func NewFunctionTable() *FunctionTable {
	f := &FunctionTable{byName: make(map[string]*Signature)}
	f.add(Signature{Name: EntryName, Return: Void})
	return f
}

func (f *FunctionTable) add(sig Signature) Signature {
	sig.ID = len(f.order)
	s := &sig
	f.order = append(f.order, s)
	f.byName[sig.Name] = s
	return sig
}

// Register adds sig and returns it with its ID filled in.
func (f *FunctionTable) Register(sig Signature, pos parse.Position) (Signature, error) {
	if _, ok := f.byName[sig.Name]; ok {
		return Signature{}, &Error{Kind: parse.DuplicateDeclaration, Name: sig.Name, Position: pos}
	}
	return f.add(sig), nil
}

func (f *FunctionTable) Lookup(name string, pos parse.Position) (Signature, error) {
	sig, ok := f.byName[name]
	if !ok {
		return Signature{}, &Error{Kind: parse.NotDeclared, Name: name, Position: pos}
	}
	return *sig, nil
}

// All returns every registered signature ordered by ID.
func (f *FunctionTable) All() []Signature {
	result := make([]Signature, len(f.order))
	for i, s := range f.order {
		result[i] = *s
	}
	return result
}

var standardLibrary = []Signature{
	{Name: "getint", Return: Int},
	{Name: "getdouble", Return: Double},
	{Name: "getchar", Return: Int},
	{Name: "putint", Params: []Param{{Name: "value", Type: Int}}, Return: Void},
	{Name: "putdouble", Params: []Param{{Name: "value", Type: Double}}, Return: Void},
	{Name: "putchar", Params: []Param{{Name: "value", Type: Int}}, Return: Void},
	{Name: "putstr", Params: []Param{{Name: "value", Type: Int}}, Return: Void},
	{Name: "putln", Return: Void},
}

// StandardLibrary returns a function table holding the runtime's I/O
// functions.
func StandardLibrary() *FunctionTable {
	f := NewFunctionTable()
	for _, sig := range standardLibrary {
		sig.Builtin = true
		f.add(sig)
	}
	return f
}
