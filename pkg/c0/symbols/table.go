/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package symbols

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dburkart/c0/pkg/common/parse"
)

// Entry describes one declared variable.
type Entry struct {
	Name        string
	Constant    bool
	Initialized bool
	Kind        Kind
	Slot        int
	Pos         parse.Position
}

type scope map[string]*Entry

// frame is the storage of one function. Slots handed out in a frame are
// never reused, even after the scope that declared them exits.
type frame struct {
	scopes []scope
	params int
	locals int
}

// Table tracks the variables visible at the current point of the program.
//
// Declarations made while no scope is open are globals. Blocks outside of
// any function open scopes in the entry frame, so their variables are
// locals of the entry function. Inside a function the parameters live in
// the outermost scope of that function's frame.
type Table struct {
	globals    scope
	nextGlobal int

	// entry is the frame of top-level code, fn the function being
	// analysed, if any.
	entry frame
	fn    *frame
}

func NewTable() *Table {
	return &Table{globals: make(scope)}
}

func (t *Table) current() *frame {
	if t.fn != nil {
		return t.fn
	}
	return &t.entry
}

// Declare adds name to the innermost scope. Shadowing a name from an
// enclosing scope is allowed, declaring it twice in the same scope is not.
func (t *Table) Declare(name string, constant, initialized bool, pos parse.Position) (Entry, error) {
	f := t.current()

	if len(f.scopes) == 0 {
		if _, ok := t.globals[name]; ok {
			return Entry{}, &Error{Kind: parse.DuplicateDeclaration, Name: name, Position: pos}
		}
		e := &Entry{
			Name:        name,
			Constant:    constant,
			Initialized: initialized,
			Kind:        Global,
			Slot:        t.nextGlobal,
			Pos:         pos,
		}
		t.nextGlobal++
		t.globals[name] = e
		return *e, nil
	}

	innermost := f.scopes[len(f.scopes)-1]
	if _, ok := innermost[name]; ok {
		return Entry{}, &Error{Kind: parse.DuplicateDeclaration, Name: name, Position: pos}
	}

	e := &Entry{
		Name:        name,
		Constant:    constant,
		Initialized: initialized,
		Kind:        Local,
		Slot:        f.locals,
		Pos:         pos,
	}
	f.locals++
	innermost[name] = e
	return *e, nil
}

// DeclareParam adds a parameter of the function opened by EnterFunction.
// Parameters are always initialized.
func (t *Table) DeclareParam(name string, constant bool, pos parse.Position) (Entry, error) {
	if t.fn == nil {
		panic("DeclareParam called outside function")
	}

	params := t.fn.scopes[0]
	if _, ok := params[name]; ok {
		return Entry{}, &Error{Kind: parse.DuplicateDeclaration, Name: name, Position: pos}
	}

	e := &Entry{
		Name:        name,
		Constant:    constant,
		Initialized: true,
		Kind:        Parameter,
		Slot:        t.fn.params,
		Pos:         pos,
	}
	t.fn.params++
	params[name] = e
	return *e, nil
}

func (t *Table) find(name string) *Entry {
	f := t.current()
	for i := len(f.scopes) - 1; i >= 0; i-- {
		if e, ok := f.scopes[i][name]; ok {
			return e
		}
	}
	return t.globals[name]
}

// Lookup resolves name, nearest declaration first.
func (t *Table) Lookup(name string, pos parse.Position) (Entry, error) {
	e := t.find(name)
	if e == nil {
		return Entry{}, &Error{Kind: parse.NotDeclared, Name: name, Position: pos}
	}
	return *e, nil
}

func (t *Table) MarkInitialized(name string, pos parse.Position) error {
	e := t.find(name)
	if e == nil {
		return &Error{Kind: parse.NotDeclared, Name: name, Position: pos}
	}
	e.Initialized = true
	return nil
}

func (t *Table) EnterScope() {
	f := t.current()
	f.scopes = append(f.scopes, make(scope))
}

func (t *Table) ExitScope() {
	f := t.current()
	if len(f.scopes) > 0 {
		f.scopes = f.scopes[:len(f.scopes)-1]
	}
}

// Depth is the number of open scopes in the current frame.
func (t *Table) Depth() int {
	return len(t.current().scopes)
}

func (t *Table) EnterFunction() {
	if t.fn != nil {
		panic("EnterFunction called inside function")
	}
	t.fn = &frame{scopes: []scope{make(scope)}}
}

// ExitFunction closes the current function and returns the number of
// local slots it used.
func (t *Table) ExitFunction() int {
	if t.fn == nil {
		panic("ExitFunction called outside function")
	}
	n := t.fn.locals
	t.fn = nil
	return n
}

// InFunction reports whether a function is being analysed.
func (t *Table) InFunction() bool {
	return t.fn != nil
}

// EntryLocals is the number of local slots used by top-level blocks.
func (t *Table) EntryLocals() int {
	return t.entry.locals
}

// Globals returns the global variables ordered by slot.
func (t *Table) Globals() []Entry {
	result := make([]Entry, 0, len(t.globals))
	for _, e := range t.globals {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Slot < result[j].Slot
	})
	return result
}

func (e Entry) flags() string {
	var flags []string
	if e.Constant {
		flags = append(flags, "const")
	}
	if e.Initialized {
		flags = append(flags, "init")
	}
	return strings.Join(flags, ",")
}

func dumpScope(sb *strings.Builder, s scope, indent string) {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e := s[name]
		fmt.Fprintf(sb, "%s%-16s %s %d [%s]\n", indent, name, e.Kind, e.Slot, e.flags())
	}
}

// Dump returns a deterministically ordered listing of every visible scope.
func (t *Table) Dump() string {
	var sb strings.Builder

	if len(t.globals) > 0 {
		sb.WriteString("Globals:\n")
		dumpScope(&sb, t.globals, "  ")
	} else {
		sb.WriteString("Globals: (empty)\n")
	}

	f := t.current()
	if len(f.scopes) > 0 {
		sb.WriteString("Scopes:\n")
		for i, s := range f.scopes {
			fmt.Fprintf(&sb, "  Scope %d:\n", i)
			dumpScope(&sb, s, "    ")
		}
	}

	return sb.String()
}
