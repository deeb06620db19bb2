/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package symbols

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/dburkart/c0/pkg/common/parse"
)

func TestFunctionTable(t *testing.T) {
	f := NewFunctionTable()

	entry, err := f.Lookup(EntryName, here)
	be.Err(t, err, nil)
	be.Equal(t, entry.ID, 0)

	sig, err := f.Register(Signature{
		Name:   "add",
		Params: []Param{{Name: "a", Type: Int}, {Name: "b", Type: Int}},
		Return: Int,
	}, here)
	be.Err(t, err, nil)
	be.Equal(t, sig.ID, 1)
	be.Equal(t, sig.String(), "add(int, int) -> int")

	_, err = f.Register(Signature{Name: "add"}, here)
	be.Err(t, err, parse.DuplicateDeclaration)

	_, err = f.Register(Signature{Name: EntryName}, here)
	be.Err(t, err, parse.DuplicateDeclaration)

	_, err = f.Lookup("sub", here)
	be.Err(t, err, parse.NotDeclared)

	be.Equal(t, len(f.All()), 2)
}

func TestStandardLibrary(t *testing.T) {
	f := StandardLibrary()

	names := []string{"getint", "getdouble", "getchar", "putint", "putdouble", "putchar", "putstr", "putln"}
	for i, name := range names {
		sig, err := f.Lookup(name, here)
		be.Err(t, err, nil)
		be.True(t, sig.Builtin)
		be.Equal(t, sig.ID, i+1)
	}

	putint, _ := f.Lookup("putint", here)
	be.Equal(t, len(putint.Params), 1)
	be.Equal(t, putint.Return, Void)

	getdouble, _ := f.Lookup("getdouble", here)
	be.Equal(t, getdouble.Return, Double)
}
