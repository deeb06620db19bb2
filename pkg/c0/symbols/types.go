/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package symbols

import "fmt"

type Type int

const (
	Void Type = iota
	Int
	Double
)

var typeNames = [...]string{
	Void:   "void",
	Int:    "int",
	Double: "double",
}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a type name as written in a declaration.
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), true
		}
	}
	return Void, false
}

// Kind says where a variable lives at run time.
type Kind int

const (
	Global Kind = iota
	Parameter
	Local
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case Parameter:
		return "param"
	case Local:
		return "local"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	ty, ok := ParseType(string(text))
	if !ok {
		return fmt.Errorf("unknown type %q", text)
	}
	*t = ty
	return nil
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for _, candidate := range []Kind{Global, Parameter, Local} {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown storage kind %q", text)
}
