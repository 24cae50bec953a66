// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed set of value kinds.

package pset

import "fmt"

// Kind enumerates the value types a parameter can hold.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt32
	KindUint32
	KindDouble
	KindBool
	KindString
	KindStrings
	KindInputTag
	KindPSet
	KindVPSet
)

var kindNames = map[Kind]string{
	KindInt32:    "int32",
	KindUint32:   "uint32",
	KindDouble:   "double",
	KindBool:     "bool",
	KindString:   "string",
	KindStrings:  "vstring",
	KindInputTag: "input_tag",
	KindPSet:     "pset",
	KindVPSet:    "vpset",
}

// String returns the canonical name of the kind, as used by the external
// representations.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("invalid(%d)", int(k))
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind converts a canonical kind name back into a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown parameter kind %q", name)
}
