// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file declares the sentinel errors returned by record construction and
// access.

package pset

import "errors"

var (
	// ErrDuplicateKey is returned when a key appears twice in one definition.
	ErrDuplicateKey = errors.New("duplicate parameter key")
	// ErrInvalidKey is returned for keys that are not valid identifiers.
	ErrInvalidKey = errors.New("invalid parameter key")
	// ErrInvalidValue is returned for the zero Value or a value of unknown kind.
	ErrInvalidValue = errors.New("invalid parameter value")
	// ErrMissingKey is returned by accessors when the key is not present.
	ErrMissingKey = errors.New("missing parameter")
	// ErrTypeMismatch is returned by accessors when the stored kind differs
	// from the kind requested at the use site.
	ErrTypeMismatch = errors.New("parameter type mismatch")
	// ErrInvalidInputTag is returned when an input tag fails validation.
	ErrInvalidInputTag = errors.New("invalid input tag")
	// ErrIndexOutOfRange is returned by Lookup for an out of range vpset index.
	ErrIndexOutOfRange = errors.New("index out of range")
)
