// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package pset implements parameter sets: named, ordered, immutable records
// mapping a parameter key to a typed value.
//
// A parameter set is the configuration surface of one compiled component of
// the host framework. Values are strongly typed (see Kind) so that a record
// can be validated at configuration-build time instead of failing when the
// host instantiates the component.
//
// Records are never mutated after construction. Composition is explicit:
// Extend and Compose return new records with last-write-wins semantics and
// leave their inputs untouched, so several declarations can safely share the
// same base record.
package pset
