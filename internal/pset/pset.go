// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines PSet and the operations that build one: Define, Extend,
// Compose and Rename.

package pset

import (
	"fmt"
	"regexp"
)

// keyRegex matches valid parameter keys.
var keyRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Field is a single key/value pair used to build a record.
type Field struct {
	Key   string
	Value Value
}

// Param is a shorthand constructor for a Field.
func Param(key string, v Value) Field {
	return Field{Key: key, Value: v}
}

// PSet is a named, ordered, immutable parameter record.
type PSet struct {
	name   string
	keys   []string
	values map[string]Value
}

// ValidKey reports whether key is acceptable as a parameter key.
func ValidKey(key string) bool {
	return keyRegex.MatchString(key)
}

// Define builds a new record from literal fields. It fails if a key is
// repeated, is not a valid identifier, or if a value is malformed.
func Define(name string, fields ...Field) (*PSet, error) {
	p := &PSet{
		name:   name,
		keys:   make([]string, 0, len(fields)),
		values: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		if err := checkField(name, f); err != nil {
			return nil, err
		}
		if _, exists := p.values[f.Key]; exists {
			return nil, fmt.Errorf("pset %q: %w: %q", name, ErrDuplicateKey, f.Key)
		}
		p.keys = append(p.keys, f.Key)
		p.values[f.Key] = f.Value
	}
	return p, nil
}

func checkField(name string, f Field) error {
	if !ValidKey(f.Key) {
		return fmt.Errorf("pset %q: %w: %q", name, ErrInvalidKey, f.Key)
	}
	if err := f.Value.validate(); err != nil {
		return fmt.Errorf("pset %q, parameter %q: %w", name, f.Key, err)
	}
	return nil
}

// MustDefine is like Define but panics on error. It is meant for
// package-level configuration literals whose correctness is fixed at
// compile time.
func MustDefine(name string, fields ...Field) *PSet {
	p, err := Define(name, fields...)
	if err != nil {
		panic(err)
	}
	return p
}

// Extend returns a new record equal to base with the overrides applied.
// Keys of base keep their position; overridden keys are replaced in place and
// new keys are appended in override order. When overrides repeat a key, the
// last one wins. base is never modified.
//
// Extend panics on a malformed override, like MustDefine. Use ExtendChecked
// for overrides built from input.
func Extend(base *PSet, overrides ...Field) *PSet {
	out, err := ExtendChecked(base, overrides...)
	if err != nil {
		panic(err)
	}
	return out
}

// ExtendChecked is Extend for overrides that may be malformed. Every override
// is validated the way Define validates its fields.
func ExtendChecked(base *PSet, overrides ...Field) (*PSet, error) {
	for _, f := range overrides {
		if err := checkField(base.name, f); err != nil {
			return nil, err
		}
	}
	out := &PSet{
		name:   base.name,
		keys:   make([]string, 0, len(base.keys)+len(overrides)),
		values: make(map[string]Value, len(base.keys)+len(overrides)),
	}
	out.keys = append(out.keys, base.keys...)
	for k, v := range base.values {
		out.values[k] = v
	}
	for _, f := range overrides {
		if _, exists := out.values[f.Key]; !exists {
			out.keys = append(out.keys, f.Key)
		}
		out.values[f.Key] = f.Value
	}
	return out, nil
}

// Compose merges several records into a new record named name. Fields are
// applied in argument order with last-write-wins semantics, exactly as if
// each record were passed to Extend in turn.
func Compose(name string, records ...*PSet) *PSet {
	out := &PSet{name: name, keys: []string{}, values: map[string]Value{}}
	for _, r := range records {
		if r == nil {
			continue
		}
		out = Extend(out, r.Fields()...)
	}
	out.name = name
	return out
}

// Rename returns a copy of p carrying a different record name.
func (p *PSet) Rename(name string) *PSet {
	out := Extend(p)
	out.name = name
	return out
}

// Name returns the record name. Anonymous records (e.g. vpset elements)
// have an empty name.
func (p *PSet) Name() string { return p.name }

// Len returns the number of parameters.
func (p *PSet) Len() int { return len(p.keys) }

// Keys returns the parameter keys in definition order. The result is never
// nil.
func (p *PSet) Keys() []string { return append(make([]string, 0, len(p.keys)), p.keys...) }

// Has reports whether key is present.
func (p *PSet) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Get returns the raw value stored under key.
func (p *PSet) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Fields returns the record's fields in definition order.
func (p *PSet) Fields() []Field {
	fields := make([]Field, len(p.keys))
	for i, k := range p.keys {
		fields[i] = Field{Key: k, Value: p.values[k]}
	}
	return fields
}

// Equal compares two records by key, value and kind. Record names and key
// order are not significant.
func (p *PSet) Equal(o *PSet) bool {
	if p == nil || o == nil {
		return p == o
	}
	if len(p.values) != len(o.values) {
		return false
	}
	for k, v := range p.values {
		ov, ok := o.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
