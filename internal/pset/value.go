// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Value, the immutable tagged parameter value, and the
// checks applied to it on construction.

package pset

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Value is an immutable, typed parameter value. The zero Value is invalid and
// is rejected by Define.
type Value struct {
	kind      Kind
	untracked bool

	i   int64
	f   float64
	b   bool
	s   string
	ss  []string
	tag InputTag
	ps  *PSet
	vps []*PSet
}

// Int32 returns a signed 32-bit integer value.
func Int32(v int32) Value { return Value{kind: KindInt32, i: int64(v)} }

// Uint32 returns an unsigned 32-bit integer value.
func Uint32(v uint32) Value { return Value{kind: KindUint32, i: int64(v)} }

// Double returns a double precision value.
func Double(v float64) Value { return Value{kind: KindDouble, f: v} }

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// String returns a string value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Strings returns an ordered list of strings. The slice is copied.
func Strings(vs ...string) Value {
	return Value{kind: KindStrings, ss: slices.Clone(vs)}
}

// Tag returns an input reference value.
func Tag(t InputTag) Value { return Value{kind: KindInputTag, tag: t} }

// Nested returns a value holding a nested record. The record is shared, which
// is safe because records are immutable.
func Nested(p *PSet) Value { return Value{kind: KindPSet, ps: p} }

// VPSet returns an ordered sequence of records. The slice is copied.
func VPSet(ps ...*PSet) Value {
	return Value{kind: KindVPSet, vps: slices.Clone(ps)}
}

// Untracked returns a copy of v marked as untracked. Untracked parameters do
// not take part in provenance tracking in the host framework.
func (v Value) Untracked() Value {
	v.untracked = true
	return v
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Tracked reports whether the value participates in provenance tracking.
func (v Value) Tracked() bool { return !v.untracked }

// AsInt32 returns the value as int32 if it is of KindInt32.
func (v Value) AsInt32() (int32, bool) {
	return int32(v.i), v.kind == KindInt32
}

// AsUint32 returns the value as uint32 if it is of KindUint32.
func (v Value) AsUint32() (uint32, bool) {
	return uint32(v.i), v.kind == KindUint32
}

// AsDouble returns the value as float64 if it is of KindDouble.
func (v Value) AsDouble() (float64, bool) {
	return v.f, v.kind == KindDouble
}

// AsBool returns the value as bool if it is of KindBool.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsString returns the value as string if it is of KindString.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsStrings returns a copy of the string list if the value is of KindStrings.
func (v Value) AsStrings() ([]string, bool) {
	if v.kind != KindStrings {
		return nil, false
	}
	return slices.Clone(v.ss), true
}

// AsInputTag returns the input reference if the value is of KindInputTag.
func (v Value) AsInputTag() (InputTag, bool) {
	return v.tag, v.kind == KindInputTag
}

// AsPSet returns the nested record if the value is of KindPSet.
func (v Value) AsPSet() (*PSet, bool) {
	if v.kind != KindPSet {
		return nil, false
	}
	return v.ps, true
}

// AsVPSet returns a copy of the record sequence if the value is of KindVPSet.
func (v Value) AsVPSet() ([]*PSet, bool) {
	if v.kind != KindVPSet {
		return nil, false
	}
	return slices.Clone(v.vps), true
}

// Equal reports whether two values have the same kind, tracking and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.untracked != o.untracked {
		return false
	}
	switch v.kind {
	case KindInt32, KindUint32:
		return v.i == o.i
	case KindDouble:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindStrings:
		return slices.Equal(v.ss, o.ss)
	case KindInputTag:
		return v.tag == o.tag
	case KindPSet:
		return v.ps.Equal(o.ps)
	case KindVPSet:
		return slices.EqualFunc(v.vps, o.vps, func(a, b *PSet) bool { return a.Equal(b) })
	default:
		return true
	}
}

// validate checks that the value and everything nested in it is well formed.
func (v Value) validate() error {
	switch v.kind {
	case KindPSet:
		if v.ps == nil {
			return fmt.Errorf("%w: nested pset is nil", ErrInvalidValue)
		}
	case KindVPSet:
		for i, p := range v.vps {
			if p == nil {
				return fmt.Errorf("%w: vpset element %d is nil", ErrInvalidValue, i)
			}
		}
	case KindString:
		return validString(v.s)
	case KindStrings:
		for i, s := range v.ss {
			if err := validString(s); err != nil {
				return fmt.Errorf("vstring element %d: %w", i, err)
			}
		}
	case KindInputTag:
		if _, err := newInputTag(v.tag.Producer, v.tag.Branch, v.tag.Process); err != nil {
			return err
		}
	case KindInvalid:
		return fmt.Errorf("%w: zero value", ErrInvalidValue)
	default:
		if !v.kind.Valid() {
			return fmt.Errorf("%w: kind %s", ErrInvalidValue, v.kind)
		}
	}
	return nil
}

// validString accepts only strings that every external representation
// reproduces byte for byte: valid UTF-8 in normalization form C.
func validString(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: string %q is not valid UTF-8", ErrInvalidValue, s)
	}
	if !norm.NFC.IsNormalString(s) {
		return fmt.Errorf("%w: string %q is not in Unicode normalization form C", ErrInvalidValue, s)
	}
	return nil
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	var body string
	switch v.kind {
	case KindInt32, KindUint32:
		body = strconv.FormatInt(v.i, 10)
	case KindDouble:
		body = strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		body = strconv.FormatBool(v.b)
	case KindString:
		body = strconv.Quote(v.s)
	case KindStrings:
		quoted := make([]string, len(v.ss))
		for i, s := range v.ss {
			quoted[i] = strconv.Quote(s)
		}
		body = "[" + strings.Join(quoted, ", ") + "]"
	case KindInputTag:
		body = strconv.Quote(v.tag.String())
	case KindPSet:
		body = fmt.Sprintf("{%d params}", v.ps.Len())
	case KindVPSet:
		body = fmt.Sprintf("[%d psets]", len(v.vps))
	}
	s := v.kind.String() + "(" + body + ")"
	if v.untracked {
		s = "untracked " + s
	}
	return s
}
