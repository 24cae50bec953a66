// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements the JSON form of a record, keeping kinds, tracking and
// key order.

package pset

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

// jsonPSet is the wire form of a record. Parameters are kept in a list so
// that definition order survives the round trip.
type jsonPSet struct {
	Name   string      `json:"name,omitempty"`
	Params []jsonParam `json:"params"`
}

type jsonParam struct {
	Key       string          `json:"key"`
	Type      string          `json:"type"`
	Untracked bool            `json:"untracked,omitempty"`
	Value     json.RawMessage `json:"value"`
}

type jsonInputTag struct {
	Producer string `json:"producer"`
	Branch   string `json:"branch,omitempty"`
	Process  string `json:"process,omitempty"`
}

// MarshalJSON encodes the record with its kinds and order preserved.
func (p *PSet) MarshalJSON() ([]byte, error) {
	out := jsonPSet{Name: p.name, Params: make([]jsonParam, 0, len(p.keys))}
	for _, k := range p.keys {
		v := p.values[k]
		raw, err := v.marshalPayload()
		if err != nil {
			return nil, fmt.Errorf("pset %q, parameter %q: %w", p.name, k, err)
		}
		out.Params = append(out.Params, jsonParam{
			Key:       k,
			Type:      v.kind.String(),
			Untracked: v.untracked,
			Value:     raw,
		})
	}
	return json.Marshal(out)
}

func (v Value) marshalPayload() ([]byte, error) {
	switch v.kind {
	case KindInt32, KindUint32:
		return json.Marshal(v.i)
	case KindDouble:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("%w: %v has no JSON representation", ErrInvalidValue, v.f)
		}
		return json.Marshal(v.f)
	case KindBool:
		return json.Marshal(v.b)
	case KindString:
		return json.Marshal(v.s)
	case KindStrings:
		if v.ss == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.ss)
	case KindInputTag:
		return json.Marshal(jsonInputTag{Producer: v.tag.Producer, Branch: v.tag.Branch, Process: v.tag.Process})
	case KindPSet:
		return v.ps.MarshalJSON()
	case KindVPSet:
		if v.vps == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.vps)
	default:
		return nil, fmt.Errorf("%w: kind %s", ErrInvalidValue, v.kind)
	}
}

// UnmarshalJSON decodes a record produced by MarshalJSON. The decoded record
// goes through Define, so duplicate or malformed keys are rejected.
func (p *PSet) UnmarshalJSON(data []byte) error {
	var in jsonPSet
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	fields := make([]Field, 0, len(in.Params))
	for _, jp := range in.Params {
		kind, err := ParseKind(jp.Type)
		if err != nil {
			return fmt.Errorf("pset %q, parameter %q: %w", in.Name, jp.Key, err)
		}
		v, err := unmarshalPayload(kind, jp.Value)
		if err != nil {
			return fmt.Errorf("pset %q, parameter %q: %w", in.Name, jp.Key, err)
		}
		if jp.Untracked {
			v = v.Untracked()
		}
		fields = append(fields, Field{Key: jp.Key, Value: v})
	}

	decoded, err := Define(in.Name, fields...)
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}

func unmarshalPayload(kind Kind, raw json.RawMessage) (Value, error) {
	switch kind {
	case KindInt32:
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return Value{}, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return Value{}, fmt.Errorf("%w: %d overflows int32", ErrInvalidValue, n)
		}
		return Int32(int32(n)), nil
	case KindUint32:
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return Value{}, err
		}
		if n < 0 || n > math.MaxUint32 {
			return Value{}, fmt.Errorf("%w: %d overflows uint32", ErrInvalidValue, n)
		}
		return Uint32(uint32(n)), nil
	case KindDouble:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return Value{}, err
		}
		return Double(f), nil
	case KindBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case KindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, err
		}
		return String(s), nil
	case KindStrings:
		var ss []string
		if err := json.Unmarshal(raw, &ss); err != nil {
			return Value{}, err
		}
		return Strings(ss...), nil
	case KindInputTag:
		var jt jsonInputTag
		if err := json.Unmarshal(raw, &jt); err != nil {
			return Value{}, err
		}
		tag, err := newInputTag(jt.Producer, jt.Branch, jt.Process)
		if err != nil {
			return Value{}, err
		}
		return Tag(tag), nil
	case KindPSet:
		nested := &PSet{}
		if err := nested.UnmarshalJSON(raw); err != nil {
			return Value{}, err
		}
		return Nested(nested), nil
	case KindVPSet:
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return Value{}, err
		}
		ps := make([]*PSet, len(elems))
		for i, e := range elems {
			ps[i] = &PSet{}
			if err := ps[i].UnmarshalJSON(e); err != nil {
				return Value{}, fmt.Errorf("vpset element %d: %w", i, err)
			}
		}
		return VPSet(ps...), nil
	default:
		return Value{}, fmt.Errorf("%w: kind %s", ErrInvalidValue, kind)
	}
}
