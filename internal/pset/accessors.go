// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file provides the typed accessors and path lookup of a record.

package pset

import (
	"fmt"

	"github.com/vk/psetgrid/internal/parampath"
)

// typed fetches key and checks its kind, producing the errors every typed
// accessor shares.
func (p *PSet) typed(key string, want Kind) (Value, error) {
	v, ok := p.values[key]
	if !ok {
		return Value{}, fmt.Errorf("pset %q: %w: %q", p.name, ErrMissingKey, key)
	}
	if v.kind != want {
		return Value{}, fmt.Errorf("pset %q, parameter %q: %w: stored as %s, requested as %s",
			p.name, key, ErrTypeMismatch, v.kind, want)
	}
	return v, nil
}

// GetInt32 returns the int32 parameter stored under key.
func (p *PSet) GetInt32(key string) (int32, error) {
	v, err := p.typed(key, KindInt32)
	if err != nil {
		return 0, err
	}
	n, _ := v.AsInt32()
	return n, nil
}

// GetUint32 returns the uint32 parameter stored under key.
func (p *PSet) GetUint32(key string) (uint32, error) {
	v, err := p.typed(key, KindUint32)
	if err != nil {
		return 0, err
	}
	n, _ := v.AsUint32()
	return n, nil
}

// GetDouble returns the double parameter stored under key.
func (p *PSet) GetDouble(key string) (float64, error) {
	v, err := p.typed(key, KindDouble)
	if err != nil {
		return 0, err
	}
	return v.f, nil
}

// GetBool returns the bool parameter stored under key.
func (p *PSet) GetBool(key string) (bool, error) {
	v, err := p.typed(key, KindBool)
	if err != nil {
		return false, err
	}
	return v.b, nil
}

// GetString returns the string parameter stored under key.
func (p *PSet) GetString(key string) (string, error) {
	v, err := p.typed(key, KindString)
	if err != nil {
		return "", err
	}
	return v.s, nil
}

// GetStrings returns a copy of the vstring parameter stored under key.
func (p *PSet) GetStrings(key string) ([]string, error) {
	v, err := p.typed(key, KindStrings)
	if err != nil {
		return nil, err
	}
	ss, _ := v.AsStrings()
	return ss, nil
}

// GetInputTag returns the input reference stored under key.
func (p *PSet) GetInputTag(key string) (InputTag, error) {
	v, err := p.typed(key, KindInputTag)
	if err != nil {
		return InputTag{}, err
	}
	return v.tag, nil
}

// GetPSet returns the nested record stored under key.
func (p *PSet) GetPSet(key string) (*PSet, error) {
	v, err := p.typed(key, KindPSet)
	if err != nil {
		return nil, err
	}
	return v.ps, nil
}

// GetVPSet returns the record sequence stored under key.
func (p *PSet) GetVPSet(key string) ([]*PSet, error) {
	v, err := p.typed(key, KindVPSet)
	if err != nil {
		return nil, err
	}
	vps, _ := v.AsVPSet()
	return vps, nil
}

// Lookup resolves a parameter path such as "DuplicateRemoval.WidthZ0" or
// "mvaConfigurations[1].mvaTag" through nested records.
func (p *PSet) Lookup(path string) (Value, error) {
	addr, err := parampath.Parse(path)
	if err != nil {
		return Value{}, err
	}

	current := p
	for i, seg := range addr.Path {
		v, ok := current.values[seg.Name]
		if !ok {
			return Value{}, fmt.Errorf("pset %q: %w: %q", p.name, ErrMissingKey, prefix(addr, i))
		}
		if seg.HasIndex() {
			if v.kind != KindVPSet {
				return Value{}, fmt.Errorf("pset %q, parameter %q: %w: indexed %s",
					p.name, prefix(addr, i), ErrTypeMismatch, v.kind)
			}
			if seg.Index >= len(v.vps) {
				return Value{}, fmt.Errorf("pset %q, parameter %q: %w: %d >= %d",
					p.name, prefix(addr, i), ErrIndexOutOfRange, seg.Index, len(v.vps))
			}
			v = Nested(v.vps[seg.Index])
		}
		if i == len(addr.Path)-1 {
			return v, nil
		}
		if v.kind != KindPSet {
			return Value{}, fmt.Errorf("pset %q, parameter %q: %w: cannot descend into %s",
				p.name, prefix(addr, i), ErrTypeMismatch, v.kind)
		}
		current = v.ps
	}
	return Value{}, fmt.Errorf("pset %q: %w: %q", p.name, ErrMissingKey, path)
}

// prefix renders the first n+1 segments of addr for error messages.
func prefix(addr *parampath.Address, n int) string {
	return (&parampath.Address{Path: addr.Path[:n+1]}).String()
}
