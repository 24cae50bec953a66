package hcl

import (
	"fmt"

	"github.com/vk/psetgrid/internal/pset"
)

// resolvePSets applies extends lists, depth first. A record is resolved once
// every record it extends has been.
func resolvePSets(defs []*namedBody) (map[string]*pset.PSet, error) {
	byName := make(map[string]*namedBody, len(defs))
	for _, d := range defs {
		if prev, ok := byName[d.name]; ok {
			return nil, rangeErr(d.rng, fmt.Errorf("%w %q, first defined at %s", ErrDuplicatePSet, d.name, prev.rng))
		}
		byName[d.name] = d
	}

	resolved := make(map[string]*pset.PSet, len(defs))
	visiting := make(map[string]bool)

	var visit func(d *namedBody, chain []string) error
	visit = func(d *namedBody, chain []string) error {
		if _, done := resolved[d.name]; done {
			return nil
		}
		if visiting[d.name] {
			return rangeErr(d.rng, fmt.Errorf("%w: %v", ErrExtendsCycle, append(chain, d.name)))
		}
		visiting[d.name] = true
		for _, base := range d.body.extends {
			bd, ok := byName[base]
			if !ok {
				return rangeErr(d.rng, fmt.Errorf("%w %q extended by %q", ErrUnknownPSet, base, d.name))
			}
			if err := visit(bd, append(chain, d.name)); err != nil {
				return err
			}
		}
		visiting[d.name] = false

		p, err := applyExtends(d.name, d, resolved)
		if err != nil {
			return err
		}
		resolved[d.name] = p
		return nil
	}

	for _, d := range defs {
		if err := visit(d, nil); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// applyExtends builds the record named name: the extended records are
// composed in order and the body's own fields are applied last.
func applyExtends(name string, d *namedBody, resolved map[string]*pset.PSet) (*pset.PSet, error) {
	bases := make([]*pset.PSet, 0, len(d.body.extends))
	for _, base := range d.body.extends {
		p, ok := resolved[base]
		if !ok {
			return nil, rangeErr(d.rng, fmt.Errorf("%w %q extended by %q", ErrUnknownPSet, base, name))
		}
		bases = append(bases, p)
	}
	p, err := pset.ExtendChecked(pset.Compose(name, bases...), d.body.fields...)
	if err != nil {
		return nil, rangeErr(d.rng, err)
	}
	return p, nil
}
