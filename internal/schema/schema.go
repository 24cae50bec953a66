// Package schema describes the parameter contract a compiled component
// expects: which keys it reads and with which kind.
//
// A record is validated against its schema at configuration-build time.
// Renaming or retyping a key is a breaking change for the consuming
// component, so every incompatible change is captured as a new Revision
// rather than by editing an existing schema.
package schema

import (
	"errors"
	"fmt"

	"github.com/vk/psetgrid/internal/pset"
)

// ErrSchemaViolation wraps every problem reported by Validate.
var ErrSchemaViolation = errors.New("schema violation")

// FieldSpec describes one expected parameter.
type FieldSpec struct {
	Key      string
	Kind     pset.Kind
	Optional bool
	// Nested, if set, validates a pset value or every element of a vpset value.
	Nested *Schema
}

// Schema is one revision of a record contract.
type Schema struct {
	Name     string
	Revision int
	Fields   []FieldSpec
}

// Validate reports every missing required key and every kind mismatch in p.
// Keys not mentioned by the schema are allowed.
func (s *Schema) Validate(p *pset.PSet) error {
	return errors.Join(s.validate(p, "")...)
}

func (s *Schema) validate(p *pset.PSet, prefix string) []error {
	var errs []error
	for _, f := range s.Fields {
		path := prefix + f.Key
		v, ok := p.Get(f.Key)
		if !ok {
			if !f.Optional {
				errs = append(errs, fmt.Errorf("%w: %s rev %d: missing required parameter %q", ErrSchemaViolation, s.Name, s.Revision, path))
			}
			continue
		}
		if v.Kind() != f.Kind {
			errs = append(errs, fmt.Errorf("%w: %s rev %d: parameter %q is %s, expected %s", ErrSchemaViolation, s.Name, s.Revision, path, v.Kind(), f.Kind))
			continue
		}
		if f.Nested == nil {
			continue
		}
		switch f.Kind {
		case pset.KindPSet:
			nested, _ := v.AsPSet()
			errs = append(errs, f.Nested.validate(nested, path+".")...)
		case pset.KindVPSet:
			elems, _ := v.AsVPSet()
			for i, e := range elems {
				errs = append(errs, f.Nested.validate(e, fmt.Sprintf("%s[%d].", path, i))...)
			}
		}
	}
	return errs
}

// Merge concatenates the fields of several schemas into a new one. It mirrors
// pset.Compose: a key present in more than one schema takes the FieldSpec of the
// last schema that lists it.
func Merge(name string, revision int, schemas ...*Schema) *Schema {
	out := &Schema{Name: name, Revision: revision}
	index := make(map[string]int)
	for _, s := range schemas {
		for _, f := range s.Fields {
			if i, ok := index[f.Key]; ok {
				out.Fields[i] = f
				continue
			}
			index[f.Key] = len(out.Fields)
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}
