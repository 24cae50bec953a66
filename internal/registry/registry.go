package registry

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
)

var (
	// ErrDuplicateLabel is returned when a label is declared twice.
	ErrDuplicateLabel = errors.New("duplicate label")
	// ErrInvalidLabel is returned for empty or malformed labels.
	ErrInvalidLabel = errors.New("invalid label")
	// ErrInvalidDeclaration is returned for unknown types or missing parameters.
	ErrInvalidDeclaration = errors.New("invalid declaration")
)

var labelRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Declaration pairs a component type with the record configuring it. It is
// never modified after Declare returns it.
type Declaration struct {
	Label  string
	Type   component.Type
	Params *pset.PSet
}

// Registry holds the declarations of a single configuration, in
// declaration order.
type Registry struct {
	byLabel map[string]*Declaration
	order   []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byLabel: make(map[string]*Declaration)}
}

// Declare registers a component under label. Several declarations may share
// the same params record.
func (r *Registry) Declare(label string, typ component.Type, params *pset.PSet) (*Declaration, error) {
	if !labelRegex.MatchString(label) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	if _, exists := r.byLabel[label]; exists {
		return nil, fmt.Errorf("%w: %q is already declared", ErrDuplicateLabel, label)
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q has unknown component type %d", ErrInvalidDeclaration, label, int(typ))
	}
	if params == nil {
		return nil, fmt.Errorf("%w: %q has no parameter set", ErrInvalidDeclaration, label)
	}

	decl := &Declaration{Label: label, Type: typ, Params: params}
	r.byLabel[label] = decl
	r.order = append(r.order, label)
	return decl, nil
}

// DeclareByName is Declare for a component identified by its host identifier
// string, e.g. "trackerTFP::ProducerGP".
func (r *Registry) DeclareByName(label, identifier string, params *pset.PSet) (*Declaration, error) {
	typ, err := component.Parse(identifier)
	if err != nil {
		return nil, fmt.Errorf("declaring %q: %w", label, err)
	}
	return r.Declare(label, typ, params)
}

// MustDeclare is like Declare but panics on error. It is used by built-in
// catalogs, where a failure is a programming error.
func (r *Registry) MustDeclare(label string, typ component.Type, params *pset.PSet) *Declaration {
	decl, err := r.Declare(label, typ, params)
	if err != nil {
		panic(err)
	}
	return decl
}

// Get returns the declaration registered under label.
func (r *Registry) Get(label string) (*Declaration, bool) {
	decl, ok := r.byLabel[label]
	return decl, ok
}

// All returns every declaration in declaration order.
func (r *Registry) All() []*Declaration {
	out := make([]*Declaration, len(r.order))
	for i, label := range r.order {
		out[i] = r.byLabel[label]
	}
	return out
}

// Labels returns the declared labels in declaration order.
func (r *Registry) Labels() []string {
	return slices.Clone(r.order)
}

// Len returns the number of declarations.
func (r *Registry) Len() int {
	return len(r.order)
}
