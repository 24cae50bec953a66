package process

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

var (
	// ErrDuplicatePath is returned when a path name is added twice.
	ErrDuplicatePath = errors.New("duplicate path")
	// ErrUnknownPath is returned when a schedule refers to a path that was never added.
	ErrUnknownPath = errors.New("unknown path")
	// ErrUndeclaredLabel is returned when a path names a label missing from the registry.
	ErrUndeclaredLabel = errors.New("undeclared label")
	// ErrInvalidName is returned for malformed process or path names.
	ErrInvalidName = errors.New("invalid name")
	// ErrWrongKind is returned when a declaration has the wrong role for its slot,
	// e.g. a producer used as the event source.
	ErrWrongKind = errors.New("wrong component kind")
)

var nameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// AllEvents is the MaxEvents value meaning "process the whole input".
const AllEvents = -1

// Path is an ordered sequence of declaration labels.
type Path struct {
	Name   string
	Labels []string
}

// Process is a named, scheduled configuration.
type Process struct {
	Name string

	reg       *registry.Registry
	paths     map[string]*Path
	pathOrder []string
	schedule  []string

	maxEvents int
	source    string
	services  []string
	options   *pset.PSet
}

// New creates an empty process over the declarations in reg.
func New(name string, reg *registry.Registry) (*Process, error) {
	if !nameRegex.MatchString(name) {
		return nil, fmt.Errorf("%w: process %q", ErrInvalidName, name)
	}
	if reg == nil {
		return nil, errors.New("process requires a registry")
	}
	return &Process{
		Name:      name,
		reg:       reg,
		paths:     make(map[string]*Path),
		maxEvents: AllEvents,
		options:   pset.MustDefine("options"),
	}, nil
}

// Registry returns the registry the process draws declarations from.
func (p *Process) Registry() *registry.Registry { return p.reg }

// AddPath appends a path. Every label must already be declared; a label may
// appear in several paths but only once per path.
func (p *Process) AddPath(name string, labels ...string) (*Path, error) {
	if !nameRegex.MatchString(name) {
		return nil, fmt.Errorf("%w: path %q", ErrInvalidName, name)
	}
	if _, exists := p.paths[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicatePath, name)
	}
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if _, ok := p.reg.Get(label); !ok {
			return nil, fmt.Errorf("path %q: %w: %q", name, ErrUndeclaredLabel, label)
		}
		if seen[label] {
			return nil, fmt.Errorf("path %q: label %q appears twice", name, label)
		}
		seen[label] = true
	}

	path := &Path{Name: name, Labels: slices.Clone(labels)}
	p.paths[name] = path
	p.pathOrder = append(p.pathOrder, name)
	return path, nil
}

// SetSchedule fixes the order in which paths run. It replaces any previous
// schedule.
func (p *Process) SetSchedule(pathNames ...string) error {
	seen := make(map[string]bool, len(pathNames))
	for _, name := range pathNames {
		if _, ok := p.paths[name]; !ok {
			return fmt.Errorf("schedule: %w: %q", ErrUnknownPath, name)
		}
		if seen[name] {
			return fmt.Errorf("schedule: %w: %q listed twice", ErrDuplicatePath, name)
		}
		seen[name] = true
	}
	p.schedule = slices.Clone(pathNames)
	return nil
}

// SetSource selects the declaration that feeds events into the process.
func (p *Process) SetSource(label string) error {
	d, err := p.declarationOfKind(label, component.Source)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	p.source = d.Label
	return nil
}

// AddService enables a declared service.
func (p *Process) AddService(label string) error {
	d, err := p.declarationOfKind(label, component.Service)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if slices.Contains(p.services, d.Label) {
		return nil
	}
	p.services = append(p.services, d.Label)
	return nil
}

func (p *Process) declarationOfKind(label string, kind component.Kind) (*registry.Declaration, error) {
	d, ok := p.reg.Get(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUndeclaredLabel, label)
	}
	if d.Type.Kind() != kind {
		return nil, fmt.Errorf("%w: %q is a %s, expected %s", ErrWrongKind, label, d.Type.Kind(), kind)
	}
	return d, nil
}

// SetMaxEvents limits the number of processed events. AllEvents removes the limit.
func (p *Process) SetMaxEvents(n int) error {
	if n < AllEvents {
		return fmt.Errorf("max events must be >= %d, got %d", AllEvents, n)
	}
	p.maxEvents = n
	return nil
}

// SetOptions replaces the process options record.
func (p *Process) SetOptions(options *pset.PSet) {
	if options == nil {
		options = pset.MustDefine("options")
	}
	p.options = options
}

// MaxEvents returns the event limit, or AllEvents.
func (p *Process) MaxEvents() int { return p.maxEvents }

// Options returns the process options record.
func (p *Process) Options() *pset.PSet { return p.options }

// Source returns the source declaration, if one was set.
func (p *Process) Source() (*registry.Declaration, bool) {
	if p.source == "" {
		return nil, false
	}
	return p.reg.Get(p.source)
}

// Services returns the enabled service declarations in the order they were added.
func (p *Process) Services() []*registry.Declaration {
	out := make([]*registry.Declaration, 0, len(p.services))
	for _, label := range p.services {
		d, _ := p.reg.Get(label)
		out = append(out, d)
	}
	return out
}

// Path returns the path with the given name.
func (p *Process) Path(name string) (*Path, bool) {
	path, ok := p.paths[name]
	return path, ok
}

// Paths returns every added path in insertion order, scheduled or not.
func (p *Process) Paths() []*Path {
	out := make([]*Path, len(p.pathOrder))
	for i, name := range p.pathOrder {
		out[i] = p.paths[name]
	}
	return out
}

// Schedule returns the scheduled paths in run order.
func (p *Process) Schedule() []*Path {
	out := make([]*Path, len(p.schedule))
	for i, name := range p.schedule {
		out[i] = p.paths[name]
	}
	return out
}

// ScheduledDeclarations flattens the schedule into the order in which the
// host first encounters each declaration. A label shared by several paths
// appears once, at its first position.
func (p *Process) ScheduledDeclarations() []*registry.Declaration {
	var out []*registry.Declaration
	seen := make(map[string]bool)
	for _, path := range p.Schedule() {
		for _, label := range path.Labels {
			if seen[label] {
				continue
			}
			seen[label] = true
			d, _ := p.reg.Get(label)
			out = append(out, d)
		}
	}
	return out
}
