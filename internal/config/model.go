package config

import (
	"fmt"

	"github.com/vk/psetgrid/internal/pset"
)

// Model is the unified, format-agnostic representation of a configuration:
// reusable records, component declarations, paths and at most one process.
type Model struct {
	PSets   []*pset.PSet
	Modules []*Module
	Paths   []*Path
	Process *Process
}

// Module is the format-agnostic representation of a component declaration.
type Module struct {
	Label string
	// Type is the host identifier of the component, e.g. "trackerTFP::ProducerGP".
	Type   string
	Params *pset.PSet
}

// Path is an ordered list of module labels.
type Path struct {
	Name    string
	Modules []string
}

// Process describes the schedule and the process-wide settings.
type Process struct {
	Name string
	// Schedule is nil when the configuration gives none, which runs every
	// path. An empty non-nil schedule runs nothing.
	Schedule []string
	Source   string
	Services []string
	// MaxEvents is nil when the configuration does not limit the event count.
	MaxEvents *int
	Options   *pset.PSet
}

// PSet returns the top-level record with the given name.
func (m *Model) PSet(name string) (*pset.PSet, bool) {
	for _, p := range m.PSets {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Merge appends the contents of other to m. Only one of the two may define a
// process.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	if m.Process != nil && other.Process != nil {
		return fmt.Errorf("process %q already defined, cannot also define %q", m.Process.Name, other.Process.Name)
	}
	m.PSets = append(m.PSets, other.PSets...)
	m.Modules = append(m.Modules, other.Modules...)
	m.Paths = append(m.Paths, other.Paths...)
	if other.Process != nil {
		m.Process = other.Process
	}
	return nil
}
