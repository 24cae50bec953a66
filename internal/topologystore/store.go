// Package topologystore defines the interface for storing and querying the
// producer/consumer structure between component declarations.
//
// An edge from A to B means B consumes a product of A. The topology is
// derived from declaration parameters (label keys and input tags) and is
// only ever inspected: nothing here schedules or runs a component.
package topologystore

import (
	"context"

	"github.com/vk/psetgrid/internal/registry"
)

// Store is the interface for the static dependency topology of a process.
//
// Implementations MUST be safe for concurrent use.
type Store interface {
	// AddNode registers a declaration. Adding the same label twice is a no-op.
	AddNode(ctx context.Context, d *registry.Declaration) error

	// AddDependency records that the declaration labelled 'to' consumes a
	// product of the declaration labelled 'from'. Both must already exist.
	AddDependency(ctx context.Context, from, to string) error

	// GetNode returns the declaration registered under label.
	GetNode(ctx context.Context, label string) (*registry.Declaration, bool)

	// AllNodes returns every registered declaration, sorted by label.
	AllNodes(ctx context.Context) []*registry.Declaration

	// DependenciesOf returns the sorted labels that label directly consumes
	// from. It fails if label is unknown.
	DependenciesOf(ctx context.Context, label string) ([]string, error)

	// DetectCycles reports an error naming one declaration on a cycle.
	DetectCycles(ctx context.Context) error
}
