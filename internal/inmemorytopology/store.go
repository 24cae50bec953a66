package inmemorytopology

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/vk/psetgrid/internal/registry"
	"github.com/vk/psetgrid/internal/topologystore"
)

// Store implements topologystore.Store using maps guarded by a mutex.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]*registry.Declaration
	deps  map[string]map[string]struct{} // Key: consumer label, Value: set of producer labels
}

// New creates a new, empty in-memory topology store.
func New() topologystore.Store {
	return &Store{
		nodes: make(map[string]*registry.Declaration),
		deps:  make(map[string]map[string]struct{}),
	}
}

// AddNode adds a declaration to the store.
func (s *Store) AddNode(ctx context.Context, d *registry.Declaration) error {
	if d == nil {
		return fmt.Errorf("cannot add nil declaration to topology")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[d.Label]; exists {
		return nil
	}
	s.nodes[d.Label] = d
	return nil
}

// AddDependency creates a dependency link from one declaration to another.
func (s *Store) AddDependency(ctx context.Context, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[from]; !exists {
		return fmt.Errorf("dependency source '%s' not found in topology", from)
	}
	if _, exists := s.nodes[to]; !exists {
		return fmt.Errorf("dependency target '%s' not found in topology", to)
	}
	if from == to {
		return fmt.Errorf("self-referential dependency not allowed: %s", from)
	}

	if s.deps[to] == nil {
		s.deps[to] = make(map[string]struct{})
	}
	s.deps[to][from] = struct{}{}
	return nil
}

// GetNode retrieves a single declaration by label.
func (s *Store) GetNode(ctx context.Context, label string) (*registry.Declaration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.nodes[label]
	return d, ok
}

// AllNodes returns a snapshot of every declaration, sorted by label.
func (s *Store) AllNodes(ctx context.Context) []*registry.Declaration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*registry.Declaration, 0, len(s.nodes))
	for _, d := range s.nodes {
		nodes = append(nodes, d)
	}
	slices.SortFunc(nodes, func(a, b *registry.Declaration) int {
		switch {
		case a.Label < b.Label:
			return -1
		case a.Label > b.Label:
			return 1
		}
		return 0
	})
	return nodes
}

// DependenciesOf returns the labels the given declaration consumes from.
func (s *Store) DependenciesOf(ctx context.Context, label string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.nodes[label]; !exists {
		return nil, fmt.Errorf("declaration '%s' not found in topology", label)
	}
	return s.sortedDeps(label), nil
}

func (s *Store) sortedDeps(label string) []string {
	deps := make([]string, 0, len(s.deps[label]))
	for dep := range s.deps[label] {
		deps = append(deps, dep)
	}
	slices.Sort(deps)
	return deps
}

// DetectCycles checks for circular dependencies using DFS.
func (s *Store) DetectCycles(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(label string) error
	visit = func(label string) error {
		visiting[label] = true
		for _, dep := range s.sortedDeps(label) {
			if visiting[dep] {
				return fmt.Errorf("cycle detected involving '%s'", dep)
			}
			if !visited[dep] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, label)
		visited[label] = true
		return nil
	}

	labels := make([]string, 0, len(s.nodes))
	for label := range s.nodes {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	for _, label := range labels {
		if !visited[label] {
			if err := visit(label); err != nil {
				return err
			}
		}
	}
	return nil
}
