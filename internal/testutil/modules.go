package testutil

import (
	"errors"

	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

// Declaration is one entry of a StaticModule.
type Declaration struct {
	Label  string
	Type   component.Type
	Params *pset.PSet
}

// StaticModule is a catalog module that declares a fixed list.
type StaticModule struct {
	ModuleName   string
	Declarations []Declaration
}

// Name implements catalog.Module.
func (m *StaticModule) Name() string { return m.ModuleName }

// Declare implements catalog.Module.
func (m *StaticModule) Declare(r *registry.Registry) error {
	var errs []error
	for _, d := range m.Declarations {
		if _, err := r.Declare(d.Label, d.Type, d.Params); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
