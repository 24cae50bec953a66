package catalog

import (
	"context"
	"fmt"

	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/registry"
	"github.com/vk/psetgrid/modules/photonmva"
	"github.com/vk/psetgrid/modules/stubassociator"
	"github.com/vk/psetgrid/modules/trackerdtc"
	"github.com/vk/psetgrid/modules/trackertfp"
)

// Module is a group of built-in declarations.
type Module interface {
	Name() string
	Declare(r *registry.Registry) error
}

// coreModules is the definitive list of all declaration modules compiled into
// the psetgrid binary.
var coreModules = []Module{
	&trackerdtc.Module{},
	&stubassociator.Module{},
	&trackertfp.Module{},
	&photonmva.Module{},
}

// Core returns the built-in modules in declaration order.
func Core() []Module {
	return append([]Module(nil), coreModules...)
}

// Declare runs each module against r. It stops at the first module that
// fails; declarations made by earlier modules stay in r.
func Declare(ctx context.Context, r *registry.Registry, modules ...Module) error {
	logger := ctxlog.FromContext(ctx)
	for _, m := range modules {
		before := r.Len()
		if err := m.Declare(r); err != nil {
			return fmt.Errorf("declaring module %q: %w", m.Name(), err)
		}
		logger.Debug("Declared built-in module.", "module", m.Name(), "declarations", r.Len()-before)
	}
	return nil
}

// Builtin returns a fresh registry holding every core declaration.
func Builtin(ctx context.Context) (*registry.Registry, error) {
	r := registry.New()
	if err := Declare(ctx, r, Core()...); err != nil {
		return nil, err
	}
	return r, nil
}
