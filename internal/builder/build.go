package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/psetgrid/internal/config"
	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/process"
	"github.com/vk/psetgrid/internal/registry"
)

// Build declares the model's modules in r and assembles its process. It
// returns a nil process when the model defines none.
func Build(ctx context.Context, model *config.Model, r *registry.Registry) (*process.Process, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting declaration.")

	if err := declareModules(model, r); err != nil {
		return nil, err
	}
	logger.Debug("Build: Declaration complete.", "declarations", r.Len())

	if model.Process == nil {
		logger.Debug("Build: No process defined, stopping after declaration.")
		return nil, nil
	}

	p, err := assemble(ctx, model, r)
	if err != nil {
		return nil, fmt.Errorf("assembling process %q: %w", model.Process.Name, err)
	}
	logger.Info("Build: Process assembled.", "process", p.Name, "paths", len(p.Paths()), "scheduled", len(p.ScheduledDeclarations()))
	return p, nil
}

func declareModules(model *config.Model, r *registry.Registry) error {
	var errs []error
	for _, m := range model.Modules {
		if _, err := r.DeclareByName(m.Label, m.Type, m.Params); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func assemble(ctx context.Context, model *config.Model, r *registry.Registry) (*process.Process, error) {
	spec := model.Process
	p, err := process.New(spec.Name, r)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(model.Paths))
	for _, path := range model.Paths {
		if _, err := p.AddPath(path.Name, path.Modules...); err != nil {
			return nil, err
		}
		names = append(names, path.Name)
	}

	schedule := spec.Schedule
	if schedule == nil {
		ctxlog.FromContext(ctx).Debug("Build: No schedule given, running every path in order.", "paths", names)
		schedule = names
	}
	if err := p.SetSchedule(schedule...); err != nil {
		return nil, err
	}

	if spec.Source != "" {
		if err := p.SetSource(spec.Source); err != nil {
			return nil, err
		}
	}
	for _, svc := range spec.Services {
		if err := p.AddService(svc); err != nil {
			return nil, err
		}
	}
	if spec.MaxEvents != nil {
		if err := p.SetMaxEvents(*spec.MaxEvents); err != nil {
			return nil, err
		}
	}
	p.SetOptions(spec.Options)
	return p, nil
}
