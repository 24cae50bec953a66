package builder

import (
	"github.com/vk/psetgrid/internal/config"
	"github.com/vk/psetgrid/internal/process"
	"github.com/vk/psetgrid/internal/registry"
)

// Snapshot converts built state back into a model, so that it can be written
// by any encoder. p may be nil when only declarations exist.
func Snapshot(r *registry.Registry, p *process.Process) *config.Model {
	model := &config.Model{}
	for _, d := range r.All() {
		model.Modules = append(model.Modules, &config.Module{Label: d.Label, Type: d.Type.String(), Params: d.Params})
	}
	if p == nil {
		return model
	}

	for _, path := range p.Paths() {
		model.Paths = append(model.Paths, &config.Path{Name: path.Name, Modules: append([]string(nil), path.Labels...)})
	}
	proc := &config.Process{Name: p.Name, Schedule: []string{}, Options: p.Options()}
	for _, path := range p.Schedule() {
		proc.Schedule = append(proc.Schedule, path.Name)
	}
	if src, ok := p.Source(); ok {
		proc.Source = src.Label
	}
	for _, svc := range p.Services() {
		proc.Services = append(proc.Services, svc.Label)
	}
	maxEvents := p.MaxEvents()
	proc.MaxEvents = &maxEvents
	model.Process = proc
	return model
}
