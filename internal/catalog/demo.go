package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/process"
	"github.com/vk/psetgrid/internal/registry"
	"github.com/vk/psetgrid/modules/framework"
	"github.com/vk/psetgrid/modules/trackerdtc"
	"github.com/vk/psetgrid/modules/trackertfp"
)

// DemoName is the name of the test harness process.
const DemoName = "Demo"

// DemoOptions are the inputs of the test harness process.
type DemoOptions struct {
	// Events is the number of events to process.
	Events int
	// FileNames are the input files read by the source.
	FileNames []string
}

// DemoProcess assembles the test harness in a fresh registry: the DTC
// producer runs in path "dtc", the geometric processor in path "gp", and the
// schedule runs them in that order. A PoolSource reads FileNames and the
// Timing service reports a summary.
func DemoProcess(ctx context.Context, opts DemoOptions) (*process.Process, error) {
	return AssembleDemo(ctx, registry.New(), opts)
}

// AssembleDemo builds the test harness on top of reg, declaring only the
// components reg does not hold yet.
func AssembleDemo(ctx context.Context, reg *registry.Registry, opts DemoOptions) (*process.Process, error) {
	declareMissing := func(label string, declare func(*registry.Registry) error) error {
		if _, ok := reg.Get(label); ok {
			return nil
		}
		return declare(reg)
	}
	dtc := &trackerdtc.Module{}
	if err := errors.Join(
		declareMissing(trackerdtc.Label, dtc.Declare),
		declareMissing(trackertfp.LabelGP, trackertfp.DeclareProducerGP),
		declareMissing(framework.SourceLabel, func(r *registry.Registry) error { return framework.DeclareSource(r, opts.FileNames) }),
		declareMissing(framework.TimingLabel, framework.DeclareTiming),
	); err != nil {
		return nil, fmt.Errorf("declaring %s components: %w", DemoName, err)
	}

	p, err := process.New(DemoName, reg)
	if err != nil {
		return nil, err
	}
	if _, err := p.AddPath("dtc", trackerdtc.Label); err != nil {
		return nil, err
	}
	if _, err := p.AddPath("gp", trackertfp.LabelGP); err != nil {
		return nil, err
	}
	if err := p.SetSchedule("dtc", "gp"); err != nil {
		return nil, err
	}
	if err := p.SetSource(framework.SourceLabel); err != nil {
		return nil, err
	}
	if err := p.AddService(framework.TimingLabel); err != nil {
		return nil, err
	}
	if err := p.SetMaxEvents(opts.Events); err != nil {
		return nil, err
	}
	p.SetOptions(framework.Options)

	ctxlog.FromContext(ctx).Debug("Assembled test harness process.", "process", DemoName, "files", len(opts.FileNames), "events", opts.Events)
	return p, nil
}
