package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/vk/psetgrid/internal/builder"
	"github.com/vk/psetgrid/internal/catalog"
	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/filelist"
	"github.com/vk/psetgrid/internal/process"
	"github.com/vk/psetgrid/internal/registry"
	"github.com/vk/psetgrid/internal/varparsing"
)

// Result is the validated outcome of one build.
type Result struct {
	Registry *registry.Registry
	// Process is nil when only declarations were configured.
	Process *process.Process
	// Issues are schedule ordering problems. They are reported, not fatal.
	Issues []process.OrderingIssue
}

// Build declares the built-in catalog and the configured files into a fresh
// registry, assembles the process and validates the result.
func (a *App) Build(ctx context.Context) (*Result, error) {
	return a.build(a.context(ctx))
}

// build expects ctx to carry the App logger already.
func (a *App) build(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := a.config

	r := registry.New()
	if cfg.Builtin {
		if err := catalog.Declare(ctx, r, a.modules...); err != nil {
			return nil, fmt.Errorf("declaring built-in catalog: %w", err)
		}
		logger.Debug("Built-in catalog declared.", "declarations", r.Len())
	}

	var p *process.Process
	if len(cfg.ConfigPaths) > 0 {
		model, err := a.loader.Load(ctx, cfg.ConfigPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		if p, err = builder.Build(ctx, model, r); err != nil {
			return nil, fmt.Errorf("failed to build configuration: %w", err)
		}
	}

	if p == nil && cfg.Builtin {
		files, err := a.inputFiles(ctx)
		if err != nil {
			return nil, err
		}
		p, err = catalog.AssembleDemo(ctx, r, catalog.DemoOptions{Events: cfg.Harness.Events, FileNames: files})
		if err != nil {
			return nil, fmt.Errorf("assembling %s process: %w", catalog.DemoName, err)
		}
	}

	if err := r.ValidateSchemas(ctx, registry.DefaultResolver); err != nil {
		return nil, err
	}

	res := &Result{Registry: r, Process: p}
	if p != nil {
		issues, err := p.CheckOrdering(ctx)
		if err != nil {
			return nil, err
		}
		res.Issues = issues
	}
	logger.Info("Build complete.", "declarations", r.Len(), "process", processName(p), "ordering_issues", len(res.Issues))
	return res, nil
}

// inputFiles reads the inputMC file list. The default list lives in the host
// release area and is often absent, so only an explicitly named list must
// exist.
func (a *App) inputFiles(ctx context.Context) ([]string, error) {
	path := a.config.Harness.InputMC
	files, err := filelist.Load(path)
	if err == nil {
		return files, nil
	}
	if errors.Is(err, fs.ErrNotExist) && path == varparsing.DefaultInputMC {
		ctxlog.FromContext(ctx).Warn("Default input file list not found, the source reads no files.", "inputMC", path)
		return nil, nil
	}
	return nil, fmt.Errorf("inputMC: %w", err)
}

func processName(p *process.Process) string {
	if p == nil {
		return ""
	}
	return p.Name
}
