package app

import (
	"context"
	"fmt"

	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/hcl"
	"github.com/vk/psetgrid/internal/watch"
)

// Run builds, validates and renders the configuration once. In watch mode it
// then rebuilds on every change until ctx is done; failed rebuilds are logged
// and the previous output stands.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	if err := a.runOnce(ctx); err != nil {
		if !a.config.Watch {
			return err
		}
		logger.Error("Build failed.", "error", err)
	}
	if !a.config.Watch {
		return nil
	}

	rebuilds := 0
	w := watch.New(a.config.ConfigPaths, hcl.Extension, func(ctx context.Context) {
		rebuilds++
		ctx = ctxlog.With(ctx, "rebuild", rebuilds)
		if err := a.runOnce(ctx); err != nil {
			ctxlog.FromContext(ctx).Error("Rebuild failed.", "error", err)
		}
	})
	return w.Watch(ctx)
}

func (a *App) runOnce(ctx context.Context) error {
	res, err := a.build(ctx)
	if err != nil {
		return err
	}
	if a.config.ValidateOnly {
		_, err := fmt.Fprintf(a.outW, "configuration is valid: %d declarations, %d ordering issues\n", res.Registry.Len(), len(res.Issues))
		return err
	}
	return Render(a.outW, a.config.OutputFormat, res)
}
