package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/psetgrid/internal/config"
	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/pset"
)

const (
	blockModule  = "module"
	blockPath    = "path"
	blockProcess = "process"
	blockOptions = "options"
)

// pathBlock is decoded with gohcl; the name comes from the block label.
type pathBlock struct {
	Modules []string `hcl:"modules"`
}

// processBlock keeps an absent schedule apart from an empty one.
type processBlock struct {
	Schedule  *[]string     `hcl:"schedule,optional"`
	Source    string        `hcl:"source,optional"`
	Services  []string      `hcl:"services,optional"`
	MaxEvents *int          `hcl:"max_events,optional"`
	Options   *optionsBlock `hcl:"options,block"`
}

type optionsBlock struct {
	Remain hcl.Body `hcl:",remain"`
}

type namedBody struct {
	name string
	typ  string
	body *psetBody
	rng  hcl.Range
}

// fileContent collects the top-level blocks of all files before records are
// resolved.
type fileContent struct {
	psets   []*namedBody
	modules []*namedBody
	paths   []*config.Path
	process *config.Process
	procRng hcl.Range
}

func decodeFiles(ctx context.Context, files []*hcl.File) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	content := &fileContent{}
	for _, f := range files {
		body, ok := f.Body.(*hclsyntax.Body)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported HCL body %T", ErrSyntax, f.Body)
		}
		if err := content.add(body); err != nil {
			return nil, err
		}
	}

	resolved, err := resolvePSets(content.psets)
	if err != nil {
		return nil, err
	}

	model := &config.Model{Paths: content.paths, Process: content.process}
	for _, def := range content.psets {
		model.PSets = append(model.PSets, resolved[def.name])
	}
	for _, def := range content.modules {
		params, err := applyExtends(def.name, def, resolved)
		if err != nil {
			return nil, err
		}
		logger.Debug("Decoded module.", "label", def.name, "type", def.typ, "params", params.Len())
		model.Modules = append(model.Modules, &config.Module{Label: def.name, Type: def.typ, Params: params})
	}
	return model, nil
}

func (c *fileContent) add(body *hclsyntax.Body) error {
	for _, a := range body.Attributes {
		return syntaxErr(a.SrcRange, "top-level attributes are not allowed, found %q", a.Name)
	}
	for _, b := range body.Blocks {
		switch b.Type {
		case blockPSet:
			if len(b.Labels) != 1 {
				return syntaxErr(b.TypeRange, "pset block needs exactly one label, the record name")
			}
			decoded, err := decodePSetBody(b.Labels[0], b.Body, true)
			if err != nil {
				return err
			}
			c.psets = append(c.psets, &namedBody{name: b.Labels[0], body: decoded, rng: b.TypeRange})
		case blockModule:
			if len(b.Labels) != 2 {
				return syntaxErr(b.TypeRange, "module block needs two labels, the label and the component type")
			}
			decoded, err := decodePSetBody(b.Labels[0], b.Body, true)
			if err != nil {
				return err
			}
			c.modules = append(c.modules, &namedBody{name: b.Labels[0], typ: b.Labels[1], body: decoded, rng: b.TypeRange})
		case blockPath:
			if len(b.Labels) != 1 {
				return syntaxErr(b.TypeRange, "path block needs exactly one label, the path name")
			}
			var pb pathBlock
			if diags := gohcl.DecodeBody(b.Body, nil, &pb); diags.HasErrors() {
				return fmt.Errorf("failed to decode path %q: %w", b.Labels[0], diags)
			}
			c.paths = append(c.paths, &config.Path{Name: b.Labels[0], Modules: pb.Modules})
		case blockProcess:
			if err := c.addProcess(b); err != nil {
				return err
			}
		default:
			return syntaxErr(b.TypeRange, "unsupported block type %q", b.Type)
		}
	}
	return nil
}

func (c *fileContent) addProcess(b *hclsyntax.Block) error {
	if len(b.Labels) != 1 {
		return syntaxErr(b.TypeRange, "process block needs exactly one label, the process name")
	}
	if c.process != nil {
		return syntaxErr(b.TypeRange, "process %q already defined at %s", c.process.Name, c.procRng)
	}
	var pb processBlock
	if diags := gohcl.DecodeBody(b.Body, nil, &pb); diags.HasErrors() {
		return fmt.Errorf("failed to decode process %q: %w", b.Labels[0], diags)
	}

	var schedule []string
	if pb.Schedule != nil {
		schedule = append([]string{}, *pb.Schedule...)
	}
	proc := &config.Process{
		Name:      b.Labels[0],
		Schedule:  schedule,
		Source:    pb.Source,
		Services:  pb.Services,
		MaxEvents: pb.MaxEvents,
	}
	for _, ob := range b.Body.Blocks {
		if ob.Type != blockOptions {
			continue
		}
		decoded, err := decodePSetBody(blockOptions, ob.Body, false)
		if err != nil {
			return err
		}
		proc.Options = pset.MustDefine(blockOptions, decoded.fields...)
	}
	c.process = proc
	c.procRng = b.TypeRange
	return nil
}
