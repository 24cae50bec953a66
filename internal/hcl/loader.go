package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/sourcegraph/conc"

	"github.com/vk/psetgrid/internal/config"
	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/fsutil"
)

// Extension is the file extension picked up when a directory is loaded.
const Extension = ".hcl"

// parseCacheSize bounds the number of parsed files a Loader keeps.
const parseCacheSize = 256

// Loader is the HCL-specific implementation of the config.Loader interface.
// It keeps parsed files keyed by path, so repeated loads of the same tree
// only parse the files whose size or modification time changed.
type Loader struct {
	parsed *lru.Cache[string, cachedFile]
}

type cachedFile struct {
	size    int64
	modTime time.Time
	file    *hcl.File
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	cache, err := lru.New[string, cachedFile](parseCacheSize)
	if err != nil {
		panic(err)
	}
	return &Loader{parsed: cache}
}

// Load reads every given file, and every .hcl file below every given
// directory, and translates their combined content into a model. Records may
// extend records defined in other files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parsed, err := l.parseFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	model, err := decodeFiles(ctx, parsed)
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "psets", len(model.PSets), "modules", len(model.Modules), "paths", len(model.Paths), "process", model.Process != nil)
	return model, nil
}

// Decode translates a single in-memory source into a model.
func Decode(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	f, err := parse(src, filename)
	if err != nil {
		return nil, err
	}
	return decodeFiles(ctx, []*hcl.File{f})
}

func parse(src []byte, filename string) (*hcl.File, error) {
	f, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return f, nil
}

// parseFiles parses files concurrently. The result keeps the input order so
// that decoding stays deterministic.
func (l *Loader) parseFiles(ctx context.Context, files []string) ([]*hcl.File, error) {
	parsed := make([]*hcl.File, len(files))
	errs := make([]error, len(files))
	var hits atomic.Int64

	var wg conc.WaitGroup
	for i, file := range files {
		wg.Go(func() {
			f, hit, err := l.parseFile(file)
			if hit {
				hits.Add(1)
			}
			parsed[i], errs[i] = f, err
		})
	}
	wg.Wait()
	ctxlog.FromContext(ctx).Debug("Parsed HCL files.", "count", len(files), "cached", hits.Load())

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return parsed, nil
}

// parseFile returns the cached parse of path while its size and modification
// time are unchanged.
func (l *Loader) parseFile(path string) (*hcl.File, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read HCL file %s: %w", path, err)
	}
	if c, ok := l.parsed.Get(path); ok && c.size == info.Size() && c.modTime.Equal(info.ModTime()) {
		return c.file, true, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read HCL file %s: %w", path, err)
	}
	f, err := parse(src, path)
	if err != nil {
		l.parsed.Remove(path)
		return nil, false, err
	}
	l.parsed.Add(path, cachedFile{size: info.Size(), modTime: info.ModTime(), file: f})
	return f, false, nil
}

// findAllHCLFiles expands directories and removes duplicates. Files named
// explicitly are loaded whatever their extension.
func findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, path := range paths {
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, Extension)
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	return all, nil
}
