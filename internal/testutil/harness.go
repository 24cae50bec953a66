// Package testutil provides the shared harness for end-to-end tests of the
// application: configuration files are written to a temporary directory and
// the full build-validate-render lifecycle runs against them.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/psetgrid/internal/app"
	"github.com/vk/psetgrid/internal/catalog"
	"github.com/vk/psetgrid/internal/hcl"
	"github.com/vk/psetgrid/internal/varparsing"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	// Dir is the temporary directory the files were written to.
	Dir string
}

// Options tune a harness run.
type Options struct {
	// Format is the output format; hcl when empty.
	Format string
	// Builtin also declares the compiled-in catalog.
	Builtin bool
	// Harness overrides the harness options.
	Harness *varparsing.Options
	// ValidateOnly skips rendering.
	ValidateOnly bool
	// Modules replace the core catalog modules.
	Modules []catalog.Module
}

// WriteFiles writes files, keyed by relative path, below dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// NewConfig returns a validated debug-level configuration for opts. Without
// files no config path is set, so the built-in catalog is used.
func NewConfig(t *testing.T, dir string, withFiles bool, opts Options) *app.Config {
	t.Helper()
	format := opts.Format
	if format == "" {
		format = app.FormatHCL
	}
	harness := varparsing.Defaults()
	if opts.Harness != nil {
		harness = *opts.Harness
	}
	cfg := app.Config{
		Builtin:      opts.Builtin,
		Harness:      harness,
		LogFormat:    "text",
		LogLevel:     "debug",
		OutputFormat: format,
		ValidateOnly: opts.ValidateOnly,
	}
	if withFiles {
		cfg.ConfigPaths = []string{dir}
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)
	return appConfig
}

// RunIntegrationTest writes files to a temporary directory and runs the
// application once against it.
func RunIntegrationTest(t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	WriteFiles(t, dir, files)
	appConfig := NewConfig(t, dir, len(files) > 0, opts)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	testApp := app.NewApp(out, logs, appConfig, hcl.NewLoader(), opts.Modules...)
	err := testApp.Run(ctx)

	if os.Getenv("PSETGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       err,
		Dir:       dir,
	}
}
