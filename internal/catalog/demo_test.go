package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/ctxlog"
)

func TestDemoProcess(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	files := []string{"/store/relval/a.root", "/store/relval/b.root"}

	p, err := DemoProcess(ctx, DemoOptions{Events: 100, FileNames: files})
	require.NoError(t, err)

	assert.Equal(t, "Demo", p.Name)
	assert.Equal(t, 100, p.MaxEvents())

	var paths []string
	for _, path := range p.Schedule() {
		paths = append(paths, path.Name)
	}
	assert.Equal(t, []string{"dtc", "gp"}, paths)

	var labels []string
	for _, d := range p.ScheduledDeclarations() {
		labels = append(labels, d.Label)
	}
	assert.Equal(t, []string{"TrackerDTCProducer", "TrackerTFPProducerGP"}, labels)

	src, ok := p.Source()
	require.True(t, ok)
	assert.Equal(t, component.PoolSource, src.Type)
	got, err := src.Params.GetStrings("fileNames")
	require.NoError(t, err)
	assert.Equal(t, files, got)
	v, _ := src.Params.Get("fileNames")
	assert.False(t, v.Tracked())
	mode, err := src.Params.GetString("duplicateCheckMode")
	require.NoError(t, err)
	assert.Equal(t, "noDuplicateCheck", mode)

	services := p.Services()
	require.Len(t, services, 1)
	summary, err := services[0].Params.GetBool("summaryOnly")
	require.NoError(t, err)
	assert.True(t, summary)

	want, err := p.Options().GetBool("wantSummary")
	require.NoError(t, err)
	assert.False(t, want)

	require.NoError(t, p.Registry().ValidateSchemas(ctx, nil))
	issues, err := p.CheckOrdering(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestDemoProcess_RejectsNegativeEvents(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	_, err := DemoProcess(ctx, DemoOptions{Events: -5})
	require.Error(t, err)
}

func TestDemoProcess_EmptyFileList(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	p, err := DemoProcess(ctx, DemoOptions{Events: -1})
	require.NoError(t, err)
	src, _ := p.Source()
	files, err := src.Params.GetStrings("fileNames")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestAssembleDemo_OnBuiltinRegistry(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	r, err := Builtin(ctx)
	require.NoError(t, err)
	before := r.Len()

	p, err := AssembleDemo(ctx, r, DemoOptions{Events: 10, FileNames: []string{"a.root"}})
	require.NoError(t, err)
	assert.Equal(t, before+2, r.Len(), "only the source and the service are added")
	assert.Same(t, r, p.Registry())

	require.NoError(t, r.ValidateSchemas(ctx, nil))
	issues, err := p.CheckOrdering(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
