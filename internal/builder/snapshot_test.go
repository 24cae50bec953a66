package builder

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/hcl"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

func TestSnapshot_RebuildsEquivalentState(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	r := registry.New()
	p, err := Build(ctx, demoModel(), r)
	require.NoError(t, err)

	snap := Snapshot(r, p)
	assert.Empty(t, snap.PSets, "reusable records are folded into declarations")

	rebuilt := registry.New()
	p2, err := Build(ctx, snap, rebuilt)
	require.NoError(t, err)

	again := Snapshot(rebuilt, p2)
	opts := []cmp.Option{
		cmp.Comparer(func(a, b *pset.PSet) bool { return a.Equal(b) }),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(snap, again, opts...); diff != "" {
		t.Errorf("Snapshot() not stable across a rebuild (-first +second):\n%s", diff)
	}
	assert.Equal(t, []string{"dtc", "gp"}, again.Process.Schedule)
	assert.Equal(t, 10, *again.Process.MaxEvents)
}

func TestSnapshot_DeclarationsOnly(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	model := demoModel()
	model.Process = nil
	r := registry.New()
	_, err := Build(ctx, model, r)
	require.NoError(t, err)

	snap := Snapshot(r, nil)
	assert.Nil(t, snap.Process)
	require.Len(t, snap.Modules, 4)
	assert.Equal(t, "trackerTFP::ProducerGP", snap.Modules[1].Type)
}

func TestSnapshot_EmptyScheduleSurvivesReload(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	model := demoModel()
	model.Paths = model.Paths[1:]
	model.Process.Schedule = []string{}

	r := registry.New()
	p, err := Build(ctx, model, r)
	require.NoError(t, err)
	require.Empty(t, p.Schedule())

	snap := Snapshot(r, p)
	require.NotNil(t, snap.Process.Schedule)
	src, err := hcl.EncodeFile(snap)
	require.NoError(t, err)
	assert.Contains(t, string(src), "schedule = []")

	reloaded, err := hcl.Decode(ctx, src, "snapshot.hcl")
	require.NoError(t, err)
	p2, err := Build(ctx, reloaded, registry.New())
	require.NoError(t, err)
	assert.Empty(t, p2.Schedule())
	assert.Len(t, p2.Paths(), 1)
}
