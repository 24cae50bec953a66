package inmemorytopology

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

func decl(label string) *registry.Declaration {
	return &registry.Declaration{Label: label, Type: component.TrackerTFPProducerGP, Params: pset.MustDefine(label)}
}

func TestAddAndGetNode(t *testing.T) {
	s := New()
	ctx := context.Background()
	gp := decl("TrackerTFPProducerGP")

	require.NoError(t, s.AddNode(ctx, gp))
	require.NoError(t, s.AddNode(ctx, gp), "adding twice is idempotent")

	got, ok := s.GetNode(ctx, "TrackerTFPProducerGP")
	require.True(t, ok)
	assert.Same(t, gp, got)

	_, ok = s.GetNode(ctx, "missing")
	assert.False(t, ok)

	assert.Error(t, s.AddNode(ctx, nil))
}

func TestDependencies(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, l := range []string{"dtc", "gp", "ht"} {
		require.NoError(t, s.AddNode(ctx, decl(l)))
	}

	require.NoError(t, s.AddDependency(ctx, "dtc", "gp"))
	require.NoError(t, s.AddDependency(ctx, "gp", "ht"))
	require.NoError(t, s.AddDependency(ctx, "dtc", "ht"))

	deps, err := s.DependenciesOf(ctx, "ht")
	require.NoError(t, err)
	assert.Equal(t, []string{"dtc", "gp"}, deps)

	deps, err = s.DependenciesOf(ctx, "dtc")
	require.NoError(t, err)
	assert.Empty(t, deps)

	_, err = s.DependenciesOf(ctx, "missing")
	assert.ErrorContains(t, err, "not found")

	assert.ErrorContains(t, s.AddDependency(ctx, "missing", "gp"), "source")
	assert.ErrorContains(t, s.AddDependency(ctx, "gp", "missing"), "target")
	assert.ErrorContains(t, s.AddDependency(ctx, "gp", "gp"), "self-referential")

	require.NoError(t, s.DetectCycles(ctx))
}

func TestDetectCycles(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, l := range []string{"a", "b", "c"} {
		require.NoError(t, s.AddNode(ctx, decl(l)))
	}
	require.NoError(t, s.AddDependency(ctx, "a", "b"))
	require.NoError(t, s.AddDependency(ctx, "b", "c"))
	require.NoError(t, s.AddDependency(ctx, "c", "a"))

	assert.ErrorContains(t, s.DetectCycles(ctx), "cycle detected")
}

func TestAllNodes_SortedSnapshot(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, l := range []string{"ht", "dtc", "gp"} {
		require.NoError(t, s.AddNode(ctx, decl(l)))
	}

	var labels []string
	for _, d := range s.AllNodes(ctx) {
		labels = append(labels, d.Label)
	}
	assert.Equal(t, []string{"dtc", "gp", "ht"}, labels)
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddNode(ctx, decl("root")))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			label := "n" + string(rune('a'+i))
			assert.NoError(t, s.AddNode(ctx, decl(label)))
			assert.NoError(t, s.AddDependency(ctx, "root", label))
			_, _ = s.DependenciesOf(ctx, label)
			_ = s.AllNodes(ctx)
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.AllNodes(ctx), 21)
}
