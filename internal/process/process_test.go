package process

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

func chainRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	params := pset.MustDefine("TrackerTFPProducer_params",
		pset.Param("LabelDTC", pset.String("dtcProducer")),
		pset.Param("LabelGP", pset.String("gpProducer")),
		pset.Param("BranchAccepted", pset.String("StubAccepted")),
	)
	r := registry.New()
	r.MustDeclare("dtcProducer", component.TrackerDTCProducer, pset.MustDefine("dtc"))
	r.MustDeclare("gpProducer", component.TrackerTFPProducerGP, params)
	r.MustDeclare("htProducer", component.TrackerTFPProducerHT, params)
	r.MustDeclare("source", component.PoolSource, pset.MustDefine("PoolSource", pset.Param("fileNames", pset.Strings("a.root"))))
	r.MustDeclare("Timing", component.Timing, pset.MustDefine("Timing"))
	return r
}

func TestNew(t *testing.T) {
	_, err := New("Demo", registry.New())
	require.NoError(t, err)

	_, err = New("", registry.New())
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = New("Demo", nil)
	require.Error(t, err)
}

func TestAddPath(t *testing.T) {
	p, err := New("Demo", chainRegistry(t))
	require.NoError(t, err)

	testCases := []struct {
		name      string
		path      string
		labels    []string
		expectErr error
	}{
		{name: "valid", path: "dtc", labels: []string{"dtcProducer"}},
		{name: "empty path is allowed", path: "empty"},
		{name: "duplicate path", path: "dtc", labels: []string{"gpProducer"}, expectErr: ErrDuplicatePath},
		{name: "undeclared label", path: "x", labels: []string{"nope"}, expectErr: ErrUndeclaredLabel},
		{name: "invalid name", path: "a.b", expectErr: ErrInvalidName},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path, err := p.AddPath(tc.path, tc.labels...)
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.path, path.Name)
		})
	}

	_, err = p.AddPath("twice", "gpProducer", "gpProducer")
	require.ErrorContains(t, err, "appears twice")
}

func TestAddPath_CopiesLabels(t *testing.T) {
	p, err := New("Demo", chainRegistry(t))
	require.NoError(t, err)
	labels := []string{"gpProducer"}
	path, err := p.AddPath("gp", labels...)
	require.NoError(t, err)
	labels[0] = "mutated"
	assert.Equal(t, []string{"gpProducer"}, path.Labels)
}

func TestSetSchedule(t *testing.T) {
	p, err := New("Demo", chainRegistry(t))
	require.NoError(t, err)
	_, err = p.AddPath("dtc", "dtcProducer")
	require.NoError(t, err)
	_, err = p.AddPath("gp", "gpProducer")
	require.NoError(t, err)

	require.ErrorIs(t, p.SetSchedule("dtc", "missing"), ErrUnknownPath)
	require.ErrorIs(t, p.SetSchedule("dtc", "dtc"), ErrDuplicatePath)
	assert.Empty(t, p.Schedule(), "failed schedule leaves no partial state")

	require.NoError(t, p.SetSchedule("dtc", "gp"))
	var names []string
	for _, path := range p.Schedule() {
		names = append(names, path.Name)
	}
	assert.Equal(t, []string{"dtc", "gp"}, names)
}

func TestScheduledDeclarations_DeduplicatesSharedLabels(t *testing.T) {
	p, err := New("Demo", chainRegistry(t))
	require.NoError(t, err)
	_, err = p.AddPath("a", "dtcProducer", "gpProducer")
	require.NoError(t, err)
	_, err = p.AddPath("b", "gpProducer", "htProducer")
	require.NoError(t, err)
	_, err = p.AddPath("unscheduled", "source")
	require.NoError(t, err)
	require.NoError(t, p.SetSchedule("a", "b"))

	var labels []string
	for _, d := range p.ScheduledDeclarations() {
		labels = append(labels, d.Label)
	}
	assert.Equal(t, []string{"dtcProducer", "gpProducer", "htProducer"}, labels)
}

func TestSourceAndServices(t *testing.T) {
	p, err := New("Demo", chainRegistry(t))
	require.NoError(t, err)

	_, ok := p.Source()
	assert.False(t, ok)

	require.ErrorIs(t, p.SetSource("gpProducer"), ErrWrongKind)
	require.ErrorIs(t, p.SetSource("missing"), ErrUndeclaredLabel)
	require.NoError(t, p.SetSource("source"))
	src, ok := p.Source()
	require.True(t, ok)
	assert.Equal(t, component.PoolSource, src.Type)

	require.ErrorIs(t, p.AddService("source"), ErrWrongKind)
	require.NoError(t, p.AddService("Timing"))
	require.NoError(t, p.AddService("Timing"))
	assert.Len(t, p.Services(), 1)
}

func TestMaxEventsAndOptions(t *testing.T) {
	p, err := New("Demo", registry.New())
	require.NoError(t, err)
	assert.Equal(t, AllEvents, p.MaxEvents())

	require.NoError(t, p.SetMaxEvents(100))
	assert.Equal(t, 100, p.MaxEvents())
	require.Error(t, p.SetMaxEvents(-2))

	assert.Equal(t, 0, p.Options().Len())
	p.SetOptions(pset.MustDefine("options", pset.Param("wantSummary", pset.Bool(false).Untracked())))
	want, err := p.Options().GetBool("wantSummary")
	require.NoError(t, err)
	assert.False(t, want)
	p.SetOptions(nil)
	assert.Equal(t, 0, p.Options().Len())
}

func TestDependencies(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	p, err := New("Demo", chainRegistry(t))
	require.NoError(t, err)

	store, err := p.Dependencies(ctx)
	require.NoError(t, err)

	deps, err := store.DependenciesOf(ctx, "gpProducer")
	require.NoError(t, err)
	assert.Equal(t, []string{"dtcProducer"}, deps)

	deps, err = store.DependenciesOf(ctx, "htProducer")
	require.NoError(t, err)
	assert.Equal(t, []string{"gpProducer"}, deps)
}

func TestDependencies_InputTags(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	r := registry.New()
	r.MustDeclare("StubAssociator", component.StubAssociator, pset.MustDefine("sa"))
	r.MustDeclare("Analyzer", component.TrackerTFPAnalyzerGP, pset.MustDefine("an",
		pset.Param("InputTagSelection", pset.Tag(pset.MustInputTag("StubAssociator", "UseForAlgEff"))),
		pset.Param("InputTagOther", pset.Tag(pset.MustInputTag("external", ""))),
	))
	p, err := New("Demo", r)
	require.NoError(t, err)

	store, err := p.Dependencies(ctx)
	require.NoError(t, err)
	deps, err := store.DependenciesOf(ctx, "Analyzer")
	require.NoError(t, err)
	assert.Equal(t, []string{"StubAssociator"}, deps)
}

func TestCheckOrdering(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	p, err := New("Demo", chainRegistry(t))
	require.NoError(t, err)
	_, err = p.AddPath("gp", "gpProducer")
	require.NoError(t, err)
	_, err = p.AddPath("dtc", "dtcProducer")
	require.NoError(t, err)
	_, err = p.AddPath("ht", "htProducer")
	require.NoError(t, err)

	t.Run("in order", func(t *testing.T) {
		require.NoError(t, p.SetSchedule("dtc", "gp", "ht"))
		issues, err := p.CheckOrdering(ctx)
		require.NoError(t, err)
		assert.Empty(t, issues)
	})

	t.Run("producer late and missing", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, p.SetSchedule("gp", "dtc"))
		issues, err := p.CheckOrdering(ctx)
		require.NoError(t, err)
		assert.Equal(t, []OrderingIssue{
			{Consumer: "gpProducer", Producer: "dtcProducer", Reason: "producer is scheduled after its consumer"},
		}, issues)

		require.NoError(t, p.SetSchedule("ht"))
		issues, err = p.CheckOrdering(ctx)
		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, "producer is not scheduled", issues[0].Reason)
		assert.Contains(t, buf.String(), "Schedule ordering issue.")
		assert.Equal(t, "htProducer consumes gpProducer: producer is not scheduled", issues[0].String())
	})
}

func TestCheckOrdering_Cycles(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	r := chainRegistry(t)
	r.MustDeclare("loopA", component.TrackerTFPAnalyzerGP, pset.MustDefine("a",
		pset.Param("InputTagStubs", pset.Tag(pset.MustInputTag("loopB", "Stubs"))),
	))
	r.MustDeclare("loopB", component.TrackerTFPAnalyzerGP, pset.MustDefine("b",
		pset.Param("InputTagStubs", pset.Tag(pset.MustInputTag("loopA", "Stubs"))),
	))
	p, err := New("Demo", r)
	require.NoError(t, err)
	_, err = p.AddPath("dtc", "dtcProducer")
	require.NoError(t, err)
	_, err = p.AddPath("gp", "gpProducer")
	require.NoError(t, err)
	_, err = p.AddPath("loop", "loopA", "loopB")
	require.NoError(t, err)

	t.Run("unscheduled cycle is ignored", func(t *testing.T) {
		_, err := p.Dependencies(ctx)
		require.NoError(t, err)

		require.NoError(t, p.SetSchedule("dtc", "gp"))
		issues, err := p.CheckOrdering(ctx)
		require.NoError(t, err)
		assert.Empty(t, issues)
	})

	t.Run("scheduled cycle is reported", func(t *testing.T) {
		require.NoError(t, p.SetSchedule("dtc", "gp", "loop"))
		issues, err := p.CheckOrdering(ctx)
		require.NoError(t, err)
		assert.Equal(t, []OrderingIssue{
			{Consumer: "loopA", Producer: "loopB", Reason: "producer and consumer depend on each other"},
			{Consumer: "loopB", Producer: "loopA", Reason: "producer and consumer depend on each other"},
		}, issues)
	})
}
