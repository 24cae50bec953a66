package process

import (
	"context"
	"fmt"

	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/inmemorytopology"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
	"github.com/vk/psetgrid/internal/topologystore"
)

// upstream returns the producer labels a declaration names, through the
// label keys of its component type and through any top-level input tag.
func upstream(d *registry.Declaration) []string {
	var labels []string
	seen := make(map[string]bool)
	add := func(label string) {
		if label != "" && label != d.Label && !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}

	for _, c := range d.Type.Consumes() {
		if label, err := d.Params.GetString(c.LabelKey); err == nil {
			add(label)
		}
	}
	for _, f := range d.Params.Fields() {
		if f.Value.Kind() != pset.KindInputTag {
			continue
		}
		tag, _ := f.Value.AsInputTag()
		add(tag.Producer)
	}
	return labels
}

// Dependencies builds the producer/consumer topology of every declaration in
// the registry. References to labels that are not declared are skipped; they
// name products of components outside this configuration. The topology may
// hold cycles. Those only matter once both ends are scheduled, which
// CheckOrdering reports.
func (p *Process) Dependencies(ctx context.Context) (topologystore.Store, error) {
	logger := ctxlog.FromContext(ctx)
	store := inmemorytopology.New()

	decls := p.reg.All()
	for _, d := range decls {
		if err := store.AddNode(ctx, d); err != nil {
			return nil, err
		}
	}
	for _, d := range decls {
		for _, producer := range upstream(d) {
			if _, ok := p.reg.Get(producer); !ok {
				logger.Debug("Consumed label is not declared in this configuration.", "consumer", d.Label, "producer", producer)
				continue
			}
			if err := store.AddDependency(ctx, producer, d.Label); err != nil {
				return nil, fmt.Errorf("linking %q to %q: %w", producer, d.Label, err)
			}
		}
	}
	if err := store.DetectCycles(ctx); err != nil {
		logger.Debug("Dependency topology is not acyclic.", "process", p.Name, "error", err)
	}
	return store, nil
}

// reaches reports whether to is upstream of from in the topology.
func reaches(ctx context.Context, store topologystore.Store, from, to string) (bool, error) {
	visited := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		label := queue[0]
		queue = queue[1:]
		deps, err := store.DependenciesOf(ctx, label)
		if err != nil {
			return false, err
		}
		for _, dep := range deps {
			if dep == to {
				return true, nil
			}
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	return false, nil
}

// OrderingIssue describes a scheduled consumer whose producer does not run
// before it.
type OrderingIssue struct {
	Consumer string
	Producer string
	Reason   string
}

func (i OrderingIssue) String() string {
	return fmt.Sprintf("%s consumes %s: %s", i.Consumer, i.Producer, i.Reason)
}

// CheckOrdering compares the schedule with the dependency topology and
// logs a warning for each scheduled consumer whose declared producer is
// scheduled later or not at all, or also depends on the consumer. The host
// resolves such cases on demand, so the issues are advisory. Cycles among
// declarations outside the schedule are ignored.
func (p *Process) CheckOrdering(ctx context.Context) ([]OrderingIssue, error) {
	logger := ctxlog.FromContext(ctx)
	store, err := p.Dependencies(ctx)
	if err != nil {
		return nil, err
	}

	position := make(map[string]int)
	scheduled := p.ScheduledDeclarations()
	for i, d := range scheduled {
		position[d.Label] = i
	}

	var issues []OrderingIssue
	for i, d := range scheduled {
		deps, err := store.DependenciesOf(ctx, d.Label)
		if err != nil {
			return nil, err
		}
		for _, producer := range deps {
			at, ok := position[producer]
			if !ok {
				issues = append(issues, OrderingIssue{Consumer: d.Label, Producer: producer, Reason: "producer is not scheduled"})
				continue
			}
			cyclic, err := reaches(ctx, store, producer, d.Label)
			if err != nil {
				return nil, err
			}
			switch {
			case cyclic:
				issues = append(issues, OrderingIssue{Consumer: d.Label, Producer: producer, Reason: "producer and consumer depend on each other"})
			case at > i:
				issues = append(issues, OrderingIssue{Consumer: d.Label, Producer: producer, Reason: "producer is scheduled after its consumer"})
			}
		}
	}

	for _, issue := range issues {
		logger.Warn("Schedule ordering issue.", "process", p.Name, "consumer", issue.Consumer, "producer", issue.Producer, "reason", issue.Reason)
	}
	return issues, nil
}
