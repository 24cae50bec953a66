package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddddddO/gtree"
	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/vk/psetgrid/internal/builder"
	"github.com/vk/psetgrid/internal/hcl"
	"github.com/vk/psetgrid/internal/process"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

// Render writes res to w in the given format.
func Render(w io.Writer, format string, res *Result) error {
	switch format {
	case FormatHCL:
		out, err := hcl.EncodeFile(builder.Snapshot(res.Registry, res.Process))
		if err != nil {
			return fmt.Errorf("encoding HCL: %w", err)
		}
		_, err = w.Write(out)
		return err
	case FormatJSON:
		return renderJSON(w, res)
	case FormatTable:
		return renderTable(w, res)
	case FormatTree:
		return renderTree(w, res)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

type document struct {
	Declarations []declarationView `json:"declarations"`
	Process      *processView      `json:"process,omitempty"`
	Issues       []issueView       `json:"ordering_issues,omitempty"`
}

type declarationView struct {
	Label  string     `json:"label"`
	Type   string     `json:"type"`
	Kind   string     `json:"kind"`
	Params *pset.PSet `json:"params"`
}

type processView struct {
	Name      string     `json:"name"`
	Paths     []pathView `json:"paths"`
	Schedule  []string   `json:"schedule"`
	Source    string     `json:"source,omitempty"`
	Services  []string   `json:"services,omitempty"`
	MaxEvents int        `json:"max_events"`
	Options   *pset.PSet `json:"options,omitempty"`
}

type pathView struct {
	Name    string   `json:"name"`
	Modules []string `json:"modules"`
}

type issueView struct {
	Consumer string `json:"consumer"`
	Producer string `json:"producer"`
	Reason   string `json:"reason"`
}

func renderJSON(w io.Writer, res *Result) error {
	doc := document{Declarations: []declarationView{}}
	for _, d := range res.Registry.All() {
		doc.Declarations = append(doc.Declarations, declarationView{
			Label:  d.Label,
			Type:   d.Type.String(),
			Kind:   d.Type.Kind().String(),
			Params: d.Params,
		})
	}
	if p := res.Process; p != nil {
		view := &processView{Name: p.Name, MaxEvents: p.MaxEvents(), Schedule: []string{}}
		for _, path := range p.Paths() {
			view.Paths = append(view.Paths, pathView{Name: path.Name, Modules: path.Labels})
		}
		for _, path := range p.Schedule() {
			view.Schedule = append(view.Schedule, path.Name)
		}
		if src, ok := p.Source(); ok {
			view.Source = src.Label
		}
		for _, svc := range p.Services() {
			view.Services = append(view.Services, svc.Label)
		}
		if p.Options().Len() > 0 {
			view.Options = p.Options()
		}
		doc.Process = view
	}
	for _, issue := range res.Issues {
		doc.Issues = append(doc.Issues, issueView(issue))
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

func renderTable(w io.Writer, res *Result) error {
	pathsOf := scheduledPaths(res.Process)

	table := tablewriter.NewTable(w, tablewriter.WithHeaderAutoFormat(tw.Off))
	table.Header("Label", "Type", "Kind", "Params", "Paths")
	rows := make([][]string, 0, res.Registry.Len())
	for _, d := range res.Registry.All() {
		rows = append(rows, []string{
			d.Label,
			d.Type.String(),
			d.Type.Kind().String(),
			fmt.Sprint(d.Params.Len()),
			strings.Join(pathsOf[d.Label], ", "),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("formatting declarations: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering declarations: %w", err)
	}

	if p := res.Process; p != nil {
		var schedule []string
		for _, path := range p.Schedule() {
			schedule = append(schedule, path.Name)
		}
		fmt.Fprintf(w, "process %s: schedule [%s], maxEvents %d\n", p.Name, strings.Join(schedule, ", "), p.MaxEvents())
	}
	for _, issue := range res.Issues {
		fmt.Fprintf(w, "ordering issue: %s\n", issue)
	}
	return nil
}

// scheduledPaths maps each label to the scheduled paths that run it.
func scheduledPaths(p *process.Process) map[string][]string {
	out := make(map[string][]string)
	if p == nil {
		return out
	}
	for _, path := range p.Schedule() {
		for _, label := range path.Labels {
			out[label] = append(out[label], path.Name)
		}
	}
	return out
}

func renderTree(w io.Writer, res *Result) error {
	p := res.Process
	if p == nil {
		root := gtree.NewRoot("declarations")
		for _, d := range res.Registry.All() {
			addDeclaration(root, d)
		}
		return gtree.OutputFromRoot(w, root)
	}

	root := gtree.NewRoot("process " + p.Name)
	if src, ok := p.Source(); ok {
		addDeclaration(root.Add("source"), src)
	}
	if svcs := p.Services(); len(svcs) > 0 {
		node := root.Add("services")
		for _, svc := range svcs {
			addDeclaration(node, svc)
		}
	}

	scheduled := make(map[string]bool)
	for _, path := range p.Schedule() {
		node := root.Add("path " + path.Name)
		for _, label := range path.Labels {
			if d, ok := res.Registry.Get(label); ok {
				addDeclaration(node, d)
				scheduled[label] = true
			}
		}
	}

	var rest *gtree.Node
	src, _ := p.Source()
	for _, d := range res.Registry.All() {
		if scheduled[d.Label] || d == src || isService(p, d) {
			continue
		}
		if rest == nil {
			rest = root.Add("unscheduled")
		}
		addDeclaration(rest, d)
	}

	if p.Options().Len() > 0 {
		addParams(root.Add("options"), p.Options())
	}
	return gtree.OutputFromRoot(w, root)
}

func isService(p *process.Process, d *registry.Declaration) bool {
	for _, svc := range p.Services() {
		if svc == d {
			return true
		}
	}
	return false
}

func addDeclaration(parent *gtree.Node, d *registry.Declaration) {
	addParams(parent.Add(fmt.Sprintf("%s (%s)", d.Label, d.Type)), d.Params)
}

func addParams(node *gtree.Node, p *pset.PSet) {
	for _, f := range p.Fields() {
		switch f.Value.Kind() {
		case pset.KindPSet:
			nested, _ := f.Value.AsPSet()
			addParams(node.Add(f.Key+trackingSuffix(f.Value)), nested)
		case pset.KindVPSet:
			elems, _ := f.Value.AsVPSet()
			seq := node.Add(f.Key + trackingSuffix(f.Value))
			for i, elem := range elems {
				addParams(seq.Add(fmt.Sprintf("[%d]", i)), elem)
			}
		default:
			node.Add(fmt.Sprintf("%s = %s", f.Key, f.Value))
		}
	}
}

func trackingSuffix(v pset.Value) string {
	if v.Tracked() {
		return ""
	}
	return " (untracked)"
}
