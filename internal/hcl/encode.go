package hcl

import (
	"context"
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/psetgrid/internal/config"
	"github.com/vk/psetgrid/internal/pset"
)

// EncodePSet renders p as a single top-level pset block.
func EncodePSet(p *pset.PSet) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	if err := writeTopLevel(f.Body(), blockPSet, []string{p.Name()}, p); err != nil {
		return nil, err
	}
	return f.Bytes(), nil
}

// DecodePSet reads a source holding exactly one top-level pset block, as
// written by EncodePSet.
func DecodePSet(src []byte, filename string) (*pset.PSet, error) {
	m, err := Decode(context.Background(), src, filename)
	if err != nil {
		return nil, err
	}
	if len(m.PSets) != 1 || len(m.Modules) != 0 || len(m.Paths) != 0 || m.Process != nil {
		return nil, fmt.Errorf("%w: %s must hold exactly one pset block", ErrSyntax, filename)
	}
	return m.PSets[0], nil
}

// EncodeFile renders a whole model. Records are written fully expanded, so
// the output never uses extends.
func EncodeFile(m *config.Model) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	blocks := 0
	separate := func() {
		if blocks > 0 {
			root.AppendNewline()
		}
		blocks++
	}

	for _, p := range m.PSets {
		separate()
		if err := writeTopLevel(root, blockPSet, []string{p.Name()}, p); err != nil {
			return nil, fmt.Errorf("pset %q: %w", p.Name(), err)
		}
	}
	for _, mod := range m.Modules {
		separate()
		if err := writeTopLevel(root, blockModule, []string{mod.Label, mod.Type}, mod.Params); err != nil {
			return nil, fmt.Errorf("module %q: %w", mod.Label, err)
		}
	}
	for _, path := range m.Paths {
		separate()
		block := root.AppendNewBlock(blockPath, []string{path.Name})
		block.Body().SetAttributeValue("modules", stringsVal(path.Modules))
	}
	if proc := m.Process; proc != nil {
		separate()
		if err := writeProcess(root, proc); err != nil {
			return nil, err
		}
	}
	return f.Bytes(), nil
}

// writeTopLevel writes a block whose body supports extends, so the reserved
// key cannot appear as a parameter.
func writeTopLevel(parent *hclwrite.Body, typeName string, labels []string, p *pset.PSet) error {
	if p.Has(extendsKey) {
		return fmt.Errorf("%w: %q", ErrReservedKey, extendsKey)
	}
	return writePSetBlock(parent, typeName, labels, p)
}

func writeProcess(root *hclwrite.Body, proc *config.Process) error {
	body := root.AppendNewBlock(blockProcess, []string{proc.Name}).Body()
	if proc.Schedule != nil {
		body.SetAttributeValue("schedule", stringsVal(proc.Schedule))
	}
	if proc.Source != "" {
		body.SetAttributeValue("source", cty.StringVal(proc.Source))
	}
	if len(proc.Services) > 0 {
		body.SetAttributeValue("services", stringsVal(proc.Services))
	}
	if proc.MaxEvents != nil {
		body.SetAttributeValue("max_events", cty.NumberIntVal(int64(*proc.MaxEvents)))
	}
	if proc.Options != nil && proc.Options.Len() > 0 {
		return writePSetBlock(body, blockOptions, nil, proc.Options)
	}
	return nil
}

func writePSetBlock(parent *hclwrite.Body, typeName string, labels []string, p *pset.PSet) error {
	block := parent.AppendNewBlock(typeName, labels)
	return writeFields(block.Body(), p)
}

func writeFields(body *hclwrite.Body, p *pset.PSet) error {
	for _, f := range p.Fields() {
		switch f.Value.Kind() {
		case pset.KindPSet:
			nested, _ := f.Value.AsPSet()
			typeName := blockPSet
			if !f.Value.Tracked() {
				typeName = blockUntrackedPSet
			}
			if err := writePSetBlock(body, typeName, []string{f.Key}, nested); err != nil {
				return fmt.Errorf("parameter %q: %w", f.Key, err)
			}
		case pset.KindVPSet:
			elems, _ := f.Value.AsVPSet()
			typeName := blockVPSet
			if !f.Value.Tracked() {
				typeName = blockUntrackedVPSet
			}
			vb := body.AppendNewBlock(typeName, []string{f.Key}).Body()
			for i, elem := range elems {
				if err := writePSetBlock(vb, blockPSet, nil, elem); err != nil {
					return fmt.Errorf("parameter %q[%d]: %w", f.Key, i, err)
				}
			}
		default:
			tokens, err := valueTokens(f.Value)
			if err != nil {
				return fmt.Errorf("parameter %q: %w", f.Key, err)
			}
			body.SetAttributeRaw(f.Key, tokens)
		}
	}
	return nil
}

// valueTokens renders a scalar value as a typed call.
func valueTokens(v pset.Value) (hclwrite.Tokens, error) {
	var tokens hclwrite.Tokens
	switch v.Kind() {
	case pset.KindInt32:
		n, _ := v.AsInt32()
		tokens = call(v.Kind(), cty.NumberIntVal(int64(n)))
	case pset.KindUint32:
		n, _ := v.AsUint32()
		tokens = call(v.Kind(), cty.NumberUIntVal(uint64(n)))
	case pset.KindDouble:
		f, _ := v.AsDouble()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %v has no HCL representation", pset.ErrInvalidValue, f)
		}
		tokens = call(v.Kind(), cty.NumberFloatVal(f))
	case pset.KindBool:
		b, _ := v.AsBool()
		tokens = call(v.Kind(), cty.BoolVal(b))
	case pset.KindString:
		s, _ := v.AsString()
		tokens = call(v.Kind(), cty.StringVal(s))
	case pset.KindStrings:
		ss, _ := v.AsStrings()
		elems := make([]hclwrite.Tokens, len(ss))
		for i, s := range ss {
			elems[i] = hclwrite.TokensForValue(cty.StringVal(s))
		}
		tokens = hclwrite.TokensForFunctionCall(v.Kind().String(), hclwrite.TokensForTuple(elems))
	case pset.KindInputTag:
		tag, _ := v.AsInputTag()
		args := []cty.Value{cty.StringVal(tag.Producer)}
		if tag.Branch != "" {
			args = append(args, cty.StringVal(tag.Branch))
		}
		if tag.Process != "" {
			args = append(args, cty.StringVal(tag.Process))
		}
		tokens = call(v.Kind(), args...)
	default:
		return nil, fmt.Errorf("%w: kind %s cannot be written as an attribute", pset.ErrInvalidValue, v.Kind())
	}
	if !v.Tracked() {
		tokens = hclwrite.TokensForFunctionCall("untracked", tokens)
	}
	return tokens, nil
}

func call(kind pset.Kind, args ...cty.Value) hclwrite.Tokens {
	argTokens := make([]hclwrite.Tokens, len(args))
	for i, a := range args {
		argTokens[i] = hclwrite.TokensForValue(a)
	}
	return hclwrite.TokensForFunctionCall(kind.String(), argTokens...)
}

func stringsVal(ss []string) cty.Value {
	if len(ss) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
