package hcl

import (
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/psetgrid/internal/pset"
)

// extendsKey is reserved in top-level pset and module bodies.
const extendsKey = "extends"

const (
	blockPSet           = "pset"
	blockUntrackedPSet  = "untracked_pset"
	blockVPSet          = "vpset"
	blockUntrackedVPSet = "untracked_vpset"
)

// bodyItem is either an attribute or a block, positioned in its source file.
type bodyItem struct {
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

func (i bodyItem) start() int {
	if i.attr != nil {
		return i.attr.SrcRange.Start.Byte
	}
	return i.block.TypeRange.Start.Byte
}

// orderedItems returns the attributes and blocks of body in source order.
// hclsyntax keeps attributes in a map, so order has to be recovered from
// their source ranges.
func orderedItems(body *hclsyntax.Body) []bodyItem {
	items := make([]bodyItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, a := range body.Attributes {
		items = append(items, bodyItem{attr: a})
	}
	for _, b := range body.Blocks {
		items = append(items, bodyItem{block: b})
	}
	slices.SortFunc(items, func(a, b bodyItem) int { return a.start() - b.start() })
	return items
}

// psetBody is a decoded record body whose extends list has not been applied.
type psetBody struct {
	fields  []pset.Field
	extends []string
	rng     hcl.Range
}

// decodePSetBody decodes the parameters of a record body. When allowExtends
// is set, the reserved extends attribute is read instead of being stored as a
// parameter.
func decodePSetBody(name string, body *hclsyntax.Body, allowExtends bool) (*psetBody, error) {
	out := &psetBody{rng: body.SrcRange}
	for _, item := range orderedItems(body) {
		if a := item.attr; a != nil {
			if a.Name == extendsKey && allowExtends {
				v, err := literal(a.Expr)
				if err != nil {
					return nil, err
				}
				names, err := stringList(a.Expr.Range(), v)
				if err != nil {
					return nil, err
				}
				out.extends = names
				continue
			}
			v, err := decodeValue(a.Expr)
			if err != nil {
				return nil, err
			}
			out.fields = append(out.fields, pset.Param(a.Name, v))
			continue
		}

		b := item.block
		if len(b.Labels) != 1 {
			return nil, syntaxErr(b.TypeRange, "%s block needs exactly one label, the parameter key", b.Type)
		}
		key := b.Labels[0]
		if key == extendsKey && allowExtends {
			return nil, rangeErr(b.LabelRanges[0], ErrReservedKey)
		}
		var (
			v   pset.Value
			err error
		)
		switch b.Type {
		case blockPSet, blockUntrackedPSet:
			v, err = decodeNested(key, b.Body)
		case blockVPSet, blockUntrackedVPSet:
			v, err = decodeVPSet(b.Body)
		default:
			return nil, syntaxErr(b.TypeRange, "unsupported block type %q", b.Type)
		}
		if err != nil {
			return nil, err
		}
		if b.Type == blockUntrackedPSet || b.Type == blockUntrackedVPSet {
			v = v.Untracked()
		}
		out.fields = append(out.fields, pset.Param(key, v))
	}

	// Define reports duplicate keys and malformed values.
	if _, err := pset.Define(name, out.fields...); err != nil {
		return nil, rangeErr(body.SrcRange, err)
	}
	return out, nil
}

func decodeNested(name string, body *hclsyntax.Body) (pset.Value, error) {
	decoded, err := decodePSetBody(name, body, false)
	if err != nil {
		return pset.Value{}, err
	}
	p, err := pset.Define(name, decoded.fields...)
	if err != nil {
		return pset.Value{}, rangeErr(body.SrcRange, err)
	}
	return pset.Nested(p), nil
}

// decodeVPSet decodes a body holding only unlabeled pset blocks.
func decodeVPSet(body *hclsyntax.Body) (pset.Value, error) {
	for _, a := range body.Attributes {
		return pset.Value{}, syntaxErr(a.SrcRange, "vpset bodies may only contain pset blocks")
	}
	elems := make([]*pset.PSet, 0, len(body.Blocks))
	for _, b := range body.Blocks {
		if b.Type != blockPSet || len(b.Labels) != 0 {
			return pset.Value{}, syntaxErr(b.TypeRange, "vpset elements are unlabeled pset blocks")
		}
		v, err := decodeNested("", b.Body)
		if err != nil {
			return pset.Value{}, err
		}
		p, _ := v.AsPSet()
		elems = append(elems, p)
	}
	return pset.VPSet(elems...), nil
}
