// This file contains the logic for turning HCL value expressions such as
// `int32(4)` or `untracked(vstring(["a"]))` into typed parameter values.

package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/psetgrid/internal/pset"
)

// literal evaluates expr without any variables or functions in scope.
func literal(expr hclsyntax.Expression) (cty.Value, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if v.IsNull() || !v.IsWhollyKnown() {
		return cty.NilVal, syntaxErr(expr.Range(), "value must be a literal")
	}
	return v, nil
}

// decodeValue converts a value expression into a parameter value.
func decodeValue(expr hclsyntax.Expression) (pset.Value, error) {
	call, ok := expr.(*hclsyntax.FunctionCallExpr)
	if !ok {
		return decodeShorthand(expr)
	}
	if call.ExpandFinal {
		return pset.Value{}, syntaxErr(call.Range(), "argument expansion is not supported in %s()", call.Name)
	}

	if call.Name == "untracked" {
		if len(call.Args) != 1 {
			return pset.Value{}, syntaxErr(call.Range(), "untracked() takes exactly one argument, got %d", len(call.Args))
		}
		if inner, ok := call.Args[0].(*hclsyntax.FunctionCallExpr); ok && inner.Name == "untracked" {
			return pset.Value{}, syntaxErr(call.Range(), "untracked() cannot be nested")
		}
		v, err := decodeValue(call.Args[0])
		if err != nil {
			return pset.Value{}, err
		}
		return v.Untracked(), nil
	}

	kind, err := pset.ParseKind(call.Name)
	if err != nil {
		return pset.Value{}, syntaxErr(call.NameRange, "unknown value type %q", call.Name)
	}
	return decodeTyped(kind, call)
}

// decodeShorthand handles untyped literals: strings, booleans and lists of
// strings.
func decodeShorthand(expr hclsyntax.Expression) (pset.Value, error) {
	v, err := literal(expr)
	if err != nil {
		return pset.Value{}, err
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return pset.String(v.AsString()), nil
	case ty == cty.Bool:
		return pset.Bool(v.True()), nil
	case ty == cty.Number:
		return pset.Value{}, syntaxErr(expr.Range(), "numbers must be typed: use int32(), uint32() or double()")
	case ty.IsTupleType() || ty.IsListType():
		ss, err := stringList(expr.Range(), v)
		if err != nil {
			return pset.Value{}, err
		}
		return pset.Strings(ss...), nil
	default:
		return pset.Value{}, syntaxErr(expr.Range(), "unsupported literal of type %s", ty.FriendlyName())
	}
}

func decodeTyped(kind pset.Kind, call *hclsyntax.FunctionCallExpr) (pset.Value, error) {
	rng := call.Range()
	wantArgs := func(min, max int) error {
		if n := len(call.Args); n < min || n > max {
			if min == max {
				return syntaxErr(rng, "%s() takes %d argument(s), got %d", call.Name, min, n)
			}
			return syntaxErr(rng, "%s() takes %d to %d arguments, got %d", call.Name, min, max, n)
		}
		return nil
	}

	switch kind {
	case pset.KindInt32:
		var n int32
		if err := numberArg(call, &n); err != nil {
			return pset.Value{}, err
		}
		return pset.Int32(n), nil
	case pset.KindUint32:
		var n uint32
		if err := numberArg(call, &n); err != nil {
			return pset.Value{}, err
		}
		return pset.Uint32(n), nil
	case pset.KindDouble:
		var f float64
		if err := numberArg(call, &f); err != nil {
			return pset.Value{}, err
		}
		return pset.Double(f), nil
	case pset.KindBool:
		if err := wantArgs(1, 1); err != nil {
			return pset.Value{}, err
		}
		v, err := typedArg(call.Args[0], cty.Bool)
		if err != nil {
			return pset.Value{}, err
		}
		return pset.Bool(v.True()), nil
	case pset.KindString:
		if err := wantArgs(1, 1); err != nil {
			return pset.Value{}, err
		}
		v, err := typedArg(call.Args[0], cty.String)
		if err != nil {
			return pset.Value{}, err
		}
		return pset.String(v.AsString()), nil
	case pset.KindStrings:
		if err := wantArgs(0, 1); err != nil {
			return pset.Value{}, err
		}
		if len(call.Args) == 0 {
			return pset.Strings(), nil
		}
		v, err := literal(call.Args[0])
		if err != nil {
			return pset.Value{}, err
		}
		ss, err := stringList(call.Args[0].Range(), v)
		if err != nil {
			return pset.Value{}, err
		}
		return pset.Strings(ss...), nil
	case pset.KindInputTag:
		if err := wantArgs(1, 3); err != nil {
			return pset.Value{}, err
		}
		parts := make([]string, len(call.Args))
		for i, arg := range call.Args {
			v, err := typedArg(arg, cty.String)
			if err != nil {
				return pset.Value{}, err
			}
			parts[i] = v.AsString()
		}
		var (
			tag pset.InputTag
			err error
		)
		switch len(parts) {
		case 1:
			tag, err = pset.ParseInputTag(parts[0])
		case 2:
			tag, err = pset.NewInputTag(parts[0], parts[1])
		default:
			tag, err = pset.NewInputTagWithProcess(parts[0], parts[1], parts[2])
		}
		if err != nil {
			return pset.Value{}, rangeErr(rng, err)
		}
		return pset.Tag(tag), nil
	default:
		return pset.Value{}, syntaxErr(rng, "%s values are written as blocks, not attributes", kind)
	}
}

// numberArg decodes the single numeric argument of call into target, which
// must point to an int32, uint32 or float64.
func numberArg(call *hclsyntax.FunctionCallExpr, target any) error {
	if len(call.Args) != 1 {
		return syntaxErr(call.Range(), "%s() takes 1 argument(s), got %d", call.Name, len(call.Args))
	}
	v, err := typedArg(call.Args[0], cty.Number)
	if err != nil {
		return err
	}
	if err := gocty.FromCtyValue(v, target); err != nil {
		return rangeErr(call.Args[0].Range(), fmt.Errorf("%w: %s(): %v", pset.ErrInvalidValue, call.Name, err))
	}
	return nil
}

// typedArg evaluates arg and requires an exact type. No implicit conversion
// takes place, so string(5) and int32("5") are both rejected.
func typedArg(arg hclsyntax.Expression, want cty.Type) (cty.Value, error) {
	v, err := literal(arg)
	if err != nil {
		return cty.NilVal, err
	}
	if !v.Type().Equals(want) {
		return cty.NilVal, rangeErr(arg.Range(), fmt.Errorf("%w: expected %s, got %s", pset.ErrInvalidValue, want.FriendlyName(), v.Type().FriendlyName()))
	}
	return v, nil
}

// stringList converts a tuple or list whose elements are all strings.
func stringList(rng hcl.Range, v cty.Value) ([]string, error) {
	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, rangeErr(rng, fmt.Errorf("%w: expected a list of strings, got %s", pset.ErrInvalidValue, ty.FriendlyName()))
	}
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if !elem.Type().Equals(cty.String) {
			return nil, rangeErr(rng, fmt.Errorf("%w: list elements must be strings, got %s", pset.ErrInvalidValue, elem.Type().FriendlyName()))
		}
	}
	if v.LengthInt() == 0 {
		return nil, nil
	}
	list, err := convert.Convert(v, cty.List(cty.String))
	if err != nil {
		return nil, rangeErr(rng, err)
	}
	var out []string
	if err := gocty.FromCtyValue(list, &out); err != nil {
		return nil, rangeErr(rng, err)
	}
	return out, nil
}
