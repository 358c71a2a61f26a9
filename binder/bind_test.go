package binder

import (
	"testing"

	"github.com/starlark-ls/core/hir"
	"github.com/starlark-ls/core/name"
)

func userParams(names ...string) []hir.Param {
	var out []hir.Param
	for _, n := range names {
		switch n {
		case "*args":
			out = append(out, hir.Param{Kind: hir.ParamArgsList, Name: name.New("args")})
		case "**kwargs":
			out = append(out, hir.Param{Kind: hir.ParamKwargsDict, Name: name.New("kwargs")})
		default:
			out = append(out, hir.Param{Kind: hir.ParamSimple, Name: name.New(n)})
		}
	}
	return out
}

func simpleArg(expr int) hir.Argument { return hir.Argument{Kind: hir.ArgSimple, Expr: hir.ExprId(expr)} }
func kwArg(n string, expr int) hir.Argument {
	return hir.Argument{Kind: hir.ArgKeyword, Name: name.New(n), Expr: hir.ExprId(expr)}
}
func unpackListArg(expr int) hir.Argument {
	return hir.Argument{Kind: hir.ArgUnpackedList, Expr: hir.ExprId(expr)}
}

// TestPositionalBinding is spec.md §8 scenario 4:
// formals [a, b, *args, c], arguments (1, 2, 3, 4, c=5) bind:
// a<-1, b<-2, *args<-[3,4], c<-5; no diagnostics.
func TestPositionalBinding(t *testing.T) {
	slots := NewSlotsFromUserParams(userParams("a", "b", "*args", "c"))
	args := []hir.Argument{simpleArg(1), simpleArg(2), simpleArg(3), simpleArg(4), kwArg("c", 5)}
	diags := AssignArgs(slots, args, nil)

	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}

	all := slots.All()
	// a
	if all[0].Provider.Kind != Single || all[0].Provider.Expr != 1 {
		t.Fatalf("a: expected Single(1), got %+v", all[0].Provider)
	}
	// b
	if all[1].Provider.Kind != Single || all[1].Provider.Expr != 2 {
		t.Fatalf("b: expected Single(2), got %+v", all[1].Provider)
	}
	// *args
	if all[2].Kind != SlotArgsList || len(all[2].Providers) != 2 {
		t.Fatalf("*args: expected 2 providers (3, 4), got %+v", all[2])
	}
	if all[2].Providers[0].Expr != 3 || all[2].Providers[1].Expr != 4 {
		t.Fatalf("*args: expected providers [3, 4], got %+v", all[2].Providers)
	}
	// c (keyword-only after *args)
	if all[3].Positional {
		t.Fatalf("c: expected keyword-only after *args")
	}
	if all[3].Provider.Kind != Single || all[3].Provider.Expr != 5 {
		t.Fatalf("c: expected Single(5), got %+v", all[3].Provider)
	}
}

// TestUnexpectedKeyword is spec.md §8 scenario 5:
// formals [a], arguments (1, q=2) yield one diagnostic pointing at q's expr.
func TestUnexpectedKeyword(t *testing.T) {
	slots := NewSlotsFromUserParams(userParams("a"))
	args := []hir.Argument{simpleArg(1), kwArg("q", 2)}
	diags := AssignArgs(slots, args, nil)

	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %+v", diags)
	}
	if diags[0].Expr != 2 || diags[0].Message != `Unexpected keyword argument "q"` {
		t.Fatalf("unexpected diagnostic: %+v", diags[0])
	}
}

// TestListUnpackSmearsOverPositionals is spec.md §8 scenario 6:
// formals [a, b, *args], arguments (1, *xs) produce:
// a<-Single(1), b<-ArgsList(xs), *args<-[ArgsList(xs)]; no diagnostics.
func TestListUnpackSmearsOverPositionals(t *testing.T) {
	slots := NewSlotsFromUserParams(userParams("a", "b", "*args"))
	args := []hir.Argument{simpleArg(1), unpackListArg(2)}
	diags := AssignArgs(slots, args, nil)

	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}

	all := slots.All()
	if all[0].Provider.Kind != Single || all[0].Provider.Expr != 1 {
		t.Fatalf("a: expected Single(1), got %+v", all[0].Provider)
	}
	if all[1].Provider.Kind != ArgsList || all[1].Provider.Expr != 2 {
		t.Fatalf("b: expected ArgsList(2), got %+v", all[1].Provider)
	}
	if len(all[2].Providers) != 1 || all[2].Providers[0].Kind != ArgsList || all[2].Providers[0].Expr != 2 {
		t.Fatalf("*args: expected a single ArgsList(2) provider, got %+v", all[2].Providers)
	}
}

func TestUnexpectedPositionalArgument(t *testing.T) {
	slots := NewSlotsFromUserParams(userParams("a"))
	args := []hir.Argument{simpleArg(1), simpleArg(2)}
	diags := AssignArgs(slots, args, nil)

	if len(diags) != 1 || diags[0].Expr != 2 || diags[0].Message != "Unexpected positional argument" {
		t.Fatalf("expected one diagnostic for the second positional argument, got %+v", diags)
	}
}

func TestDictUnpackOverwritesPriorProvider(t *testing.T) {
	slots := NewSlotsFromUserParams(userParams("a", "b"))
	args := []hir.Argument{
		kwArg("a", 1),
		{Kind: hir.ArgUnpackedDict, Expr: hir.ExprId(2)},
	}
	diags := AssignArgs(slots, args, nil)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
	all := slots.All()
	if all[0].Provider.Kind != KwargsDict || all[0].Provider.Expr != 2 {
		t.Fatalf("a: expected the dict-unpack to overwrite the earlier keyword provider, got %+v", all[0].Provider)
	}
}

func TestMissingRequiredReportsUnfilledSlotsOnly(t *testing.T) {
	params := []hir.Param{
		{Kind: hir.ParamSimple, Name: name.New("a")},
		{Kind: hir.ParamSimple, Name: name.New("b"), HasDefault: true},
		{Kind: hir.ParamSimple, Name: name.New("c")},
	}
	slots := NewSlotsFromUserParams(params)
	diags := AssignArgs(slots, []hir.Argument{kwArg("c", 1)}, nil)
	if len(diags) != 0 {
		t.Fatalf("expected no binding diagnostics, got %+v", diags)
	}

	missing := MissingRequired(slots, hir.ExprId(99))
	if len(missing) != 1 {
		t.Fatalf("expected exactly one missing-required diagnostic, got %+v", missing)
	}
	if missing[0].Expr != 99 || missing[0].Message != `missing required argument: a` {
		t.Fatalf("unexpected diagnostic: %+v", missing[0])
	}
}

func TestMissingRequiredSatisfiedByArgsUnpack(t *testing.T) {
	params := []hir.Param{
		{Kind: hir.ParamSimple, Name: name.New("a")},
		{Kind: hir.ParamSimple, Name: name.New("b")},
	}
	slots := NewSlotsFromUserParams(params)
	AssignArgs(slots, []hir.Argument{unpackListArg(1)}, nil)

	if missing := MissingRequired(slots, hir.ExprId(0)); len(missing) != 0 {
		t.Fatalf("expected *args-unpack to satisfy every positional, got %+v", missing)
	}
}

func TestDuplicateArgsListMarkerIgnored(t *testing.T) {
	// *args, **kwargs, then a second *args marker should never appear in a
	// syntactically valid program, but the builder must not panic or
	// duplicate the slot if it does.
	params := append(userParams("a", "*args", "**kwargs"), hir.Param{Kind: hir.ParamArgsList, Name: name.New("more")})
	slots := NewSlotsFromUserParams(params)
	count := 0
	for _, s := range slots.All() {
		if s.Kind == SlotArgsList {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one ArgsList slot, got %d", count)
	}
}
