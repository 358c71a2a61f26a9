package binder

import (
	"fmt"

	"github.com/starlark-ls/core/hir"
	"github.com/starlark-ls/core/name"
)

// Diagnostic is one semantic problem found while binding a call's
// arguments to its callee's slots.
type Diagnostic struct {
	Expr    hir.ExprId
	Message string
}

// TypeOf resolves an argument expression's type. The binder calls it at
// most once per argument; a nil TypeOf leaves every Provider's Ty as
// Unknown, which is always safe since type-checking is a downstream
// concern (spec.md §4.4).
type TypeOf func(hir.ExprId) Ty

// AssignArgs binds args against slots in two linear passes — positional
// and list-unpacked first, then keyword and dict-unpacked — mutating
// slots in place and returning any diagnostics. No recursion, no
// backtracking (spec.md §9: "Binder state machine").
func AssignArgs(slots *Slots, args []hir.Argument, typeOf TypeOf) []Diagnostic {
	if typeOf == nil {
		typeOf = func(hir.ExprId) Ty { return Unknown }
	}
	var diags []Diagnostic

	// Pass 1: positional arguments and list-unpacked (*xs) arguments.
	for _, arg := range args {
		switch arg.Kind {
		case hir.ArgSimple:
			if !assignPositional(slots, arg.Expr, typeOf(arg.Expr)) {
				diags = append(diags, Diagnostic{Expr: arg.Expr, Message: "Unexpected positional argument"})
			}
		case hir.ArgUnpackedList:
			ty := typeOf(arg.Expr)
			absorbUnpackedList(slots, arg.Expr, ty)
		}
	}

	// Pass 2: keyword arguments and dict-unpacked (**kw) arguments.
	for _, arg := range args {
		switch arg.Kind {
		case hir.ArgKeyword:
			ty := typeOf(arg.Expr)
			if !assignKeyword(slots, arg.Name, arg.Expr, ty) {
				diags = append(diags, Diagnostic{
					Expr:    arg.Expr,
					Message: fmt.Sprintf("Unexpected keyword argument %q", arg.Name.String()),
				})
			}
		case hir.ArgUnpackedDict:
			ty := typeOf(arg.Expr)
			absorbUnpackedDict(slots, arg.Expr, ty)
		}
	}

	return diags
}

// assignPositional consumes one Simple{expr} argument: it binds to the
// first slot, in slot order, that is a Positional{Missing}, a
// Keyword{Missing, positional:true}, or a non-bare ArgsList slot.
func assignPositional(slots *Slots, expr hir.ExprId, ty Ty) bool {
	for i := range slots.slots {
		s := &slots.slots[i]
		switch s.Kind {
		case SlotPositional:
			if s.Provider.Kind == Missing {
				s.Provider = Provider{Kind: Single, Expr: expr, Ty: ty}
				return true
			}
		case SlotKeyword:
			if s.Positional && s.Provider.Kind == Missing {
				s.Provider = Provider{Kind: Single, Expr: expr, Ty: ty}
				return true
			}
		case SlotArgsList:
			if !s.Bare {
				s.Providers = append(s.Providers, Provider{Kind: Single, Expr: expr, Ty: ty})
				return true
			}
		}
	}
	return false
}

// absorbUnpackedList marks every still-Missing positional/keyword-
// positional slot as ArgsList(expr, ty), and additionally pushes itself
// into the ArgsList slot's own providers (if present and not bare). It is
// never an error, even if no slot accepts it.
func absorbUnpackedList(slots *Slots, expr hir.ExprId, ty Ty) {
	for i := range slots.slots {
		s := &slots.slots[i]
		switch s.Kind {
		case SlotPositional:
			if s.Provider.Kind == Missing {
				s.Provider = Provider{Kind: ArgsList, Expr: expr, Ty: ty}
			}
		case SlotKeyword:
			if s.Positional && s.Provider.Kind == Missing {
				s.Provider = Provider{Kind: ArgsList, Expr: expr, Ty: ty}
			}
		case SlotArgsList:
			if !s.Bare {
				s.Providers = append(s.Providers, Provider{Kind: ArgsList, Expr: expr, Ty: ty})
			}
		}
	}
}

// assignKeyword consumes one Keyword{name, expr} argument: it first
// looks for a Keyword slot with a matching name whose current provider is
// Missing or already KwargsDict (a prior **kw unpack over-approximation,
// which a named keyword argument should take precedence over); failing
// that, it appends to the KwargsDict slot's providers if one exists.
func assignKeyword(slots *Slots, argName name.Name, expr hir.ExprId, ty Ty) bool {
	for i := range slots.slots {
		s := &slots.slots[i]
		if s.Kind == SlotKeyword && s.Name == argName &&
			(s.Provider.Kind == Missing || s.Provider.Kind == KwargsDict) {
			s.Provider = Provider{Kind: Single, Expr: expr, Ty: ty}
			return true
		}
	}
	for i := range slots.slots {
		s := &slots.slots[i]
		if s.Kind == SlotKwargsDict {
			s.Providers = append(s.Providers, Provider{Kind: Single, Expr: expr, Ty: ty})
			return true
		}
	}
	return false
}

// MissingRequired reports every Positional or Keyword slot left Missing
// that has no default of its own — a downstream pass layered on top of
// AssignArgs, since spec.md's binder purposely never emits this
// diagnostic itself. *args/**kwargs absorption counts as satisfying: a
// slot fed by ArgsList or KwargsDict is never reported, since the binder
// cannot tell whether the unpacked value actually supplied it.
func MissingRequired(slots *Slots, call hir.ExprId) []Diagnostic {
	var out []Diagnostic
	for _, s := range slots.All() {
		if s.Kind != SlotPositional && s.Kind != SlotKeyword {
			continue
		}
		if s.HasDefault || s.Provider.Kind != Missing {
			continue
		}
		if s.Kind == SlotKeyword {
			out = append(out, Diagnostic{Expr: call, Message: fmt.Sprintf("missing required argument: %s", s.Name.String())})
		} else {
			out = append(out, Diagnostic{Expr: call, Message: "missing required argument"})
		}
	}
	return out
}

// absorbUnpackedDict marks every Keyword slot's provider as
// KwargsDict(expr, ty) — replacing any previous provider unconditionally,
// reflecting the conservative over-approximation that the dict may carry
// any known keyword — and appends to the KwargsDict slot's own providers.
func absorbUnpackedDict(slots *Slots, expr hir.ExprId, ty Ty) {
	for i := range slots.slots {
		s := &slots.slots[i]
		switch s.Kind {
		case SlotKeyword:
			s.Provider = Provider{Kind: KwargsDict, Expr: expr, Ty: ty}
		case SlotKwargsDict:
			s.Providers = append(s.Providers, Provider{Kind: KwargsDict, Expr: expr, Ty: ty})
		}
	}
}
