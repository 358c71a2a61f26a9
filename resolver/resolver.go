// Package resolver answers "what does this name refer to" queries against
// a built scope.Scopes tree, falling back to a dialect's builtin tables
// when no user scope binds the name.
package resolver

import (
	"github.com/starlark-ls/core/hir"
	"github.com/starlark-ls/core/name"
	"github.com/starlark-ls/core/scope"
	"github.com/starlark-ls/core/source"
)

// ExportKind discriminates the two declaration shapes resolve_export can
// return: a plain assignment, or a top-level function definition.
type ExportKind int

const (
	ExportVariable ExportKind = iota
	ExportFunction
)

// Export is the result of resolving a name exported from a file via
// load(...): a variable or a top-level function, never a builtin, and
// never privacy-filtered (spec.md §4.3: "privacy is not enforced here").
type Export struct {
	Kind ExportKind
	Def  scope.Def
}

// Resolver materializes a chain of enclosing scopes (leaf-first) and
// answers name queries against it, falling back to builtin tables.
type Resolver struct {
	scopes     *scope.Scopes
	chain      []scope.ScopeId
	intrinsics *source.Builtins
	builtins   *source.Builtins
}

// NewForModule builds a Resolver whose chain is just the module scope.
func NewForModule(scopes *scope.Scopes, intrinsics, builtins *source.Builtins) *Resolver {
	return &Resolver{
		scopes:     scopes,
		chain:      []scope.ScopeId{scopes.ModuleScopeId()},
		intrinsics: intrinsics,
		builtins:   builtins,
	}
}

// NewForExpr builds a Resolver whose chain is the parent chain of the
// scope that lexically encloses expr, leaf-first. If expr is itself a
// lambda or comprehension, its OWN scope (not its enclosing one) is used
// — the natural reading of "resolve names as seen from this expression"
// for a scope-introducing expression.
func NewForExpr(scopes *scope.Scopes, expr hir.ExprId, intrinsics, builtins *source.Builtins) *Resolver {
	id, ok := scopes.ScopeForHirId(hir.ExprScopeHirId(expr))
	if !ok {
		id, ok = scopes.ScopeContainingExpr(expr)
	}
	if !ok {
		id = scopes.ModuleScopeId()
	}
	return &Resolver{
		scopes:     scopes,
		chain:      scopes.Chain(id),
		intrinsics: intrinsics,
		builtins:   builtins,
	}
}

// NewForStmt builds a Resolver whose chain is the parent chain of the
// scope that lexically encloses stmt. If stmt is itself a def, its OWN
// scope (its function body's scope) is used, matching NewForExpr's
// treatment of scope-introducing expressions.
func NewForStmt(scopes *scope.Scopes, stmt hir.StmtId, intrinsics, builtins *source.Builtins) *Resolver {
	id, ok := scopes.ScopeForHirId(hir.StmtScopeHirId(stmt))
	if !ok {
		id, ok = scopes.ScopeContainingStmt(stmt)
	}
	if !ok {
		id = scopes.ModuleScopeId()
	}
	return &Resolver{
		scopes:     scopes,
		chain:      scopes.Chain(id),
		intrinsics: intrinsics,
		builtins:   builtins,
	}
}

// NewForOffset builds a Resolver for a text offset: it finds the
// innermost scope whose anchor range contains offset (tie-break: smallest
// range, then, between equal-length ranges, the later start). Only scopes
// whose range contains offset are considered; a sibling scope that ends
// before offset is never chosen.
func NewForOffset(scopes *scope.Scopes, offset int, intrinsics, builtins *source.Builtins) *Resolver {
	id := findScopeAtOffset(scopes, offset)
	return &Resolver{
		scopes:     scopes,
		chain:      scopes.Chain(id),
		intrinsics: intrinsics,
		builtins:   builtins,
	}
}

// findScopeAtOffset picks the innermost scope whose anchor range contains
// offset: since child scopes are always nested within their parent's
// range by construction, "smallest containing range" is equivalent to
// "most deeply nested containing scope". Ties (containing scopes of equal
// length with different starts, which cannot nest one inside the other)
// are broken by preferring the later start, i.e. the one starting nearest
// before offset; of scopes with identical ranges the first in AllIds order
// is kept.
func findScopeAtOffset(scopes *scope.Scopes, offset int) scope.ScopeId {
	best := scopes.ModuleScopeId()
	bestRange := scopes.AnchorRange(best)

	for _, id := range scopes.AllIds() {
		r := scopes.AnchorRange(id)
		if !r.Contains(offset) {
			continue
		}
		if r.Len() > bestRange.Len() {
			continue
		}
		if r.Len() == bestRange.Len() && r.Start <= bestRange.Start {
			continue
		}
		best = id
		bestRange = r
	}
	return best
}

// ResolveName walks the chain leaf-to-root and returns the first scope's
// full ordered declaration list for n. If no user scope binds n, falls
// back to builtins in priority order: intrinsic functions, dialect global
// functions, dialect global variables.
func (r *Resolver) ResolveName(n name.Name) []scope.Def {
	for _, id := range r.chain {
		if decls := r.scopes.Scope(id).Declarations(n); len(decls) > 0 {
			return decls
		}
	}

	if r.intrinsics != nil {
		if sig, ok := r.intrinsics.Function(n.String()); ok {
			return []scope.Def{{Kind: scope.DefIntrinsicFunction, FunctionSig: &sig}}
		}
	}
	if r.builtins != nil {
		if sig, ok := r.builtins.Function(n.String()); ok {
			return []scope.Def{{Kind: scope.DefBuiltinFunction, FunctionSig: &sig}}
		}
		if ty, ok := r.builtins.Variable(n.String()); ok {
			return []scope.Def{{Kind: scope.DefBuiltinVariable, Type: ty}}
		}
	}
	return nil
}

// ResolveExport is like ResolveName but returns only the last user
// declaration that is a variable or a top-level function, never a
// builtin. Used to satisfy load(":other.bzl", "n").
func (r *Resolver) ResolveExport(n name.Name) (Export, bool) {
	moduleScope := r.scopes.Scope(r.scopes.ModuleScopeId())
	decls := moduleScope.Declarations(n)
	if len(decls) == 0 {
		return Export{}, false
	}
	last := decls[len(decls)-1]
	switch last.Kind {
	case scope.DefVariable:
		return Export{Kind: ExportVariable, Def: last}, true
	case scope.DefFunction:
		return Export{Kind: ExportFunction, Def: last}, true
	default:
		return Export{}, false
	}
}

// Names returns a flat mapping of every name visible from the current
// scope chain. Closer scopes win; within one scope, the first declaration
// in source order wins (spec.md §4.3 — contrast with ResolveName, where
// the last declaration wins). Builtins are layered underneath, visible
// only where the user has not defined the same name.
func (r *Resolver) Names() map[string]scope.Def {
	out := make(map[string]scope.Def)
	for i := len(r.chain) - 1; i >= 0; i-- {
		sc := r.scopes.Scope(r.chain[i])
		for _, n := range sc.OwnNames() {
			decls := sc.Declarations(n)
			out[n.String()] = decls[0]
		}
	}

	if r.intrinsics != nil {
		for fname, sig := range r.intrinsics.Functions() {
			if _, exists := out[fname]; !exists {
				sigCopy := sig
				out[fname] = scope.Def{Kind: scope.DefIntrinsicFunction, FunctionSig: &sigCopy}
			}
		}
	}
	if r.builtins != nil {
		for fname, sig := range r.builtins.Functions() {
			if _, exists := out[fname]; !exists {
				sigCopy := sig
				out[fname] = scope.Def{Kind: scope.DefBuiltinFunction, FunctionSig: &sigCopy}
			}
		}
		for vname, ty := range r.builtins.Variables() {
			if _, exists := out[vname]; !exists {
				out[vname] = scope.Def{Kind: scope.DefBuiltinVariable, Type: ty}
			}
		}
	}
	return out
}

// ModuleNames is a convenience for resolving every export candidate of a
// file: the names declared directly in its module scope.
func ModuleNames(scopes *scope.Scopes) []name.Name {
	return scopes.Scope(scopes.ModuleScopeId()).OwnNames()
}
