// Package scope builds the lexical scope tree for a lowered hir.Module:
// the module scope plus one child scope per def/lambda/comprehension,
// each holding an ordered table of the names it declares.
package scope

import (
	"github.com/starlark-ls/core/hir"
	"github.com/starlark-ls/core/name"
	"github.com/starlark-ls/core/source"
)

// ScopeId stably identifies one Scope within a Scopes arena.
type ScopeId int

const noParent ScopeId = -1

// DefKind discriminates the shapes a single declaration can take.
type DefKind int

const (
	DefVariable DefKind = iota
	DefFunction
	DefParameter
	DefLoad
	DefIntrinsicFunction
	DefBuiltinFunction
	DefBuiltinVariable
)

// Def is one declaration of a name within a Scope's declaration table.
type Def struct {
	Kind DefKind

	// DefVariable: the assignment's RHS expression (for a comprehension
	// variable, the comprehension expression itself).
	VariableExpr hir.ExprId

	// DefFunction: the def statement that introduces it.
	FunctionStmt hir.StmtId

	// DefParameter: the owning function/lambda and this parameter's index.
	ParamOwner hir.ScopeHirId
	ParamIndex int

	// DefLoad: the load statement and which binding within it.
	LoadStmt  hir.StmtId
	LoadIndex int

	// DefIntrinsicFunction / DefBuiltinFunction.
	FunctionSig *source.FunctionSig

	// DefBuiltinVariable.
	Type source.TypeRef
}

// Scope is one node of the scope tree: a syntactic anchor, a link to its
// parent (noParent at the module root), and its own declarations in
// source order.
type Scope struct {
	anchor       hir.ScopeHirId
	parent       ScopeId
	declarations map[name.Name][]Def
	// order preserves first-declared-name order, needed by Names()'s
	// "first declaration in source order wins" shadowing rule within one
	// scope (spec.md §4.3).
	order []name.Name
}

func newScope(anchor hir.ScopeHirId, parent ScopeId) *Scope {
	return &Scope{anchor: anchor, parent: parent, declarations: make(map[name.Name][]Def)}
}

func (s *Scope) declare(n name.Name, d Def) {
	if _, ok := s.declarations[n]; !ok {
		s.order = append(s.order, n)
	}
	s.declarations[n] = append(s.declarations[n], d)
}

// Declarations returns the ordered list of declarations of n in this scope
// alone (no parent lookup), or nil if n is not declared here.
func (s *Scope) Declarations(n name.Name) []Def {
	return s.declarations[n]
}

// OwnNames returns the names declared directly in this scope, in
// first-declaration source order.
func (s *Scope) OwnNames() []name.Name {
	return s.order
}

// Scopes is the full scope tree for one file's HIR, plus the indexes the
// Resolver needs: a lookup from syntactic anchor to ScopeId, and each
// scope's parent chain.
type Scopes struct {
	module  *hir.Module
	scopes  []*Scope
	byHirId map[hir.ScopeHirId]ScopeId

	// exprScope/stmtScope record which scope each expression/statement
	// was walked in — NOT just the scopes anchored by a def/lambda/
	// comprehension, but every node in the module. This is what lets a
	// resolver be built for an arbitrary expression deep inside a
	// function body, not only for the function's own anchor.
	exprScope map[hir.ExprId]ScopeId
	stmtScope map[hir.StmtId]ScopeId
}

// Module returns the hir.Module this tree was built from.
func (s *Scopes) Module() *hir.Module { return s.module }

// ModuleScopeId returns the id of the root module scope.
func (s *Scopes) ModuleScopeId() ScopeId { return 0 }

// Scope returns the scope data for id.
func (s *Scopes) Scope(id ScopeId) *Scope { return s.scopes[id] }

// Parent returns id's parent and whether it has one (the module scope
// does not).
func (s *Scopes) Parent(id ScopeId) (ScopeId, bool) {
	p := s.scopes[id].parent
	if p == noParent {
		return 0, false
	}
	return p, true
}

// ScopeForHirId returns the ScopeId anchored at h, if one was built for it
// (only def/lambda/comprehension/module anchors have scopes of their own).
func (s *Scopes) ScopeForHirId(h hir.ScopeHirId) (ScopeId, bool) {
	id, ok := s.byHirId[h]
	return id, ok
}

// ScopeContainingExpr returns the scope that lexically encloses expr —
// the scope Build was walking when it visited expr — regardless of
// whether expr is itself a scope anchor.
func (s *Scopes) ScopeContainingExpr(id hir.ExprId) (ScopeId, bool) {
	sid, ok := s.exprScope[id]
	return sid, ok
}

// ScopeContainingStmt returns the scope that lexically encloses stmt.
func (s *Scopes) ScopeContainingStmt(id hir.StmtId) (ScopeId, bool) {
	sid, ok := s.stmtScope[id]
	return sid, ok
}

// Chain returns the parent chain starting at id and walking up to (and
// including) the module scope, leaf-first. It is guaranteed to terminate
// (spec.md §8's "scope chain acyclicity" property) because Build only ever
// links a child to the scope lexically enclosing it.
func (s *Scopes) Chain(id ScopeId) []ScopeId {
	chain := make([]ScopeId, 0, len(s.scopes))
	cur := id
	for {
		chain = append(chain, cur)
		p, ok := s.Parent(cur)
		if !ok {
			return chain
		}
		cur = p
	}
}

// AllIds returns every ScopeId in the tree, in build order (module scope
// first).
func (s *Scopes) AllIds() []ScopeId {
	ids := make([]ScopeId, len(s.scopes))
	for i := range s.scopes {
		ids[i] = ScopeId(i)
	}
	return ids
}

// AnchorRange returns the text range of id's syntactic anchor.
func (s *Scopes) AnchorRange(id ScopeId) hir.TextRange {
	return s.module.RangeOf(s.scopes[id].anchor)
}
