package scope

import (
	"github.com/starlark-ls/core/hir"
)

// Build walks a lowered hir.Module and constructs its scope tree.
//
// Starlark has function-level scoping, not block-level scoping (like
// Python 2): only `def`, `lambda` and comprehensions introduce a new
// scope. `if`/`for`/`while` bodies bind directly into the scope that
// lexically encloses them — this is why hir.StmtData folds those bodies
// into SubStmts rather than a scope-anchoring construct, and why Build
// simply keeps walking with the same ScopeId for them.
func Build(module *hir.Module) *Scopes {
	s := &Scopes{
		module:    module,
		byHirId:   make(map[hir.ScopeHirId]ScopeId),
		exprScope: make(map[hir.ExprId]ScopeId),
		stmtScope: make(map[hir.StmtId]ScopeId),
	}
	moduleAnchor := hir.ModuleScopeHirId()
	moduleScope := newScope(moduleAnchor, noParent)
	s.scopes = append(s.scopes, moduleScope)
	s.byHirId[moduleAnchor] = 0

	b := &scopeBuilder{s: s}
	b.walkStmts(module.TopStmts(), 0)
	return s
}

type scopeBuilder struct {
	s *Scopes
}

func (b *scopeBuilder) newChildScope(anchor hir.ScopeHirId, parent ScopeId) ScopeId {
	id := ScopeId(len(b.s.scopes))
	b.s.scopes = append(b.s.scopes, newScope(anchor, parent))
	b.s.byHirId[anchor] = id
	return id
}

func (b *scopeBuilder) walkStmts(ids []hir.StmtId, cur ScopeId) {
	for _, id := range ids {
		b.walkStmt(id, cur)
	}
}

func (b *scopeBuilder) walkStmt(id hir.StmtId, cur ScopeId) {
	b.s.stmtScope[id] = cur
	data := b.s.module.Stmt(id)

	switch data.Kind {
	case hir.StmtAssign:
		for _, n := range data.Assign.Targets {
			b.s.scopes[cur].declare(n, Def{Kind: DefVariable, VariableExpr: data.Assign.RHS})
		}

	case hir.StmtDef:
		fn := data.Def
		b.s.scopes[cur].declare(fn.Name, Def{Kind: DefFunction, FunctionStmt: id})

		anchor := hir.StmtScopeHirId(id)
		child := b.newChildScope(anchor, cur)
		for i, p := range fn.Params {
			if p.Name.IsMissing() {
				continue
			}
			b.s.scopes[child].declare(p.Name, Def{Kind: DefParameter, ParamOwner: anchor, ParamIndex: i})
		}
		b.walkStmts(fn.BodyStmts, child)

	case hir.StmtLoad:
		for i, binding := range data.Load.Bindings {
			b.s.scopes[cur].declare(binding.LocalName, Def{Kind: DefLoad, LoadStmt: id, LoadIndex: i})
		}
	}

	for _, e := range data.Children {
		b.walkExpr(e, cur)
	}
	b.walkStmts(data.SubStmts, cur)
}

func (b *scopeBuilder) walkExpr(id hir.ExprId, cur ScopeId) {
	b.s.exprScope[id] = cur
	data := b.s.module.Expr(id)

	switch data.Kind {
	case hir.ExprLambda:
		fn := data.Lambda.Func
		anchor := hir.ExprScopeHirId(id)
		child := b.newChildScope(anchor, cur)
		for i, p := range fn.Params {
			if p.Name.IsMissing() {
				continue
			}
			b.s.scopes[child].declare(p.Name, Def{Kind: DefParameter, ParamOwner: anchor, ParamIndex: i})
		}
		b.walkExpr(fn.BodyExpr, child)
		// Default-value expressions are evaluated in the enclosing scope.
		for _, e := range data.Children {
			b.walkExpr(e, cur)
		}
		return

	case hir.ExprComprehension:
		anchor := hir.ExprScopeHirId(id)
		child := b.newChildScope(anchor, cur)
		for _, n := range data.Compr.Vars {
			b.s.scopes[child].declare(n, Def{Kind: DefVariable, VariableExpr: id})
		}
		for _, e := range data.Compr.Clauses {
			b.walkExpr(e, child)
		}
		b.walkExpr(data.Compr.Body, child)
		return
	}

	for _, e := range data.Children {
		b.walkExpr(e, cur)
	}
}
