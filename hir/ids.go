// Package hir provides a minimal high-level intermediate representation
// lowered from go.starlark.net's concrete syntax tree.
//
// spec.md §1 treats the lexer/parser/CST and its lowering to HIR as
// external collaborators ("Assumed to exist and be re-run on edits"). This
// package is the concrete stand-in for that boundary: it is deliberately
// thin — just enough structure (expressions, statements, function
// definitions, call sites, load bindings) for the scope resolver and
// argument binder to operate on. It performs no evaluation.
package hir

// ExprId stably identifies an expression node within one file's HIR. It is
// stable only within one HIR version (spec.md §3); a new version assigns
// fresh ids even for textually-identical expressions.
type ExprId int

// StmtId stably identifies a statement node within one file's HIR, with
// the same stability caveat as ExprId.
type StmtId int

// ScopeHirKind discriminates the three syntactic anchors a scope can have.
type ScopeHirKind int

const (
	ScopeHirModule ScopeHirKind = iota
	ScopeHirExpr
	ScopeHirStmt
)

// ScopeHirId is the syntactic anchor of a scope: the whole module, a
// specific expression (a lambda or comprehension), or a specific statement
// (a def).
type ScopeHirId struct {
	Kind ScopeHirKind
	Expr ExprId
	Stmt StmtId
}

// ModuleScopeHirId returns the anchor for the single, root module scope.
func ModuleScopeHirId() ScopeHirId {
	return ScopeHirId{Kind: ScopeHirModule}
}

// ExprScopeHirId returns the anchor for a scope introduced by expression id
// (a lambda or a comprehension).
func ExprScopeHirId(id ExprId) ScopeHirId {
	return ScopeHirId{Kind: ScopeHirExpr, Expr: id}
}

// StmtScopeHirId returns the anchor for a scope introduced by statement id
// (a def statement).
func StmtScopeHirId(id StmtId) ScopeHirId {
	return ScopeHirId{Kind: ScopeHirStmt, Stmt: id}
}
