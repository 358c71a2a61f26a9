package hir

import "github.com/starlark-ls/core/name"

// TextRange is a half-open byte range into a file's contents.
type TextRange struct {
	Start int
	End   int
}

// Contains reports whether offset falls within [r.Start, r.End].
func (r TextRange) Contains(offset int) bool {
	return r.Start <= offset && offset <= r.End
}

// ContainsRange reports whether r fully contains o.
func (r TextRange) ContainsRange(o TextRange) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// Len returns the range's length in bytes, used to break ties between
// overlapping candidate scopes (spec.md §4.3: "tie-break: smallest
// length").
func (r TextRange) Len() int {
	return r.End - r.Start
}

// ParamKind discriminates the three formal-parameter shapes a user
// function definition can declare.
type ParamKind int

const (
	ParamSimple ParamKind = iota
	ParamArgsList
	ParamKwargsDict
)

// Param is one formal parameter of a user-defined function or lambda, as
// written in a def/lambda parameter list.
type Param struct {
	Kind       ParamKind
	Name       name.Name // Missing for a bare "*" marker in ArgsList
	HasDefault bool       // meaningful only for ParamSimple
}

// FuncDef describes one user-defined function (a def statement or a
// lambda expression).
type FuncDef struct {
	Name      name.Name // empty for lambdas
	Params    []Param
	BodyStmts []StmtId // empty for lambdas, whose body is a single expr
	BodyExpr  ExprId   // meaningful only for lambdas
	IsLambda  bool
}

// ArgumentKind discriminates the four call-site argument shapes.
type ArgumentKind int

const (
	ArgSimple ArgumentKind = iota
	ArgKeyword
	ArgUnpackedList
	ArgUnpackedDict
)

// Argument is one argument at a call site.
type Argument struct {
	Kind ArgumentKind
	Name name.Name // meaningful only for ArgKeyword
	Expr ExprId
}

// CallData describes a call expression: its callee and its arguments.
type CallData struct {
	Callee ExprId
	Args   []Argument
}

// LambdaData describes a lambda expression's own scope contribution.
type LambdaData struct {
	Func *FuncDef
}

// ComprData describes a comprehension's own scope contribution: the
// variables bound by its (possibly chained) for-clauses, plus the
// sub-expressions (iterables, if-conditions, body) that must still be
// walked to discover further nested scopes.
type ComprData struct {
	Vars    []name.Name
	Clauses []ExprId // iterable/condition expressions, in source order
	Body    ExprId
}

// ExprKind discriminates the expression shapes the HIR distinguishes.
// Shapes the resolver/binder never need to tell apart (literals,
// arithmetic, indexing, attribute access, collection literals, ...) are
// folded into ExprOther and kept only as a list of children to recurse
// into, matching spec.md's framing of HIR as a thin, need-driven layer.
type ExprKind int

const (
	ExprIdent ExprKind = iota
	ExprCall
	ExprLambda
	ExprComprehension
	ExprOther
)

// ExprData is one node in a file's expression arena.
type ExprData struct {
	Kind     ExprKind
	Range    TextRange
	Children []ExprId // sub-expressions to recurse into for nested scopes/calls

	Ident  name.Name   // meaningful only for ExprIdent
	Call   *CallData   // meaningful only for ExprCall
	Lambda *LambdaData // meaningful only for ExprLambda
	Compr  *ComprData  // meaningful only for ExprComprehension
}

// StmtKind discriminates the statement shapes the HIR distinguishes.
type StmtKind int

const (
	StmtAssign StmtKind = iota
	StmtDef
	StmtLoad
	StmtOther
)

// AssignData describes a (possibly tuple-unpacking) assignment.
type AssignData struct {
	Targets []name.Name // flattened simple-name targets; attribute/index
	// targets (e.g. `x.y = 1`, `x[0] = 1`) bind no new name and are omitted.
	RHS ExprId
}

// LoadBinding is one `load(...)` import: a local name bound to an exported
// name from another module.
type LoadBinding struct {
	LocalName    name.Name
	ExportedName string
}

// LoadData describes a load(...) statement.
type LoadData struct {
	ModulePath string
	Bindings   []LoadBinding
}

// StmtData is one node in a file's statement arena.
type StmtData struct {
	Kind     StmtKind
	Range    TextRange
	Children []ExprId // expressions embedded directly in this statement
	// (condition, RHS, iterable, ...), walked for nested scopes/calls.
	SubStmts []StmtId // nested statement bodies (if/for/while arms) that
	// stay in the SAME enclosing scope: Starlark has function-level
	// scoping, not block scoping.

	Assign *AssignData // meaningful only for StmtAssign
	Def    *FuncDef    // meaningful only for StmtDef
	Load   *LoadData   // meaningful only for StmtLoad
}

// Module is one file's lowered HIR: an arena of expressions and
// statements, plus the top-level statement list.
type Module struct {
	Dialect  int // mirrors source.Dialect without importing it (avoids a
	// hir -> source import cycle; Lower takes the Dialect as a plain int).
	exprs    []ExprData
	stmts    []StmtData
	topStmts []StmtId
	fileLen  int
}

// TopStmts returns the module's top-level statement ids, in source order.
func (m *Module) TopStmts() []StmtId { return m.topStmts }

// Expr returns the data for expression id.
func (m *Module) Expr(id ExprId) ExprData { return m.exprs[id] }

// Stmt returns the data for statement id.
func (m *Module) Stmt(id StmtId) StmtData { return m.stmts[id] }

// NumExprs returns the number of expressions in the arena.
func (m *Module) NumExprs() int { return len(m.exprs) }

// NumStmts returns the number of statements in the arena.
func (m *Module) NumStmts() int { return len(m.stmts) }

// ModuleRange returns the text range spanning the whole file.
func (m *Module) ModuleRange() TextRange { return TextRange{Start: 0, End: m.fileLen} }

// RangeOf returns the text range anchored by a ScopeHirId.
func (m *Module) RangeOf(h ScopeHirId) TextRange {
	switch h.Kind {
	case ScopeHirExpr:
		return m.exprs[h.Expr].Range
	case ScopeHirStmt:
		return m.stmts[h.Stmt].Range
	default:
		return m.ModuleRange()
	}
}
