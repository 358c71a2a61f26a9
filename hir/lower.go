package hir

import (
	"fmt"

	"github.com/starlark-ls/core/name"
	"go.starlark.net/syntax"
)

// Lower parses contents with go.starlark.net/syntax and lowers the
// resulting concrete syntax tree into a Module. dialect is only recorded
// on the returned Module (Module.Dialect); it does not change lowering.
func Lower(filename, contents string, dialect int) (*Module, error) {
	opts := &syntax.FileOptions{}
	f, err := opts.Parse(filename, contents, 0)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	b := &builder{contents: contents, dialect: dialect, lines: newLineIndex(contents)}
	top := make([]StmtId, 0, len(f.Stmts))
	for _, stmt := range f.Stmts {
		top = append(top, b.lowerStmt(stmt))
	}

	return &Module{
		Dialect:  dialect,
		exprs:    b.exprs,
		stmts:    b.stmts,
		topStmts: top,
		fileLen:  len(contents),
	}, nil
}

type builder struct {
	contents string
	dialect  int
	lines    lineIndex
	exprs    []ExprData
	stmts    []StmtData
}

func (b *builder) span(n syntax.Node) TextRange {
	start, end := n.Span()
	return TextRange{
		Start: b.lines.offset(start),
		End:   b.lines.offset(end),
	}
}

func (b *builder) pushExpr(e ExprData) ExprId {
	b.exprs = append(b.exprs, e)
	return ExprId(len(b.exprs) - 1)
}

func (b *builder) pushStmt(s StmtData) StmtId {
	b.stmts = append(b.stmts, s)
	return StmtId(len(b.stmts) - 1)
}

// lowerStmt lowers one statement, recursively lowering any nested block
// (if/for/while) into SubStmts that share the current scope, and any
// nested def into a StmtDef whose body is lowered independently (the
// scope builder, not this pass, decides that a def's body gets a new
// scope).
func (b *builder) lowerStmt(s syntax.Stmt) StmtId {
	switch s := s.(type) {
	case *syntax.AssignStmt:
		targets := b.flattenAssignTargets(s.LHS)
		rhs := b.lowerExpr(s.RHS)
		children := []ExprId{rhs}
		if s.Op != syntax.EQ {
			// Augmented assignment (x += y) also reads the LHS; lower it
			// too so nested scopes inside a subscript/attribute LHS (rare
			// but legal, e.g. `d[f()] += 1`) are still discovered.
			children = append(children, b.lowerExpr(s.LHS))
		} else if !isSimpleAssignTarget(s.LHS) {
			children = append(children, b.lowerExpr(s.LHS))
		}
		return b.pushStmt(StmtData{
			Kind:     StmtAssign,
			Range:    b.span(s),
			Children: children,
			Assign:   &AssignData{Targets: targets, RHS: rhs},
		})

	case *syntax.DefStmt:
		params := b.lowerParams(s.Params)
		bodyStmts := make([]StmtId, 0, len(s.Body))
		fn := &FuncDef{Name: name.New(s.Name.Name), Params: params}
		id := b.pushStmt(StmtData{Kind: StmtDef, Range: b.span(s), Def: fn})
		for _, inner := range s.Body {
			bodyStmts = append(bodyStmts, b.lowerStmt(inner))
		}
		fn.BodyStmts = bodyStmts
		// Default-value expressions live in the ENCLOSING scope, not the
		// function's own scope; record them as Children of the def stmt.
		var defaults []ExprId
		for _, p := range s.Params {
			if bin, ok := p.(*syntax.BinaryExpr); ok && bin.Op == syntax.EQ {
				defaults = append(defaults, b.lowerExpr(bin.Y))
			}
		}
		b.stmts[id].Children = defaults
		return id

	case *syntax.LoadStmt:
		var bindings []LoadBinding
		for i, to := range s.To {
			from := s.From[i]
			bindings = append(bindings, LoadBinding{
				LocalName:    name.New(to.Name),
				ExportedName: from.Name,
			})
		}
		modulePath := ""
		if s.Module != nil {
			if str, ok := s.Module.Value.(string); ok {
				modulePath = str
			}
		}
		return b.pushStmt(StmtData{
			Kind:  StmtLoad,
			Range: b.span(s),
			Load:  &LoadData{ModulePath: modulePath, Bindings: bindings},
		})

	case *syntax.IfStmt:
		cond := b.lowerExpr(s.Cond)
		var sub []StmtId
		for _, inner := range s.True {
			sub = append(sub, b.lowerStmt(inner))
		}
		for _, inner := range s.False {
			sub = append(sub, b.lowerStmt(inner))
		}
		return b.pushStmt(StmtData{
			Kind:     StmtOther,
			Range:    b.span(s),
			Children: []ExprId{cond},
			SubStmts: sub,
		})

	case *syntax.ForStmt:
		// The loop variable(s) bind in the ENCLOSING scope: Starlark (like
		// Python 2) has function-level scoping, not block scoping.
		targets := b.flattenAssignTargets(s.Vars)
		x := b.lowerExpr(s.X)
		var sub []StmtId
		for _, inner := range s.Body {
			sub = append(sub, b.lowerStmt(inner))
		}
		return b.pushStmt(StmtData{
			Kind:     StmtAssign,
			Range:    b.span(s),
			Children: []ExprId{x},
			SubStmts: sub,
			Assign:   &AssignData{Targets: targets, RHS: x},
		})

	case *syntax.WhileStmt:
		cond := b.lowerExpr(s.Cond)
		var sub []StmtId
		for _, inner := range s.Body {
			sub = append(sub, b.lowerStmt(inner))
		}
		return b.pushStmt(StmtData{
			Kind:     StmtOther,
			Range:    b.span(s),
			Children: []ExprId{cond},
			SubStmts: sub,
		})

	case *syntax.ReturnStmt:
		var children []ExprId
		if s.Result != nil {
			children = append(children, b.lowerExpr(s.Result))
		}
		return b.pushStmt(StmtData{Kind: StmtOther, Range: b.span(s), Children: children})

	case *syntax.ExprStmt:
		return b.pushStmt(StmtData{
			Kind:     StmtOther,
			Range:    b.span(s),
			Children: []ExprId{b.lowerExpr(s.X)},
		})

	default:
		return b.pushStmt(StmtData{Kind: StmtOther, Range: b.span(s)})
	}
}

// lowerExpr lowers one expression, recursing into its sub-expressions.
// Only idents, calls, lambdas and comprehensions get a dedicated Kind; any
// other shape is folded into ExprOther with its children recorded so the
// scope builder still finds nested lambdas/comprehensions/calls inside it.
func (b *builder) lowerExpr(e syntax.Expr) ExprId {
	switch e := e.(type) {
	case *syntax.Ident:
		return b.pushExpr(ExprData{Kind: ExprIdent, Range: b.span(e), Ident: name.New(e.Name)})

	case *syntax.CallExpr:
		callee := b.lowerExpr(e.Fn)
		args := make([]Argument, 0, len(e.Args))
		var children []ExprId
		children = append(children, callee)
		for _, a := range e.Args {
			switch a := a.(type) {
			case *syntax.BinaryExpr:
				if a.Op == syntax.EQ {
					if id, ok := a.X.(*syntax.Ident); ok {
						valExpr := b.lowerExpr(a.Y)
						children = append(children, valExpr)
						args = append(args, Argument{Kind: ArgKeyword, Name: name.New(id.Name), Expr: valExpr})
						continue
					}
				}
				id := b.lowerExpr(a)
				children = append(children, id)
				args = append(args, Argument{Kind: ArgSimple, Expr: id})
			case *syntax.UnaryExpr:
				switch a.Op {
				case syntax.STAR:
					inner := b.lowerExpr(a.X)
					children = append(children, inner)
					args = append(args, Argument{Kind: ArgUnpackedList, Expr: inner})
				case syntax.STARSTAR:
					inner := b.lowerExpr(a.X)
					children = append(children, inner)
					args = append(args, Argument{Kind: ArgUnpackedDict, Expr: inner})
				default:
					id := b.lowerExpr(a)
					children = append(children, id)
					args = append(args, Argument{Kind: ArgSimple, Expr: id})
				}
			default:
				id := b.lowerExpr(a)
				children = append(children, id)
				args = append(args, Argument{Kind: ArgSimple, Expr: id})
			}
		}
		return b.pushExpr(ExprData{
			Kind:     ExprCall,
			Range:    b.span(e),
			Children: children,
			Call:     &CallData{Callee: callee, Args: args},
		})

	case *syntax.LambdaExpr:
		params := b.lowerParams(e.Params)
		fn := &FuncDef{Params: params, IsLambda: true}
		id := b.pushExpr(ExprData{Kind: ExprLambda, Range: b.span(e), Lambda: &LambdaData{Func: fn}})
		fn.BodyExpr = b.lowerExpr(e.Body)
		var defaults []ExprId
		for _, p := range e.Params {
			if bin, ok := p.(*syntax.BinaryExpr); ok && bin.Op == syntax.EQ {
				defaults = append(defaults, b.lowerExpr(bin.Y))
			}
		}
		b.exprs[id].Children = defaults
		return id

	case *syntax.Comprehension:
		var vars []name.Name
		var clauseExprs []ExprId
		for _, clause := range e.Clauses {
			switch c := clause.(type) {
			case *syntax.ForClause:
				for _, n := range b.flattenAssignTargets(c.Vars) {
					vars = append(vars, n)
				}
				clauseExprs = append(clauseExprs, b.lowerExpr(c.X))
			case *syntax.IfClause:
				clauseExprs = append(clauseExprs, b.lowerExpr(c.Cond))
			}
		}
		id := b.pushExpr(ExprData{Kind: ExprComprehension, Range: b.span(e)})
		body := b.lowerExpr(e.Body)
		b.exprs[id].Compr = &ComprData{Vars: vars, Clauses: clauseExprs, Body: body}
		return id

	case *syntax.BinaryExpr:
		x := b.lowerExpr(e.X)
		y := b.lowerExpr(e.Y)
		return b.pushExpr(ExprData{Kind: ExprOther, Range: b.span(e), Children: []ExprId{x, y}})

	case *syntax.UnaryExpr:
		var children []ExprId
		if e.X != nil {
			children = []ExprId{b.lowerExpr(e.X)}
		}
		return b.pushExpr(ExprData{Kind: ExprOther, Range: b.span(e), Children: children})

	case *syntax.ParenExpr:
		return b.pushExpr(ExprData{Kind: ExprOther, Range: b.span(e), Children: []ExprId{b.lowerExpr(e.X)}})

	case *syntax.DotExpr:
		return b.pushExpr(ExprData{Kind: ExprOther, Range: b.span(e), Children: []ExprId{b.lowerExpr(e.X)}})

	case *syntax.IndexExpr:
		return b.pushExpr(ExprData{
			Kind:     ExprOther,
			Range:    b.span(e),
			Children: []ExprId{b.lowerExpr(e.X), b.lowerExpr(e.Y)},
		})

	case *syntax.SliceExpr:
		children := []ExprId{b.lowerExpr(e.X)}
		for _, sub := range []syntax.Expr{e.Lo, e.Hi, e.Step} {
			if sub != nil {
				children = append(children, b.lowerExpr(sub))
			}
		}
		return b.pushExpr(ExprData{Kind: ExprOther, Range: b.span(e), Children: children})

	case *syntax.ListExpr:
		var children []ExprId
		for _, el := range e.List {
			children = append(children, b.lowerExpr(el))
		}
		return b.pushExpr(ExprData{Kind: ExprOther, Range: b.span(e), Children: children})

	case *syntax.TupleExpr:
		var children []ExprId
		for _, el := range e.List {
			children = append(children, b.lowerExpr(el))
		}
		return b.pushExpr(ExprData{Kind: ExprOther, Range: b.span(e), Children: children})

	case *syntax.DictExpr:
		var children []ExprId
		for _, entry := range e.List {
			if de, ok := entry.(*syntax.DictEntry); ok {
				children = append(children, b.lowerExpr(de.Key), b.lowerExpr(de.Value))
			}
		}
		return b.pushExpr(ExprData{Kind: ExprOther, Range: b.span(e), Children: children})

	case *syntax.CondExpr:
		return b.pushExpr(ExprData{
			Kind:     ExprOther,
			Range:    b.span(e),
			Children: []ExprId{b.lowerExpr(e.Cond), b.lowerExpr(e.True), b.lowerExpr(e.False)},
		})

	default:
		return b.pushExpr(ExprData{Kind: ExprOther, Range: b.span(e)})
	}
}

func (b *builder) lowerParams(params []syntax.Expr) []Param {
	out := make([]Param, 0, len(params))
	for _, p := range params {
		switch p := p.(type) {
		case *syntax.Ident:
			out = append(out, Param{Kind: ParamSimple, Name: name.New(p.Name)})
		case *syntax.BinaryExpr:
			if p.Op == syntax.EQ {
				if id, ok := p.X.(*syntax.Ident); ok {
					out = append(out, Param{Kind: ParamSimple, Name: name.New(id.Name), HasDefault: true})
					continue
				}
			}
		case *syntax.UnaryExpr:
			switch p.Op {
			case syntax.STAR:
				if id, ok := p.X.(*syntax.Ident); ok {
					out = append(out, Param{Kind: ParamArgsList, Name: name.New(id.Name)})
				} else {
					out = append(out, Param{Kind: ParamArgsList, Name: name.Missing})
				}
			case syntax.STARSTAR:
				if id, ok := p.X.(*syntax.Ident); ok {
					out = append(out, Param{Kind: ParamKwargsDict, Name: name.New(id.Name)})
				}
			}
		}
	}
	return out
}

// flattenAssignTargets returns the simple names bound by an assignment
// target, recursing through tuple/list targets (`a, (b, c) = ...`).
// Attribute and index targets (`x.y = 1`, `x[0] = 1`) bind no new name and
// are skipped.
func (b *builder) flattenAssignTargets(lhs syntax.Expr) []name.Name {
	switch t := lhs.(type) {
	case *syntax.Ident:
		return []name.Name{name.New(t.Name)}
	case *syntax.TupleExpr:
		var out []name.Name
		for _, el := range t.List {
			out = append(out, b.flattenAssignTargets(el)...)
		}
		return out
	case *syntax.ListExpr:
		var out []name.Name
		for _, el := range t.List {
			out = append(out, b.flattenAssignTargets(el)...)
		}
		return out
	case *syntax.ParenExpr:
		return b.flattenAssignTargets(t.X)
	default:
		return nil
	}
}

func isSimpleAssignTarget(lhs syntax.Expr) bool {
	switch lhs.(type) {
	case *syntax.Ident, *syntax.TupleExpr, *syntax.ListExpr, *syntax.ParenExpr:
		return true
	default:
		return false
	}
}
