package ide

import (
	"fmt"
	"sort"
	"strings"

	"github.com/starlark-ls/core/binder"
	"github.com/starlark-ls/core/hir"
	"github.com/starlark-ls/core/name"
	"github.com/starlark-ls/core/query"
	"github.com/starlark-ls/core/scope"
	"github.com/starlark-ls/core/source"
)

// AnalysisSnapshot is the read-only query surface pinned to one revision
// of the engine's inputs. Every method that can observe a concurrent
// writer returns query.Cancelled rather than silently serving stale or
// torn data (spec.md §5).
type AnalysisSnapshot struct {
	snap *query.Snapshot
}

// Diagnostics runs the call-argument binder over every call expression in
// file id and returns the resulting diagnostics: "unexpected positional/
// keyword argument" from AssignArgs itself, plus "missing required
// argument" from the downstream MissingRequired pass layered on top
// (spec.md §4.4). Argument type-mismatch diagnostics remain out of scope,
// since type inference is a non-goal.
func (s *AnalysisSnapshot) Diagnostics(id source.FileID) ([]Diagnostic, error) {
	module, err := s.snap.Module(id)
	if err != nil || module == nil {
		return nil, err
	}
	scopes, err := s.snap.Scopes(id)
	if err != nil {
		return nil, err
	}
	if err := s.snap.Token().Check(); err != nil {
		return nil, err
	}

	var out []Diagnostic
	for i := 0; i < module.NumExprs(); i++ {
		expr := hir.ExprId(i)
		data := module.Expr(expr)
		if data.Kind != hir.ExprCall {
			continue
		}
		slots, ok := s.slotsForCallee(id, module, scopes, data.Call.Callee)
		if !ok {
			continue
		}
		for _, d := range binder.AssignArgs(slots, data.Call.Args, nil) {
			out = append(out, Diagnostic{FileID: id, Range: module.Expr(d.Expr).Range, Message: d.Message})
		}
		for _, d := range binder.MissingRequired(slots, expr) {
			out = append(out, Diagnostic{FileID: id, Range: module.Expr(d.Expr).Range, Message: d.Message})
		}
	}
	return out, nil
}

// slotsForCallee resolves the callee expression (which must be a plain
// identifier — method-call and computed callees carry no statically
// known formal list here) to its declared formal list and builds Slots
// from the matching formal dialect.
func (s *AnalysisSnapshot) slotsForCallee(id source.FileID, module *hir.Module, scopes *scope.Scopes, callee hir.ExprId) (*binder.Slots, bool) {
	calleeData := module.Expr(callee)
	if calleeData.Kind != hir.ExprIdent {
		return nil, false
	}

	r, err := s.snap.ResolverForExpr(id, callee)
	if err != nil || r == nil {
		return nil, false
	}
	decls := r.ResolveName(calleeData.Ident)
	if len(decls) == 0 {
		return nil, false
	}
	last := decls[len(decls)-1]

	switch last.Kind {
	case scope.DefFunction:
		fn := module.Stmt(last.FunctionStmt).Def
		return binder.NewSlotsFromUserParams(fn.Params), true
	case scope.DefIntrinsicFunction:
		return binder.NewSlotsFromIntrinsicParams(last.FunctionSig.IntrinsicParams), true
	case scope.DefBuiltinFunction:
		return binder.NewSlotsFromBuiltinParams(last.FunctionSig.BuiltinParams), true
	default:
		return nil, false
	}
}

// GotoDefinition resolves the identifier at pos and returns the location
// of its (last, i.e. currently active) declaration when that is a
// variable, a function or a load. It returns nil if the name is
// unresolved, a parameter, or a builtin.
func (s *AnalysisSnapshot) GotoDefinition(pos FilePosition) (*LocationLink, error) {
	module, err := s.snap.Module(pos.FileID)
	if err != nil || module == nil {
		return nil, err
	}
	ident, ok := identAt(module, pos.Offset)
	if !ok {
		return nil, nil
	}

	r, err := s.snap.ResolverForOffset(pos.FileID, pos.Offset)
	if err != nil || r == nil {
		return nil, err
	}
	decls := r.ResolveName(ident)
	if len(decls) == 0 {
		return nil, nil
	}
	last := decls[len(decls)-1]

	var rng hir.TextRange
	switch last.Kind {
	case scope.DefVariable:
		rng = module.Expr(last.VariableExpr).Range
	case scope.DefFunction:
		rng = module.Stmt(last.FunctionStmt).Range
	case scope.DefLoad:
		rng = module.Stmt(last.LoadStmt).Range
	default:
		return nil, nil // builtins have no local source location
	}
	return &LocationLink{Kind: LocationLocal, FileID: pos.FileID, Range: rng}, nil
}

// Hover returns a short description of the name at pos, if any.
func (s *AnalysisSnapshot) Hover(pos FilePosition) (*Hover, error) {
	module, err := s.snap.Module(pos.FileID)
	if err != nil || module == nil {
		return nil, err
	}
	ident, ok := identAt(module, pos.Offset)
	if !ok {
		return nil, nil
	}

	r, err := s.snap.ResolverForOffset(pos.FileID, pos.Offset)
	if err != nil || r == nil {
		return nil, err
	}
	decls := r.ResolveName(ident)
	if len(decls) == 0 {
		return nil, nil
	}
	last := decls[len(decls)-1]

	switch last.Kind {
	case scope.DefVariable:
		return &Hover{Text: fmt.Sprintf("%s: variable", ident.String())}, nil
	case scope.DefFunction:
		return &Hover{Text: fmt.Sprintf("%s: function", ident.String())}, nil
	case scope.DefParameter:
		return &Hover{Text: fmt.Sprintf("%s: parameter", ident.String())}, nil
	case scope.DefLoad:
		return &Hover{Text: fmt.Sprintf("%s: loaded name", ident.String())}, nil
	case scope.DefIntrinsicFunction:
		return &Hover{Text: fmt.Sprintf("%s: intrinsic function", ident.String())}, nil
	case scope.DefBuiltinFunction:
		return &Hover{Text: fmt.Sprintf("%s: builtin function", ident.String())}, nil
	case scope.DefBuiltinVariable:
		return &Hover{Text: fmt.Sprintf("%s: %s", ident.String(), last.Type.Display)}, nil
	default:
		return nil, nil
	}
}

// DocumentSymbols lists every top-level variable and function declaration
// in file id's module scope, in source order.
func (s *AnalysisSnapshot) DocumentSymbols(id source.FileID) ([]DocumentSymbol, error) {
	module, err := s.snap.Module(id)
	if err != nil || module == nil {
		return nil, err
	}
	scopes, err := s.snap.Scopes(id)
	if err != nil {
		return nil, err
	}

	moduleScope := scopes.Scope(scopes.ModuleScopeId())
	var out []DocumentSymbol
	for _, n := range moduleScope.OwnNames() {
		decls := moduleScope.Declarations(n)
		for _, d := range decls {
			switch d.Kind {
			case scope.DefVariable:
				out = append(out, DocumentSymbol{Name: n.String(), Kind: SymbolVariable, Range: module.Expr(d.VariableExpr).Range})
			case scope.DefFunction:
				out = append(out, DocumentSymbol{Name: n.String(), Kind: SymbolFunction, Range: module.Stmt(d.FunctionStmt).Range})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Range.Start < out[j].Range.Start })
	return out, nil
}

// Completion lists every name visible from pos, from closest scope to
// the installed builtins.
func (s *AnalysisSnapshot) Completion(pos FilePosition) ([]CompletionItem, error) {
	r, err := s.snap.ResolverForOffset(pos.FileID, pos.Offset)
	if err != nil || r == nil {
		return nil, err
	}

	names := r.Names()
	items := make([]CompletionItem, 0, len(names))
	for n, d := range names {
		items = append(items, CompletionItem{Label: n, Detail: detailFor(d)})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items, nil
}

func detailFor(d scope.Def) string {
	switch d.Kind {
	case scope.DefVariable:
		return "variable"
	case scope.DefFunction:
		return "function"
	case scope.DefParameter:
		return "parameter"
	case scope.DefLoad:
		return "load"
	case scope.DefIntrinsicFunction:
		return "intrinsic"
	case scope.DefBuiltinFunction:
		return "builtin function"
	case scope.DefBuiltinVariable:
		return "builtin variable"
	default:
		return ""
	}
}

// SignatureHelp finds the nearest enclosing call expression at pos and
// describes its callee's formal parameter list.
func (s *AnalysisSnapshot) SignatureHelp(pos FilePosition) (*SignatureInfo, error) {
	module, err := s.snap.Module(pos.FileID)
	if err != nil || module == nil {
		return nil, err
	}
	scopes, err := s.snap.Scopes(pos.FileID)
	if err != nil {
		return nil, err
	}

	call, ok := enclosingCall(module, pos.Offset)
	if !ok {
		return nil, nil
	}
	slots, ok := s.slotsForCallee(pos.FileID, module, scopes, call.Callee)
	if !ok {
		return nil, nil
	}

	var params []string
	for _, slot := range slots.All() {
		switch slot.Kind {
		case binder.SlotPositional:
			params = append(params, "<positional>")
		case binder.SlotKeyword:
			params = append(params, slot.Name.String())
		case binder.SlotArgsList:
			if slot.Bare {
				params = append(params, "*")
			} else {
				params = append(params, "*"+slot.Name.String())
			}
		case binder.SlotKwargsDict:
			params = append(params, "**"+slot.Name.String())
		}
	}
	return &SignatureInfo{Label: strings.Join(params, ", "), Params: params}, nil
}

// ShowHir renders a debug dump of file id's lowered HIR.
func (s *AnalysisSnapshot) ShowHir(id source.FileID) (string, error) {
	module, err := s.snap.Module(id)
	if err != nil || module == nil {
		return "", err
	}
	var b strings.Builder
	for _, stmtID := range module.TopStmts() {
		dumpStmt(&b, module, stmtID, 0)
	}
	return b.String(), nil
}

func dumpStmt(b *strings.Builder, module *hir.Module, id hir.StmtId, depth int) {
	data := module.Stmt(id)
	fmt.Fprintf(b, "%sstmt#%d %v %v\n", strings.Repeat("  ", depth), id, data.Kind, data.Range)
	for _, sub := range data.SubStmts {
		dumpStmt(b, module, sub, depth+1)
	}
	if data.Def != nil {
		for _, sub := range data.Def.BodyStmts {
			dumpStmt(b, module, sub, depth+1)
		}
	}
}

// identAt finds the innermost ExprIdent expression whose range contains
// offset, if any.
func identAt(module *hir.Module, offset int) (name.Name, bool) {
	var best hir.ExprData
	found := false
	for i := 0; i < module.NumExprs(); i++ {
		e := module.Expr(hir.ExprId(i))
		if e.Kind != hir.ExprIdent || !e.Range.Contains(offset) {
			continue
		}
		if !found || e.Range.Len() < best.Range.Len() {
			best = e
			found = true
		}
	}
	if !found {
		return name.Missing, false
	}
	return best.Ident, true
}

// enclosingCall finds the innermost call expression whose range contains
// offset.
func enclosingCall(module *hir.Module, offset int) (*hir.CallData, bool) {
	var best hir.ExprData
	found := false
	for i := 0; i < module.NumExprs(); i++ {
		e := module.Expr(hir.ExprId(i))
		if e.Kind != hir.ExprCall || !e.Range.Contains(offset) {
			continue
		}
		if !found || e.Range.Len() < best.Range.Len() {
			best = e
			found = true
		}
	}
	if !found {
		return nil, false
	}
	return best.Call, true
}
