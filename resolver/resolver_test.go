package resolver

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starlark-ls/core/hir"
	"github.com/starlark-ls/core/name"
	"github.com/starlark-ls/core/scope"
	"github.com/starlark-ls/core/source"
)

func lower(t *testing.T, src string) *hir.Module {
	t.Helper()
	m, err := hir.Lower("test.star", src, 0)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	return m
}

// TestLexicalShadowing is spec.md §8 scenario 1.
func TestLexicalShadowing(t *testing.T) {
	src := "x = 1\ndef f():\n    x = 2\n    return x\n"
	m := lower(t, src)
	scopes := scope.Build(m)

	// Locate "return x"'s x expression: the last Ident expr in the arena
	// named x whose range starts after "return ".
	var returnXID hir.ExprId
	found := false
	for i := 0; i < m.NumExprs(); i++ {
		e := m.Expr(hir.ExprId(i))
		if e.Kind == hir.ExprIdent && e.Ident == name.New("x") && e.Range.Start > 30 {
			returnXID = hir.ExprId(i)
			found = true
		}
	}
	if !found {
		t.Fatalf("could not locate return x's identifier expression")
	}

	r := NewForExpr(scopes, returnXID, nil, nil)
	decls := r.ResolveName(name.New("x"))
	if len(decls) != 1 || decls[0].Kind != scope.DefVariable {
		t.Fatalf("expected local x to resolve inside f, got %+v", decls)
	}

	// At module scope (e.g. after the file ends), resolution sees the
	// module-level x.
	moduleR := NewForModule(scopes, nil, nil)
	moduleDecls := moduleR.ResolveName(name.New("x"))
	if len(moduleDecls) != 1 {
		t.Fatalf("expected module-level x, got %+v", moduleDecls)
	}
}

// TestExportViaLoad is spec.md §8 scenario 2.
func TestExportViaLoad(t *testing.T) {
	src := "PUBLIC = 1\n_private = 2\n"
	m := lower(t, src)
	scopes := scope.Build(m)
	r := NewForModule(scopes, nil, nil)

	if exp, ok := r.ResolveExport(name.New("PUBLIC")); !ok || exp.Kind != ExportVariable {
		t.Fatalf("expected PUBLIC to resolve as an exported variable, got %+v, %v", exp, ok)
	}
	if _, ok := r.ResolveExport(name.New("_private")); !ok {
		t.Fatalf("expected _private to resolve too: privacy is not enforced by resolve_export")
	}
	if _, ok := r.ResolveExport(name.New("missing")); ok {
		t.Fatalf("expected missing name to not resolve")
	}
}

// TestBuiltinFallback is spec.md §8 scenario 3.
func TestBuiltinFallback(t *testing.T) {
	src := "def f():\n    return 1\n"
	m := lower(t, src)
	scopes := scope.Build(m)

	builtins := source.NewBuiltins()
	builtins.AddFunction("glob", []source.BuiltinFunctionParam{
		{Kind: source.BuiltinArgsList, Name: name.New("include")},
	})

	r := NewForModule(scopes, source.NewBuiltins(), builtins)
	decls := r.ResolveName(name.New("glob"))
	if len(decls) != 1 || decls[0].Kind != scope.DefBuiltinFunction {
		t.Fatalf("expected glob to resolve as a builtin function, got %+v", decls)
	}
}

func TestShadowingOverridesBuiltin(t *testing.T) {
	src := "glob = 1\n"
	m := lower(t, src)
	scopes := scope.Build(m)

	builtins := source.NewBuiltins()
	builtins.AddFunction("glob", nil)

	r := NewForModule(scopes, nil, builtins)
	decls := r.ResolveName(name.New("glob"))
	if len(decls) != 1 || decls[0].Kind != scope.DefVariable {
		t.Fatalf("expected user-defined glob to shadow the builtin, got %+v", decls)
	}
}

func TestNamesEnumerationPrefersCloserScopes(t *testing.T) {
	src := "x = 1\ndef f():\n    x = 2\n    return x\n"
	m := lower(t, src)
	scopes := scope.Build(m)

	// Find f's def statement id to build a stmt-anchored resolver.
	var defID hir.StmtId
	for i := 0; i < m.NumStmts(); i++ {
		if m.Stmt(hir.StmtId(i)).Kind == hir.StmtDef {
			defID = hir.StmtId(i)
		}
	}
	r := NewForStmt(scopes, defID, nil, nil)
	names := r.Names()
	localRHS := m.Stmt(m.Stmt(defID).Def.BodyStmts[0]).Assign.RHS
	d, ok := names["x"]
	if !ok || d.Kind != scope.DefVariable || d.VariableExpr != localRHS {
		t.Fatalf("expected f's local x to be the visible x from inside f, got %+v, %v", d, ok)
	}

	got := make([]string, 0, len(names))
	for n := range names {
		got = append(got, n)
	}
	sort.Strings(got)
	want := []string{"f", "x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected visible-name set (-want +got):\n%s", diff)
	}
}
