package scope

import (
	"testing"

	"github.com/starlark-ls/core/hir"
	"github.com/starlark-ls/core/name"
)

func lower(t *testing.T, src string) *hir.Module {
	t.Helper()
	m, err := hir.Lower("test.star", src, 0)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	return m
}

func TestBuildLexicalShadowing(t *testing.T) {
	// Source from spec.md §8 scenario 1.
	m := lower(t, "x = 1\ndef f():\n    x = 2\n    return x\n")
	scopes := Build(m)

	moduleDecls := scopes.Scope(scopes.ModuleScopeId()).Declarations(name.New("x"))
	if len(moduleDecls) != 1 {
		t.Fatalf("expected exactly one module-level declaration of x, got %d", len(moduleDecls))
	}

	// Find f's function scope: it's the only def statement's anchor.
	var fScope ScopeId
	found := false
	for id := 0; id < len(scopes.scopes); id++ {
		sc := scopes.Scope(ScopeId(id))
		if len(sc.Declarations(name.New("x"))) > 0 && ScopeId(id) != scopes.ModuleScopeId() {
			fScope = ScopeId(id)
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a nested scope declaring x")
	}
	innerDecls := scopes.Scope(fScope).Declarations(name.New("x"))
	if len(innerDecls) != 1 || innerDecls[0].Kind != DefVariable {
		t.Fatalf("expected one local variable declaration of x in f's scope, got %+v", innerDecls)
	}

	chain := scopes.Chain(fScope)
	if chain[len(chain)-1] != scopes.ModuleScopeId() {
		t.Fatalf("scope chain must terminate at the module scope")
	}
}

func TestBuildFunctionLevelScoping(t *testing.T) {
	// if/for bodies must NOT introduce their own scope: a name bound
	// inside an if-body is visible in the enclosing function scope.
	src := "def f():\n    if True:\n        y = 1\n    return y\n"
	m := lower(t, src)
	scopes := Build(m)

	// There should be exactly 2 scopes: module + f. No scope for the if-body.
	if len(scopes.scopes) != 2 {
		t.Fatalf("expected 2 scopes (module, f), got %d", len(scopes.scopes))
	}
	fScope := ScopeId(1)
	decls := scopes.Scope(fScope).Declarations(name.New("y"))
	if len(decls) != 1 {
		t.Fatalf("expected y to be declared directly in f's scope (function-level scoping), got %d decls", len(decls))
	}
}

func TestBuildLambdaAndComprehensionScopes(t *testing.T) {
	src := "f = lambda a: a + 1\nsquares = [v * v for v in range(3)]\n"
	m := lower(t, src)
	scopes := Build(m)

	// module scope + lambda scope + comprehension scope == 3.
	if len(scopes.scopes) != 3 {
		t.Fatalf("expected 3 scopes (module, lambda, comprehension), got %d", len(scopes.scopes))
	}

	foundParam, foundVar := false, false
	for id := 1; id < len(scopes.scopes); id++ {
		sc := scopes.Scope(ScopeId(id))
		if decls := sc.Declarations(name.New("a")); len(decls) == 1 && decls[0].Kind == DefParameter {
			foundParam = true
		}
		if decls := sc.Declarations(name.New("v")); len(decls) == 1 && decls[0].Kind == DefVariable {
			foundVar = true
		}
	}
	if !foundParam {
		t.Fatalf("expected lambda parameter 'a' to be declared in its own scope")
	}
	if !foundVar {
		t.Fatalf("expected comprehension variable 'v' to be declared in its own scope")
	}
}

func TestBuildLoadBindings(t *testing.T) {
	src := "load(\":other.bzl\", \"PUBLIC\", local_name = \"exported\")\n"
	m := lower(t, src)
	scopes := Build(m)

	moduleScope := scopes.Scope(scopes.ModuleScopeId())
	if decls := moduleScope.Declarations(name.New("PUBLIC")); len(decls) != 1 || decls[0].Kind != DefLoad {
		t.Fatalf("expected PUBLIC to be declared via load, got %+v", decls)
	}
	if decls := moduleScope.Declarations(name.New("local_name")); len(decls) != 1 || decls[0].Kind != DefLoad {
		t.Fatalf("expected local_name to be declared via load, got %+v", decls)
	}
}
