package hirbazel

import "testing"

func TestBuiltinsIncludesCoreBazelGlobals(t *testing.T) {
	b := Builtins()

	for _, fn := range []string{"rule", "provider", "aspect", "select", "depset", "struct", "Label", "attr.string", "native.glob"} {
		if _, ok := b.Function(fn); !ok {
			t.Fatalf("expected %q to be registered as a builtin function", fn)
		}
	}

	sig, _ := b.Function("rule")
	if len(sig.BuiltinParams) == 0 || sig.BuiltinParams[0].Name.String() != "implementation" {
		t.Fatalf("expected rule()'s first param to be 'implementation', got %+v", sig.BuiltinParams)
	}
	if sig.BuiltinParams[0].HasDefault {
		t.Fatalf("expected rule()'s implementation param to be required")
	}

	if _, ok := b.Variable("PACKAGE_NAME"); !ok {
		t.Fatalf("expected PACKAGE_NAME to be registered as a builtin variable")
	}
}
