package source

import "testing"

func TestUniverseCoversCoreBuiltins(t *testing.T) {
	u := Universe()

	for _, fn := range []string{"len", "print", "range", "str", "list", "dict", "fail", "zip"} {
		sig, ok := u.Function(fn)
		if !ok {
			t.Fatalf("expected %s to be registered as an intrinsic function", fn)
		}
		if sig.IntrinsicParams == nil {
			t.Fatalf("expected %s to carry a hand-described parameter shape, got none", fn)
		}
	}

	for _, v := range []string{"None", "True", "False"} {
		if _, ok := u.Variable(v); !ok {
			t.Fatalf("expected %s to be registered as an intrinsic variable", v)
		}
	}
}

func TestUniverseLenTakesOnePositionalParam(t *testing.T) {
	u := Universe()
	sig, ok := u.Function("len")
	if !ok {
		t.Fatalf("expected len to be registered")
	}
	if len(sig.IntrinsicParams) != 1 || sig.IntrinsicParams[0].Kind != IntrinsicPositional {
		t.Fatalf("expected len(x) to be a single required positional param, got %+v", sig.IntrinsicParams)
	}
}
