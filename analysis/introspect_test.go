package analysis

import (
	"strings"
	"testing"

	"github.com/starlark-ls/core/hirbazel"
)

func TestIntrospectBuiltinsCoversRule(t *testing.T) {
	info := IntrospectBuiltins(hirbazel.Builtins())

	var rule *FunctionInfo
	for i := range info.Functions {
		if info.Functions[i].Name == "rule" {
			rule = &info.Functions[i]
		}
	}
	if rule == nil {
		t.Fatalf("expected \"rule\" in introspected functions, got %+v", info.Functions)
	}
	if len(rule.Params) == 0 {
		t.Fatalf("expected rule() to have parameters")
	}
	if rule.Params[0].Name != "implementation" || rule.Params[0].HasDefault {
		t.Fatalf("expected implementation to be the first, required parameter, got %+v", rule.Params[0])
	}

	var found bool
	for _, v := range info.Variables {
		if v.Name == "PACKAGE_NAME" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected PACKAGE_NAME among introspected variables")
	}
}

func TestFormatFunctionSummary(t *testing.T) {
	info := IntrospectBuiltins(hirbazel.Builtins())
	var sig *FunctionInfo
	for i := range info.Functions {
		if info.Functions[i].Name == "struct" {
			sig = &info.Functions[i]
		}
	}
	if sig == nil {
		t.Fatalf("expected \"struct\" among introspected functions")
	}

	summaries := FormatBuiltinsSummary(hirbazel.Builtins())
	var structSummary string
	for _, s := range summaries {
		if strings.HasPrefix(s, "struct(") {
			structSummary = s
		}
	}
	if !strings.Contains(structSummary, "**kwargs") {
		t.Fatalf("expected struct()'s summary to show its **kwargs slot, got %q", structSummary)
	}
}
