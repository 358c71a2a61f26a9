// Package hirbazel populates a source.Builtins table with the Bazel
// dialect's global functions and variables, grounded directly on the
// Go function signatures of the Bazel evaluator's builtins, attr and
// native packages that this module was ported from (read off their
// starlark.UnpackArgs parameter lists; those packages are not part of
// this repository).
//
// It is the concrete data that answers spec.md §4.3's abstract "dialect
// builtin table" concept for the Bazel dialect: resolve_name("rule") or
// resolve_name("select") falls through to whatever this package installs
// via source.Registry.SetBuiltinDefs(source.Bazel, ...). The attr.* and
// native.* functions are registered under their dotted names (e.g.
// "native.glob"); there is no bare "glob" entry.
package hirbazel

import (
	"github.com/starlark-ls/core/name"
	"github.com/starlark-ls/core/source"
)

func simple(paramName string, positional, hasDefault bool) source.BuiltinFunctionParam {
	return source.BuiltinFunctionParam{
		Kind:       source.BuiltinSimple,
		Name:       name.New(paramName),
		Positional: positional,
		HasDefault: hasDefault,
	}
}

func required(paramName string) source.BuiltinFunctionParam {
	return simple(paramName, true, false)
}

func optional(paramName string) source.BuiltinFunctionParam {
	return simple(paramName, true, true)
}

// Builtins builds the full Bazel dialect builtin table.
//
// Reference: builtins/rule.go, builtins/provider.go, builtins/aspect.go,
// builtins/select.go, attr/module.go, native/glob.go,
// native/existing_rule.go and native/package_info.go's UnpackArgs calls.
func Builtins() *source.Builtins {
	b := source.NewBuiltins()

	b.AddFunction("rule", []source.BuiltinFunctionParam{
		required("implementation"),
		optional("test"),
		optional("attrs"),
		optional("outputs"),
		optional("executable"),
		optional("output_to_genfiles"),
		optional("fragments"),
		optional("host_fragments"),
		optional("_skylark_testable"),
		optional("toolchains"),
		optional("doc"),
		optional("provides"),
		optional("dependency_resolution_rule"),
		optional("exec_compatible_with"),
		optional("analysis_test"),
		optional("build_setting"),
		optional("cfg"),
		optional("exec_groups"),
		optional("initializer"),
		optional("parent"),
		optional("extendable"),
		optional("subrules"),
	})

	b.AddFunction("provider", []source.BuiltinFunctionParam{
		optional("doc"),
		optional("fields"),
		optional("init"),
	})

	b.AddFunction("aspect", []source.BuiltinFunctionParam{
		required("implementation"),
		optional("attr_aspects"),
		optional("toolchains_aspects"),
		optional("attrs"),
		optional("required_providers"),
		optional("required_aspect_providers"),
		optional("provides"),
		optional("requires"),
		optional("propagation_predicate"),
		optional("fragments"),
		optional("host_fragments"),
		optional("toolchains"),
		optional("doc"),
		optional("apply_to_generating_rules"),
		optional("exec_compatible_with"),
		optional("subrules"),
	})

	b.AddFunction("select", []source.BuiltinFunctionParam{
		required("x"),
		optional("no_match_error"),
	})

	b.AddFunction("depset", []source.BuiltinFunctionParam{
		optional("direct"),
		optional("order"),
		optional("transitive"),
	})

	b.AddFunction("struct", []source.BuiltinFunctionParam{
		{Kind: source.BuiltinKwargsDict, Name: name.New("kwargs")},
	})

	b.AddFunction("Label", []source.BuiltinFunctionParam{
		required("input"),
		optional("relative_to_caller_repository"),
	})

	attr := attrModule()
	for fnName, sig := range attr.Functions() {
		b.AddFunction(fnName, sig.BuiltinParams)
	}

	nativeFns := nativeModule()
	for fnName, sig := range nativeFns.Functions() {
		b.AddFunction(fnName, sig.BuiltinParams)
	}

	b.AddVariable("PACKAGE_NAME", source.TypeRef{Display: "string"})
	b.AddVariable("REPOSITORY_NAME", source.TypeRef{Display: "string"})

	return b
}

// attrModule mirrors the "attr" struct exposed by attr/module.go: a table
// of attr.* constructors, each taking the same shape of (default?, doc?,
// mandatory?, values?, ...) keyword parameters.
func attrModule() *source.Builtins {
	b := source.NewBuiltins()

	b.AddFunction("attr.string", []source.BuiltinFunctionParam{
		optional("default"), optional("doc"), optional("mandatory"), optional("values"),
	})
	b.AddFunction("attr.int", []source.BuiltinFunctionParam{
		optional("default"), optional("doc"), optional("mandatory"), optional("values"),
	})
	b.AddFunction("attr.bool", []source.BuiltinFunctionParam{
		optional("default"), optional("doc"), optional("mandatory"),
	})
	b.AddFunction("attr.label", []source.BuiltinFunctionParam{
		optional("default"), optional("doc"), optional("executable"), optional("allow_files"),
		optional("allow_single_file"), optional("mandatory"), optional("providers"),
		optional("allow_rules"), optional("cfg"), optional("aspects"),
	})
	b.AddFunction("attr.label_list", []source.BuiltinFunctionParam{
		optional("default"), optional("doc"), optional("allow_files"), optional("allow_empty"),
		optional("mandatory"), optional("providers"), optional("cfg"), optional("aspects"),
	})
	b.AddFunction("attr.string_list", []source.BuiltinFunctionParam{
		optional("default"), optional("doc"), optional("mandatory"), optional("allow_empty"),
	})
	b.AddFunction("attr.int_list", []source.BuiltinFunctionParam{
		optional("default"), optional("doc"), optional("mandatory"), optional("allow_empty"),
	})
	b.AddFunction("attr.string_dict", []source.BuiltinFunctionParam{
		optional("default"), optional("doc"), optional("mandatory"), optional("allow_empty"),
	})
	b.AddFunction("attr.string_list_dict", []source.BuiltinFunctionParam{
		optional("default"), optional("doc"), optional("mandatory"), optional("allow_empty"),
	})
	b.AddFunction("attr.label_keyed_string_dict", []source.BuiltinFunctionParam{
		optional("default"), optional("doc"), optional("allow_files"), optional("allow_empty"),
		optional("mandatory"), optional("providers"), optional("cfg"), optional("aspects"),
	})
	b.AddFunction("attr.output", []source.BuiltinFunctionParam{
		optional("doc"), optional("mandatory"),
	})
	b.AddFunction("attr.output_list", []source.BuiltinFunctionParam{
		optional("doc"), optional("mandatory"), optional("allow_empty"),
	})

	return b
}

// nativeModule mirrors the "native" struct exposed to BUILD files by
// native/glob.go, native/existing_rule.go and native/package_info.go.
func nativeModule() *source.Builtins {
	b := source.NewBuiltins()

	b.AddFunction("native.glob", []source.BuiltinFunctionParam{
		optional("include"), optional("exclude"), optional("exclude_directories"), optional("allow_empty"),
	})
	b.AddFunction("native.subpackages", []source.BuiltinFunctionParam{
		required("include"), optional("exclude"), optional("allow_empty"),
	})
	b.AddFunction("native.existing_rule", []source.BuiltinFunctionParam{required("name")})
	b.AddFunction("native.existing_rules", nil)
	b.AddFunction("native.package_name", nil)
	b.AddFunction("native.repository_name", nil)
	b.AddFunction("native.repo_name", nil)
	b.AddFunction("native.package_relative_label", []source.BuiltinFunctionParam{required("input")})

	return b
}
