// Package analysis provides introspection utilities over a dialect's
// builtin tables, for debugging and for a front-end's "describe this
// global" requests.
package analysis

import (
	"sort"

	"github.com/starlark-ls/core/source"
)

// ParamInfo describes one formal parameter of a builtin function, in a
// shape stable across both the intrinsic and host-builtin dialects.
type ParamInfo struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Positional bool   `json:"positional"`
	HasDefault bool   `json:"has_default,omitempty"`
}

// FunctionInfo contains introspection data about a registered builtin
// function.
type FunctionInfo struct {
	Name   string      `json:"name"`
	Params []ParamInfo `json:"params"`
}

// VariableInfo contains introspection data about a registered builtin
// global variable.
type VariableInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// BuiltinsInfo is the full introspection of one dialect's builtin table,
// functions and variables both sorted by name for stable output.
type BuiltinsInfo struct {
	Functions []FunctionInfo `json:"functions"`
	Variables []VariableInfo `json:"variables"`
}

// IntrospectFunction returns info about one FunctionSig.
func IntrospectFunction(sig source.FunctionSig) *FunctionInfo {
	info := &FunctionInfo{Name: sig.Name}
	for _, p := range sig.IntrinsicParams {
		info.Params = append(info.Params, ParamInfo{
			Name:       p.Name.String(),
			Kind:       intrinsicKindName(p.Kind),
			Positional: p.Kind == source.IntrinsicPositional,
			HasDefault: p.HasDefault,
		})
	}
	for _, p := range sig.BuiltinParams {
		info.Params = append(info.Params, ParamInfo{
			Name:       p.Name.String(),
			Kind:       builtinKindName(p.Kind),
			Positional: p.Positional,
			HasDefault: p.HasDefault,
		})
	}
	return info
}

func intrinsicKindName(k source.IntrinsicParamKind) string {
	switch k {
	case source.IntrinsicPositional:
		return "positional"
	case source.IntrinsicKeyword:
		return "keyword"
	case source.IntrinsicArgsList:
		return "args"
	case source.IntrinsicKwargsDict:
		return "kwargs"
	default:
		return "unknown"
	}
}

func builtinKindName(k source.BuiltinParamKind) string {
	switch k {
	case source.BuiltinSimple:
		return "simple"
	case source.BuiltinArgsList:
		return "args"
	case source.BuiltinKwargsDict:
		return "kwargs"
	default:
		return "unknown"
	}
}

// IntrospectBuiltins returns info about every function and variable
// registered in b, sorted by name.
func IntrospectBuiltins(b *source.Builtins) *BuiltinsInfo {
	info := &BuiltinsInfo{}
	for name, sig := range b.Functions() {
		_ = name
		info.Functions = append(info.Functions, *IntrospectFunction(sig))
	}
	for name, ty := range b.Variables() {
		info.Variables = append(info.Variables, VariableInfo{Name: name, Type: ty.Display})
	}
	sort.Slice(info.Functions, func(i, j int) bool { return info.Functions[i].Name < info.Functions[j].Name })
	sort.Slice(info.Variables, func(i, j int) bool { return info.Variables[i].Name < info.Variables[j].Name })
	return info
}
