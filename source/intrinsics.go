package source

import (
	"go.starlark.net/starlark"

	"github.com/starlark-ls/core/name"
)

func ipos(paramName string, hasDefault bool) IntrinsicFunctionParam {
	return IntrinsicFunctionParam{Kind: IntrinsicPositional, Name: name.New(paramName), HasDefault: hasDefault}
}

func ikw(paramName string) IntrinsicFunctionParam {
	return IntrinsicFunctionParam{Kind: IntrinsicKeyword, Name: name.New(paramName), HasDefault: true}
}

func iargs(paramName string) IntrinsicFunctionParam {
	return IntrinsicFunctionParam{Kind: IntrinsicArgsList, Name: name.New(paramName)}
}

func ikwargs(paramName string) IntrinsicFunctionParam {
	return IntrinsicFunctionParam{Kind: IntrinsicKwargsDict, Name: name.New(paramName)}
}

// intrinsicSignatures hand-describes the parameter shape of every
// go.starlark.net/starlark.Universe entry that is a callable, read off
// each builtin's UnpackArgs/UnpackPositionalArgs call in
// go.starlark.net/starlark/library.go. Universe itself carries no
// parameter metadata (a *starlark.Builtin only knows its name and Go
// function pointer), so this table is the one place that information is
// reconstructed.
var intrinsicSignatures = map[string][]IntrinsicFunctionParam{
	"abs":       {ipos("x", false)},
	"any":       {ipos("iterable", false)},
	"all":       {ipos("iterable", false)},
	"bool":      {ipos("x", true)},
	"bytes":     {ipos("x", true)},
	"chr":       {ipos("i", false)},
	"dict":      {ipos("pairs", true), ikwargs("kwargs")},
	"dir":       {ipos("x", false)},
	"enumerate": {ipos("iterable", false), ikw("start")},
	"fail":      {iargs("args"), ikw("sep")},
	"float":     {ipos("x", true)},
	"getattr":   {ipos("object", false), ipos("name", false), ipos("default", true)},
	"hasattr":   {ipos("x", false), ipos("name", false)},
	"hash":      {ipos("value", false)},
	"int":       {ipos("x", true), ikw("base")},
	"len":       {ipos("x", false)},
	"list":      {ipos("x", true)},
	"max":       {iargs("args"), ikw("key")},
	"min":       {iargs("args"), ikw("key")},
	"ord":       {ipos("x", false)},
	"print":     {iargs("args"), ikw("sep")},
	"range":     {ipos("start_or_stop", false), ipos("stop", true), ipos("step", true)},
	"repr":      {ipos("x", false)},
	"reversed":  {ipos("iterable", false)},
	"set":       {ipos("iterable", true)},
	"sorted":    {ipos("iterable", false), ikw("key"), ikw("reverse")},
	"str":       {ipos("x", true)},
	"tuple":     {ipos("x", true)},
	"type":      {ipos("x", false)},
	"zip":       {iargs("iterables")},
}

// Universe builds the engine-wide intrinsic function table from
// go.starlark.net/starlark.Universe: every predeclared name every
// dialect gets regardless of BUILD/bzl/WORKSPACE context (spec.md's
// priority (1), source/dialect.go's "Standard is bare Starlark" promise).
//
// Universe is walked rather than hand-enumerated so that adding a builtin
// to go.starlark.net (or disabling one via a resolve.Allow* flag at
// package init) is reflected here automatically; only the per-function
// parameter shape, which starlark.Value exposes no reflection for, is
// hand-maintained in intrinsicSignatures.
func Universe() *Builtins {
	b := NewBuiltins()
	for fnName, v := range starlark.Universe {
		if _, ok := v.(*starlark.Builtin); ok {
			b.AddIntrinsicFunction(fnName, intrinsicSignatures[fnName])
			continue
		}
		b.AddVariable(fnName, TypeRef{Display: v.Type()})
	}
	return b
}
