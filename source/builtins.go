package source

import "github.com/starlark-ls/core/name"

// TypeRef is a lightweight description of a builtin global variable's
// type, used only for display (hover) purposes. Real type inference is
// out of scope (spec.md §1).
type TypeRef struct {
	Display string
}

// IntrinsicFunctionParam describes one formal parameter of an
// engine-intrinsic function (go.starlark.net's Universe: len, print,
// range, ...). Unlike user-defined formals, intrinsics can have
// positional-only parameters, which Starlark's own def syntax cannot
// express.
type IntrinsicFunctionParam struct {
	Kind    IntrinsicParamKind
	Name    name.Name
	Type    TypeRef
	HasDefault bool
}

// IntrinsicParamKind enumerates the shapes an IntrinsicFunctionParam can take.
type IntrinsicParamKind int

const (
	IntrinsicPositional IntrinsicParamKind = iota
	IntrinsicKeyword
	IntrinsicArgsList
	IntrinsicKwargsDict
)

// BuiltinFunctionParam describes one formal parameter of a host-provided
// builtin (e.g. Bazel's rule(), provider(), attr.string(), ...), as
// derived from the Go function's starlark.UnpackArgs call. Every Simple
// param explicitly states whether it accepts positional calling
// convention, since host builtins (unlike user def statements) can be
// keyword-only from the first parameter (e.g. "x?" spellings in
// UnpackArgs are keyword-or-positional by default in go.starlark.net, but
// some Bazel builtins are keyword-only by convention; the flag lets the
// table say which).
type BuiltinFunctionParam struct {
	Kind       BuiltinParamKind
	Name       name.Name
	Positional bool
	HasDefault bool
}

// BuiltinParamKind enumerates the shapes a BuiltinFunctionParam can take.
type BuiltinParamKind int

const (
	BuiltinSimple BuiltinParamKind = iota
	BuiltinArgsList
	BuiltinKwargsDict
)

// FunctionSig is a named, ordered parameter list — the shape shared by
// both intrinsic and host-builtin function tables.
type FunctionSig struct {
	Name            string
	IntrinsicParams []IntrinsicFunctionParam
	BuiltinParams   []BuiltinFunctionParam
}

// Builtins is one dialect's (or the engine's) builtin table: named
// functions plus named global variables.
//
// Reference: starpls_bazel::Builtins (original_source), ingested there
// from a proto bundle; here populated programmatically by the hirbazel
// package from the teacher's builtins/attr/native packages.
type Builtins struct {
	functions map[string]FunctionSig
	variables map[string]TypeRef
}

// NewBuiltins creates an empty builtin table.
func NewBuiltins() *Builtins {
	return &Builtins{
		functions: make(map[string]FunctionSig),
		variables: make(map[string]TypeRef),
	}
}

// AddIntrinsicFunction registers an engine-intrinsic function.
func (b *Builtins) AddIntrinsicFunction(fnName string, params []IntrinsicFunctionParam) {
	b.functions[fnName] = FunctionSig{Name: fnName, IntrinsicParams: params}
}

// AddFunction registers a host-builtin global function.
func (b *Builtins) AddFunction(fnName string, params []BuiltinFunctionParam) {
	b.functions[fnName] = FunctionSig{Name: fnName, BuiltinParams: params}
}

// AddVariable registers a host-builtin global variable.
func (b *Builtins) AddVariable(varName string, ty TypeRef) {
	b.variables[varName] = ty
}

// Function looks up a named function, intrinsic or host-builtin.
func (b *Builtins) Function(fnName string) (FunctionSig, bool) {
	if b == nil {
		return FunctionSig{}, false
	}
	sig, ok := b.functions[fnName]
	return sig, ok
}

// Variable looks up a named global variable's type.
func (b *Builtins) Variable(varName string) (TypeRef, bool) {
	if b == nil {
		return TypeRef{}, false
	}
	ty, ok := b.variables[varName]
	return ty, ok
}

// Functions returns every registered function name, for completion/names()
// enumeration.
func (b *Builtins) Functions() map[string]FunctionSig {
	if b == nil {
		return nil
	}
	return b.functions
}

// Variables returns every registered variable name, for completion/names()
// enumeration.
func (b *Builtins) Variables() map[string]TypeRef {
	if b == nil {
		return nil
	}
	return b.variables
}
