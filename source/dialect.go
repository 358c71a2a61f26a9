// Package source models the ground inputs to the analysis core: immutable
// file snapshots, the dialect each belongs to, and the per-dialect builtin
// tables that the resolver falls back to. This is the File & Builtins
// Registry component of the analysis core.
package source

// Dialect selects which builtin table applies to a file.
//
// Reference (Bazel builtin surface): the teacher's builtins/, attr/,
// native/ and providers/ packages, which define exactly the Bazel dialect's
// rule()/provider()/select()/struct()/depset()/attr.*/native.* globals.
type Dialect int

const (
	// Standard is bare Starlark: only the engine's intrinsic functions
	// (go.starlark.net's Universe) are available.
	Standard Dialect = iota
	// Bazel adds the Bazel builtin surface (rule, provider, attr, native, ...).
	Bazel
)

func (d Dialect) String() string {
	switch d {
	case Standard:
		return "standard"
	case Bazel:
		return "bazel"
	default:
		return "unknown"
	}
}

// APIContext distinguishes the three kinds of Bazel-dialect files, each of
// which sees a slightly different predeclared environment.
//
// Reference: the teacher's eval/build_file.go (BUILD files) vs.
// eval/bzl_file.go (.bzl files) predeclared environments.
type APIContext int

const (
	APIContextBuild APIContext = iota
	APIContextBzl
	APIContextWorkspace
)

func (c APIContext) String() string {
	switch c {
	case APIContextBuild:
		return "BUILD"
	case APIContextBzl:
		return "bzl"
	case APIContextWorkspace:
		return "WORKSPACE"
	default:
		return "unknown"
	}
}

// FileInfo carries optional per-file metadata. Only the Bazel dialect uses
// it today; Standard-dialect files leave it nil.
type FileInfo struct {
	APIContext APIContext
	IsExternal bool
}
