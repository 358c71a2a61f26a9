package source

import "fmt"

// LoadItemCandidate is a single completion candidate for a load() path.
type LoadItemCandidate struct {
	Label string
	Doc   string
}

// ResolvedPath is what resolving a load()/label path yields: either a
// plain file, or a Bazel BUILD target (which also materializes the
// package's BUILD file as a side effect, per spec.md §4.2).
type ResolvedPath struct {
	// File is set when path resolves directly to a loadable file.
	File *FileID
	// BuildTarget is set when path resolves to a label inside a Bazel
	// package; BuildFile names the BUILD file that owns the target.
	BuildTarget *BuildTargetRef
}

// BuildTargetRef names a target and the BUILD file that declares it.
type BuildTargetRef struct {
	Package   string
	Target    string
	BuildFile FileID
	// Contents is populated by the loader the first time the BUILD file
	// is resolved; Registry.ResolvePath caches it as a File so later
	// resolutions don't need to re-supply it.
	Contents *string
}

// LoadFileResult is what a successful FileLoader.LoadFile call returns.
type LoadFileResult struct {
	FileID   FileID
	Dialect  Dialect
	Info     *FileInfo
	Contents string
}

// IoError wraps a failure from the host FileLoader. It is distinct from a
// Diagnostic: an IoError means the host collaborator failed, not that the
// user's Starlark is wrong.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("loading %q: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// FileLoader is the host-provided capability for resolving load() targets,
// label paths and load-completion candidates. The registry never reads the
// filesystem itself; every path outside of what it already has cached is
// delegated here.
//
// Reference: the teacher's loader.BzlLoader / loader.FileSystem, which
// play the same role for a single-shot evaluation; here the same contract
// is reused across a whole file registry's lifetime.
type FileLoader interface {
	ResolvePath(path string, dialect Dialect, from FileID) (*ResolvedPath, error)
	LoadFile(path string, dialect Dialect, from FileID) (*LoadFileResult, error)
	ListLoadCandidates(path string, dialect Dialect, from FileID) ([]LoadItemCandidate, error)
}
