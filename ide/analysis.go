package ide

import (
	"github.com/starlark-ls/core/query"
	"github.com/starlark-ls/core/source"
	"github.com/starlark-ls/core/telemetry"
)

// Options configures an Analysis at construction time. It is currently
// mostly empty but kept as a struct, not a bare loader parameter, so the
// front-end can grow configuration (e.g. a default dialect) without
// breaking New's signature — mirroring spec.md §6's "new(loader,
// options)" contract.
type Options struct {
	// DefaultDialect is carried for the front-end's own use; New and the
	// rest of this package do not read it.
	DefaultDialect source.Dialect

	// Logger receives cache and cancellation diagnostics from the query
	// engine. A nil Logger (the zero value) simply logs nothing.
	Logger *telemetry.Logger
}

// Analysis owns the query engine: it is the mutable front door through
// which a language-server front-end applies edits and installs builtin
// tables, before asking for an immutable AnalysisSnapshot to query.
type Analysis struct {
	engine   *query.Engine
	registry *source.Registry
}

// New creates an Analysis backed by loader (nil is valid: load()/
// resolve_path become no-ops) and intrinsics, the engine-wide intrinsic
// function table consulted before any dialect's own builtins. A nil
// intrinsics defaults to source.Universe(), go.starlark.net's own
// Universe — a caller only needs to pass an explicit table to override or
// restrict it. Dialect builtin tables are installed afterward via
// SetBuiltinDefs — both must happen before the first query, per spec.md
// §9's "set before first query" lifecycle contract, since Registry treats
// them as immutable for the duration of any snapshot.
func New(loader source.FileLoader, intrinsics *source.Builtins, opts Options) *Analysis {
	if intrinsics == nil {
		intrinsics = source.Universe()
	}
	registry := source.NewRegistry(loader, intrinsics)
	engine := query.NewEngine(registry)
	engine.SetLogger(opts.Logger)
	return &Analysis{engine: engine, registry: registry}
}

// ApplyChange applies a batch of create/update operations atomically.
func (a *Analysis) ApplyChange(change *query.ChangeSet) {
	a.engine.ApplyChanges(change.Changes())
}

// Snapshot pins the current revision for read-only querying.
func (a *Analysis) Snapshot() *AnalysisSnapshot {
	return &AnalysisSnapshot{snap: a.engine.Snapshot()}
}

// SetBuiltinDefs installs dialect's builtin function/variable table.
func (a *Analysis) SetBuiltinDefs(dialect source.Dialect, builtins *source.Builtins) {
	a.registry.SetBuiltinDefs(dialect, builtins)
}

// SetBazelPreludeFile installs the file implicitly loaded before every
// Bazel BUILD file.
func (a *Analysis) SetBazelPreludeFile(id source.FileID) {
	a.registry.SetBazelPreludeFile(id)
}

// Registry exposes the backing File & Builtins Registry directly, for
// front-ends that need to create/update files outside a ChangeSet (e.g.
// during startup workspace discovery).
func (a *Analysis) Registry() *source.Registry { return a.registry }
