package query

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/starlark-ls/core/hir"
	"github.com/starlark-ls/core/resolver"
	"github.com/starlark-ls/core/scope"
	"github.com/starlark-ls/core/source"
)

// Snapshot is a read-only view of an Engine pinned to one revision of its
// inputs (spec.md §4.1). All reads against one Snapshot are linearizable
// to that revision; edits issued after it was taken are invisible to it.
type Snapshot struct {
	engine   *Engine
	registry *source.RegistrySnapshot
	token    CancellationToken
}

// Token returns the snapshot's CancellationToken.
func (s *Snapshot) Token() CancellationToken { return s.token }

// Registry returns the pinned RegistrySnapshot backing this view.
func (s *Snapshot) Registry() *source.RegistrySnapshot { return s.registry }

// Module returns the lowered HIR for file id, memoized per revision.
func (s *Snapshot) Module(id source.FileID) (*hir.Module, error) {
	if err := s.token.Check(); err != nil {
		return nil, err
	}
	m, _, err := s.engine.scopesFor(id, s.registry)
	return m, err
}

// Scopes returns the built scope tree for file id, memoized per revision.
func (s *Snapshot) Scopes(id source.FileID) (*scope.Scopes, error) {
	if err := s.token.Check(); err != nil {
		return nil, err
	}
	_, sc, err := s.engine.scopesFor(id, s.registry)
	return sc, err
}

func (s *Snapshot) dialectTables(id source.FileID) (*source.Builtins, *source.Builtins) {
	f := s.registry.GetFile(id)
	if f == nil {
		return s.registry.Intrinsics(), source.NewBuiltins()
	}
	return s.registry.Intrinsics(), s.registry.GetBuiltinDefs(f.Dialect())
}

// ResolverForModule builds a Resolver scoped to file id's module scope.
func (s *Snapshot) ResolverForModule(id source.FileID) (*resolver.Resolver, error) {
	sc, err := s.Scopes(id)
	if err != nil || sc == nil {
		return nil, err
	}
	intrinsics, builtins := s.dialectTables(id)
	return resolver.NewForModule(sc, intrinsics, builtins), nil
}

// ResolverForOffset builds a Resolver scoped to the innermost scope
// containing the given text offset within file id.
func (s *Snapshot) ResolverForOffset(id source.FileID, offset int) (*resolver.Resolver, error) {
	sc, err := s.Scopes(id)
	if err != nil || sc == nil {
		return nil, err
	}
	intrinsics, builtins := s.dialectTables(id)
	return resolver.NewForOffset(sc, offset, intrinsics, builtins), nil
}

// ResolverForExpr builds a Resolver scoped to the parent chain of expr's
// own scope.
func (s *Snapshot) ResolverForExpr(id source.FileID, expr hir.ExprId) (*resolver.Resolver, error) {
	sc, err := s.Scopes(id)
	if err != nil || sc == nil {
		return nil, err
	}
	intrinsics, builtins := s.dialectTables(id)
	return resolver.NewForExpr(sc, expr, intrinsics, builtins), nil
}

// QueryFiles runs fn concurrently for every id, using an errgroup so a
// diagnostics sweep or a multi-file rename-impact query can fan out
// across files within one snapshot (different snapshots already run in
// parallel per spec.md §5; this additionally parallelizes within one).
// The first error (including Cancelled, if the writer races ahead) stops
// the remaining work and is returned.
func (s *Snapshot) QueryFiles(ids []source.FileID, fn func(*Snapshot, source.FileID) error) error {
	g, ctx := errgroup.WithContext(context.Background())
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.token.Check(); err != nil {
				return err
			}
			return fn(s, id)
		})
	}
	return g.Wait()
}
