package query

import (
	"errors"
	"testing"

	"github.com/starlark-ls/core/name"
	"github.com/starlark-ls/core/source"
)

func TestSnapshotScopesAreMemoized(t *testing.T) {
	reg := source.NewRegistry(nil, source.NewBuiltins())
	e := NewEngine(reg)
	e.ApplyChanges([]Change{{Kind: ChangeCreateFile, FileID: 1, Dialect: source.Standard, Contents: "x = 1\n"}})

	snap := e.Snapshot()
	sc1, err := snap.Scopes(1)
	if err != nil {
		t.Fatalf("Scopes: %v", err)
	}
	sc2, err := snap.Scopes(1)
	if err != nil {
		t.Fatalf("Scopes: %v", err)
	}
	if sc1 != sc2 {
		t.Fatalf("expected the same *scope.Scopes instance to be returned from the cache")
	}
}

func TestApplyChangesCancelsOlderSnapshot(t *testing.T) {
	reg := source.NewRegistry(nil, source.NewBuiltins())
	e := NewEngine(reg)
	e.ApplyChanges([]Change{{Kind: ChangeCreateFile, FileID: 1, Dialect: source.Standard, Contents: "x = 1\n"}})

	snap := e.Snapshot()
	e.ApplyChanges([]Change{{Kind: ChangeUpdateFile, FileID: 1, Contents: "x = 2\n"}})

	_, err := snap.Scopes(1)
	if !errors.Is(err, Cancelled) {
		t.Fatalf("expected Cancelled after a concurrent ApplyChanges, got %v", err)
	}
}

func TestRevisionIsolation(t *testing.T) {
	reg := source.NewRegistry(nil, source.NewBuiltins())
	e := NewEngine(reg)
	e.ApplyChanges([]Change{{Kind: ChangeCreateFile, FileID: 1, Dialect: source.Standard, Contents: "x = 1\n"}})

	snap1 := e.Snapshot()
	m1, err := snap1.Module(1)
	if err != nil {
		t.Fatalf("Module: %v", err)
	}

	e.ApplyChanges([]Change{{Kind: ChangeUpdateFile, FileID: 1, Contents: "x = 2\ny = 3\n"}})
	snap2 := e.Snapshot()
	m2, err := snap2.Module(1)
	if err != nil {
		t.Fatalf("Module: %v", err)
	}

	if m1.NumStmts() == m2.NumStmts() {
		t.Fatalf("expected the pre-edit and post-edit modules to differ in statement count")
	}

	// snap1 is now stale (ApplyChanges ran after it was taken) and must
	// report Cancelled rather than silently serving fresh data.
	if _, err := snap1.Module(1); !errors.Is(err, Cancelled) {
		t.Fatalf("expected the older snapshot to observe Cancelled, got %v", err)
	}
}

func TestResolverForModuleFallsBackToIntrinsics(t *testing.T) {
	reg := source.NewRegistry(nil, source.Universe())
	e := NewEngine(reg)
	e.ApplyChanges([]Change{{Kind: ChangeCreateFile, FileID: 1, Dialect: source.Standard, Contents: "y = len\n"}})

	snap := e.Snapshot()
	r, err := snap.ResolverForModule(1)
	if err != nil || r == nil {
		t.Fatalf("ResolverForModule: %v, %v", r, err)
	}
	decls := r.ResolveName(name.New("len"))
	if len(decls) != 1 {
		t.Fatalf("expected len to resolve as an intrinsic, got %+v", decls)
	}
}

func TestQueryFilesFanOut(t *testing.T) {
	reg := source.NewRegistry(nil, source.NewBuiltins())
	e := NewEngine(reg)
	e.ApplyChanges([]Change{
		{Kind: ChangeCreateFile, FileID: 1, Dialect: source.Standard, Contents: "x = 1\n"},
		{Kind: ChangeCreateFile, FileID: 2, Dialect: source.Standard, Contents: "y = 2\n"},
	})
	snap := e.Snapshot()

	seen := make(chan source.FileID, 2)
	err := snap.QueryFiles([]source.FileID{1, 2}, func(s *Snapshot, id source.FileID) error {
		if _, err := s.Scopes(id); err != nil {
			return err
		}
		seen <- id
		return nil
	})
	if err != nil {
		t.Fatalf("QueryFiles: %v", err)
	}
	close(seen)
	count := 0
	for range seen {
		count++
	}
	if count != 2 {
		t.Fatalf("expected both files to be queried, got %d", count)
	}
}
