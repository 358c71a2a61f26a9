package source

import "testing"

func TestCreateAndUpdateFile(t *testing.T) {
	r := NewRegistry(nil, NewBuiltins())
	f := r.CreateFile(1, Standard, nil, "x = 1\n")
	if f.Contents() != "x = 1\n" {
		t.Fatalf("unexpected contents: %q", f.Contents())
	}
	if f.Revision() != 0 {
		t.Fatalf("expected revision 0, got %d", f.Revision())
	}

	r.UpdateFile(1, "x = 2\n")
	got := r.GetFile(1)
	if got.Contents() != "x = 2\n" {
		t.Fatalf("unexpected contents after update: %q", got.Contents())
	}
	if got.Revision() != 1 {
		t.Fatalf("expected revision 1, got %d", got.Revision())
	}
}

func TestUpdateUnknownFileIsNoop(t *testing.T) {
	r := NewRegistry(nil, NewBuiltins())
	r.UpdateFile(99, "whatever")
	if r.GetFile(99) != nil {
		t.Fatalf("expected no file to be created by UpdateFile on unknown id")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	r := NewRegistry(nil, NewBuiltins())
	r.CreateFile(1, Standard, nil, "before")

	snap1 := r.Snapshot()

	r.UpdateFile(1, "after")
	snap2 := r.Snapshot()

	if got := snap1.GetFile(1).Contents(); got != "before" {
		t.Fatalf("snapshot taken before the edit saw %q, want %q", got, "before")
	}
	if got := snap2.GetFile(1).Contents(); got != "after" {
		t.Fatalf("snapshot taken after the edit saw %q, want %q", got, "after")
	}

	// A second snapshot taken right after snap2, with no further writes,
	// must observe identical results.
	snap3 := r.Snapshot()
	if snap3.GetFile(1).Contents() != snap2.GetFile(1).Contents() {
		t.Fatalf("two snapshots after the same writes disagree")
	}
}

func TestBuiltinDefsRoundTrip(t *testing.T) {
	r := NewRegistry(nil, NewBuiltins())
	b := NewBuiltins()
	b.AddVariable("PACKAGE_NAME", TypeRef{Display: "string"})
	r.SetBuiltinDefs(Bazel, b)

	got := r.GetBuiltinDefs(Bazel)
	if ty, ok := got.Variable("PACKAGE_NAME"); !ok || ty.Display != "string" {
		t.Fatalf("expected PACKAGE_NAME variable to round-trip, got %+v, %v", ty, ok)
	}

	if got := r.GetBuiltinDefs(Standard); got == nil {
		t.Fatalf("expected an empty (non-nil) builtins table for an uninstalled dialect")
	}
}
