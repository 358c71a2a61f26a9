package query

import "github.com/starlark-ls/core/source"

// ChangeKind discriminates the two operations a ChangeSet can batch.
type ChangeKind int

const (
	ChangeCreateFile ChangeKind = iota
	ChangeUpdateFile
)

// Change is one create-file or update-file operation.
type Change struct {
	Kind     ChangeKind
	FileID   source.FileID
	Dialect  source.Dialect
	Info     *source.FileInfo
	Contents string
}

// ChangeSet accumulates {create-file, update-file} operations so they can
// be applied atomically, from the writer's perspective, by
// Engine.ApplyChanges (spec.md §6's "Change batch").
type ChangeSet struct {
	changes []Change
}

// NewChangeSet returns an empty ChangeSet.
func NewChangeSet() *ChangeSet { return &ChangeSet{} }

// CreateFile queues a create-or-replace operation.
func (c *ChangeSet) CreateFile(id source.FileID, dialect source.Dialect, info *source.FileInfo, contents string) *ChangeSet {
	c.changes = append(c.changes, Change{
		Kind: ChangeCreateFile, FileID: id, Dialect: dialect, Info: info, Contents: contents,
	})
	return c
}

// UpdateFile queues a contents-replacement operation.
func (c *ChangeSet) UpdateFile(id source.FileID, contents string) *ChangeSet {
	c.changes = append(c.changes, Change{Kind: ChangeUpdateFile, FileID: id, Contents: contents})
	return c
}

// Changes returns the queued operations in the order they were added.
func (c *ChangeSet) Changes() []Change { return c.changes }
