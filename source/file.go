package source

// FileID identifies a file across its entire lifetime. The File entity it
// points to is replaced, never mutated, when the file's contents change.
type FileID int

// File is an immutable snapshot of a source file. Editing a file produces
// a brand new *File with a bumped Revision; the old snapshot remains valid
// for any Snapshot still pinned to it.
//
// Reference: starpls_common::File (original_source), the teacher's
// implicit notion of "the source backing an Evaluator.Eval call".
type File struct {
	id       FileID
	dialect  Dialect
	info     *FileInfo
	contents string
	revision uint64
}

func newFile(id FileID, dialect Dialect, info *FileInfo, contents string, revision uint64) *File {
	return &File{
		id:       id,
		dialect:  dialect,
		info:     info,
		contents: contents,
		revision: revision,
	}
}

// ID returns the file's identity.
func (f *File) ID() FileID { return f.id }

// Dialect returns the dialect this file is parsed/resolved under.
func (f *File) Dialect() Dialect { return f.dialect }

// Info returns the file's optional metadata, or nil.
func (f *File) Info() *FileInfo { return f.info }

// Contents returns the file's source text.
func (f *File) Contents() string { return f.contents }

// Revision returns the file's monotonically increasing version number.
// Two *File values for the same FileID with equal Revisions are
// guaranteed to carry identical Contents (used by the query engine to
// memoize lowering/scope-building without re-hashing file contents).
func (f *File) Revision() uint64 { return f.revision }

// withContents returns a new File snapshot replacing only the contents,
// bumping the revision. The receiver is left untouched.
func (f *File) withContents(contents string) *File {
	return newFile(f.id, f.dialect, f.info, contents, f.revision+1)
}
