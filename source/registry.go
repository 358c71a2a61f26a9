package source

import "sync"

// Registry is the process-wide File & Builtins Registry (spec.md §4.2): it
// maps FileIDs to File entities and Dialects to their builtin tables, and
// delegates anything it doesn't already know about to the host FileLoader.
//
// Registry is the mutable side of the ground-input boundary; Snapshot
// pins an immutable view of it for the query engine to read from.
type Registry struct {
	mu        sync.RWMutex
	files     map[FileID]*File
	builtins  map[Dialect]*Builtins
	intrinsic *Builtins
	prelude   *FileID
	loader    FileLoader
}

// NewRegistry creates an empty registry backed by loader for anything it
// cannot resolve locally. intrinsics is the engine-wide table consulted
// before any dialect's own builtins (spec.md §4.3's priority (1)).
func NewRegistry(loader FileLoader, intrinsics *Builtins) *Registry {
	return &Registry{
		files:     make(map[FileID]*File),
		builtins:  make(map[Dialect]*Builtins),
		intrinsic: intrinsics,
		loader:    loader,
	}
}

// CreateFile creates or replaces the File for id. The contract is
// "create or replace", not "create or panic": calling it again for an
// existing id installs a fresh snapshot one revision above the replaced
// one, so a revision is never reused for different contents.
func (r *Registry) CreateFile(id FileID, dialect Dialect, info *FileInfo, contents string) *File {
	r.mu.Lock()
	defer r.mu.Unlock()
	var revision uint64
	if old, ok := r.files[id]; ok {
		revision = old.revision + 1
	}
	f := newFile(id, dialect, info, contents, revision)
	r.files[id] = f
	return f
}

// UpdateFile replaces id's contents, bumping its revision. No-op if id is
// unknown.
func (r *Registry) UpdateFile(id FileID, contents string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return
	}
	r.files[id] = f.withContents(contents)
}

// GetFile returns the current snapshot for id, or nil.
func (r *Registry) GetFile(id FileID) *File {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.files[id]
}

// LoadFile resolves a load(...) target through the host FileLoader. On
// success, the resulting file is cached under its FileID. Every call still
// asks the loader; when the loader returns a FileID the registry already
// holds, the cached File is returned and the loader's contents are not
// used.
func (r *Registry) LoadFile(path string, dialect Dialect, from FileID) (*File, error) {
	if r.loader == nil {
		return nil, nil
	}
	res, err := r.loader.LoadFile(path, dialect, from)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	if res == nil {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.files[res.FileID]; ok {
		return existing, nil
	}
	f := newFile(res.FileID, res.Dialect, res.Info, res.Contents, 0)
	r.files[res.FileID] = f
	return f, nil
}

// ListLoadCandidates supports load()-path completion.
func (r *Registry) ListLoadCandidates(path string, from FileID) ([]LoadItemCandidate, error) {
	if r.loader == nil {
		return nil, nil
	}
	from_file := r.GetFile(from)
	if from_file == nil {
		return nil, nil
	}
	candidates, err := r.loader.ListLoadCandidates(path, from_file.Dialect(), from)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	return candidates, nil
}

// ResolvePath resolves path to a ResolvedPath, materializing the owning
// BUILD file as a File if the resolution names a Bazel build target that
// isn't already cached.
func (r *Registry) ResolvePath(path string, dialect Dialect, from FileID) (*ResolvedPath, error) {
	if r.loader == nil {
		return nil, nil
	}
	resolved, err := r.loader.ResolvePath(path, dialect, from)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	if resolved == nil {
		return nil, nil
	}

	if resolved.BuildTarget != nil {
		r.mu.Lock()
		if _, ok := r.files[resolved.BuildTarget.BuildFile]; !ok {
			contents := ""
			if resolved.BuildTarget.Contents != nil {
				contents = *resolved.BuildTarget.Contents
			}
			r.files[resolved.BuildTarget.BuildFile] = newFile(
				resolved.BuildTarget.BuildFile,
				Bazel,
				&FileInfo{APIContext: APIContextBuild, IsExternal: false},
				contents,
				0,
			)
		}
		r.mu.Unlock()
	}

	return resolved, nil
}

// SetBuiltinDefs installs (or replaces) dialect's builtin table.
func (r *Registry) SetBuiltinDefs(dialect Dialect, builtins *Builtins) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtins[dialect] = builtins
}

// GetBuiltinDefs retrieves dialect's builtin table, or an empty one if
// none has been installed yet.
func (r *Registry) GetBuiltinDefs(dialect Dialect) *Builtins {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.builtins[dialect]; ok {
		return b
	}
	return NewBuiltins()
}

// Intrinsics returns the engine-wide intrinsic function table.
func (r *Registry) Intrinsics() *Builtins {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.intrinsic
}

// SetBazelPreludeFile installs the file implicitly loaded before every
// Bazel BUILD file (Bazel's "--incompatible_no_implicit_file_export"-era
// prelude mechanism).
func (r *Registry) SetBazelPreludeFile(id FileID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prelude = &id
}

// BazelPreludeFile returns the installed prelude file, if any.
func (r *Registry) BazelPreludeFile() (FileID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.prelude == nil {
		return 0, false
	}
	return *r.prelude, true
}

// Snapshot pins an immutable view of every File and builtin table
// currently in the registry. Because File values are replaced wholesale
// (never mutated in place) on update, copying the maps' entries is enough
// to give the snapshot a consistent, frozen view — later CreateFile/
// UpdateFile calls on the live Registry install new map entries the
// snapshot never observes.
func (r *Registry) Snapshot() *RegistrySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	files := make(map[FileID]*File, len(r.files))
	for id, f := range r.files {
		files[id] = f
	}
	builtins := make(map[Dialect]*Builtins, len(r.builtins))
	for d, b := range r.builtins {
		builtins[d] = b
	}

	return &RegistrySnapshot{
		files:     files,
		builtins:  builtins,
		intrinsic: r.intrinsic,
		prelude:   r.prelude,
	}
}

// RegistrySnapshot is a read-only, revision-pinned view of a Registry.
type RegistrySnapshot struct {
	files     map[FileID]*File
	builtins  map[Dialect]*Builtins
	intrinsic *Builtins
	prelude   *FileID
}

// GetFile returns the pinned snapshot of id, or nil.
func (s *RegistrySnapshot) GetFile(id FileID) *File {
	return s.files[id]
}

// GetBuiltinDefs returns the pinned builtin table for dialect.
func (s *RegistrySnapshot) GetBuiltinDefs(dialect Dialect) *Builtins {
	if b, ok := s.builtins[dialect]; ok {
		return b
	}
	return NewBuiltins()
}

// Intrinsics returns the pinned engine-wide intrinsic function table.
func (s *RegistrySnapshot) Intrinsics() *Builtins {
	return s.intrinsic
}

// BazelPreludeFile returns the pinned prelude file, if any.
func (s *RegistrySnapshot) BazelPreludeFile() (FileID, bool) {
	if s.prelude == nil {
		return 0, false
	}
	return *s.prelude, true
}
