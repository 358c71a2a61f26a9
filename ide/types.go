// Package ide is the outermost query surface of the analysis core
// (spec.md §6): Analysis owns the query.Engine, and AnalysisSnapshot
// answers the read-only IDE-shaped questions (completion, diagnostics,
// goto-definition, hover, ...) a language-server front-end would ask.
package ide

import (
	"github.com/starlark-ls/core/hir"
	"github.com/starlark-ls/core/source"
)

// FilePosition is a text position: a file plus a byte offset into it.
type FilePosition struct {
	FileID source.FileID
	Offset int
}

// LocationLinkKind discriminates a reference that stays within the
// current analysis (Local) from one that points outside it, e.g. into a
// dependency the core does not have source for (External).
type LocationLinkKind int

const (
	LocationLocal LocationLinkKind = iota
	LocationExternal
)

// LocationLink is the target of a goto-definition query.
type LocationLink struct {
	Kind LocationLinkKind

	// LocationLocal.
	FileID source.FileID
	Range  hir.TextRange

	// LocationExternal.
	ExternalPath string
}

// Diagnostic is one semantic problem attached to a file (spec.md §7:
// diagnostics are values, never raised as control flow).
type Diagnostic struct {
	FileID  source.FileID
	Range   hir.TextRange
	Message string
}

// SymbolKind discriminates the declaration shapes document_symbols
// reports.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
)

// DocumentSymbol is one top-level declaration in a file's module scope.
type DocumentSymbol struct {
	Name  string
	Kind  SymbolKind
	Range hir.TextRange
}

// CompletionItem is one name visible from a completion position.
type CompletionItem struct {
	Label  string
	Detail string
}

// Hover is a short, human-readable description of whatever is at a
// position: a variable, a function, a parameter, a loaded name, or a
// builtin.
type Hover struct {
	Text string
}

// SignatureInfo describes the formal parameter list of the function
// being called at a signature-help position, plus which parameter index
// (if any) is currently active.
type SignatureInfo struct {
	Label         string
	Params        []string
	ActiveParam   int
	HasActiveParam bool
}
