package hir

import "go.starlark.net/syntax"

// lineIndex converts a go.starlark.net/syntax.Position (1-based line, 1-based
// column, both measured in runes per the syntax package's convention) into a
// byte offset into the original file contents. go.starlark.net positions
// don't carry a byte offset directly, so this is computed once per Lower
// call from the raw source text.
type lineIndex struct {
	// lineStart[i] is the byte offset of the first byte of line i+1 (1-based
	// lines, so lineStart[0] is always 0).
	lineStart []int
	contents  string
}

func newLineIndex(contents string) lineIndex {
	starts := []int{0}
	for i, c := range []byte(contents) {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{lineStart: starts, contents: contents}
}

// offset converts a 1-based (line, column) position, with column measured in
// runes from the start of the line, to a byte offset.
func (li lineIndex) offset(pos syntax.Position) int {
	line := int(pos.Line)
	if line < 1 {
		line = 1
	}
	if line > len(li.lineStart) {
		return len(li.contents)
	}
	base := li.lineStart[line-1]
	col := int(pos.Col)
	if col <= 1 {
		return base
	}

	// Advance (col-1) runes from base.
	rest := li.contents[base:]
	runes := 0
	for i := range rest {
		if runes == col-1 {
			return base + i
		}
		runes++
	}
	return len(li.contents)
}
