package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/starlark-ls/core/source"
)

// PrettyPrinter formats builtin-table introspection for display.
type PrettyPrinter struct {
	indent string
	writer io.Writer
}

// NewPrettyPrinter creates a new PrettyPrinter.
func NewPrettyPrinter(w io.Writer) *PrettyPrinter {
	return &PrettyPrinter{indent: "  ", writer: w}
}

// SetIndent sets the indentation string.
func (p *PrettyPrinter) SetIndent(indent string) {
	p.indent = indent
}

// PrintBuiltins prints every function and variable registered in b.
func (p *PrettyPrinter) PrintBuiltins(b *source.Builtins) error {
	return p.printJSON(IntrospectBuiltins(b))
}

// PrintFunction prints a single function signature.
func (p *PrettyPrinter) PrintFunction(sig source.FunctionSig) error {
	return p.printJSON(IntrospectFunction(sig))
}

func (p *PrettyPrinter) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", p.indent)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.writer, string(data))
	return err
}

// FormatFunctionSummary returns a one-line summary of a function's formal
// parameter list, e.g. "select(x, no_match_error?)" or "struct(**kwargs)".
func FormatFunctionSummary(sig source.FunctionSig) string {
	var sb strings.Builder
	sb.WriteString(sig.Name)
	sb.WriteString("(")

	info := IntrospectFunction(sig)
	parts := make([]string, 0, len(info.Params))
	for _, param := range info.Params {
		switch param.Kind {
		case "args":
			parts = append(parts, "*"+param.Name)
		case "kwargs":
			parts = append(parts, "**"+param.Name)
		default:
			s := param.Name
			if param.HasDefault {
				s += "?"
			}
			parts = append(parts, s)
		}
	}
	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteString(")")
	return sb.String()
}

// FormatBuiltinsSummary returns one summary line per registered function,
// sorted by name.
func FormatBuiltinsSummary(b *source.Builtins) []string {
	sigs := b.Functions()
	names := make([]string, 0, len(sigs))
	for name := range sigs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, FormatFunctionSummary(sigs[name]))
	}
	return out
}
