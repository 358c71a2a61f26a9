// Package main implements starlarkls, a debug CLI over the analysis
// core: it wires a query.Engine up to files read from disk and exposes
// a handful of the same queries a language-server front-end would issue
// through ide.AnalysisSnapshot.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/starlark-ls/core/analysis"
	"github.com/starlark-ls/core/hirbazel"
	"github.com/starlark-ls/core/ide"
	"github.com/starlark-ls/core/source"
	"github.com/starlark-ls/core/telemetry"
)

var (
	verbose bool
	logger  *telemetry.Logger
)

var rootCmd = &cobra.Command{
	Use:   "starlarkls",
	Short: "Debug CLI for the Starlark/Bazel semantic analysis core",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = telemetry.NewDevelopment()
		} else {
			logger, err = telemetry.NewProduction()
		}
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable development logging")
	rootCmd.AddCommand(checkCmd, symbolsCmd, hirCmd, builtinsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// dialectFor guesses a file's dialect from its extension: .bzl/BUILD/
// WORKSPACE files are Bazel, everything else is Standard.
func dialectFor(path string) (source.Dialect, *source.FileInfo) {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, ".bzl"):
		return source.Bazel, &source.FileInfo{APIContext: source.APIContextBzl}
	case base == "BUILD" || base == "BUILD.bazel" || strings.HasSuffix(base, ".BUILD"):
		return source.Bazel, &source.FileInfo{APIContext: source.APIContextBuild}
	case base == "WORKSPACE" || base == "WORKSPACE.bazel":
		return source.Bazel, &source.FileInfo{APIContext: source.APIContextWorkspace}
	default:
		return source.Standard, nil
	}
}

// openAnalysis creates an Analysis with the Bazel builtin table installed
// and loads path as FileID(1), returning the loaded snapshot and id.
func openAnalysis(path string) (*ide.AnalysisSnapshot, source.FileID, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}

	a := ide.New(nil, source.Universe(), ide.Options{Logger: logger})
	a.SetBuiltinDefs(source.Bazel, hirbazel.Builtins())

	dialect, info := dialectFor(path)
	const id source.FileID = 1
	a.Registry().CreateFile(id, dialect, info, string(contents))

	logger.Debug("loaded file", zap.String("path", path), zap.String("dialect", dialect.String()))
	return a.Snapshot(), id, nil
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Print diagnostics for a Starlark file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, id, err := openAnalysis(args[0])
		if err != nil {
			return err
		}
		diags, err := snap.Diagnostics(id)
		if err != nil {
			return err
		}
		if len(diags) == 0 {
			fmt.Println("no diagnostics")
			return nil
		}
		for _, d := range diags {
			fmt.Printf("%d:%d: %s\n", d.Range.Start, d.Range.End, d.Message)
		}
		return nil
	},
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols <file>",
	Short: "List top-level symbols declared in a Starlark file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, id, err := openAnalysis(args[0])
		if err != nil {
			return err
		}
		symbols, err := snap.DocumentSymbols(id)
		if err != nil {
			return err
		}
		for _, s := range symbols {
			kind := "variable"
			if s.Kind == ide.SymbolFunction {
				kind = "function"
			}
			fmt.Printf("%s\t%s\t[%d,%d)\n", kind, s.Name, s.Range.Start, s.Range.End)
		}
		return nil
	},
}

var hirCmd = &cobra.Command{
	Use:   "hir <file>",
	Short: "Dump the lowered HIR tree for a Starlark file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, id, err := openAnalysis(args[0])
		if err != nil {
			return err
		}
		dump, err := snap.ShowHir(id)
		if err != nil {
			return err
		}
		fmt.Print(dump)
		return nil
	},
}

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the Bazel dialect's builtin functions and variables",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, line := range analysis.FormatBuiltinsSummary(hirbazel.Builtins()) {
			fmt.Println(line)
		}
		return nil
	},
}
