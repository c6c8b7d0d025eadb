package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.ql",
	Short: "Parse a quill source file and dump its tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("no-tree", false, "only report diagnostics, skip the tree dump")
}

func runParse(cmd *cobra.Command, args []string) error {
	noTree, _ := cmd.Flags().GetBool("no-tree")

	result, err := driver.Parse(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}

	if !noTree {
		diagfmt.DumpAST(os.Stdout, result.Builder, result.FileID)
	}

	if result.Bag.HasErrors() {
		return fmt.Errorf("parse produced %d errors", result.Bag.ErrorCount())
	}
	return nil
}
