package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/driver"
	"quill/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] file.ql...",
	Short: "Canonicalize quill source formatting",
	Long:  `Fmt rewrites use, function and let headers into canonical form, leaving bodies and comments untouched`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "rewrite files in place instead of printing to stdout")
	fmtCmd.Flags().Bool("check", false, "exit non-zero if any file is not canonically formatted")
}

func runFmt(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	check, _ := cmd.Flags().GetBool("check")

	var dirty []string
	for _, path := range args {
		result, err := driver.Parse(path, maxDiagnostics(cmd))
		if err != nil {
			return fmt.Errorf("fmt failed: %w", err)
		}
		if result.Bag.HasErrors() {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				ShowNotes: true,
			})
			return fmt.Errorf("cannot format %s: file does not parse", path)
		}

		formatted, err := format.FormatFile(result.File, result.Builder, result.FileID)
		if err != nil {
			return err
		}

		switch {
		case check:
			if !bytes.Equal(formatted, result.File.Content) {
				dirty = append(dirty, path)
			}
		case write:
			if !bytes.Equal(formatted, result.File.Content) {
				if err := os.WriteFile(path, formatted, 0o644); err != nil {
					return err
				}
			}
		default:
			if _, err := os.Stdout.Write(formatted); err != nil {
				return err
			}
		}
	}

	if len(dirty) > 0 {
		for _, path := range dirty {
			fmt.Fprintln(os.Stdout, path)
		}
		return fmt.Errorf("%d files need formatting", len(dirty))
	}
	return nil
}
