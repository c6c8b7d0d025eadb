package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/driver"
	"quill/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] file.ql",
	Short: "Apply suggested fixes from diagnostics",
	Long:  `Fix parses the file and applies every machine-applicable fix, like inserting missing semicolons`,
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().BoolP("write", "w", false, "rewrite the file in place instead of printing to stdout")
}

func runFix(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	result, err := driver.Parse(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("fix failed: %w", err)
	}

	out, applied, err := fix.ApplyAll(result.File, result.Bag)
	if err != nil {
		return err
	}
	if applied == 0 {
		if result.Bag.HasErrors() {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				ShowNotes: true,
			})
			return fmt.Errorf("no applicable fixes for %s", args[0])
		}
		if !quiet {
			fmt.Fprintln(os.Stdout, "nothing to fix")
		}
		return nil
	}

	if write {
		if err := os.WriteFile(args[0], out, 0o644); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "applied %d fixes to %s\n", applied, args[0])
		}
		return nil
	}
	_, err = os.Stdout.Write(out)
	return err
}
