package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/driver"
	"quill/internal/prof"
	"quill/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Check a quill source tree",
	Long:  `Check tokenizes, parses and resolves every unit under path (default ".")`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("stage", "all", "pipeline depth (tokenize|syntax|all)")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	checkCmd.Flags().Bool("no-cache", false, "skip the clean-run disk cache")
	checkCmd.Flags().Bool("progress", false, "render live phase progress (TTY only)")
	checkCmd.Flags().String("cpuprofile", "", "write a CPU profile to this path")
	checkCmd.Flags().String("memprofile", "", "write a heap profile to this path")
	_ = checkCmd.Flags().MarkHidden("cpuprofile")
	_ = checkCmd.Flags().MarkHidden("memprofile")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cpuProfile, _ := cmd.Flags().GetString("cpuprofile")
	memProfile, _ := cmd.Flags().GetString("memprofile")
	session, err := prof.Start(cpuProfile, memProfile)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "quill: profile: %v\n", err)
		}
	}()

	stage, _ := cmd.Flags().GetString("stage")
	format, _ := cmd.Flags().GetString("format")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	progressFlag, _ := cmd.Flags().GetBool("progress")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	opts := driver.CheckOptions{
		Stage:          driver.CheckStage(stage),
		MaxDiagnostics: maxDiagnostics(cmd),
		EnableTimings:  timings,
	}
	if !noCache {
		if cache, err := driver.OpenDiskCache("quill"); err == nil {
			opts.Cache = cache
		}
	}

	var result *driver.CheckResult
	var checkErr error
	if progressFlag && isTerminal(os.Stdout) {
		result, checkErr = runCheckWithProgress(cmd.Context(), dir, opts)
	} else {
		result, checkErr = driver.CheckDir(cmd.Context(), dir, opts)
	}
	if checkErr != nil {
		return checkErr
	}

	if result.CachedClean {
		if !quiet {
			fmt.Fprintln(os.Stdout, "unchanged since last clean check")
		}
		return nil
	}

	result.Bag.Sort()
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			ShowNotes: true,
			ShowFixes: true,
		})
	case "json":
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		return fmt.Errorf("check found %d errors", result.Bag.ErrorCount())
	}
	if !quiet && format == "pretty" {
		fmt.Fprintf(os.Stdout, "checked %d units\n", len(result.Files))
	}
	return nil
}

// runCheckWithProgress drives the pipeline on a worker goroutine while
// the Bubble Tea model consumes phase events on the main one.
func runCheckWithProgress(ctx context.Context, dir string, opts driver.CheckOptions) (*driver.CheckResult, error) {
	events := make(chan driver.PhaseEvent, 16)
	opts.Observer = func(ev driver.PhaseEvent) { events <- ev }

	type outcome struct {
		result *driver.CheckResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := driver.CheckDir(ctx, dir, opts)
		close(events)
		done <- outcome{result, err}
	}()

	model := ui.NewProgressModel("quill check "+dir, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		// drain so the pipeline goroutine never blocks on a dead ui
		for range events {
		}
	}

	out := <-done
	return out.result, out.err
}
