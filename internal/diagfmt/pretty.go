package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"quill/internal/diag"
	"quill/internal/source"
)

// Pretty writes diagnostics in the classic compiler shape. Callers sort
// the bag first when they want positional order:
//
//	main.ql:3:5: error[SEMA3003]: cannot resolve 'turn'
//	    turn;
//	    ^~~~
//	  note: declared inside the loop body
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts, pal)
	}
}

type palette struct {
	severity map[diag.Severity]func(format string, a ...interface{}) string
	code     func(format string, a ...interface{}) string
	caret    func(format string, a ...interface{}) string
	note     func(format string, a ...interface{}) string
}

func newPalette(enabled bool) palette {
	plain := fmt.Sprintf
	if !enabled {
		return palette{
			severity: map[diag.Severity]func(string, ...interface{}) string{
				diag.SevError:   plain,
				diag.SevWarning: plain,
				diag.SevInfo:    plain,
			},
			code:  plain,
			caret: plain,
			note:  plain,
		}
	}
	return palette{
		severity: map[diag.Severity]func(string, ...interface{}) string{
			diag.SevError:   color.New(color.FgRed, color.Bold).SprintfFunc(),
			diag.SevWarning: color.New(color.FgYellow, color.Bold).SprintfFunc(),
			diag.SevInfo:    color.New(color.FgCyan).SprintfFunc(),
		},
		code:  color.New(color.Faint).SprintfFunc(),
		caret: color.New(color.FgGreen, color.Bold).SprintfFunc(),
		note:  color.New(color.Faint).SprintfFunc(),
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity[d.Severity]
	head := sev("%s", d.Severity.String()) + pal.code("[%s]", d.Code.ID())

	file := fs.Get(d.Primary.File)
	if file == nil || d.Primary.Empty() && d.Primary.Start == 0 {
		// spanless diagnostics (manifest, timings) print bare
		fmt.Fprintf(w, "quill: %s: %s\n", head, d.Message)
	} else {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			displayPath(file, fs, opts.PathMode), start.Line, start.Col, head, d.Message)
		writeContext(w, file, fs, d.Primary, pal)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s: %s\n", pal.note("note"), note.Msg)
			if nf := fs.Get(note.Span.File); nf != nil && !note.Span.Empty() {
				nstart, _ := fs.Resolve(note.Span)
				fmt.Fprintf(w, "    at %s:%d:%d\n", displayPath(nf, fs, opts.PathMode), nstart.Line, nstart.Col)
			}
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s: %s\n", pal.note("fix"), fix.Title)
		}
	}
}

// writeContext prints the offending line with an underline. Widths are
// measured with runewidth so carets line up under wide runes too.
func writeContext(w io.Writer, file *source.File, fs *source.FileSet, span source.Span, pal palette) {
	start, end := fs.Resolve(span)
	line := lineText(file, start.Line)
	if line == "" && start.Col <= 1 && span.Len() == 0 {
		return
	}

	fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(line, "\t", " "))

	prefixRunes := int(start.Col) - 1
	if prefixRunes < 0 {
		prefixRunes = 0
	}
	runes := []rune(line)
	if prefixRunes > len(runes) {
		prefixRunes = len(runes)
	}
	pad := runewidth.StringWidth(string(runes[:prefixRunes]))

	underlineRunes := len(runes) - prefixRunes
	if end.Line == start.Line {
		underlineRunes = int(end.Col) - int(start.Col)
	}
	if underlineRunes < 1 {
		underlineRunes = 1
	}
	limit := prefixRunes + underlineRunes
	if limit > len(runes) {
		limit = len(runes)
	}
	width := runewidth.StringWidth(string(runes[prefixRunes:limit]))
	if width < 1 {
		width = 1
	}

	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), pal.caret("%s", marker))
}

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeRelative, PathModeAuto:
		if base := fs.BaseDir(); base != "" {
			if rel, err := filepath.Rel(base, f.Path); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
		return f.Path
	default:
		return f.Path
	}
}

// lineText returns the 1-based line without its trailing newline.
func lineText(f *source.File, line uint32) string {
	if line == 0 {
		return ""
	}
	start := uint32(0)
	if line >= 2 {
		idx := line - 2
		if int(idx) >= len(f.LineIdx) {
			return ""
		}
		start = f.LineIdx[idx] + 1
	}
	end := uint32(len(f.Content))
	if int(line-1) < len(f.LineIdx) {
		end = f.LineIdx[line-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
