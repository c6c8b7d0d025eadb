package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata for the quill CLI, overridable via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders the version with per-component colors; the suffix
// after the third component stays plain.
func Colored() string {
	parts := strings.SplitN(Version, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2])
}

// Banner builds the multi-line output of `quill version`.
func Banner(colored bool) string {
	var b strings.Builder
	b.WriteString("quill ")
	if colored {
		b.WriteString(Colored())
	} else {
		b.WriteString(Version)
	}
	if GitCommit != "" {
		b.WriteString("\ncommit: " + GitCommit)
	}
	if BuildDate != "" {
		b.WriteString("\nbuilt:  " + BuildDate)
	}
	return b.String()
}
