// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strconv"
	"strings"

	"github.com/alnah/go-report2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-report2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-report2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForLayoutOverflow returns hints for content that could not be paginated.
func ForLayoutOverflow(maxPages int) string {
	hints := []string{"check for a runaway input (repeated lines, binary data)"}
	if maxPages > 0 {
		hints = append(hints, "raise the page cap with --max-pages (current: "+strconv.Itoa(maxPages)+")")
	}
	return formatHints(hints)
}

// ForFontFamily returns hints listing the usable font families.
func ForFontFamily(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForDateFormat returns hints for invalid document.date values.
func ForDateFormat() string {
	return format(`use "auto", "auto:DD/MM/YYYY" or a preset such as "auto:extenso"`)
}

// ForListen returns hints for server listen errors.
func ForListen(addr string) string {
	hints := []string{"check that the port is free"}
	if IsInContainer() && (strings.HasPrefix(addr, "127.0.0.1:") || strings.HasPrefix(addr, "localhost:")) {
		hints = append(hints, "bind 0.0.0.0 inside containers")
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
