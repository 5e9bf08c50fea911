package report2pdf

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one render runs.
	MinWorkers = 1

	// MaxWorkers caps concurrent renders; each holds a whole document in
	// memory until it is written.
	MaxWorkers = 16
)

// ResolveWorkers determines how many documents to render concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	return max(MinWorkers, min(runtime.GOMAXPROCS(0), MaxWorkers))
}
