//go:build !linux

package main

import "log"

// applyMemoryLimit is a no-op outside Linux: RLIMIT_AS enforcement is not
// portable, so --memory-limit is logged and otherwise ignored, matching
// spec.md §5's treatment of the cap as best-effort.
func applyMemoryLimit(bytes int64) {
	log.Printf("fixgo: --memory-limit is not supported on this platform, ignoring")
}
