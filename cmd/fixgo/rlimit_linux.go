//go:build linux

package main

import (
	"log"
	"syscall"
)

// applyMemoryLimit sets RLIMIT_AS to bytes, best-effort: a failure is logged,
// not fatal, matching spec.md §5's "OS-level address-space cap" being an
// optional safety net rather than a guarantee the engine itself relies on.
func applyMemoryLimit(bytes int64) {
	limit := syscall.Rlimit{Cur: uint64(bytes), Max: uint64(bytes)}
	if err := syscall.Setrlimit(syscall.RLIMIT_AS, &limit); err != nil {
		log.Printf("fixgo: --memory-limit: set RLIMIT_AS: %v", err)
	}
}
