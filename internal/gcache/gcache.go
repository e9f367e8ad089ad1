// Package gcache caches parsed grammars in memory keyed by a hash of their
// source text, and persists a small provenance manifest across process
// restarts so a long-lived caller (cmd/fixgod) can tell whether a grammar
// file on disk changed since it was last parsed without re-reading and
// re-hashing its bytes. Grounded on server/dao/sqlite.go's
// rezi.EncBinary/rezi.DecBinary pairing (A3 in SPEC_FULL.md's component
// table): the manifest, not the Grammar itself, is what gets REZI-encoded,
// since internal/reachability/grammar.Grammar has no exported field layout
// to round-trip through reflection-based serialization and gains nothing
// from it (re-parsing an already-read source string is cheap; what's
// expensive to repeat across restarts is rediscovering which grammar files
// are already known-good).
package gcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/fixgo/internal/reachability/grammar"
)

// manifestEntry records one previously-parsed grammar source's identity.
type manifestEntry struct {
	Hash     string
	Bytes    int
	UnixTime int64
}

// manifest is the REZI-encoded on-disk provenance record.
type manifest struct {
	Entries []manifestEntry
}

// Store holds parsed grammars in memory for the lifetime of the process,
// backed by an optional on-disk manifest of hashes previously seen.
type Store struct {
	mu           sync.RWMutex
	parsed       map[string]*grammar.Grammar
	manifest     manifest
	manifestPath string
}

// Open loads manifestPath's provenance manifest if present (a missing file is
// not an error: the store simply starts empty) and returns a ready Store.
// manifestPath may be empty, in which case the store never persists to disk.
func Open(manifestPath string) (*Store, error) {
	s := &Store{parsed: map[string]*grammar.Grammar{}, manifestPath: manifestPath}
	if manifestPath == "" {
		return s, nil
	}
	data, err := os.ReadFile(manifestPath)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gcache: read manifest: %w", err)
	}
	var m manifest
	if _, err := rezi.DecBinary(data, &m); err != nil {
		return nil, fmt.Errorf("gcache: decode manifest: %w", err)
	}
	s.manifest = m
	return s, nil
}

// Get returns the parsed grammar for source, parsing and caching it on first
// request. Concurrent calls for the same source text only ever pay the parse
// cost once.
func (s *Store) Get(source string) (*grammar.Grammar, error) {
	key := hashOf(source)

	s.mu.RLock()
	g, ok := s.parsed[key]
	s.mu.RUnlock()
	if ok {
		return g, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.parsed[key]; ok {
		return g, nil
	}

	g, err := grammar.Parse(source)
	if err != nil {
		return nil, err
	}
	s.parsed[key] = g
	s.recordLocked(key, len(source))
	return g, nil
}

// recordLocked adds key to the in-memory manifest and flushes it to disk, if
// a manifest path was given. Caller must hold s.mu.
func (s *Store) recordLocked(key string, size int) {
	for _, e := range s.manifest.Entries {
		if e.Hash == key {
			return
		}
	}
	s.manifest.Entries = append(s.manifest.Entries, manifestEntry{
		Hash: key, Bytes: size, UnixTime: time.Now().Unix(),
	})
	if s.manifestPath == "" {
		return
	}
	data := rezi.EncBinary(s.manifest)
	if err := os.WriteFile(s.manifestPath, data, 0o644); err != nil {
		log.Printf("WARN  gcache: could not persist grammar manifest to %s: %s", s.manifestPath, err)
	}
}

// Seen reports whether source's hash is already recorded in the manifest,
// whether from this process's own parses or a prior process's persisted one.
func (s *Store) Seen(source string) bool {
	key := hashOf(source)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.manifest.Entries {
		if e.Hash == key {
			return true
		}
	}
	return false
}

func hashOf(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
