// Package localstore provides a minimal, in-memory implementation of the
// fetchplan external collaborators (LocalRefStore, ConnectivityChecker,
// FetchHeadWriter) for standalone CLI use. A real integration — git's own
// on-disk ref database and commit-graph walker — is exactly the kind of
// opaque external collaborator gitwire treats as out of scope; this package
// exists only so `gitwire fetch`/`gitwire clone` have somewhere to apply
// their results when run without an embedding application.
package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gitwire-go/gitwire/fetchplan"
	"github.com/gitwire-go/gitwire/protocol/hash"
)

// Store is an in-memory LocalRefStore plus a file-backed FetchHeadWriter
// rooted at a destination directory.
type Store struct {
	dir string

	mu   sync.Mutex
	refs map[string]hash.Hash
}

// New returns a Store rooted at dir. dir need not exist yet; Write creates
// it on first use.
func New(dir string) *Store {
	return &Store{dir: dir, refs: make(map[string]hash.Hash)}
}

// Get implements fetchplan.LocalRefStore.
func (s *Store) Get(name string) (hash.Hash, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.refs[name]
	return id, ok
}

// Has implements fetchplan.LocalRefStore.
func (s *Store) Has(obj hash.Hash) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.refs {
		if id.Is(obj) {
			return true
		}
	}
	return false
}

// Names implements fetchplan.LocalRefStore.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.refs))
	for name := range s.refs {
		out = append(out, name)
	}
	return out
}

// ApplyBatch implements fetchplan.LocalRefStore.
func (s *Store) ApplyBatch(_ context.Context, cmds []fetchplan.ReceiveCommand, dryRun bool) ([]fetchplan.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]fetchplan.CommandResult, len(cmds))
	for i, cmd := range cmds {
		results[i] = fetchplan.CommandResult{Command: cmd, Type: fetchplan.CommandUpdate, OK: true}
		if cmd.New.IsZero() {
			results[i].Type = fetchplan.CommandDelete
		}
		if dryRun {
			continue
		}
		if cmd.New.IsZero() {
			delete(s.refs, cmd.RefName)
			continue
		}
		s.refs[cmd.RefName] = cmd.New
	}
	return results, nil
}

// Connectivity is a ConnectivityChecker with no access to a commit graph: it
// always reports "not reachable" (so every fetch actually negotiates) and
// treats any non-zero update as a fast-forward, since a real ancestry check
// needs the RevWalk-equivalent spec §6 explicitly keeps external to this
// module.
type Connectivity struct{}

// Reachable implements fetchplan.ConnectivityChecker.
func (Connectivity) Reachable(context.Context, []hash.Hash) (bool, error) { return false, nil }

// IsAncestor implements fetchplan.ConnectivityChecker.
func (Connectivity) IsAncestor(context.Context, hash.Hash, hash.Hash) (bool, error) { return true, nil }

// Write implements fetchplan.FetchHeadWriter by rewriting
// <dir>/FETCH_HEAD under an exclusive lock: the content is written to a
// sibling "FETCH_HEAD.lock" file created with O_EXCL (so a concurrent fetch
// into the same destination fails outright rather than interleaving), then
// atomically renamed over FETCH_HEAD on success. The lock file is unlinked
// if anything fails before the rename.
func (s *Store) Write(_ context.Context, records []fetchplan.FetchHeadRecord) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("localstore: creating %s: %w", s.dir, err)
	}

	var b strings.Builder
	for _, r := range records {
		forMerge := ""
		if r.NotForMerge {
			forMerge = "not-for-merge"
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\n", r.ID.String(), forMerge, fmt.Sprintf("%s of %s", r.SourceRef, r.SourceURI))
	}

	path := filepath.Join(s.dir, "FETCH_HEAD")
	lockPath := path + ".lock"

	lock, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("localstore: acquiring %s: %w", lockPath, err)
	}

	if _, err := lock.WriteString(b.String()); err != nil {
		lock.Close()
		os.Remove(lockPath)
		return fmt.Errorf("localstore: writing %s: %w", lockPath, err)
	}
	if err := lock.Close(); err != nil {
		os.Remove(lockPath)
		return fmt.Errorf("localstore: closing %s: %w", lockPath, err)
	}

	if err := os.Rename(lockPath, path); err != nil {
		os.Remove(lockPath)
		return fmt.Errorf("localstore: committing %s: %w", path, err)
	}

	return nil
}
