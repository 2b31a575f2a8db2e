package storage

import (
	"log"
	"os"
	"sync"
)

// Scope owns the staged files of one request. Release removes whatever is
// still sitting at a staged path; files already moved by a commit are skipped
// silently. Release is idempotent and safe on an empty scope, so it can be
// armed unconditionally before any rejecting return path runs.
type Scope struct {
	mu       sync.Mutex
	files    []*StagedFile
	released bool
}

func NewScope() *Scope { return &Scope{} }

func (sc *Scope) Add(f *StagedFile) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.files = append(sc.files, f)
}

// Files returns the staged files in the order they were added.
func (sc *Scope) Files() []*StagedFile {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	out := make([]*StagedFile, len(sc.files))
	copy(out, sc.files)
	return out
}

// Release deletes every staged file that still exists. Delete errors are
// logged and swallowed: cleanup is best-effort and must never mask the
// primary response.
func (sc *Scope) Release() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.released {
		return
	}
	sc.released = true

	for _, f := range sc.files {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("storage: failed to release staged file %s: %v", f.Path, err)
		}
	}
}
