package storage

import (
	"log"
	"os"
	"path/filepath"
)

// maxWalkDepth bounds the recursion. Entity folders are flat in practice;
// anything deeper than this is treated as a cycle and counted as zero.
const maxWalkDepth = 64

// FolderSize returns the total byte size of every regular file under path,
// recursing into subdirectories. It fails only when the top-level path cannot
// be read; unreadable nested entries are logged and counted as zero so that a
// single bad file never fails a quota check.
//
// This is a full synchronous tree walk invoked on every quota-checked write.
// Acceptable at small tenant scale; a known bottleneck beyond it.
func FolderSize(path string) (int64, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, err
	}
	return sizeOfEntries(path, entries, 0), nil
}

func sizeOfEntries(dir string, entries []os.DirEntry, depth int) int64 {
	if depth >= maxWalkDepth {
		log.Printf("storage: folder walk depth limit reached at %s", dir)
		return 0
	}

	var total int64
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if e.IsDir() {
			sub, err := os.ReadDir(p)
			if err != nil {
				log.Printf("storage: skipping unreadable dir %s: %v", p, err)
				continue
			}
			total += sizeOfEntries(p, sub, depth+1)
			continue
		}
		info, err := e.Info()
		if err != nil {
			log.Printf("storage: skipping unreadable entry %s: %v", p, err)
			continue
		}
		total += info.Size()
	}
	return total
}
