package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Committed is the result of moving a staged file into its permanent,
// entity-owned location.
type Committed struct {
	ID       string
	Filename string
	Path     string
}

// Commit relocates a staged file into dir under a fresh uuid name, keeping
// only the original extension. The directory (and parents) are created if
// absent. The move is an atomic rename; crossing a filesystem boundary falls
// back to copy-then-delete with cleanup of the partial destination on
// failure. After a successful return the staged path no longer exists.
func Commit(staged *StagedFile, dir string) (*Committed, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create entity folder %s: %w", dir, err)
	}

	id := uuid.New().String()
	name := id + filepath.Ext(staged.OriginalName)
	dest := filepath.Join(dir, name)

	if err := moveFile(staged.Path, dest); err != nil {
		return nil, fmt.Errorf("commit %s: %w", staged.OriginalName, err)
	}

	return &Committed{ID: id, Filename: name, Path: dest}, nil
}

func moveFile(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if _, ok := err.(*os.LinkError); !ok {
		return err
	}

	// Rename across filesystems: copy, fsync, then remove the source.
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err == nil {
		err = out.Sync()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return err
	}

	return os.Remove(src)
}

// RemoveEntityFolder deletes an entity's whole subtree. Missing folders are
// not an error.
func RemoveEntityFolder(path string) error {
	return os.RemoveAll(path)
}
