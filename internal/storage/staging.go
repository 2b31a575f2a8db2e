package storage

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// StagedFile is an uploaded file parked in the staging directory, pending
// either a commit into an entity folder or release by its request's scope.
// It is never tracked in the database.
type StagedFile struct {
	Path         string
	OriginalName string
	Size         int64
}

// Stager writes inbound multipart files into a single process-wide staging
// directory under collision-resistant generated names. Concurrent requests
// share the directory; name uniqueness is the only guard needed.
type Stager struct {
	tmpDir string
}

func NewStager(tmpDir string) (*Stager, error) {
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir %s: %w", tmpDir, err)
	}
	return &Stager{tmpDir: tmpDir}, nil
}

func (s *Stager) TmpDir() string { return s.tmpDir }

// Stage drains one multipart file into the staging directory. Only the
// original extension is preserved; the rest of the name is generated.
func (s *Stager) Stage(fh *multipart.FileHeader) (*StagedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%d%s", time.Now().UnixNano(), rand.Int63n(1_000_000_000), filepath.Ext(fh.Filename))
	path := filepath.Join(s.tmpDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create staged file: %w", err)
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write staged file: %w", err)
	}

	return &StagedFile{
		Path:         path,
		OriginalName: fh.Filename,
		Size:         size,
	}, nil
}
