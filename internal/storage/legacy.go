package storage

import (
	"os"

	"github.com/google/uuid"

	"studyhub/internal/domain"
)

// ResolveAttachments returns the explicit attachment records when present.
// Otherwise the entity is a legacy record whose files were written before
// attachment metadata existed: the folder is scanned once and converted to
// explicit records, and migrated=true tells the caller to persist the result
// so the scan never repeats. urlFor builds the canonical API url for a
// stored filename.
func ResolveAttachments(explicit []domain.Attachment, folder string, urlFor func(filename string) string) (records []domain.Attachment, migrated bool, err error) {
	if len(explicit) > 0 {
		return explicit, false, nil
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		full, err := Join(folder, name)
		if err != nil {
			continue
		}
		records = append(records, domain.Attachment{
			ID:          uuid.New().String(),
			Filename:    name,
			DisplayName: name,
			URL:         urlFor(name),
			Original:    full,
		})
	}

	return records, len(records) > 0, nil
}
