package domain

import "regexp"

// Attachment describes one committed file owned by an entity. Filename is
// always generated server-side (never the client-supplied name), URL is the
// canonical API path clients fetch it from, and Original is the absolute
// on-disk path inside the owning entity's folder.
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	DisplayName string `json:"name"`
	URL         string `json:"url"`
	Original    string `json:"-"`
}

var uuidV4Re = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// ValidIdx reports whether s is a canonical lower-case UUIDv4. Every entity
// id arriving as a path or body parameter must pass this check before any
// database or filesystem access.
func ValidIdx(s string) bool {
	return len(s) == 36 && uuidV4Re.MatchString(s)
}
