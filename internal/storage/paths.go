package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Join builds a path under root and rejects any result that escapes it.
// All entity folder construction goes through here so that a crafted idx or
// filename can never traverse out of the group's subtree.
func Join(root string, parts ...string) (string, error) {
	p := filepath.Join(append([]string{root}, parts...)...)
	cleanRoot := filepath.Clean(root)
	if p != cleanRoot && !strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes root %q", p, cleanRoot)
	}
	return p, nil
}

// Entity folder kinds under a group's storage root.
const (
	KindCourse   = "course"
	KindPost     = "post"
	KindUserIcon = "userIcon"
	KindUserInfo = "userInfo"
)

// EntityFolder resolves the deterministic folder for an entity:
// <root>/<kind>/<idx>[/<sub>...].
func EntityFolder(root, kind, idx string, sub ...string) (string, error) {
	return Join(root, append([]string{kind, idx}, sub...)...)
}
