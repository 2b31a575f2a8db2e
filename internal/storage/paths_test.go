package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin_StaysUnderRoot(t *testing.T) {
	root := t.TempDir()

	p, err := Join(root, "course", "abc", "banner")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "course", "abc", "banner"), p)
}

func TestJoin_RejectsTraversal(t *testing.T) {
	root := t.TempDir()

	for _, parts := range [][]string{
		{".."},
		{"..", "other"},
		{"course", "..", "..", "other"},
		{"../../etc/passwd"},
	} {
		_, err := Join(root, parts...)
		assert.Error(t, err, "parts %v must be rejected", parts)
	}
}

func TestJoin_RootItselfAllowed(t *testing.T) {
	root := t.TempDir()

	p, err := Join(root)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Clean(root), p)
}

func TestEntityFolder_Layout(t *testing.T) {
	root := t.TempDir()

	p, err := EntityFolder(root, KindCourse, "some-idx", "banner")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "course", "some-idx", "banner"), p)

	p, err = EntityFolder(root, KindUserIcon, "some-idx")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "userIcon", "some-idx"), p)
}
