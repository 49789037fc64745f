package ioutils

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "song.mp3")
	dst := src + ".orig"
	writeFile(t, src, "original")

	require.NoError(t, CopyFile(context.Background(), src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestCopyFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CopyFile(ctx, "a", "b")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")
	writeFile(t, path, "old contents")

	require.NoError(t, WriteFileAtomic(context.Background(), path, []byte("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "song.mp3")
	assert.Error(t, WriteFileAtomic(context.Background(), path, []byte("x")))
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.mp3"), "")
	writeFile(t, filepath.Join(dir, "A.MP3"), "")
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.Mp3"), "")
	writeFile(t, filepath.Join(dir, "cover.jpg"), "")
	writeFile(t, filepath.Join(dir, "notes.mp3.txt"), "")

	got, err := FindFiles(context.Background(), dir, []string{".mp3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "A.MP3"),
		filepath.Join(dir, "b.mp3"),
		filepath.Join(dir, "sub", "deep", "c.Mp3"),
	}, got)
}

func TestFindFiles_RegularFileIsReturnedAsIs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.bin")
	writeFile(t, path, "")

	got, err := FindFiles(context.Background(), path, []string{".mp3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, got)
}

func TestFindFiles_Missing(t *testing.T) {
	_, err := FindFiles(context.Background(), filepath.Join(t.TempDir(), "nope"), []string{".mp3"}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFiles_SkipsUnreadableEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp3"), "")
	writeFile(t, filepath.Join(dir, "locked", "b.mp3"), "")
	writeFile(t, filepath.Join(dir, "open", "c.mp3"), "")
	writeFile(t, filepath.Join(dir, "open", "d.mp3"), "")

	locked := filepath.Join(dir, "locked")
	broken := filepath.Join(dir, "open", "d.mp3")
	denied := errors.New("permission denied")
	withWalkErrors(t, map[string]error{locked: denied, broken: denied})

	skipped := make(map[string]error)
	got, err := FindFiles(context.Background(), dir, []string{".mp3"}, func(path string, err error) {
		skipped[path] = err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.mp3"),
		filepath.Join(dir, "open", "c.mp3"),
	}, got)
	assert.Equal(t, map[string]error{locked: denied, broken: denied}, skipped)
}

func TestFindFiles_UnreadableRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp3"), "")
	denied := errors.New("permission denied")
	withWalkErrors(t, map[string]error{dir: denied})

	_, err := FindFiles(context.Background(), dir, []string{".mp3"}, nil)
	assert.ErrorIs(t, err, denied)
}

// withWalkErrors makes the walk report errs for the given paths as if
// reading them had failed.
func withWalkErrors(t *testing.T, errs map[string]error) {
	t.Helper()
	orig := walkDir
	walkDir = func(root string, fn fs.WalkDirFunc) error {
		return orig(root, func(path string, d fs.DirEntry, err error) error {
			if injected, ok := errs[path]; ok && err == nil {
				return fn(path, d, injected)
			}
			return fn(path, d, err)
		})
	}
	t.Cleanup(func() { walkDir = orig })
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{"a.mp3", []string{".mp3"}, true},
		{"a.MP3", []string{".mp3"}, true},
		{"a.mp2", []string{".mp3", ".mp2"}, true},
		{"a.flac", []string{".mp3"}, false},
		{"mp3", []string{".mp3"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, HasExtension(tt.path, tt.exts))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(path))
	require.NoError(t, EnsureDir(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
