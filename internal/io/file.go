// Package ioutils provides file system utilities for id3-recode.
//
// This package contains functions for:
//   - File copying (backups)
//   - Atomic file replacement
//   - Recursive file discovery
//   - Directory creation
//
// All functions that accept a context.Context respect cancellation,
// though a single file operation is not interrupted once started.
package ioutils

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with the source file's permissions if it
// doesn't exist, or truncated if it does. The source file must exist and be
// readable.
//
// Returns an error if:
//   - ctx is already cancelled
//   - Source file cannot be opened
//   - Destination file cannot be created
//   - Copy operation fails
//
// Example:
//
//	err := CopyFile(ctx, "/music/song.mp3", "/music/song.mp3.orig")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err = io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

// WriteFileAtomic replaces the contents of path with data.
//
// The data is written to a temporary file in the same directory, synced,
// and renamed over path, so readers never observe a partially written file.
// An existing file keeps its permissions; a new file gets mode 0644.
//
// Example:
//
//	err := WriteFileAtomic(ctx, "/music/song.mp3", append(tag, audio...))
func WriteFileAtomic(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any failure path
	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}

// FindFiles expands root into the files to process.
//
// A regular file is returned as-is regardless of its extension. A directory
// is walked recursively and every file whose extension matches one of exts
// (case-insensitive, with leading dot) is returned in lexical order.
//
// An entry below root that cannot be read is passed to skip, if non-nil,
// and left out of the walk. Only an unreadable root fails the call.
//
// Example:
//
//	paths, err := FindFiles(ctx, "/music", []string{".mp3"}, nil)
//	// [/music/a.mp3 /music/sub/B.MP3]
func FindFiles(ctx context.Context, root string, exts []string, skip func(path string, err error)) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = walkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if skip != nil {
				skip(path, err)
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Type().IsRegular() && HasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

var walkDir = filepath.WalkDir

// HasExtension reports whether path ends in one of exts, ignoring case.
//
//	HasExtension("Song.MP3", []string{".mp3"}) // true
func HasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/home/user/.config/id3recode")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
