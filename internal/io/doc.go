// Package ioutils provides file system and image inspection utilities.
//
// This package contains functions for:
//   - File copying, used for backups before a tag rewrite
//   - Atomic file replacement
//   - Recursive discovery of audio files by extension
//   - Directory creation
//   - Describing embedded cover art
//
// # File Operations
//
//	// Copy a file
//	err := ioutils.CopyFile(ctx, "/music/song.mp3", "/music/song.mp3.orig")
//
//	// Replace a file without exposing a half-written state
//	err := ioutils.WriteFileAtomic(ctx, "/music/song.mp3", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # File Discovery
//
// FindFiles expands a file or directory argument:
//
//	paths, err := ioutils.FindFiles(ctx, "/music", []string{".mp3"}, nil)
//
// # Image Inspection
//
//	info, err := ioutils.DescribeImage(pictureBytes)
//	fmt.Println(info) // png 500x500, 120 kB
package ioutils
