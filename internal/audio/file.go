package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dhowden/tag"
	"github.com/handiism/id3-recode/internal/id3"
	ioutils "github.com/handiism/id3-recode/internal/io"
)

// DefaultBackupExtension is appended to the path of a backup copy.
const DefaultBackupExtension = ".orig"

// File is one audio file loaded into memory.
type File struct {
	path      string
	data      []byte
	tag       *id3.Tag
	fileType  tag.FileType
	backedUp  bool
	saveCount int
}

// SaveOptions controls how File.Save serializes the tag.
type SaveOptions struct {
	// Version is the ID3v2 version to write (V2_3 or V2_4).
	Version id3.Version

	// Encoding is used for every text frame.
	Encoding id3.Encoding

	// Padding is the number of zero bytes reserved after the frames.
	Padding int

	// Backup copies the original file before it is first overwritten.
	Backup bool

	// BackupExtension is appended to the path of the backup copy.
	// Empty means DefaultBackupExtension.
	BackupExtension string
}

// Load reads path and parses its ID3 tag.
//
// A file without an ID3 tag, or in a container that does not carry ID3
// (FLAC, Ogg, MP4, ...), loads successfully with a nil Tag. An unreadable
// file or a corrupt ID3v2 header is an error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := &File{path: path, data: data, fileType: tag.UnknownFileType}
	if _, ft, err := tag.Identify(bytes.NewReader(data)); err == nil {
		f.fileType = ft
	}
	if f.fileType != tag.UnknownFileType && f.fileType != tag.MP3 {
		return f, nil
	}

	t, err := id3.Read(data)
	if errors.Is(err, id3.ErrNoTag) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading tag of %s: %w", path, err)
	}
	f.tag = t
	return f, nil
}

// Path returns the path the file was loaded from.
func (f *File) Path() string { return f.path }

// Tag returns the parsed tag, or nil when the file has none.
func (f *File) Tag() *id3.Tag { return f.tag }

// Size returns the current file size in bytes.
func (f *File) Size() int64 { return int64(len(f.data)) }

// FileType returns the container type detected while loading.
func (f *File) FileType() tag.FileType { return f.fileType }

// Saves returns how many times the file has been written.
func (f *File) Saves() int { return f.saveCount }

// Save encodes the tag with opts and rewrites the file.
//
// Encoding errors, including *id3.UnwritableFrameError, are returned
// unchanged and leave the file untouched. On success the file contents are
// the new ID3v2 tag followed by everything that followed the old one.
func (f *File) Save(opts SaveOptions) error {
	if f.tag == nil {
		return id3.ErrNoTag
	}

	raw, err := f.tag.Encode(id3.EncodeOptions{
		Version:  opts.Version,
		Encoding: opts.Encoding,
		Padding:  opts.Padding,
	})
	if err != nil {
		return err
	}

	// A started save runs to completion
	ctx := context.Background()

	if opts.Backup && !f.backedUp {
		ext := opts.BackupExtension
		if ext == "" {
			ext = DefaultBackupExtension
		}
		if err := ioutils.CopyFile(ctx, f.path, f.path+ext); err != nil {
			return fmt.Errorf("backup: %w", err)
		}
		f.backedUp = true
	}

	out := make([]byte, 0, len(raw)+len(f.data))
	out = append(out, raw...)
	out = append(out, id3.SplitAudio(f.data)...)
	if err := ioutils.WriteFileAtomic(ctx, f.path, out); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	f.data = out
	f.tag.ConvertDates(opts.Version)
	f.tag.Version = opts.Version
	f.saveCount++
	return nil
}
