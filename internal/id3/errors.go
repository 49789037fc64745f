package id3

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTag is returned when data carries neither an ID3v2 header nor an
	// ID3v1 trailer.
	ErrNoTag = errors.New("id3: no tag found")

	// ErrInvalidHeader is returned for a malformed ID3v2 header.
	ErrInvalidHeader = errors.New("id3: invalid tag header")

	// ErrInvalidText is returned when a text payload cannot be decoded
	// with its declared encoding.
	ErrInvalidText = errors.New("id3: invalid text payload")

	// ErrUnsupportedEncoding is returned for an unknown text encoding byte,
	// or for an encoding the target version cannot carry.
	ErrUnsupportedEncoding = errors.New("id3: unsupported text encoding")

	errUnwritable = errors.New("id3: frame cannot be re-encoded")
)

// UnsupportedVersionError is returned when a tag header names a version the
// package cannot read, or when encoding is requested for a version it cannot
// write.
type UnsupportedVersionError struct {
	Version Version
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("id3: unsupported version %s", e.Version)
}

// UnwritableFrameError is returned by Tag.Encode when one or more frames
// have no representation in the target version.
type UnwritableFrameError struct {
	Version Version
	IDs     []string
}

func (e *UnwritableFrameError) Error() string {
	return fmt.Sprintf("id3: cannot write %s as %s", strings.Join(e.IDs, ", "), e.Version)
}
