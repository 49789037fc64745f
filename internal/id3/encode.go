package id3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// EncodeOptions selects the container version and text encoding used by
// Tag.Encode.
type EncodeOptions struct {
	// Version must be V2_3 or V2_4.
	Version Version

	// Encoding is used for every text-bearing frame, whatever encoding the
	// frame was read with. URLs and MIME types stay ISO-8859-1.
	Encoding Encoding

	// Padding is the number of zero bytes appended after the last frame.
	Padding int
}

// Encode serializes the tag as an ID3v2 container.
//
// Date frames are first moved to the form the target version defines, see
// FramesFor. Every frame is then checked against the target version. When
// any frame cannot be written, Encode returns an *UnwritableFrameError naming all of
// them and produces no output. A frame cannot be written when:
//   - its id is an ID3v2.2 id with no ID3v2.3 equivalent
//   - its id was introduced by ID3v2.4 and the target is ID3v2.3, and it is
//     not a convertible date
//   - its id was removed by ID3v2.4 and the target is ID3v2.4, and it is not
//     a convertible date
//   - it is a RawFrame whose payload failed to decode, or is encrypted
//
// Encode never unsynchronises; the header flags byte is always zero.
func (t *Tag) Encode(opts EncodeOptions) ([]byte, error) {
	if !opts.Version.Writable() {
		return nil, &UnsupportedVersionError{Version: opts.Version}
	}
	if !opts.Encoding.ValidIn(opts.Version) {
		return nil, fmt.Errorf("%w: %s in %s", ErrUnsupportedEncoding, opts.Encoding, opts.Version)
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}

	var (
		frames     bytes.Buffer
		unwritable []string
	)
	for _, f := range t.FramesFor(opts.Version) {
		if !WritableIn(f.ID(), opts.Version) {
			unwritable = appendUnique(unwritable, f.ID())
			continue
		}
		body, err := f.body(opts.Version, opts.Encoding)
		if errors.Is(err, errUnwritable) {
			unwritable = appendUnique(unwritable, f.ID())
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("id3: encode %s: %w", f.ID(), err)
		}
		if err := writeFrame(&frames, opts.Version, f.ID(), body); err != nil {
			return nil, err
		}
	}
	if len(unwritable) > 0 {
		return nil, &UnwritableFrameError{Version: opts.Version, IDs: unwritable}
	}

	size := frames.Len() + opts.Padding
	if size > maxTagSize {
		return nil, fmt.Errorf("id3: tag size %d exceeds %d", size, maxTagSize)
	}

	out := make([]byte, headerSize, headerSize+size)
	copy(out, "ID3")
	out[3] = opts.Version.Minor
	out[4] = opts.Version.Revision
	out[5] = 0
	putSynchsafe(out[6:10], uint32(size))
	out = append(out, frames.Bytes()...)
	out = append(out, make([]byte, opts.Padding)...)
	return out, nil
}

func writeFrame(w *bytes.Buffer, v Version, id string, body []byte) error {
	var hdr [headerSize]byte
	copy(hdr[:4], id)
	if v.Is(V2_4) {
		if len(body) > maxTagSize {
			return fmt.Errorf("id3: frame %s too large: %d bytes", id, len(body))
		}
		putSynchsafe(hdr[4:8], uint32(len(body)))
	} else {
		binary.BigEndian.PutUint32(hdr[4:8], uint32(len(body)))
	}
	w.Write(hdr[:])
	w.Write(body)
	return nil
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
