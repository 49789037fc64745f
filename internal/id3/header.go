package id3

import (
	"encoding/binary"
	"fmt"
)

const (
	headerSize = 10
	v1Size     = 128

	// maxTagSize is the largest body a 28-bit synchsafe size can describe.
	maxTagSize = 1<<28 - 1
)

// Tag header flags.
const (
	flagUnsync         = 0x80
	flagExtendedHeader = 0x40
	flagCompressedV22  = 0x40
	flagFooter         = 0x10
)

type header struct {
	version Version
	flags   byte

	// size is the tag size as stored in the header: everything after the
	// header, excluding a footer.
	size int
}

// total returns the number of bytes the tag occupies in the file.
func (h header) total() int {
	n := headerSize + h.size
	if h.version.Is(V2_4) && h.flags&flagFooter != 0 {
		n += headerSize
	}
	return n
}

func parseHeader(data []byte) (header, error) {
	if len(data) < headerSize || string(data[:3]) != "ID3" {
		return header{}, ErrNoTag
	}

	h := header{
		version: Version{Major: 2, Minor: data[3], Revision: data[4]},
		flags:   data[5],
	}
	if data[3] == 0xFF || data[4] == 0xFF {
		return header{}, fmt.Errorf("%w: bad version bytes %x %x", ErrInvalidHeader, data[3], data[4])
	}
	if h.version.Minor < 2 || h.version.Minor > 4 {
		return header{}, &UnsupportedVersionError{Version: h.version}
	}
	for _, b := range data[6:10] {
		if b&0x80 != 0 {
			return header{}, fmt.Errorf("%w: size is not synchsafe", ErrInvalidHeader)
		}
	}
	h.size = int(synchsafe(data[6:10]))
	return h, nil
}

// synchsafe decodes a big endian integer stored in 7-bit bytes.
func synchsafe(b []byte) uint32 {
	var n uint32
	for _, c := range b {
		n = n<<7 | uint32(c&0x7F)
	}
	return n
}

// putSynchsafe stores n in four 7-bit bytes.
func putSynchsafe(b []byte, n uint32) {
	b[0] = byte(n>>21) & 0x7F
	b[1] = byte(n>>14) & 0x7F
	b[2] = byte(n>>7) & 0x7F
	b[3] = byte(n) & 0x7F
}

func uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func uint32be(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// removeUnsync undoes the unsynchronisation scheme: every 0xFF 0x00 pair
// becomes 0xFF.
func removeUnsync(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0x00 {
			i++
		}
	}
	return out
}

// SplitAudio returns the bytes that follow the ID3v2 tag at the start of
// data: the audio stream and any trailing ID3v1 tag. Data without an ID3v2
// tag is returned unchanged.
func SplitAudio(data []byte) []byte {
	h, err := parseHeader(data)
	if err != nil {
		return data
	}
	if n := h.total(); n <= len(data) {
		return data[n:]
	}
	return nil
}
