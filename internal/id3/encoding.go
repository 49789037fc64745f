package id3

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the text encoding byte that prefixes text-bearing frames.
type Encoding byte

const (
	// EncodingISO is ISO-8859-1, the only encoding ID3v1 knows.
	EncodingISO Encoding = 0

	// EncodingUTF16 is UTF-16 with a byte order mark. Written little endian.
	EncodingUTF16 Encoding = 1

	// EncodingUTF16BE is UTF-16 big endian without BOM (ID3v2.4 only).
	EncodingUTF16BE Encoding = 2

	// EncodingUTF8 is UTF-8 (ID3v2.4 only).
	EncodingUTF8 Encoding = 3
)

func (e Encoding) String() string {
	switch e {
	case EncodingISO:
		return "ISO-8859-1"
	case EncodingUTF16:
		return "UTF-16"
	case EncodingUTF16BE:
		return "UTF-16BE"
	case EncodingUTF8:
		return "UTF-8"
	}
	return fmt.Sprintf("Encoding(%d)", byte(e))
}

// Valid reports whether e is one of the four defined encodings.
func (e Encoding) Valid() bool {
	return e <= EncodingUTF8
}

// ValidIn reports whether e may be written in a tag of version v.
func (e Encoding) ValidIn(v Version) bool {
	switch e {
	case EncodingISO, EncodingUTF16:
		return true
	case EncodingUTF16BE, EncodingUTF8:
		return v.Is(V2_4)
	}
	return false
}

func (e Encoding) terminator() []byte {
	if e == EncodingUTF16 || e == EncodingUTF16BE {
		return []byte{0, 0}
	}
	return []byte{0}
}

var (
	utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
)

// decodeText converts b from encoding e to a Go string. Trailing
// terminators are not stripped.
func decodeText(e Encoding, b []byte) (string, error) {
	switch e {
	case EncodingISO:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidText, err)
		}
		return string(out), nil

	case EncodingUTF16:
		b = trimOddNUL(b)
		if len(b)%2 != 0 {
			return "", fmt.Errorf("%w: odd UTF-16 length %d", ErrInvalidText, len(b))
		}
		dec := utf16LE.NewDecoder()
		switch {
		case bytes.HasPrefix(b, []byte{0xFF, 0xFE}):
			b = b[2:]
		case bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
			b = b[2:]
			dec = utf16BE.NewDecoder()
		}
		out, err := dec.Bytes(b)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidText, err)
		}
		return string(out), nil

	case EncodingUTF16BE:
		b = trimOddNUL(b)
		if len(b)%2 != 0 {
			return "", fmt.Errorf("%w: odd UTF-16 length %d", ErrInvalidText, len(b))
		}
		out, err := utf16BE.NewDecoder().Bytes(b)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidText, err)
		}
		return string(out), nil

	case EncodingUTF8:
		if !utf8.Valid(b) {
			return "", fmt.Errorf("%w: invalid UTF-8", ErrInvalidText)
		}
		return string(b), nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnsupportedEncoding, byte(e))
}

// trimOddNUL drops a single trailing NUL that some writers use to terminate
// UTF-16 text.
func trimOddNUL(b []byte) []byte {
	if len(b)%2 != 0 && b[len(b)-1] == 0 {
		return b[:len(b)-1]
	}
	return b
}

// encodeText converts s to encoding e without a terminator.
func encodeText(e Encoding, s string) ([]byte, error) {
	switch e {
	case EncodingISO:
		out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("id3: %q is not representable in ISO-8859-1: %w", s, err)
		}
		return out, nil

	case EncodingUTF16:
		out, err := utf16LE.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, err
		}
		return append([]byte{0xFF, 0xFE}, out...), nil

	case EncodingUTF16BE:
		return utf16BE.NewEncoder().Bytes([]byte(s))

	case EncodingUTF8:
		return []byte(s), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedEncoding, byte(e))
}

// splitTerminated splits b at the first string terminator for encoding e.
// For the UTF-16 variants only terminators on an even offset count.
func splitTerminated(e Encoding, b []byte) (head, rest []byte, ok bool) {
	if e == EncodingUTF16 || e == EncodingUTF16BE {
		for i := 0; i+1 < len(b); i += 2 {
			if b[i] == 0 && b[i+1] == 0 {
				return b[:i], b[i+2:], true
			}
		}
		return b, nil, false
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i], b[i+1:], true
	}
	return b, nil, false
}
