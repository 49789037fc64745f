package recode

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/id3-recode/internal/id3"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// mpegFrame is a single silent MPEG-1 Layer III frame.
var mpegFrame = append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 413)...)

// garbleWith returns s as a reader shows it when s was encoded with enc
// but declared as ISO-8859-1.
func garbleWith(t *testing.T, enc encoding.Encoding, s string) string {
	t.Helper()
	raw, err := enc.NewEncoder().String(s)
	require.NoError(t, err)
	out, err := charmap.ISO8859_1.NewDecoder().String(raw)
	require.NoError(t, err)
	return out
}

func garble(t *testing.T, s string) string {
	t.Helper()
	return garbleWith(t, japanese.ShiftJIS, s)
}

// sjis returns the Shift_JIS bytes of s.
func sjis(t *testing.T, s string) string {
	t.Helper()
	raw, err := japanese.ShiftJIS.NewEncoder().String(s)
	require.NoError(t, err)
	return raw
}

// frame23 builds an ID3v2.3 frame with no flags.
func frame23(id, payload string) []byte {
	b := []byte(id)
	b = binary.BigEndian.AppendUint32(b, uint32(len(payload)))
	b = append(b, 0, 0)
	return append(b, payload...)
}

// container23 wraps frames in an ID3v2.3 header.
func container23(frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	n := len(body)
	h := []byte{'I', 'D', '3', 3, 0, 0, byte(n >> 21 & 0x7f), byte(n >> 14 & 0x7f), byte(n >> 7 & 0x7f), byte(n & 0x7f)}
	return append(h, body...)
}

func writeMP3(t *testing.T, tagBytes []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, append(append([]byte{}, tagBytes...), mpegFrame...), 0o644))
	return path
}

// encodeISO serializes tag with every text frame declared ISO-8859-1, the
// way legacy taggers stored Shift_JIS bytes.
func encodeISO(t *testing.T, tag *id3.Tag) []byte {
	t.Helper()
	raw, err := tag.Encode(id3.EncodeOptions{Version: tag.Version, Encoding: id3.EncodingISO})
	require.NoError(t, err)
	return raw
}

func readTag(t *testing.T, path string) *id3.Tag {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tag, err := id3.Read(data)
	require.NoError(t, err)
	return tag
}
