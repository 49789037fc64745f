package id3

import (
	"encoding/binary"
)

// mpegFrame is the start of an MPEG-1 Layer III frame header followed by
// silence, enough for readers that sniff for audio after the tag.
var mpegFrame = append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 413)...)

func frame22(id string, payload string) []byte {
	b := []byte(id)
	n := len(payload)
	b = append(b, byte(n>>16), byte(n>>8), byte(n))
	return append(b, payload...)
}

func frame23(id string, flags byte, payload string) []byte {
	b := make([]byte, headerSize, headerSize+len(payload))
	copy(b, id)
	binary.BigEndian.PutUint32(b[4:8], uint32(len(payload)))
	b[9] = flags
	return append(b, payload...)
}

func frame24(id string, flags byte, payload string) []byte {
	b := make([]byte, headerSize, headerSize+len(payload))
	copy(b, id)
	putSynchsafe(b[4:8], uint32(len(payload)))
	b[9] = flags
	return append(b, payload...)
}

func container(minor, flags byte, frames ...[]byte) []byte {
	var body []byte
	for _, f := range frames {
		body = append(body, f...)
	}
	b := []byte{'I', 'D', '3', minor, 0, flags, 0, 0, 0, 0}
	putSynchsafe(b[6:10], uint32(len(body)))
	return append(b, body...)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// addUnsync applies the unsynchronisation scheme to b.
func addUnsync(b []byte) []byte {
	var out []byte
	for _, c := range b {
		out = append(out, c)
		if c == 0xFF {
			out = append(out, 0x00)
		}
	}
	return out
}
