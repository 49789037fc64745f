package id3

import (
	"fmt"
	"strings"
)

// HasV1 reports whether data ends with an ID3v1 trailer.
func HasV1(data []byte) bool {
	return len(data) >= v1Size && string(data[len(data)-v1Size:len(data)-v1Size+3]) == "TAG"
}

// ParseV1 parses the ID3v1 or ID3v1.1 trailer at the end of data.
//
// The fixed-width fields become ID3v2.3 frames (TIT2, TPE1, TALB, TYER,
// COMM, TRCK, TCON) declared as ISO-8859-1, so the result can be written as
// an ID3v2 tag. The genre byte becomes a "(n)" reference.
func ParseV1(data []byte) (*Tag, error) {
	if !HasV1(data) {
		return nil, ErrNoTag
	}
	b := data[len(data)-v1Size:]

	tag := NewTag(V1_0)
	comment := b[97:127]
	var track byte
	if b[125] == 0 && b[126] != 0 {
		tag.Version = V1_1
		comment = b[97:125]
		track = b[126]
	}

	add := func(id string, raw []byte) {
		if s := v1String(raw); s != "" {
			tag.Frames.Add(&TextFrame{id: id, Encoding: EncodingISO, Text: s})
		}
	}
	add("TIT2", b[3:33])
	add("TPE1", b[33:63])
	add("TALB", b[63:93])
	add("TYER", b[93:97])
	if s := v1String(comment); s != "" {
		tag.Frames.Add(&CommentFrame{Encoding: EncodingISO, Language: "eng", Text: s})
	}
	if track != 0 {
		tag.Frames.Add(&TextFrame{id: "TRCK", Encoding: EncodingISO, Text: fmt.Sprint(track)})
	}
	if genre := b[127]; genre != 0xFF {
		tag.Frames.Add(&TextFrame{id: "TCON", Encoding: EncodingISO, Text: fmt.Sprintf("(%d)", genre)})
	}
	return tag, nil
}

// v1String decodes a fixed-width ID3v1 field: it ends at the first NUL and
// trailing spaces are padding.
func v1String(b []byte) string {
	return strings.TrimRight(latin1(trimAtNUL(b)), " ")
}
