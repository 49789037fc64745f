package id3

import (
	"bytes"
	"strings"
)

// Frame is one metadata unit of an ID3v2 tag.
//
// A frame's id is fixed when the frame is created. Only the payload
// fields of the concrete types may change.
type Frame interface {
	ID() string

	// body returns the frame payload, without header, as it should be
	// written in a tag of version v with text encoding enc.
	body(v Version, enc Encoding) ([]byte, error)
}

// TextFrame is a text information frame (T000-TZZZ except TXXX).
//
// Multiple values are kept in Text separated by NUL, as ID3v2.4 stores them.
type TextFrame struct {
	id       string
	Encoding Encoding
	Text     string
}

// NewTextFrame creates a text information frame.
func NewTextFrame(id, text string) *TextFrame {
	return &TextFrame{id: id, Encoding: EncodingUTF16, Text: text}
}

func (f *TextFrame) ID() string { return f.id }

func (f *TextFrame) body(_ Version, enc Encoding) ([]byte, error) {
	buf := []byte{byte(enc)}
	for i, value := range strings.Split(f.Text, "\x00") {
		if i > 0 {
			buf = append(buf, enc.terminator()...)
		}
		b, err := encodeText(enc, value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, b...)
	}
	return buf, nil
}

// UserTextFrame is the user defined text frame TXXX.
type UserTextFrame struct {
	Encoding    Encoding
	Description string
	Value       string
}

// NewUserTextFrame creates a TXXX frame.
func NewUserTextFrame(description, value string) *UserTextFrame {
	return &UserTextFrame{Encoding: EncodingUTF16, Description: description, Value: value}
}

func (f *UserTextFrame) ID() string { return "TXXX" }

func (f *UserTextFrame) body(_ Version, enc Encoding) ([]byte, error) {
	return encodeParts(enc, []byte{byte(enc)}, f.Description, f.Value)
}

// CommentFrame is the COMM frame.
type CommentFrame struct {
	Encoding    Encoding
	Language    string
	Description string
	Text        string
}

// NewCommentFrame creates a COMM frame.
func NewCommentFrame(language, description, text string) *CommentFrame {
	return &CommentFrame{Encoding: EncodingUTF16, Language: language, Description: description, Text: text}
}

func (f *CommentFrame) ID() string { return "COMM" }

func (f *CommentFrame) body(_ Version, enc Encoding) ([]byte, error) {
	return encodeParts(enc, langPrefix(enc, f.Language), f.Description, f.Text)
}

// LyricsFrame is the unsynchronised lyrics frame USLT.
type LyricsFrame struct {
	Encoding    Encoding
	Language    string
	Description string
	Lyrics      string
}

// NewLyricsFrame creates a USLT frame.
func NewLyricsFrame(language, description, lyrics string) *LyricsFrame {
	return &LyricsFrame{Encoding: EncodingUTF16, Language: language, Description: description, Lyrics: lyrics}
}

func (f *LyricsFrame) ID() string { return "USLT" }

func (f *LyricsFrame) body(_ Version, enc Encoding) ([]byte, error) {
	return encodeParts(enc, langPrefix(enc, f.Language), f.Description, f.Lyrics)
}

// URLFrame is a URL link frame (W000-WZZZ except WXXX). URLs are always
// ISO-8859-1.
type URLFrame struct {
	id  string
	URL string
}

// NewURLFrame creates a URL link frame.
func NewURLFrame(id, url string) *URLFrame {
	return &URLFrame{id: id, URL: url}
}

func (f *URLFrame) ID() string { return f.id }

func (f *URLFrame) body(Version, Encoding) ([]byte, error) {
	return encodeText(EncodingISO, f.URL)
}

// UserURLFrame is the user defined URL frame WXXX.
type UserURLFrame struct {
	Encoding    Encoding
	Description string
	URL         string
}

func (f *UserURLFrame) ID() string { return "WXXX" }

func (f *UserURLFrame) body(_ Version, enc Encoding) ([]byte, error) {
	buf, err := encodeParts(enc, []byte{byte(enc)}, f.Description)
	if err != nil {
		return nil, err
	}
	url, err := encodeText(EncodingISO, f.URL)
	if err != nil {
		return nil, err
	}
	buf = append(buf, enc.terminator()...)
	return append(buf, url...), nil
}

// PictureType is the APIC picture type byte.
type PictureType byte

// PictureFrontCover marks the front cover image.
const PictureFrontCover PictureType = 0x03

// PictureFrame is the attached picture frame APIC.
type PictureFrame struct {
	Encoding    Encoding
	MIMEType    string
	PictureType PictureType
	Description string
	Data        []byte
}

func (f *PictureFrame) ID() string { return "APIC" }

func (f *PictureFrame) body(_ Version, enc Encoding) ([]byte, error) {
	mime, err := encodeText(EncodingISO, f.MIMEType)
	if err != nil {
		return nil, err
	}
	buf := append([]byte{byte(enc)}, mime...)
	buf = append(buf, 0, byte(f.PictureType))
	buf, err = encodeParts(enc, buf, f.Description)
	if err != nil {
		return nil, err
	}
	buf = append(buf, enc.terminator()...)
	return append(buf, f.Data...), nil
}

// RawFrame carries a frame the package does not model, or one whose payload
// could not be decoded.
//
// A RawFrame with a nil Err is written back unchanged. One with a non-nil
// Err, or an encrypted one, cannot be written at all.
type RawFrame struct {
	id        string
	Data      []byte
	Encrypted bool

	// Err is the decode failure that left the frame raw, if any.
	Err error
}

// NewRawFrame creates a frame with an opaque payload.
func NewRawFrame(id string, data []byte) *RawFrame {
	return &RawFrame{id: id, Data: data}
}

func (f *RawFrame) ID() string { return f.id }

func (f *RawFrame) body(Version, Encoding) ([]byte, error) {
	if f.Err != nil || f.Encrypted {
		return nil, errUnwritable
	}
	return bytes.Clone(f.Data), nil
}

// IsCustomTextFrameID reports whether id names a user defined text frame:
// TXXX, or TXX in an ID3v2.2 tag.
func IsCustomTextFrameID(id string) bool {
	return id == "TXXX" || id == "TXX"
}

func langPrefix(enc Encoding, language string) []byte {
	lang := []byte(language + "\x00\x00\x00")[:3]
	if language == "" {
		lang = []byte("XXX")
	}
	return append([]byte{byte(enc)}, lang...)
}

// encodeParts appends each string in encoding enc to prefix. Every part but
// the last is terminated.
func encodeParts(enc Encoding, prefix []byte, parts ...string) ([]byte, error) {
	buf := prefix
	for i, part := range parts {
		b, err := encodeText(enc, part)
		if err != nil {
			return nil, err
		}
		buf = append(buf, b...)
		if i < len(parts)-1 {
			buf = append(buf, enc.terminator()...)
		}
	}
	return buf, nil
}
