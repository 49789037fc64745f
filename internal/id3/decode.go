package id3

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ID3v2.3 frame format flags.
const (
	v23FlagCompression = 0x80
	v23FlagEncryption  = 0x40
	v23FlagGrouping    = 0x20
)

// ID3v2.4 frame format flags.
const (
	v24FlagGrouping    = 0x40
	v24FlagCompression = 0x08
	v24FlagEncryption  = 0x04
	v24FlagUnsync      = 0x02
	v24FlagDataLength  = 0x01
)

// Read parses the tag carried by the contents of an MP3 file. An ID3v2 tag
// at the start of data wins over an ID3v1 trailer. When there is neither,
// Read returns ErrNoTag.
func Read(data []byte) (*Tag, error) {
	tag, _, err := ParseV2(data)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, ErrNoTag) {
		return nil, err
	}
	return ParseV1(data)
}

// ParseV2 parses the ID3v2 tag at the start of data. It returns the tag and
// the number of bytes it occupies, including header, padding and footer.
//
// Frames that cannot be decoded are kept as RawFrame with Err set. Parsing
// stops at padding, at the first malformed frame header, or at a frame that
// runs past the end of the tag.
func ParseV2(data []byte) (*Tag, int, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, 0, err
	}
	if h.total() > len(data) {
		return nil, 0, fmt.Errorf("%w: tag size %d exceeds data size %d", ErrInvalidHeader, h.total(), len(data))
	}

	body := data[headerSize : headerSize+h.size]
	if h.flags&flagUnsync != 0 && !h.version.Is(V2_4) {
		body = removeUnsync(body)
	}

	tag := NewTag(h.version)
	if h.version.Is(V2_2) {
		if h.flags&flagCompressedV22 != 0 {
			return nil, 0, fmt.Errorf("%w: compressed ID3v2.2 tag", ErrInvalidHeader)
		}
		parseFramesV22(tag, body)
		return tag, h.total(), nil
	}

	if h.flags&flagExtendedHeader != 0 {
		body, err = skipExtendedHeader(h.version, body)
		if err != nil {
			return nil, 0, err
		}
	}
	parseFrames(tag, body)
	return tag, h.total(), nil
}

func skipExtendedHeader(v Version, body []byte) ([]byte, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: truncated extended header", ErrInvalidHeader)
	}
	var n int
	if v.Is(V2_4) {
		// size includes the size field itself
		n = int(synchsafe(body[:4]))
	} else {
		n = 4 + int(uint32be(body[:4]))
	}
	if n < 4 || n > len(body) {
		return nil, fmt.Errorf("%w: extended header size %d", ErrInvalidHeader, n)
	}
	return body[n:], nil
}

func parseFramesV22(tag *Tag, body []byte) {
	for len(body) >= 6 {
		id := string(body[:3])
		if body[0] == 0 || !validFrameID(id, 3) {
			return
		}
		size := int(uint24(body[3:6]))
		if 6+size > len(body) {
			return
		}
		payload := body[6 : 6+size]
		body = body[6+size:]

		if id == "PIC" {
			tag.Frames.Add(parsePIC(payload))
			continue
		}
		if mapped, ok := v22IDs[id]; ok {
			tag.Frames.Add(parseFrame(mapped, payload))
			continue
		}
		tag.Frames.Add(NewRawFrame(id, bytes.Clone(payload)))
	}
}

func parseFrames(tag *Tag, body []byte) {
	v24 := tag.Version.Is(V2_4)
	for len(body) >= headerSize {
		id := string(body[:4])
		if body[0] == 0 || !validFrameID(id, 4) {
			return
		}
		var size int
		if v24 {
			size = int(synchsafe(body[4:8]))
		} else {
			size = int(uint32be(body[4:8]))
		}
		format := body[9]
		if headerSize+size > len(body) {
			return
		}
		payload := body[headerSize : headerSize+size]
		body = body[headerSize+size:]

		var frame Frame
		if v24 {
			frame = decodeFrameV24(id, format, payload)
		} else {
			frame = decodeFrameV23(id, format, payload)
		}
		tag.Frames.Add(frame)
	}
}

func decodeFrameV23(id string, format byte, payload []byte) Frame {
	if format&v23FlagEncryption != 0 {
		return &RawFrame{id: id, Data: bytes.Clone(payload), Encrypted: true}
	}
	var rawSize int
	if format&v23FlagCompression != 0 {
		if len(payload) < 4 {
			return &RawFrame{id: id, Data: bytes.Clone(payload), Err: fmt.Errorf("%w: truncated compressed frame", ErrInvalidText)}
		}
		rawSize = int(uint32be(payload[:4]))
		payload = payload[4:]
	}
	if format&v23FlagGrouping != 0 {
		if len(payload) < 1 {
			return &RawFrame{id: id, Err: fmt.Errorf("%w: missing group id", ErrInvalidText)}
		}
		payload = payload[1:]
	}
	if format&v23FlagCompression != 0 {
		inflated, err := inflate(payload, rawSize)
		if err != nil {
			return &RawFrame{id: id, Data: bytes.Clone(payload), Err: err}
		}
		payload = inflated
	}
	return parseFrame(id, payload)
}

func decodeFrameV24(id string, format byte, payload []byte) Frame {
	if format&v24FlagGrouping != 0 {
		if len(payload) < 1 {
			return &RawFrame{id: id, Err: fmt.Errorf("%w: missing group id", ErrInvalidText)}
		}
		payload = payload[1:]
	}
	if format&v24FlagEncryption != 0 {
		return &RawFrame{id: id, Data: bytes.Clone(payload), Encrypted: true}
	}
	rawSize := -1
	if format&v24FlagDataLength != 0 {
		if len(payload) < 4 {
			return &RawFrame{id: id, Err: fmt.Errorf("%w: missing data length", ErrInvalidText)}
		}
		rawSize = int(synchsafe(payload[:4]))
		payload = payload[4:]
	}
	if format&v24FlagUnsync != 0 {
		payload = removeUnsync(payload)
	}
	if format&v24FlagCompression != 0 {
		inflated, err := inflate(payload, rawSize)
		if err != nil {
			return &RawFrame{id: id, Data: bytes.Clone(payload), Err: err}
		}
		payload = inflated
	}
	return parseFrame(id, payload)
}

func inflate(b []byte, size int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("id3: compressed frame: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("id3: compressed frame: %w", err)
	}
	if size >= 0 && len(out) != size {
		return nil, fmt.Errorf("id3: compressed frame inflated to %d bytes, want %d", len(out), size)
	}
	return out, nil
}

// parseFrame decodes the payload of an ID3v2.3/2.4 frame. Payloads that do
// not decode are kept as RawFrame with Err set.
func parseFrame(id string, payload []byte) Frame {
	var (
		frame Frame
		err   error
	)
	switch {
	case id == "TXXX":
		frame, err = parseUserText(payload)
	case id[0] == 'T':
		frame, err = parseText(id, payload)
	case id == "WXXX":
		frame, err = parseUserURL(payload)
	case id[0] == 'W':
		frame = &URLFrame{id: id, URL: latin1(trimAtNUL(payload))}
	case id == "COMM":
		var enc Encoding
		var lang, desc, text string
		enc, lang, desc, text, err = parseLangText(payload)
		frame = &CommentFrame{Encoding: enc, Language: lang, Description: desc, Text: text}
	case id == "USLT":
		var enc Encoding
		var lang, desc, text string
		enc, lang, desc, text, err = parseLangText(payload)
		frame = &LyricsFrame{Encoding: enc, Language: lang, Description: desc, Lyrics: text}
	case id == "APIC":
		frame, err = parseAPIC(payload)
	default:
		return NewRawFrame(id, bytes.Clone(payload))
	}
	if err != nil {
		return &RawFrame{id: id, Data: bytes.Clone(payload), Err: fmt.Errorf("%s: %w", id, err)}
	}
	return frame
}

func readEncoding(payload []byte) (Encoding, []byte, error) {
	if len(payload) == 0 {
		return EncodingISO, nil, nil
	}
	enc := Encoding(payload[0])
	if !enc.Valid() {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnsupportedEncoding, payload[0])
	}
	return enc, payload[1:], nil
}

func parseText(id string, payload []byte) (*TextFrame, error) {
	enc, rest, err := readEncoding(payload)
	if err != nil {
		return nil, err
	}
	text, err := decodeText(enc, rest)
	if err != nil {
		return nil, err
	}
	return &TextFrame{id: id, Encoding: enc, Text: strings.TrimRight(text, "\x00")}, nil
}

// readTerminated decodes the terminated string at the start of b and returns
// it with the remaining bytes.
func readTerminated(enc Encoding, b []byte) (string, []byte, error) {
	head, rest, ok := splitTerminated(enc, b)
	if !ok {
		return "", nil, fmt.Errorf("%w: missing string terminator", ErrInvalidText)
	}
	s, err := decodeText(enc, head)
	if err != nil {
		return "", nil, err
	}
	return s, rest, nil
}

func parseUserText(payload []byte) (*UserTextFrame, error) {
	enc, rest, err := readEncoding(payload)
	if err != nil {
		return nil, err
	}
	desc, rest, err := readTerminated(enc, rest)
	if err != nil {
		return nil, err
	}
	value, err := decodeText(enc, rest)
	if err != nil {
		return nil, err
	}
	return &UserTextFrame{Encoding: enc, Description: desc, Value: strings.TrimRight(value, "\x00")}, nil
}

func parseUserURL(payload []byte) (*UserURLFrame, error) {
	enc, rest, err := readEncoding(payload)
	if err != nil {
		return nil, err
	}
	desc, rest, err := readTerminated(enc, rest)
	if err != nil {
		return nil, err
	}
	return &UserURLFrame{Encoding: enc, Description: desc, URL: latin1(trimAtNUL(rest))}, nil
}

func parseLangText(payload []byte) (enc Encoding, lang, desc, text string, err error) {
	enc, rest, err := readEncoding(payload)
	if err != nil {
		return
	}
	if len(rest) == 0 {
		return
	}
	if len(rest) < 3 {
		err = fmt.Errorf("%w: missing language", ErrInvalidText)
		return
	}
	lang = strings.TrimRight(string(rest[:3]), "\x00")
	desc, rest, err = readTerminated(enc, rest[3:])
	if err != nil {
		return
	}
	text, err = decodeText(enc, rest)
	text = strings.TrimRight(text, "\x00")
	return
}

func parseAPIC(payload []byte) (*PictureFrame, error) {
	enc, rest, err := readEncoding(payload)
	if err != nil {
		return nil, err
	}
	i := bytes.IndexByte(rest, 0)
	if i < 0 || i+1 >= len(rest) {
		return nil, fmt.Errorf("%w: bad MIME type", ErrInvalidText)
	}
	mime := latin1(rest[:i])
	ptype := PictureType(rest[i+1])
	desc, data, err := readTerminated(enc, rest[i+2:])
	if err != nil {
		return nil, err
	}
	return &PictureFrame{Encoding: enc, MIMEType: mime, PictureType: ptype, Description: desc, Data: bytes.Clone(data)}, nil
}

// parsePIC decodes an ID3v2.2 PIC frame into an APIC frame.
func parsePIC(payload []byte) Frame {
	enc, rest, err := readEncoding(payload)
	if err == nil && len(rest) < 4 {
		err = fmt.Errorf("%w: truncated picture header", ErrInvalidText)
	}
	if err != nil {
		return &RawFrame{id: "APIC", Data: bytes.Clone(payload), Err: fmt.Errorf("PIC: %w", err)}
	}
	format := strings.ToUpper(string(rest[:3]))
	ptype := PictureType(rest[3])
	desc, data, err := readTerminated(enc, rest[4:])
	if err != nil {
		return &RawFrame{id: "APIC", Data: bytes.Clone(payload), Err: fmt.Errorf("PIC: %w", err)}
	}
	mime := "image/" + strings.ToLower(format)
	switch format {
	case "JPG":
		mime = "image/jpeg"
	case "-->":
		mime = "-->"
	}
	return &PictureFrame{Encoding: enc, MIMEType: mime, PictureType: ptype, Description: desc, Data: bytes.Clone(data)}
}

func trimAtNUL(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

func latin1(b []byte) string {
	s, _ := decodeText(EncodingISO, b)
	return s
}
