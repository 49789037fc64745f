package recode

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultCodec is the double-byte codec assumed when none is configured.
const DefaultCodec = "cp932"

// Stages of a reinterpretation.
const (
	StageEncode = "encode"
	StageDecode = "decode"
)

// errUndefinedSequence is the cause recorded when the double-byte codec has
// no mapping for a byte sequence.
var errUndefinedSequence = errors.New("undefined byte sequence")

// codecAliases maps the codec names accepted in configuration to
// WHATWG encoding labels.
var codecAliases = map[string]string{
	"cp932":       "shift_jis",
	"ms932":       "shift_jis",
	"windows-31j": "shift_jis",
	"shift_jis":   "shift_jis",
	"shift-jis":   "shift_jis",
	"sjis":        "shift_jis",
	"euc-jp":      "euc-jp",
	"eucjp":       "euc-jp",
}

// ReinterpretError reports why a string could not be reinterpreted.
type ReinterpretError struct {
	// Stage is StageEncode when the string held a rune the single-byte
	// codec cannot represent, or StageDecode when the bytes are not valid
	// in the double-byte codec.
	Stage string

	// Offset is the byte offset of the offending rune or byte.
	Offset int

	Err error
}

func (e *ReinterpretError) Error() string {
	return fmt.Sprintf("reinterpret: %s at offset %d: %v", e.Stage, e.Offset, e.Err)
}

func (e *ReinterpretError) Unwrap() error { return e.Err }

// Reinterpreter undoes one specific kind of mojibake: text whose bytes were
// written in a double-byte codec but decoded as ISO-8859-1.
//
// A Reinterpreter holds no mutable state and is safe for concurrent use.
type Reinterpreter struct {
	name   string
	source encoding.Encoding
	target encoding.Encoding
}

// NewReinterpreter returns a Reinterpreter that decodes with the named
// double-byte codec. Accepted names are cp932 (also ms932, windows-31j,
// shift_jis, sjis) and euc-jp. An empty name selects DefaultCodec.
func NewReinterpreter(codec string) (*Reinterpreter, error) {
	if codec == "" {
		codec = DefaultCodec
	}
	label, ok := codecAliases[strings.ToLower(strings.TrimSpace(codec))]
	if !ok {
		return nil, fmt.Errorf("unsupported codec %q", codec)
	}
	target, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("codec %q: %w", codec, err)
	}
	return &Reinterpreter{
		name:   strings.ToLower(codec),
		source: charmap.ISO8859_1,
		target: target,
	}, nil
}

// Codec returns the configured codec name.
func (r *Reinterpreter) Codec() string {
	return r.name
}

// Reinterpret converts s back to the bytes it was decoded from and decodes
// those bytes with the double-byte codec.
//
// The decoder of golang.org/x/text substitutes U+FFFD for sequences it
// cannot map. Since s can only contain runes up to U+00FF once it has been
// encoded, any U+FFFD in the result marks an undefined sequence and fails
// the conversion.
func (r *Reinterpreter) Reinterpret(s string) (string, error) {
	raw, n, err := transform.String(r.source.NewEncoder(), s)
	if err != nil {
		return "", &ReinterpretError{Stage: StageEncode, Offset: n, Err: err}
	}

	out, err := r.target.NewDecoder().String(raw)
	if err != nil {
		return "", &ReinterpretError{Stage: StageDecode, Offset: 0, Err: err}
	}
	if i := strings.IndexRune(out, '\ufffd'); i >= 0 {
		return "", &ReinterpretError{Stage: StageDecode, Offset: rawOffset(r.target, out[:i]), Err: errUndefinedSequence}
	}
	return out, nil
}

// rawOffset returns the number of encoded bytes that decode to prefix.
func rawOffset(enc encoding.Encoding, prefix string) int {
	if prefix == "" {
		return 0
	}
	b, err := enc.NewEncoder().String(prefix)
	if err != nil {
		return 0
	}
	return len(b)
}
