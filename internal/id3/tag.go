package id3

import "fmt"

// Tag is the in-memory model of one file's ID3 metadata.
//
// The named accessors (Title, Artist, ...) are views over specific frames:
// reading returns the current frame text, writing updates the first frame
// with that id or appends a new one.
type Tag struct {
	Version Version
	Frames  FrameSet
}

// NewTag creates an empty tag of version v.
func NewTag(v Version) *Tag {
	return &Tag{Version: v}
}

// Text returns the text of the first text frame with the given id.
func (t *Tag) Text(id string) string {
	if f, ok := t.Frames.Get(id).(*TextFrame); ok {
		return f.Text
	}
	return ""
}

// SetText sets the text of the first text frame with the given id, adding
// the frame when none exists.
func (t *Tag) SetText(id, text string) {
	if f, ok := t.Frames.Get(id).(*TextFrame); ok {
		f.Text = text
		return
	}
	t.Frames.Add(NewTextFrame(id, text))
}

func (t *Tag) Title() string        { return t.Text("TIT2") }
func (t *Tag) SetTitle(s string)    { t.SetText("TIT2", s) }
func (t *Tag) Artist() string       { return t.Text("TPE1") }
func (t *Tag) SetArtist(s string)   { t.SetText("TPE1", s) }
func (t *Tag) Album() string        { return t.Text("TALB") }
func (t *Tag) SetAlbum(s string)    { t.SetText("TALB", s) }
func (t *Tag) AlbumArtist() string  { return t.Text("TPE2") }
func (t *Tag) Composer() string     { return t.Text("TCOM") }
func (t *Tag) SetComposer(s string) { t.SetText("TCOM", s) }
func (t *Tag) Genre() string        { return t.Text("TCON") }
func (t *Tag) Track() string        { return t.Text("TRCK") }

// Year returns TYER, falling back to TDRC.
func (t *Tag) Year() string {
	if y := t.Text("TYER"); y != "" {
		return y
	}
	return t.Text("TDRC")
}

// Comment returns the text of the first COMM frame.
func (t *Tag) Comment() string {
	if f, ok := t.Frames.Get("COMM").(*CommentFrame); ok {
		return f.Text
	}
	return ""
}

// SetComment sets the text of the first COMM frame, adding one when none
// exists.
func (t *Tag) SetComment(s string) {
	if f, ok := t.Frames.Get("COMM").(*CommentFrame); ok {
		f.Text = s
		return
	}
	t.Frames.Add(NewCommentFrame("eng", "", s))
}

// Field is one settable text value held by a frame.
type Field struct {
	// Frame is the frame holding the value.
	Frame Frame

	// Name identifies the value, e.g. "TIT2" or "COMM[1].description".
	Name string

	get func() string
	set func(string)
}

// Value returns the current value.
func (f Field) Value() string { return f.get() }

// Set replaces the value in the frame.
func (f Field) Set(s string) { f.set(s) }

// Fields returns every textual field of the tag, in frame order.
//
// The set is closed: text frame text, TXXX description and value, COMM and
// USLT description and text, APIC description and WXXX description. URLs,
// language codes, MIME types, binary payloads and raw frames are never
// included.
func (t *Tag) Fields() []Field {
	var fields []Field
	seen := make(map[string]int)
	name := func(id, part string) string {
		n := seen[id]
		base := id
		if n > 0 {
			base = fmt.Sprintf("%s[%d]", id, n)
		}
		if part == "" {
			return base
		}
		return base + "." + part
	}

	for _, frame := range t.Frames.All() {
		switch f := frame.(type) {
		case *TextFrame:
			fields = append(fields, Field{Frame: f, Name: name(f.id, ""),
				get: func() string { return f.Text }, set: func(s string) { f.Text = s }})
		case *UserTextFrame:
			fields = append(fields,
				Field{Frame: f, Name: name("TXXX", "description"),
					get: func() string { return f.Description }, set: func(s string) { f.Description = s }},
				Field{Frame: f, Name: name("TXXX", "value"),
					get: func() string { return f.Value }, set: func(s string) { f.Value = s }})
		case *CommentFrame:
			fields = append(fields,
				Field{Frame: f, Name: name("COMM", "description"),
					get: func() string { return f.Description }, set: func(s string) { f.Description = s }},
				Field{Frame: f, Name: name("COMM", "text"),
					get: func() string { return f.Text }, set: func(s string) { f.Text = s }})
		case *LyricsFrame:
			fields = append(fields,
				Field{Frame: f, Name: name("USLT", "description"),
					get: func() string { return f.Description }, set: func(s string) { f.Description = s }},
				Field{Frame: f, Name: name("USLT", "lyrics"),
					get: func() string { return f.Lyrics }, set: func(s string) { f.Lyrics = s }})
		case *PictureFrame:
			fields = append(fields, Field{Frame: f, Name: name("APIC", "description"),
				get: func() string { return f.Description }, set: func(s string) { f.Description = s }})
		case *UserURLFrame:
			fields = append(fields, Field{Frame: f, Name: name("WXXX", "description"),
				get: func() string { return f.Description }, set: func(s string) { f.Description = s }})
		default:
			continue
		}
		seen[frame.ID()]++
	}
	return fields
}
