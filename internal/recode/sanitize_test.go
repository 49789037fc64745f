package recode

import (
	"testing"

	"github.com/handiism/id3-recode/internal/id3"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeFrames(t *testing.T) {
	broken := id3.NewRawFrame("TXXX", []byte("\x00no terminator"))
	broken.Err = id3.ErrInvalidText

	tag := id3.NewTag(id3.V2_3)
	tag.SetTitle("Title")
	tag.Frames.Add(id3.NewUserTextFrame("a", "1"))
	tag.SetArtist("Artist")
	tag.Frames.Add(broken)
	tag.Frames.Add(&id3.UserURLFrame{Description: "site", URL: "http://example.com"})
	tag.Frames.Add(id3.NewUserTextFrame("b", "2"))
	tag.SetAlbum("Album")

	removed := SanitizeFrames(tag)

	assert.Equal(t, 3, removed)
	assert.Equal(t, []string{"TIT2", "TPE1", "WXXX", "TALB"}, tag.Frames.IDs())
	assert.Equal(t, "Title", tag.Title())
	assert.Equal(t, "Artist", tag.Artist())
	assert.Equal(t, "Album", tag.Album())
	assert.Equal(t, "site", tag.Frames.Get("WXXX").(*id3.UserURLFrame).Description)
}

func TestSanitizeFrames_NoOp(t *testing.T) {
	tag := id3.NewTag(id3.V2_4)
	tag.SetTitle("Title")
	tag.Frames.Add(id3.NewRawFrame("PRIV", []byte{1}))

	assert.Equal(t, 0, SanitizeFrames(tag))
	assert.Equal(t, []string{"TIT2", "PRIV"}, tag.Frames.IDs())
}
