package id3

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMP3 encodes in and writes it in front of a minimal MPEG frame.
func writeMP3(t *testing.T, in *Tag, opts EncodeOptions) string {
	t.Helper()
	raw, err := in.Encode(opts)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test.mp3")
	require.NoError(t, os.WriteFile(path, concat(raw, mpegFrame), 0o600))
	return path
}

func TestEncode_ReadableByID3v2(t *testing.T) {
	for _, v := range []Version{V2_3, V2_4} {
		t.Run(v.String(), func(t *testing.T) {
			in := NewTag(v)
			in.SetTitle("夜に駆ける")
			in.SetArtist("アーティスト")
			in.SetAlbum("アルバム")
			path := writeMP3(t, in, EncodeOptions{Version: v, Encoding: EncodingUTF16, Padding: 128})

			out, err := id3v2.Open(path, id3v2.Options{Parse: true})
			require.NoError(t, err)
			defer out.Close()

			assert.Equal(t, v.Minor, out.Version())
			assert.Equal(t, "夜に駆ける", out.Title())
			assert.Equal(t, "アーティスト", out.Artist())
			assert.Equal(t, "アルバム", out.Album())
		})
	}
}

func TestEncode_ReadableByTagReader(t *testing.T) {
	in := NewTag(V2_3)
	in.SetTitle("夜に駆ける")
	in.SetArtist("アーティスト")
	path := writeMP3(t, in, EncodeOptions{Version: V2_3, Encoding: EncodingUTF16})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	m, err := tag.ReadFrom(f)
	require.NoError(t, err)
	assert.Equal(t, tag.ID3v2_3, m.Format())
	assert.Equal(t, "夜に駆ける", m.Title())
	assert.Equal(t, "アーティスト", m.Artist())
}

func TestRead_TagWrittenByID3v2(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogem.mp3")
	require.NoError(t, os.WriteFile(path, mpegFrame, 0o600))

	w, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	w.SetVersion(4)
	w.SetDefaultEncoding(id3v2.EncodingUTF8)
	w.SetTitle("タイトル")
	w.SetArtist("Artist")
	require.NoError(t, w.Save())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	got, err := Read(data)
	require.NoError(t, err)
	assert.Equal(t, V2_4, got.Version)
	assert.Equal(t, "タイトル", got.Title())
	assert.Equal(t, "Artist", got.Artist())
	assert.Equal(t, mpegFrame, SplitAudio(data))
}
