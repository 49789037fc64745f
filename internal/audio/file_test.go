package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhowden/tag"
	"github.com/handiism/id3-recode/internal/id3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mpegFrame is a single silent MPEG-1 Layer III frame header plus payload.
var mpegFrame = append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 413)...)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func taggedMP3(t *testing.T, build func(*id3.Tag)) string {
	t.Helper()
	in := id3.NewTag(id3.V2_3)
	build(in)
	raw, err := in.Encode(id3.EncodeOptions{Version: id3.V2_3, Encoding: id3.EncodingISO})
	require.NoError(t, err)
	return writeTemp(t, "song.mp3", append(raw, mpegFrame...))
}

func TestLoad(t *testing.T) {
	path := taggedMP3(t, func(in *id3.Tag) { in.SetTitle("Title") })

	f, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, f.Tag())
	assert.Equal(t, "Title", f.Tag().Title())
	assert.Equal(t, id3.V2_3, f.Tag().Version)
	assert.Equal(t, tag.MP3, f.FileType())
	assert.Equal(t, path, f.Path())
}

func TestLoad_WithoutTag(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"bare mpeg", mpegFrame},
		{"flac", append([]byte("fLaC\x00\x00\x00\x22"), make([]byte, 64)...)},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(writeTemp(t, "file", tt.data))
			require.NoError(t, err)
			assert.Nil(t, f.Tag())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	corrupt := writeTemp(t, "corrupt.mp3", []byte{'I', 'D', '3', 3, 0, 0, 0x80, 0, 0, 0})
	_, err = Load(corrupt)
	assert.ErrorIs(t, err, id3.ErrInvalidHeader)
}

func TestFile_Save(t *testing.T) {
	path := taggedMP3(t, func(in *id3.Tag) { in.SetTitle("old") })
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	f, err := Load(path)
	require.NoError(t, err)
	f.Tag().SetTitle("新しい")

	require.NoError(t, f.Save(SaveOptions{Version: id3.V2_4, Encoding: id3.EncodingUTF16, Backup: true}))
	assert.Equal(t, 1, f.Saves())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := id3.Read(data)
	require.NoError(t, err)
	assert.Equal(t, id3.V2_4, got.Version)
	assert.Equal(t, "新しい", got.Title())
	assert.Equal(t, mpegFrame, id3.SplitAudio(data))

	backup, err := os.ReadFile(path + DefaultBackupExtension)
	require.NoError(t, err)
	assert.Equal(t, original, backup)
}

func TestFile_SaveBacksUpOnce(t *testing.T) {
	path := taggedMP3(t, func(in *id3.Tag) { in.SetTitle("old") })
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	f, err := Load(path)
	require.NoError(t, err)

	opts := SaveOptions{Version: id3.V2_3, Encoding: id3.EncodingUTF16, Backup: true, BackupExtension: ".bak"}
	require.NoError(t, f.Save(opts))
	require.NoError(t, f.Save(opts))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, original, backup, "backup must hold the file as it was before the first write")
}

func TestFile_SaveUnwritableLeavesFileUntouched(t *testing.T) {
	path := taggedMP3(t, func(in *id3.Tag) { in.SetTitle("old") })
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	f, err := Load(path)
	require.NoError(t, err)
	f.Tag().Frames.Add(id3.NewTextFrame("TSST", "disc"))

	err = f.Save(SaveOptions{Version: id3.V2_3, Encoding: id3.EncodingUTF16, Backup: true})
	var uw *id3.UnwritableFrameError
	require.True(t, errors.As(err, &uw), "got %v", err)
	assert.Equal(t, []string{"TSST"}, uw.IDs)
	assert.Equal(t, 0, f.Saves())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data)
	assert.NoFileExists(t, path+DefaultBackupExtension)
}

func TestFile_SaveWithoutTag(t *testing.T) {
	f, err := Load(writeTemp(t, "bare.mp3", mpegFrame))
	require.NoError(t, err)
	assert.ErrorIs(t, f.Save(SaveOptions{Version: id3.V2_3, Encoding: id3.EncodingUTF16}), id3.ErrNoTag)
}

func TestFile_SaveKeepsV1Trailer(t *testing.T) {
	trailer := make([]byte, 128)
	copy(trailer, "TAGv1 title")
	trailer[127] = 0xFF
	path := writeTemp(t, "v1.mp3", append(append([]byte{}, mpegFrame...), trailer...))

	f, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, f.Tag())
	assert.Equal(t, id3.V1_0, f.Tag().Version)
	assert.Equal(t, "v1 title", f.Tag().Title())

	require.NoError(t, f.Save(SaveOptions{Version: id3.V2_3, Encoding: id3.EncodingUTF16}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte{}, mpegFrame...), trailer...), id3.SplitAudio(data))
	assert.True(t, id3.HasV1(data))
}

func TestFile_SaveConvertsDateFrames(t *testing.T) {
	path := taggedMP3(t, func(in *id3.Tag) {
		in.SetTitle("Title")
		in.Frames.Add(id3.NewTextFrame("TYER", "2001"))
	})

	f, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, f.Save(SaveOptions{Version: id3.V2_4, Encoding: id3.EncodingUTF16}))

	assert.Equal(t, id3.V2_4, f.Tag().Version)
	assert.Equal(t, []string{"TIT2", "TDRC"}, f.Tag().Frames.IDs())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, id3.V2_4, reloaded.Tag().Version)
	assert.Equal(t, "2001", reloaded.Tag().Text("TDRC"))
}
