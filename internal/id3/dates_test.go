package id3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textPair struct{ id, text string }

func texts(frames []Frame) []textPair {
	var out []textPair
	for _, f := range frames {
		if tf, ok := f.(*TextFrame); ok {
			out = append(out, textPair{tf.ID(), tf.Text})
		} else {
			out = append(out, textPair{f.ID(), ""})
		}
	}
	return out
}

func TestFramesFor_V24(t *testing.T) {
	tests := []struct {
		name   string
		frames []Frame
		want   []textPair
	}{
		{"year only", []Frame{NewTextFrame("TIT2", "a"), NewTextFrame("TYER", "2001")},
			[]textPair{{"TIT2", "a"}, {"TDRC", "2001"}}},
		{"year date and time", []Frame{NewTextFrame("TYER", "2001"), NewTextFrame("TDAT", "0302"), NewTextFrame("TIME", "1405"), NewTextFrame("TIT2", "a")},
			[]textPair{{"TDRC", "2001-02-03T14:05"}, {"TIT2", "a"}}},
		{"malformed date part dropped", []Frame{NewTextFrame("TYER", "2001"), NewTextFrame("TDAT", "3rd")},
			[]textPair{{"TDRC", "2001"}}},
		{"existing TDRC wins", []Frame{NewTextFrame("TDRC", "1999-12-31"), NewTextFrame("TYER", "2001"), NewTextFrame("TDAT", "0302")},
			[]textPair{{"TDRC", "1999-12-31"}}},
		{"original release year", []Frame{NewTextFrame("TORY", "1985")},
			[]textPair{{"TDOR", "1985"}}},
		{"date without year kept", []Frame{NewTextFrame("TDAT", "0302")},
			[]textPair{{"TDAT", "0302"}}},
		{"other v2.3 frames kept", []Frame{NewTextFrame("TSIZ", "1")},
			[]textPair{{"TSIZ", "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := NewTag(V2_3)
			for _, f := range tt.frames {
				tag.Frames.Add(f)
			}
			before := tag.Frames.IDs()

			assert.Equal(t, tt.want, texts(tag.FramesFor(V2_4)))
			assert.Equal(t, before, tag.Frames.IDs(), "the tag is not modified")
		})
	}
}

func TestFramesFor_V23(t *testing.T) {
	tests := []struct {
		name   string
		frames []Frame
		want   []textPair
	}{
		{"year only", []Frame{NewTextFrame("TIT2", "a"), NewTextFrame("TDRC", "2001"), NewTextFrame("TPE1", "b")},
			[]textPair{{"TIT2", "a"}, {"TYER", "2001"}, {"TPE1", "b"}}},
		{"full timestamp", []Frame{NewTextFrame("TDRC", "2001-02-03T14:05:06")},
			[]textPair{{"TYER", "2001"}, {"TDAT", "0302"}, {"TIME", "1405"}}},
		{"year and month", []Frame{NewTextFrame("TDRC", "2001-02")},
			[]textPair{{"TYER", "2001"}}},
		{"existing TYER wins", []Frame{NewTextFrame("TYER", "1999"), NewTextFrame("TDRC", "2001-02-03")},
			[]textPair{{"TYER", "1999"}}},
		{"existing TDAT kept", []Frame{NewTextFrame("TDAT", "3112"), NewTextFrame("TDRC", "2001-02-03")},
			[]textPair{{"TDAT", "3112"}, {"TYER", "2001"}}},
		{"original release time", []Frame{NewTextFrame("TDOR", "1985-06-01")},
			[]textPair{{"TORY", "1985"}}},
		{"unparseable kept", []Frame{NewTextFrame("TDRC", "spring")},
			[]textPair{{"TDRC", "spring"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := NewTag(V2_4)
			for _, f := range tt.frames {
				tag.Frames.Add(f)
			}
			assert.Equal(t, tt.want, texts(tag.FramesFor(V2_3)))
		})
	}
}

func TestEncode_ConvertsDates(t *testing.T) {
	tag := NewTag(V2_4)
	tag.SetTitle("a")
	tag.Frames.Add(NewTextFrame("TDRC", "2001-02-03"))
	tag.Frames.Add(NewUserTextFrame("REPLAYGAIN_TRACK_GAIN", "-6.2 dB"))

	raw, err := tag.Encode(EncodeOptions{Version: V2_3, Encoding: EncodingUTF16})
	require.NoError(t, err)

	out, _, err := ParseV2(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"TIT2", "TYER", "TDAT", "TXXX"}, out.Frames.IDs())
	assert.Equal(t, "2001", out.Year())
	assert.Equal(t, "0302", out.Text("TDAT"))
	assert.Equal(t, []string{"TIT2", "TDRC", "TXXX"}, tag.Frames.IDs(), "encoding leaves the tag alone")

	raw, err = out.Encode(EncodeOptions{Version: V2_4, Encoding: EncodingUTF8})
	require.NoError(t, err)
	back, _, err := ParseV2(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"TIT2", "TDRC", "TXXX"}, back.Frames.IDs())
	assert.Equal(t, "2001-02-03", back.Text("TDRC"))
}

func TestTag_ConvertDates(t *testing.T) {
	tag := NewTag(V2_3)
	tag.Frames.Add(NewTextFrame("TYER", "2001"))
	tag.Frames.Add(NewTextFrame("TORY", "1999"))

	tag.ConvertDates(V2_4)
	assert.Equal(t, []string{"TDRC", "TDOR"}, tag.Frames.IDs())
	assert.Equal(t, "2001", tag.Year())
}
