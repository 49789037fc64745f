package id3

import "strings"

// ID3v2.3 stores the recording time as TYER (yyyy), TDAT (DDMM) and TIME
// (HHMM), and the original release year as TORY. ID3v2.4 replaces them with
// the TDRC and TDOR timestamps (yyyy[-MM-dd[THH:mm]]).

// FramesFor returns the frames as they are written in version v, with the
// recording and original release dates moved to the frames v defines. A
// frame that already exists in the target form wins over a converted one.
// Dates that cannot be parsed, and frames of any other kind, are returned
// unchanged. The tag itself is not modified.
func (t *Tag) FramesFor(v Version) []Frame {
	switch {
	case v.Is(V2_4):
		return t.datesToV24()
	case v.Is(V2_3):
		return t.datesToV23()
	}
	return t.Frames.All()
}

// ConvertDates replaces the tag's frames with FramesFor(v).
func (t *Tag) ConvertDates(v Version) {
	t.Frames.frames = t.FramesFor(v)
}

func (t *Tag) datesToV24() []Frame {
	tyer := t.Frames.firstText("TYER")
	tory := t.Frames.firstText("TORY")
	hasTDRC := len(t.Frames.GetAll("TDRC")) > 0
	hasTDOR := len(t.Frames.GetAll("TDOR")) > 0

	var out []Frame
	for _, f := range t.Frames.All() {
		tf, ok := f.(*TextFrame)
		if !ok {
			out = append(out, f)
			continue
		}

		switch tf.id {
		case "TYER":
			if hasTDRC || tf != tyer {
				continue
			}
			text := timestamp(tf.Text, t.Frames.textOf("TDAT"), t.Frames.textOf("TIME"))
			out = append(out, &TextFrame{id: "TDRC", Encoding: tf.Encoding, Text: text})
		case "TDAT", "TIME":
			// Merged into TDRC. Without a year they stay and block the save.
			if hasTDRC || tyer != nil {
				continue
			}
			out = append(out, f)
		case "TORY":
			if hasTDOR || tf != tory {
				continue
			}
			out = append(out, &TextFrame{id: "TDOR", Encoding: tf.Encoding, Text: strings.TrimSpace(tf.Text)})
		default:
			out = append(out, f)
		}
	}
	return out
}

func (t *Tag) datesToV23() []Frame {
	tdrc := t.Frames.firstText("TDRC")
	tdor := t.Frames.firstText("TDOR")
	hasTYER := len(t.Frames.GetAll("TYER")) > 0
	hasTDAT := len(t.Frames.GetAll("TDAT")) > 0
	hasTIME := len(t.Frames.GetAll("TIME")) > 0
	hasTORY := len(t.Frames.GetAll("TORY")) > 0

	var out []Frame
	for _, f := range t.Frames.All() {
		tf, ok := f.(*TextFrame)
		if !ok {
			out = append(out, f)
			continue
		}

		switch tf.id {
		case "TDRC":
			if hasTYER {
				continue
			}
			year, date, clock, ok := splitTimestamp(tf.Text)
			if !ok {
				out = append(out, f)
				continue
			}
			if tf != tdrc {
				continue
			}
			out = append(out, &TextFrame{id: "TYER", Encoding: tf.Encoding, Text: year})
			if date != "" && !hasTDAT {
				out = append(out, &TextFrame{id: "TDAT", Encoding: tf.Encoding, Text: date})
			}
			if clock != "" && !hasTIME {
				out = append(out, &TextFrame{id: "TIME", Encoding: tf.Encoding, Text: clock})
			}
		case "TDOR":
			if hasTORY {
				continue
			}
			year, _, _, ok := splitTimestamp(tf.Text)
			if !ok {
				out = append(out, f)
				continue
			}
			if tf != tdor {
				continue
			}
			out = append(out, &TextFrame{id: "TORY", Encoding: tf.Encoding, Text: year})
		default:
			out = append(out, f)
		}
	}
	return out
}

// timestamp joins ID3v2.3 year, DDMM date and HHMM time into an ID3v2.4
// timestamp. Parts that are not well formed are left out; a year that is
// not four digits is returned as is.
func timestamp(year, date, clock string) string {
	year = strings.TrimSpace(year)
	if !isDigits(year, 4) {
		return year
	}
	date = strings.TrimSpace(date)
	if !isDigits(date, 4) {
		return year
	}
	ts := year + "-" + date[2:4] + "-" + date[0:2]
	if clock = strings.TrimSpace(clock); isDigits(clock, 4) {
		ts += "T" + clock[0:2] + ":" + clock[2:4]
	}
	return ts
}

// splitTimestamp splits an ID3v2.4 timestamp into ID3v2.3 year, DDMM date
// and HHMM time. Date and time are empty when the timestamp stops before
// them. ok is false when s does not start with a four digit year.
func splitTimestamp(s string) (year, date, clock string, ok bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || !isDigits(s[:4], 4) || (len(s) > 4 && s[4] != '-') {
		return "", "", "", false
	}
	year = s[:4]
	if len(s) >= 10 && s[7] == '-' && isDigits(s[5:7], 2) && isDigits(s[8:10], 2) {
		date = s[8:10] + s[5:7]
		if len(s) >= 16 && s[10] == 'T' && s[13] == ':' && isDigits(s[11:13], 2) && isDigits(s[14:16], 2) {
			clock = s[11:13] + s[14:16]
		}
	}
	return year, date, clock, true
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < n; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
