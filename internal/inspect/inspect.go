package inspect

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhowden/tag"
	"github.com/dustin/go-humanize"
	"github.com/handiism/id3-recode/internal/audio"
	"github.com/handiism/id3-recode/internal/id3"
	ioutils "github.com/handiism/id3-recode/internal/io"
	"github.com/handiism/id3-recode/internal/recode"
)

// Report describes one file as it is and as it would be converted.
type Report struct {
	Path     string
	Size     int64
	FileType tag.FileType

	// Version and Target are zero when the file has no ID3 tag.
	Version id3.Version
	Target  id3.Version

	// Reader is the file as a standard tag reader sees it, nil when that
	// reader could not parse it.
	Reader *ReaderView

	Fields   []FieldReport
	Frames   []FrameReport
	Pictures []PictureReport
}

// ReaderView holds the common fields reported by a standard tag reader.
type ReaderView struct {
	Format tag.Format
	Title  string
	Artist string
	Album  string
}

// FieldReport is one text field with its proposed replacement.
type FieldReport struct {
	Name     string
	Encoding id3.Encoding
	Current  string
	Proposed string

	// Err is why the value would be left alone.
	Err error
}

// Changed reports whether conversion would rewrite the field.
func (f FieldReport) Changed() bool {
	return f.Err == nil && f.Proposed != f.Current
}

// FrameReport is one frame of the tag.
type FrameReport struct {
	ID   string
	Name string

	// Problem is set for frames that would block a save.
	Problem string
}

// PictureReport describes an attached picture.
type PictureReport struct {
	Type        id3.PictureType
	MIMEType    string
	Description string
	Image       ioutils.ImageInfo
	Err         error
}

// HasTag reports whether the file carries an ID3 tag.
func (r *Report) HasTag() bool {
	return r.Version.Major != 0
}

// Changes returns the number of fields conversion would rewrite.
func (r *Report) Changes() int {
	n := 0
	for _, f := range r.Fields {
		if f.Changed() {
			n++
		}
	}
	return n
}

// Inspect reads path and reports what converting it with r would do.
func Inspect(path string, r *recode.Reinterpreter) (*Report, error) {
	file, err := audio.Load(path)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Path:     path,
		Size:     file.Size(),
		FileType: file.FileType(),
		Reader:   readerView(path),
	}

	t := file.Tag()
	if t == nil {
		return report, nil
	}
	report.Version = t.Version
	report.Target = recode.ResolveVersion(t.Version)

	for _, field := range t.Fields() {
		fr := FieldReport{Name: field.Name, Encoding: frameEncoding(field.Frame), Current: field.Value()}
		fr.Proposed, fr.Err = r.Reinterpret(fr.Current)
		report.Fields = append(report.Fields, fr)
	}

	// Date frames converted for the target version are not written as-is.
	written := make(map[id3.Frame]bool)
	for _, frame := range t.FramesFor(report.Target) {
		written[frame] = true
	}

	for _, frame := range t.Frames.All() {
		fr := FrameReport{ID: frame.ID(), Name: frameName(frame.ID())}
		if written[frame] {
			fr.Problem = frameProblem(frame, report.Target)
		}
		report.Frames = append(report.Frames, fr)

		if pic, ok := frame.(*id3.PictureFrame); ok {
			pr := PictureReport{Type: pic.PictureType, MIMEType: pic.MIMEType, Description: pic.Description}
			pr.Image, pr.Err = ioutils.DescribeImage(pic.Data)
			report.Pictures = append(report.Pictures, pr)
		}
	}
	return report, nil
}

func readerView(path string) *ReaderView {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil
	}
	return &ReaderView{Format: m.Format(), Title: m.Title(), Artist: m.Artist(), Album: m.Album()}
}

func frameEncoding(f id3.Frame) id3.Encoding {
	switch f := f.(type) {
	case *id3.TextFrame:
		return f.Encoding
	case *id3.UserTextFrame:
		return f.Encoding
	case *id3.CommentFrame:
		return f.Encoding
	case *id3.LyricsFrame:
		return f.Encoding
	case *id3.PictureFrame:
		return f.Encoding
	case *id3.UserURLFrame:
		return f.Encoding
	}
	return id3.EncodingISO
}

func frameName(id string) string {
	if name, ok := id3.FrameNames[id]; ok {
		return name
	}
	return "unknown"
}

func frameProblem(f id3.Frame, target id3.Version) string {
	raw, ok := f.(*id3.RawFrame)
	switch {
	case ok && raw.Encrypted:
		return "encrypted"
	case ok && raw.Err != nil:
		return raw.Err.Error()
	case !id3.WritableIn(f.ID(), target):
		return fmt.Sprintf("not defined in %s", target)
	}
	return ""
}

// Write renders the report as text.
func (r *Report) Write(w io.Writer) error {
	re := lipgloss.NewRenderer(w)
	title := re.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	dim := re.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	changed := re.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	problem := re.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", title.Render(r.Path), dim.Render(humanize.Bytes(uint64(r.Size))))

	if r.Reader != nil {
		fmt.Fprintf(&b, "  reader (%s): %q / %q / %q\n", r.Reader.Format, r.Reader.Title, r.Reader.Artist, r.Reader.Album)
	}

	if !r.HasTag() {
		b.WriteString(dim.Render("  no ID3 tag") + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "  tag: %s, would be written as %s\n", r.Version, r.Target)

	for _, f := range r.Fields {
		switch {
		case f.Err != nil:
			fmt.Fprintf(&b, "  %-22s [%s] %q %s\n", f.Name, f.Encoding, f.Current, dim.Render("kept: "+f.Err.Error()))
		case f.Changed():
			fmt.Fprintf(&b, "  %-22s [%s] %q -> %s\n", f.Name, f.Encoding, f.Current, changed.Render(fmt.Sprintf("%q", f.Proposed)))
		default:
			fmt.Fprintf(&b, "  %-22s [%s] %q\n", f.Name, f.Encoding, f.Current)
		}
	}

	for _, f := range r.Frames {
		if f.Problem != "" {
			fmt.Fprintf(&b, "  %s (%s): %s\n", f.ID, f.Name, problem.Render(f.Problem))
		}
	}

	for _, p := range r.Pictures {
		if p.Err != nil {
			fmt.Fprintf(&b, "  picture %d %s %q: %s\n", p.Type, p.MIMEType, p.Description, dim.Render("unreadable image"))
			continue
		}
		fmt.Fprintf(&b, "  picture %d %s %q: %s\n", p.Type, p.MIMEType, p.Description, p.Image)
	}

	fmt.Fprintf(&b, "  %d of %d field(s) would change\n", r.Changes(), len(r.Fields))
	_, err := io.WriteString(w, b.String())
	return err
}
