// Package id3 reads and writes ID3 tags embedded in MP3 files.
//
// This package handles:
//   - ID3v1 and ID3v1.1 trailers (read only)
//   - ID3v2.2, ID3v2.3 and ID3v2.4 containers (read)
//   - ID3v2.3 and ID3v2.4 containers (write)
//   - Text in ISO-8859-1, UTF-16 with BOM, UTF-16BE and UTF-8
//
// Frames are kept in the order they were found on disk. Frames the package
// does not model are carried as RawFrame and written back byte for byte when
// the target version allows it.
//
// # Reading
//
//	data, _ := os.ReadFile("song.mp3")
//	tag, err := id3.Read(data)
//	if errors.Is(err, id3.ErrNoTag) {
//	    // file has no tag
//	}
//	fmt.Println(tag.Version, tag.Title())
//
// ID3v2.2 frame ids are mapped to their ID3v2.3 equivalents while reading,
// so a tag read from a v2.2 container can be written as v2.3.
//
// # Fields
//
// Tag.Fields enumerates every settable text value held by the frames:
//
//	for _, f := range tag.Fields() {
//	    fmt.Printf("%s = %q\n", f.Name, f.Value())
//	}
//
// # Writing
//
//	raw, err := tag.Encode(id3.EncodeOptions{
//	    Version:  id3.V2_3,
//	    Encoding: id3.EncodingUTF16,
//	})
//	var uw *id3.UnwritableFrameError
//	if errors.As(err, &uw) {
//	    fmt.Println("cannot write:", uw.IDs)
//	}
//
// Encode never unsynchronises and never compresses. A frame that has no
// representation in the requested version makes Encode fail with an
// UnwritableFrameError that lists every such frame.
package id3
