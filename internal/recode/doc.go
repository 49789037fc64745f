// Package recode repairs ID3 text that was written in a Japanese double-byte
// codec but declared as ISO-8859-1.
//
// The package is layered leaf-first:
//
//   - Reinterpreter turns one mis-decoded string back into the intended text
//   - Walker applies it to every textual field of a tag
//   - ResolveVersion picks the version a tag is written back as
//   - SanitizeFrames drops user defined text frames
//   - Orchestrator writes the tag with a three-step fallback
//   - Driver ties them together for one file on disk
//
// # Converting a file
//
//	d, err := recode.NewDriver(recode.Options{Codec: "cp932", Backup: true})
//	if err != nil {
//	    return err
//	}
//	res := d.ConvertFile(ctx, "/music/song.mp3")
//	fmt.Println(res) // '/music/song.mp3' is converted
//
// # Save ladder
//
// The first attempt writes the resolved version. If it fails because some
// frames cannot be written, TXXX frames are removed and the same version is
// tried again. The third and last attempt writes ID3v2.4. Every other
// failure of the first attempt is reported immediately.
package recode
