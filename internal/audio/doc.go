// Package audio provides the on-disk handle for MP3 files whose ID3 tag is
// being rewritten.
//
// # Loading
//
// Load reads the whole file and parses its tag:
//
//	f, err := audio.Load("/music/song.mp3")
//	if err != nil {
//	    // unreadable file, or a corrupt ID3v2 header
//	}
//	if f.Tag() == nil {
//	    // no ID3 tag: nothing to convert
//	}
//
// Files in other containers (FLAC, Ogg, MP4) are identified with
// github.com/dhowden/tag and load without a tag.
//
// # Saving
//
// Save writes the in-memory tag back in front of the original audio stream:
//
//	err := f.Save(audio.SaveOptions{
//	    Version:  id3.V2_3,
//	    Encoding: id3.EncodingUTF16,
//	    Backup:   true, // copy the original to song.mp3.orig first
//	})
//
// The file is replaced atomically. The backup copy is made at most once per
// File, and only by a save whose tag encoded successfully.
package audio
