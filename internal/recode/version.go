package recode

import "github.com/handiism/id3-recode/internal/id3"

// ResolveVersion returns the version a tag read as v is written back as.
// ID3v1 and ID3v2.2 become ID3v2.3; every other version is kept.
func ResolveVersion(v id3.Version) id3.Version {
	if v.IsV1() || v.Is(id3.V2_2) {
		return id3.V2_3
	}
	return v
}
