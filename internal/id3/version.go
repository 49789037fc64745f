package id3

import "fmt"

// Version identifies an ID3 container revision as (major, minor, revision).
//
// ID3v2 headers only store minor and revision; Major is 2 for every
// ID3v2 tag and 1 for ID3v1 trailers.
type Version struct {
	Major    uint8
	Minor    uint8
	Revision uint8
}

// Known container revisions.
var (
	V1_0 = Version{Major: 1, Minor: 0}
	V1_1 = Version{Major: 1, Minor: 1}
	V2_2 = Version{Major: 2, Minor: 2}
	V2_3 = Version{Major: 2, Minor: 3}
	V2_4 = Version{Major: 2, Minor: 4}
)

// IsV1 reports whether v is an ID3v1 trailer version.
func (v Version) IsV1() bool {
	return v.Major == 1
}

// Is reports whether v has the same major and minor number as o.
// The revision is ignored.
func (v Version) Is(o Version) bool {
	return v.Major == o.Major && v.Minor == o.Minor
}

// Writable reports whether tags can be encoded in this version.
func (v Version) Writable() bool {
	return v.Is(V2_3) || v.Is(V2_4)
}

func (v Version) String() string {
	return fmt.Sprintf("ID3v%d.%d.%d", v.Major, v.Minor, v.Revision)
}
