package recode

import "github.com/handiism/id3-recode/internal/id3"

// SanitizeFrames removes every user defined text frame (TXXX) from t and
// returns how many were removed. The remaining frames keep their order and
// content.
func SanitizeFrames(t *id3.Tag) int {
	return t.Frames.RemoveFunc(func(f id3.Frame) bool {
		return id3.IsCustomTextFrameID(f.ID())
	})
}
