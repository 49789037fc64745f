package recode

import (
	"github.com/handiism/id3-recode/internal/id3"
	"github.com/handiism/id3-recode/internal/model"
)

// WalkStats summarises one walk over a tag.
type WalkStats struct {
	// Fields is the number of textual fields visited.
	Fields int

	// Changed is the number of fields whose value was replaced.
	Changed int

	// Skipped is the number of fields that could not be reinterpreted
	// and were left as they were.
	Skipped int

	// Changes lists the replaced values in frame order.
	Changes []model.FieldChange
}

// Walker applies a Reinterpreter to every textual field of a tag.
type Walker struct {
	r *Reinterpreter
}

// NewWalker creates a Walker backed by r.
func NewWalker(r *Reinterpreter) *Walker {
	return &Walker{r: r}
}

// Walk reinterprets every field listed by id3.Tag.Fields in place.
//
// A field that fails to reinterpret keeps its value. Walk cannot tell
// garbled text from clean text other than by that failure, so clean
// non-ASCII text that happens to survive the conversion is altered too.
func (w *Walker) Walk(t *id3.Tag) WalkStats {
	var stats WalkStats
	for _, field := range t.Fields() {
		stats.Fields++

		before := field.Value()
		after, err := w.r.Reinterpret(before)
		if err != nil {
			stats.Skipped++
			continue
		}
		if after == before {
			continue
		}

		field.Set(after)
		stats.Changed++
		stats.Changes = append(stats.Changes, model.FieldChange{Field: field.Name, Before: before, After: after})
	}
	return stats
}
