package model

import (
	"fmt"
	"time"

	"github.com/handiism/id3-recode/internal/id3"
)

// Outcome is the final state of one processed file.
type Outcome int

const (
	// OutcomeConverted means the tag was rewritten.
	OutcomeConverted Outcome = iota

	// OutcomeSkipped means the file carried no tag or could not be loaded.
	// Skipping is not an error.
	OutcomeSkipped

	// OutcomeFailed means the save ladder was exhausted or hit an
	// unrecoverable error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverted:
		return "converted"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// SaveAttempt records one serialization try.
type SaveAttempt struct {
	// Number is the rung of the save ladder, starting at 1.
	Number int

	// Version is the container version the tag was written as.
	Version id3.Version

	// Encoding is the text encoding used for every text frame.
	Encoding id3.Encoding

	// Err is nil when the attempt succeeded.
	Err error
}

// Succeeded reports whether the attempt wrote the tag.
func (a SaveAttempt) Succeeded() bool {
	return a.Err == nil
}

func (a SaveAttempt) String() string {
	if a.Err != nil {
		return fmt.Sprintf("attempt %d (%s, %s): %v", a.Number, a.Version, a.Encoding, a.Err)
	}
	return fmt.Sprintf("attempt %d (%s, %s): ok", a.Number, a.Version, a.Encoding)
}

// FieldChange records one corrected text field.
type FieldChange struct {
	// Field names the value, e.g. "TIT2" or "COMM.text".
	Field  string
	Before string
	After  string
}

// FileResult is the outcome of converting one file.
type FileResult struct {
	// Path is the file that was processed.
	Path string

	// Outcome is the final state.
	Outcome Outcome

	// Reason explains a skip, e.g. "no ID3 tag".
	Reason string

	// Err is the fatal error for OutcomeFailed.
	Err error

	// SourceVersion is the tag version found on disk.
	SourceVersion id3.Version

	// Fields is the number of textual fields inspected.
	Fields int

	// Changed is the number of fields whose text was corrected.
	Changed int

	// Changes lists the corrected fields in frame order.
	Changes []FieldChange

	// Sanitized is the number of custom text frames removed during
	// recovery.
	Sanitized int

	// Attempts lists every save attempt in order.
	Attempts []SaveAttempt

	// Size is the file size in bytes before conversion.
	Size int64

	// Duration is how long the file took to process.
	Duration time.Duration
}

// SavedAs returns the version of the successful attempt.
func (r FileResult) SavedAs() (id3.Version, bool) {
	for _, a := range r.Attempts {
		if a.Succeeded() {
			return a.Version, true
		}
	}
	return id3.Version{}, false
}

// String renders the one-line report for the file.
func (r FileResult) String() string {
	switch r.Outcome {
	case OutcomeConverted:
		return fmt.Sprintf("'%s' is converted", r.Path)
	case OutcomeSkipped:
		if r.Reason != "" {
			return fmt.Sprintf("'%s' is skipped (%s)", r.Path, r.Reason)
		}
		return fmt.Sprintf("'%s' is skipped", r.Path)
	default:
		return fmt.Sprintf("'%s' failed: %v", r.Path, r.Err)
	}
}

// Summary aggregates the results of a batch.
type Summary struct {
	Files     int
	Converted int
	Skipped   int
	Failed    int

	// Changed is the total number of corrected fields.
	Changed int

	// Bytes is the total size of the processed files.
	Bytes int64

	// Escalated counts conversions that needed the ID3v2.4 fallback.
	Escalated int
}

// Add folds r into the summary.
func (s *Summary) Add(r FileResult) {
	s.Files++
	s.Bytes += r.Size
	switch r.Outcome {
	case OutcomeConverted:
		s.Converted++
		s.Changed += r.Changed
		if len(r.Attempts) == 3 {
			s.Escalated++
		}
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// OK reports whether no file failed.
func (s Summary) OK() bool {
	return s.Failed == 0
}
