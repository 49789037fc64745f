package recode

import (
	"errors"
	"fmt"

	"github.com/handiism/id3-recode/internal/audio"
	"github.com/handiism/id3-recode/internal/id3"
	"github.com/handiism/id3-recode/internal/model"
)

// MaxAttempts is the length of the save ladder.
const MaxAttempts = 3

// Target is a loaded file whose tag can be written back.
type Target interface {
	Tag() *id3.Tag
	Save(opts audio.SaveOptions) error
}

// SaveResult describes one run of the save ladder.
type SaveResult struct {
	// Attempts lists every attempt in order; the last one decided the
	// outcome.
	Attempts []model.SaveAttempt

	// Sanitized is the number of frames removed before the second attempt.
	Sanitized int
}

// Orchestrator writes a tag back with a staged fallback:
//
//  1. the resolved version
//  2. the same version, after SanitizeFrames, when attempt 1 failed with an
//     *id3.UnwritableFrameError
//  3. ID3v2.4, when attempt 2 failed for any reason
//
// Any other failure of attempt 1 is fatal, and so is a failure of attempt 3.
// Text is always written as UTF-16 with a byte order mark.
type Orchestrator struct {
	// Backup copies the original file before it is overwritten.
	Backup bool

	// BackupExtension is appended to the backup path. Empty means
	// audio.DefaultBackupExtension.
	BackupExtension string

	// Padding is the number of zero bytes reserved after the frames.
	Padding int

	// OnAttempt, if set, is called after every attempt.
	OnAttempt func(model.SaveAttempt)
}

// Save runs the ladder for t, starting at version.
func (o *Orchestrator) Save(t Target, version id3.Version) (SaveResult, error) {
	var res SaveResult

	err := o.attempt(t, &res, version)
	if err == nil {
		return res, nil
	}
	var uw *id3.UnwritableFrameError
	if !errors.As(err, &uw) {
		return res, fmt.Errorf("save as %s: %w", version, err)
	}

	res.Sanitized = SanitizeFrames(t.Tag())
	if err = o.attempt(t, &res, version); err == nil {
		return res, nil
	}

	if err = o.attempt(t, &res, id3.V2_4); err == nil {
		return res, nil
	}
	return res, fmt.Errorf("save failed after %d attempts: %w", len(res.Attempts), err)
}

func (o *Orchestrator) attempt(t Target, res *SaveResult, version id3.Version) error {
	a := model.SaveAttempt{
		Number:   len(res.Attempts) + 1,
		Version:  version,
		Encoding: id3.EncodingUTF16,
	}
	a.Err = t.Save(audio.SaveOptions{
		Version:         a.Version,
		Encoding:        a.Encoding,
		Padding:         o.Padding,
		Backup:          o.Backup,
		BackupExtension: o.BackupExtension,
	})

	res.Attempts = append(res.Attempts, a)
	if o.OnAttempt != nil {
		o.OnAttempt(a)
	}
	return a.Err
}
