package recode

import (
	"context"
	"fmt"
	"time"

	"github.com/dhowden/tag"
	"github.com/handiism/id3-recode/internal/audio"
	"github.com/handiism/id3-recode/internal/model"
)

// Skip reasons reported by ConvertFile.
const (
	ReasonNoTag     = "no ID3 tag"
	ReasonCancelled = "cancelled"
)

// Options configures a Driver.
type Options struct {
	// Codec names the double-byte codec, see NewReinterpreter.
	Codec string

	// Backup, BackupExtension and Padding are passed to the Orchestrator.
	Backup          bool
	BackupExtension string
	Padding         int
}

// Driver converts one file at a time. It keeps no per-file state, so a
// single Driver may serve concurrent ConvertFile calls on distinct paths.
type Driver struct {
	walker *Walker
	opts   Options
}

// NewDriver creates a Driver. It fails only for an unknown codec.
func NewDriver(opts Options) (*Driver, error) {
	r, err := NewReinterpreter(opts.Codec)
	if err != nil {
		return nil, err
	}
	return &Driver{walker: NewWalker(r), opts: opts}, nil
}

// ConvertFile loads path, corrects its text fields and writes the tag back.
//
// A file that cannot be loaded or carries no tag is skipped: nothing is
// walked or saved. Cancellation is only observed before the file is loaded;
// once started, the file runs through the whole save ladder.
func (d *Driver) ConvertFile(ctx context.Context, path string) (res model.FileResult) {
	res.Path = path
	if ctx.Err() != nil {
		res.Outcome = model.OutcomeSkipped
		res.Reason = ReasonCancelled
		return res
	}

	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	f, err := audio.Load(path)
	if err != nil {
		res.Outcome = model.OutcomeSkipped
		res.Reason = err.Error()
		return res
	}
	res.Size = f.Size()

	t := f.Tag()
	if t == nil {
		res.Outcome = model.OutcomeSkipped
		res.Reason = ReasonNoTag
		if ft := f.FileType(); ft != tag.UnknownFileType && ft != tag.MP3 {
			res.Reason = fmt.Sprintf("%s file, %s", ft, ReasonNoTag)
		}
		return res
	}
	res.SourceVersion = t.Version

	stats := d.walker.Walk(t)
	res.Fields = stats.Fields
	res.Changed = stats.Changed
	res.Changes = stats.Changes

	o := &Orchestrator{
		Backup:          d.opts.Backup,
		BackupExtension: d.opts.BackupExtension,
		Padding:         d.opts.Padding,
	}
	saved, err := o.Save(f, ResolveVersion(t.Version))
	res.Attempts = saved.Attempts
	res.Sanitized = saved.Sanitized
	if err != nil {
		res.Outcome = model.OutcomeFailed
		res.Err = err
		return res
	}

	res.Outcome = model.OutcomeConverted
	return res
}
