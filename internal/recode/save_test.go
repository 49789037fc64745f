package recode

import (
	"errors"
	"testing"

	"github.com/handiism/id3-recode/internal/audio"
	"github.com/handiism/id3-recode/internal/id3"
	"github.com/handiism/id3-recode/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTarget fails its saves with errs in order and succeeds afterwards.
type fakeTarget struct {
	tag   *id3.Tag
	errs  []error
	calls []audio.SaveOptions
	// frames records the frame ids present at each call
	frames [][]string
}

func (f *fakeTarget) Tag() *id3.Tag { return f.tag }

func (f *fakeTarget) Save(opts audio.SaveOptions) error {
	f.calls = append(f.calls, opts)
	f.frames = append(f.frames, f.tag.Frames.IDs())
	if i := len(f.calls) - 1; i < len(f.errs) {
		return f.errs[i]
	}
	return nil
}

func taggedTarget(errs ...error) *fakeTarget {
	tag := id3.NewTag(id3.V2_3)
	tag.SetTitle("Title")
	tag.Frames.Add(id3.NewUserTextFrame("k", "v"))
	return &fakeTarget{tag: tag, errs: errs}
}

func unwritable(v id3.Version) error {
	return &id3.UnwritableFrameError{Version: v, IDs: []string{"TXXX"}}
}

func versions(calls []audio.SaveOptions) []id3.Version {
	var vs []id3.Version
	for _, c := range calls {
		vs = append(vs, c.Version)
	}
	return vs
}

func TestOrchestrator_FirstAttemptSucceeds(t *testing.T) {
	target := taggedTarget()
	o := &Orchestrator{Backup: true, BackupExtension: ".bak", Padding: 16}

	res, err := o.Save(target, id3.V2_3)

	require.NoError(t, err)
	require.Len(t, target.calls, 1)
	assert.Equal(t, audio.SaveOptions{Version: id3.V2_3, Encoding: id3.EncodingUTF16, Padding: 16, Backup: true, BackupExtension: ".bak"}, target.calls[0])
	assert.Equal(t, 0, res.Sanitized)
	assert.Equal(t, []string{"TIT2", "TXXX"}, target.tag.Frames.IDs(), "sanitizer must not run")
	assert.Equal(t, []model.SaveAttempt{{Number: 1, Version: id3.V2_3, Encoding: id3.EncodingUTF16}}, res.Attempts)
}

func TestOrchestrator_SanitizesBeforeSecondAttempt(t *testing.T) {
	target := taggedTarget(unwritable(id3.V2_3))

	res, err := (&Orchestrator{}).Save(target, id3.V2_3)

	require.NoError(t, err)
	assert.Equal(t, []id3.Version{id3.V2_3, id3.V2_3}, versions(target.calls))
	assert.Equal(t, []string{"TIT2", "TXXX"}, target.frames[0])
	assert.Equal(t, []string{"TIT2"}, target.frames[1])
	assert.Equal(t, 1, res.Sanitized)
	require.Len(t, res.Attempts, 2)
	assert.Error(t, res.Attempts[0].Err)
	assert.True(t, res.Attempts[1].Succeeded())
}

func TestOrchestrator_EscalatesToV24OnThirdAttempt(t *testing.T) {
	target := taggedTarget(unwritable(id3.V2_3), errors.New("still broken"))

	res, err := (&Orchestrator{}).Save(target, id3.V2_3)

	require.NoError(t, err)
	assert.Equal(t, []id3.Version{id3.V2_3, id3.V2_3, id3.V2_4}, versions(target.calls))
	assert.Equal(t, 3, res.Attempts[2].Number)
}

func TestOrchestrator_StopsAfterThreeAttempts(t *testing.T) {
	target := taggedTarget(unwritable(id3.V2_3), unwritable(id3.V2_3), unwritable(id3.V2_4), unwritable(id3.V2_4))
	var seen []int
	o := &Orchestrator{OnAttempt: func(a model.SaveAttempt) { seen = append(seen, a.Number) }}

	res, err := o.Save(target, id3.V2_3)

	require.Error(t, err)
	var uw *id3.UnwritableFrameError
	assert.True(t, errors.As(err, &uw))
	assert.Equal(t, id3.V2_4, uw.Version, "the last attempt's error is reported")
	assert.Len(t, target.calls, MaxAttempts)
	assert.Equal(t, []id3.Version{id3.V2_3, id3.V2_3, id3.V2_4}, versions(target.calls))
	assert.Equal(t, []int{1, 2, 3}, seen)
	for _, c := range target.calls {
		assert.Equal(t, id3.EncodingUTF16, c.Encoding)
	}
	for _, a := range res.Attempts {
		assert.False(t, a.Succeeded())
	}
}

func TestOrchestrator_OtherFirstFailureIsFatal(t *testing.T) {
	diskFull := errors.New("no space left on device")
	target := taggedTarget(diskFull)

	res, err := (&Orchestrator{}).Save(target, id3.V2_4)

	assert.ErrorIs(t, err, diskFull)
	assert.Len(t, target.calls, 1)
	assert.Len(t, res.Attempts, 1)
	assert.Equal(t, []string{"TIT2", "TXXX"}, target.tag.Frames.IDs(), "sanitizer must not run")
}

func TestOrchestrator_WithAudioFile(t *testing.T) {
	broken := id3.NewRawFrame("TXXX", []byte("\x00x"))
	broken.Err = id3.ErrInvalidText

	tag := id3.NewTag(id3.V2_3)
	tag.SetTitle("Title")
	path := writeMP3(t, encodeISO(t, tag))

	f, err := audio.Load(path)
	require.NoError(t, err)
	f.Tag().Frames.Add(broken)

	res, err := (&Orchestrator{}).Save(f, id3.V2_3)
	require.NoError(t, err)
	require.Len(t, res.Attempts, 2)

	var uw *id3.UnwritableFrameError
	require.True(t, errors.As(res.Attempts[0].Err, &uw))
	assert.Equal(t, []string{"TXXX"}, uw.IDs)

	saved := readTag(t, path)
	assert.Equal(t, id3.V2_3, saved.Version)
	assert.Equal(t, []string{"TIT2"}, saved.Frames.IDs())
}
