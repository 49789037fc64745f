package id3

// FrameSet is an ordered collection of frames. Order is the on-disk order
// for tags that were read, and insertion order otherwise.
type FrameSet struct {
	frames []Frame
}

// Len returns the number of frames.
func (s *FrameSet) Len() int {
	return len(s.frames)
}

// All returns the frames in order. The slice is a copy; the frames are not.
func (s *FrameSet) All() []Frame {
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// IDs returns the frame ids in order.
func (s *FrameSet) IDs() []string {
	ids := make([]string, len(s.frames))
	for i, f := range s.frames {
		ids[i] = f.ID()
	}
	return ids
}

// Add appends f.
func (s *FrameSet) Add(f Frame) {
	s.frames = append(s.frames, f)
}

// Get returns the first frame with the given id, or nil.
func (s *FrameSet) Get(id string) Frame {
	for _, f := range s.frames {
		if f.ID() == id {
			return f
		}
	}
	return nil
}

// GetAll returns every frame with the given id, in order.
func (s *FrameSet) GetAll(id string) []Frame {
	var out []Frame
	for _, f := range s.frames {
		if f.ID() == id {
			out = append(out, f)
		}
	}
	return out
}

// Remove deletes every frame with the given id and returns how many were
// removed.
func (s *FrameSet) Remove(id string) int {
	return s.RemoveFunc(func(f Frame) bool { return f.ID() == id })
}

// RemoveFunc deletes every frame for which fn returns true, keeping the
// relative order of the rest. It returns how many were removed.
func (s *FrameSet) RemoveFunc(fn func(Frame) bool) int {
	kept := s.frames[:0]
	removed := 0
	for _, f := range s.frames {
		if fn(f) {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	for i := len(kept); i < len(s.frames); i++ {
		s.frames[i] = nil
	}
	s.frames = kept
	return removed
}

// firstText returns the first text frame with the given id, or nil.
func (s *FrameSet) firstText(id string) *TextFrame {
	for _, f := range s.GetAll(id) {
		if tf, ok := f.(*TextFrame); ok {
			return tf
		}
	}
	return nil
}

// textOf returns the text of the first text frame with the given id.
func (s *FrameSet) textOf(id string) string {
	if tf := s.firstText(id); tf != nil {
		return tf.Text
	}
	return ""
}
