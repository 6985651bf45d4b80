package audio

// FrameSet is a read-only view over a signal as overlapping fixed-size
// windows. Frames share the underlying sample slice and must not be
// mutated by callers.
type FrameSet struct {
	samples  []float64
	frameLen int
	hop      int
	count    int
}

// Frames creates a frame view with the given frame length and hop. A frame
// length larger than the signal yields an empty set.
func Frames(s *PCMSignal, frameLen, hop int) *FrameSet {
	fs := &FrameSet{frameLen: frameLen, hop: hop}
	if s == nil || frameLen <= 0 || hop <= 0 || frameLen > len(s.Samples) {
		return fs
	}
	fs.samples = s.Samples
	fs.count = (len(s.Samples)-frameLen)/hop + 1
	return fs
}

// Count returns the number of full frames in the view.
func (fs *FrameSet) Count() int {
	return fs.count
}

// Frame returns the i-th frame as a subslice of the signal.
func (fs *FrameSet) Frame(i int) []float64 {
	start := i * fs.hop
	return fs.samples[start : start+fs.frameLen]
}
