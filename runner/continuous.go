package runner

// mafWindowSize is the moving-average window applied to streaming
// classification scores.
const mafWindowSize = 4

// movingAverageFilter smooths a stream of scores over a fixed window.
type movingAverageFilter struct {
	buffer []float32
	head   int
	filled int
	sum    float32
}

func newMovingAverageFilter(windowSize int) *movingAverageFilter {
	return &movingAverageFilter{
		buffer: make([]float32, windowSize),
	}
}

func (f *movingAverageFilter) update(value float32) float32 {
	if f.filled == len(f.buffer) {
		f.sum -= f.buffer[f.head]
	} else {
		f.filled++
	}
	f.buffer[f.head] = value
	f.head = (f.head + 1) % len(f.buffer)
	f.sum += value
	return f.sum / float32(f.filled)
}

// continuousState accumulates streaming features until a full slice is
// available, then keeps a sliding window of the most recent slice. It is
// not safe for concurrent use; continuous mode is single-goroutine by
// contract.
type continuousState struct {
	featureMatrix     []float32
	featureBufferFull bool
	mafBuffers        map[string]*movingAverageFilter
	sliceSize         int
}

func newContinuousState(labels []string, sliceSize int) *continuousState {
	mafBuffers := make(map[string]*movingAverageFilter, len(labels))
	for _, label := range labels {
		mafBuffers[label] = newMovingAverageFilter(mafWindowSize)
	}
	return &continuousState{
		mafBuffers: mafBuffers,
		sliceSize:  sliceSize,
	}
}

// updateFeatures appends new features and trims the buffer to the most
// recent sliceSize samples once full.
func (s *continuousState) updateFeatures(features []float32) {
	s.featureMatrix = append(s.featureMatrix, features...)

	if len(s.featureMatrix) >= s.sliceSize {
		s.featureBufferFull = true
		if overflow := len(s.featureMatrix) - s.sliceSize; overflow > 0 {
			s.featureMatrix = append(s.featureMatrix[:0], s.featureMatrix[overflow:]...)
		}
	}
}

// applyMAF smooths every label's score in place.
func (s *continuousState) applyMAF(classification map[string]float32) {
	for label, value := range classification {
		if maf, ok := s.mafBuffers[label]; ok {
			classification[label] = maf.update(value)
		}
	}
}
