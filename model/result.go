package model

import "fmt"

// Classification is a single labeled score.
type Classification struct {
	Label string
	Value float32
}

// String returns a string representation of the classification.
func (c Classification) String() string {
	return fmt.Sprintf("%s: %.4f", c.Label, c.Value)
}

// BoundingBox is a detected object's location and score.
type BoundingBox struct {
	Label  string
	Value  float32
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// String returns a string representation of the bounding box.
func (b BoundingBox) String() string {
	return fmt.Sprintf("%s: %.4f (x=%d, y=%d, w=%d, h=%d)",
		b.Label, b.Value, b.X, b.Y, b.Width, b.Height)
}

// Timing reports per-stage execution time in milliseconds.
type Timing struct {
	DSP            int
	Classification int
	Anomaly        int
}

// String returns a string representation of the timing.
func (t Timing) String() string {
	return fmt.Sprintf("Timing: dsp=%d ms, classification=%d ms, anomaly=%d ms",
		t.DSP, t.Classification, t.Anomaly)
}

// Result is populated by a successful classification run. The caller
// allocates it; the engine fills it in.
type Result struct {
	Classification []Classification
	BoundingBoxes  []BoundingBox

	// Visual anomaly output; only populated for models with a
	// visual-anomaly postprocessing stage.
	VisualAnomalyGrid []BoundingBox
	VisualAnomalyMax  float32
	VisualAnomalyMean float32

	// Anomaly is the overall anomaly score.
	Anomaly float32

	Timing Timing
}
