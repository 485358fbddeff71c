package model

// Metadata describes the compiled-in model: input geometry, labels, project
// provenance and capability flags. It is fixed at model-generation time.
type Metadata struct {
	InputWidth  int
	InputHeight int
	InputFrames int

	LabelCount int
	Labels     []string

	ProjectName   string
	ProjectOwner  string
	ProjectID     int
	DeployVersion int

	// Sensor is the runtime's numeric sensor identifier.
	Sensor int

	InferencingEngine int
	IntervalMS        int
	Frequency         int
	SliceSize         int

	HasAnomaly         bool
	HasObjectDetection bool
	HasObjectTracking  bool

	RawSampleCount     int
	RawSamplesPerFrame int
	InputFeaturesCount int
}

// InputFrameSize returns width * height.
func (m Metadata) InputFrameSize() int {
	return m.InputWidth * m.InputHeight
}

// Threshold reports a postprocessing block's configured decision
// parameters. KeepGrace and MaxObservations are only meaningful for
// object-tracking blocks.
type Threshold struct {
	ID              BlockID
	Kind            BlockKind
	Threshold       float32
	KeepGrace       uint32
	MaxObservations uint16
}

// Thresholds returns the configured thresholds of every postprocessing
// block whose payload carries one. Blocks with a nil or unrecognized
// payload are reported with kind unknown and a zero threshold.
func (im *Impulse) Thresholds() []Threshold {
	if im == nil {
		return nil
	}
	out := make([]Threshold, 0, len(im.PostprocessingBlocks))
	for _, b := range im.PostprocessingBlocks {
		th := Threshold{ID: b.ID, Kind: BlockKindUnknown}
		switch cfg := b.Config.(type) {
		case *ObjectDetectionConfig:
			th.Kind = BlockKindObjectDetection
			th.Threshold = cfg.Threshold
		case *AnomalyGMMConfig:
			th.Kind = BlockKindAnomalyGMM
			th.Threshold = cfg.Threshold
		case *VisualAnomalyConfig:
			th.Kind = BlockKindVisualAnomaly
			th.Threshold = cfg.Threshold
		case *ObjectTrackingConfig:
			th.Kind = BlockKindObjectTracking
			th.Threshold = cfg.Threshold
			th.KeepGrace = cfg.KeepGrace
			th.MaxObservations = cfg.MaxObservations
		}
		out = append(out, th)
	}
	return out
}
