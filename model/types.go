package model

import "fmt"

// BlockID is the numeric identifier of a learning or postprocessing block.
// IDs are assigned at model-generation time and are unique within a block
// table snapshot.
type BlockID uint32

// BlockKind tags a block's configuration payload with the stage it
// configures. Mutators must check the tag before down-casting a BlockConfig
// to a concrete type.
type BlockKind uint8

const (
	// BlockKindUnknown is the zero value; no mutator accepts it.
	BlockKindUnknown BlockKind = iota
	// BlockKindClassification tags a plain classification stage.
	BlockKindClassification
	// BlockKindObjectDetection tags an object-detection-capable graph stage.
	BlockKindObjectDetection
	// BlockKindAnomalyGMM tags a GMM anomaly-scoring stage.
	BlockKindAnomalyGMM
	// BlockKindVisualAnomaly tags a visual anomaly-detection stage.
	BlockKindVisualAnomaly
	// BlockKindObjectTracking tags an object-tracking stage.
	BlockKindObjectTracking
)

// String returns a human-readable name for the block kind.
func (k BlockKind) String() string {
	switch k {
	case BlockKindClassification:
		return "classification"
	case BlockKindObjectDetection:
		return "object-detection"
	case BlockKindAnomalyGMM:
		return "anomaly-gmm"
	case BlockKindVisualAnomaly:
		return "visual-anomaly"
	case BlockKindObjectTracking:
		return "object-tracking"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// BlockConfig is the tagged configuration payload of a block.
//
// Concrete types carry threshold-like decision parameters that may be
// mutated in place after model initialization. Kind reports the tag the
// payload was created with; it never changes over the payload's lifetime.
type BlockConfig interface {
	Kind() BlockKind
}

// ObjectDetectionConfig configures an object-detection stage.
type ObjectDetectionConfig struct {
	// Threshold is the minimum score for a detection to be reported.
	Threshold float32
}

// Kind implements BlockConfig.
func (*ObjectDetectionConfig) Kind() BlockKind { return BlockKindObjectDetection }

// AnomalyGMMConfig configures a GMM anomaly-scoring stage.
type AnomalyGMMConfig struct {
	// Threshold is the minimum anomaly score for a sample to be flagged.
	Threshold float32
}

// Kind implements BlockConfig.
func (*AnomalyGMMConfig) Kind() BlockKind { return BlockKindAnomalyGMM }

// VisualAnomalyConfig configures a visual anomaly-detection stage.
type VisualAnomalyConfig struct {
	// Threshold is the minimum anomaly score for a grid cell to be flagged.
	Threshold float32
}

// Kind implements BlockConfig.
func (*VisualAnomalyConfig) Kind() BlockKind { return BlockKindVisualAnomaly }

// ObjectTrackingConfig configures an object-tracking stage.
type ObjectTrackingConfig struct {
	// Threshold is the minimum score for a detection to enter tracking.
	Threshold float32
	// KeepGrace is the number of frames a lost object is kept alive.
	KeepGrace uint32
	// MaxObservations caps the number of observations per tracked object.
	MaxObservations uint16
}

// Kind implements BlockConfig.
func (*ObjectTrackingConfig) Kind() BlockKind { return BlockKindObjectTracking }

// LearningBlock is a stage producing raw model output, e.g. a neural-network
// graph invocation.
type LearningBlock struct {
	ID     BlockID
	Kind   BlockKind
	Config BlockConfig
}

// PostprocessingBlock is a stage consuming learning-block output to produce
// final results: detection boxes, anomaly scores, tracked objects.
type PostprocessingBlock struct {
	ID     BlockID
	Kind   BlockKind
	Config BlockConfig
}

// Impulse is one configured classifier model: the graph plus its learning
// and postprocessing block tables. The engine creates and owns the block
// tables and every block's configuration payload at model-initialization
// time; callers only read tags and mutate scalar fields through the
// classifier's setters.
type Impulse struct {
	Metadata             Metadata
	LearningBlocks       []LearningBlock
	PostprocessingBlocks []PostprocessingBlock
}

// Handle is a configured classifier instance. The engine owns the handle's
// memory; callers never free it.
type Handle struct {
	Impulse *Impulse
}

// FeatureMatrix holds pre-computed features, one row per learning-block
// input. Running inference with a feature matrix skips the handle's own
// feature-extraction step.
type FeatureMatrix struct {
	Rows [][]float32
}

// NumRows returns the number of feature rows.
func (m *FeatureMatrix) NumRows() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}
