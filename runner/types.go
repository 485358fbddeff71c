package runner

import (
	"fmt"

	"github.com/hupe1980/impulsego/model"
)

// SensorType is the kind of sensor the model was trained on.
type SensorType int

const (
	SensorUnknown       SensorType = -1
	SensorMicrophone    SensorType = 1
	SensorAccelerometer SensorType = 2
	SensorCamera        SensorType = 3
	SensorPositional    SensorType = 4
)

// SensorTypeFromID maps the runtime's numeric sensor identifier to a
// SensorType.
func SensorTypeFromID(id int) SensorType {
	switch id {
	case 1:
		return SensorMicrophone
	case 2:
		return SensorAccelerometer
	case 3:
		return SensorCamera
	case 4:
		return SensorPositional
	default:
		return SensorUnknown
	}
}

// String returns a human-readable name for the sensor type.
func (s SensorType) String() string {
	switch s {
	case SensorMicrophone:
		return "microphone"
	case SensorAccelerometer:
		return "accelerometer"
	case SensorCamera:
		return "camera"
	case SensorPositional:
		return "positional"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// AnomalyType describes the kind of anomaly detection a model performs.
type AnomalyType int

const (
	AnomalyNone AnomalyType = iota
	AnomalyKMeans
	AnomalyGMM
	AnomalyVisualGMM
)

// ModelParameters define a model's configuration and capabilities as
// reported to runner clients.
type ModelParameters struct {
	AxisCount          uint32
	Frequency          float32
	HasAnomaly         AnomalyType
	HasObjectTracking  bool
	ImageChannelCount  uint32
	ImageInputFrames   uint32
	ImageInputHeight   uint32
	ImageInputWidth    uint32
	ImageResizeMode    string
	InferencingEngine  uint32
	InputFeaturesCount uint32
	IntervalMS         float32
	LabelCount         uint32
	Labels             []string
	ModelType          string
	Sensor             SensorType
	SliceSize          uint32
	Thresholds         []model.Threshold
	UseContinuousMode  bool
}

// ProjectInfo describes the project a model was built from.
type ProjectInfo struct {
	DeployVersion int
	ID            int
	Name          string
	Owner         string
}
