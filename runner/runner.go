package runner

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/impulsego"
	"github.com/hupe1980/impulsego/model"
	"github.com/hupe1980/impulsego/signal"
)

// DebugCallback receives debug messages when debug mode is enabled.
type DebugCallback func(msg string)

// Model is a structured façade over a Classifier, compatible with
// socket-based runner clients: it exposes model parameters, single-shot and
// continuous inference, and typed results. The model is compiled into the
// engine, so no model path is needed.
//
// Continuous-mode state is not safe for concurrent use; callers stream
// features from a single goroutine.
type Model struct {
	classifier *impulsego.Classifier
	debug      bool
	callback   DebugCallback
	params     ModelParameters
	cont       *continuousState
	idSeq      atomic.Uint32
}

type modelOptions struct {
	debug          bool
	callback       DebugCallback
	continuousMode bool
}

// ModelOption configures a Model.
type ModelOption func(*modelOptions)

// WithDebug enables debug output for every inference.
func WithDebug(debug bool) ModelOption {
	return func(o *modelOptions) {
		o.debug = debug
	}
}

// WithDebugCallback sets a callback for receiving debug messages. Without a
// callback, debug messages are discarded.
func WithDebugCallback(cb DebugCallback) ModelOption {
	return func(o *modelOptions) {
		o.callback = cb
	}
}

// WithContinuousMode makes Infer accumulate streaming feature slices
// instead of classifying each call independently.
func WithContinuousMode(enabled bool) ModelOption {
	return func(o *modelOptions) {
		o.continuousMode = enabled
	}
}

// New creates a Model over c and initializes the runtime.
func New(c *impulsego.Classifier, optFns ...ModelOption) (*Model, error) {
	if c == nil {
		return nil, ErrModelNotInitialized
	}

	var opts modelOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	if err := c.Init(); err != nil {
		return nil, &ExecutionError{cause: fmt.Errorf("classifier initialization failed: %w", err)}
	}

	h := c.Default()
	if h == nil || h.Impulse == nil {
		return nil, ErrModelNotInitialized
	}

	m := &Model{
		classifier: c,
		debug:      opts.debug,
		callback:   opts.callback,
		params:     parametersFromImpulse(h.Impulse, opts.continuousMode),
	}

	m.debugMessage(fmt.Sprintf("model loaded: %s (project %d), %d labels, sensor %s",
		m.params.ModelType, h.Impulse.Metadata.ProjectID, m.params.LabelCount, m.params.Sensor))

	return m, nil
}

func parametersFromImpulse(im *model.Impulse, continuousMode bool) ModelParameters {
	md := im.Metadata

	hasAnomaly := AnomalyNone
	if md.HasAnomaly {
		hasAnomaly = AnomalyGMM
	}

	modelType := "classification"
	if md.HasObjectDetection {
		modelType = "object-detection"
	}

	return ModelParameters{
		AxisCount:          uint32(md.RawSamplesPerFrame),
		Frequency:          float32(md.Frequency),
		HasAnomaly:         hasAnomaly,
		HasObjectTracking:  md.HasObjectTracking,
		ImageChannelCount:  3,
		ImageInputFrames:   uint32(md.InputFrames),
		ImageInputHeight:   uint32(md.InputHeight),
		ImageInputWidth:    uint32(md.InputWidth),
		ImageResizeMode:    "fit",
		InferencingEngine:  uint32(md.InferencingEngine),
		InputFeaturesCount: uint32(md.InputFeaturesCount),
		IntervalMS:         float32(md.IntervalMS),
		LabelCount:         uint32(md.LabelCount),
		Labels:             labelsFromMetadata(md),
		ModelType:          modelType,
		Sensor:             SensorTypeFromID(md.Sensor),
		SliceSize:          uint32(md.SliceSize),
		Thresholds:         im.Thresholds(),
		UseContinuousMode:  continuousMode,
	}
}

func labelsFromMetadata(md model.Metadata) []string {
	if len(md.Labels) > 0 {
		return md.Labels
	}
	labels := make([]string, md.LabelCount)
	for i := range labels {
		labels[i] = fmt.Sprintf("label_%d", i)
	}
	return labels
}

// Parameters returns the model parameters.
func (m *Model) Parameters() ModelParameters {
	return m.params
}

// SensorType returns the kind of sensor the model was trained on.
func (m *Model) SensorType() SensorType {
	return m.params.Sensor
}

// InputSize returns the number of features one inference consumes.
func (m *Model) InputSize() int {
	return int(m.params.InputFeaturesCount)
}

// Project returns provenance information about the model's project.
func (m *Model) Project() ProjectInfo {
	md := m.classifier.Default().Impulse.Metadata
	return ProjectInfo{
		DeployVersion: md.DeployVersion,
		ID:            md.ProjectID,
		Name:          md.ProjectName,
		Owner:         md.ProjectOwner,
	}
}

// SetDebugCallback sets a callback for receiving debug messages.
func (m *Model) SetDebugCallback(cb DebugCallback) {
	m.callback = cb
}

func (m *Model) debugMessage(msg string) {
	if m.debug && m.callback != nil {
		m.callback(msg)
	}
}

// Infer runs inference on the provided features. In continuous mode,
// features are accumulated until a full slice is buffered; until then an
// empty classification is returned.
func (m *Model) Infer(ctx context.Context, features []float32) (*InferenceResponse, error) {
	if m.params.UseContinuousMode {
		return m.inferContinuous(ctx, features)
	}
	return m.inferSingle(ctx, features)
}

func (m *Model) inferSingle(ctx context.Context, features []float32) (*InferenceResponse, error) {
	sig, err := signal.FromBuffer(features)
	if err != nil {
		return nil, &InvalidInputError{Reason: "empty feature buffer", cause: err}
	}

	var res model.Result
	if err := m.classifier.RunClassifier(ctx, sig, &res, m.debug); err != nil {
		return nil, translateError(err)
	}

	return m.convertResult(&res), nil
}

func (m *Model) inferContinuous(ctx context.Context, features []float32) (*InferenceResponse, error) {
	if m.cont == nil {
		m.cont = newContinuousState(m.params.Labels, int(m.params.SliceSize))
	}

	m.cont.updateFeatures(features)

	if !m.cont.featureBufferFull {
		// Warm-up: report zero scores through the filter until a full
		// slice is buffered.
		classification := make(map[string]float32, len(m.params.Labels))
		for _, label := range m.params.Labels {
			classification[label] = 0
		}
		m.cont.applyMAF(classification)

		return &InferenceResponse{
			Success: true,
			ID:      m.idSeq.Add(1),
			Result:  ClassificationResult{Classification: classification},
		}, nil
	}

	sig, err := signal.FromBuffer(m.cont.featureMatrix)
	if err != nil {
		return nil, &InvalidInputError{Reason: "empty feature buffer", cause: err}
	}

	var res model.Result
	if err := m.classifier.RunClassifierContinuous(ctx, sig, &res, m.debug, true); err != nil {
		return nil, translateError(err)
	}

	resp := m.convertResult(&res)
	if cr, ok := resp.Result.(ClassificationResult); ok {
		m.cont.applyMAF(cr.Classification)
	}
	return resp, nil
}

func (m *Model) convertResult(res *model.Result) *InferenceResponse {
	classification := make(map[string]float32, len(res.Classification))
	for _, c := range res.Classification {
		classification[c.Label] = c.Value
	}

	var result InferenceResult
	switch {
	case len(res.BoundingBoxes) > 0:
		result = ObjectDetectionResult{
			BoundingBoxes:  res.BoundingBoxes,
			Classification: classification,
		}
	case m.params.HasAnomaly != AnomalyNone:
		result = VisualAnomalyResult{
			Grid:    res.VisualAnomalyGrid,
			Max:     res.VisualAnomalyMax,
			Mean:    res.VisualAnomalyMean,
			Anomaly: res.Anomaly,
		}
	default:
		result = ClassificationResult{Classification: classification}
	}

	return &InferenceResponse{
		Success: true,
		ID:      m.idSeq.Add(1),
		Result:  result,
	}
}

// NormalizeVisualAnomaly clamps visual-anomaly scores into [0, 1]. The
// returned grid shares no memory with the input.
func NormalizeVisualAnomaly(r VisualAnomalyResult) VisualAnomalyResult {
	grid := make([]model.BoundingBox, len(r.Grid))
	for i, bb := range r.Grid {
		bb.Value = clamp01(bb.Value)
		grid[i] = bb
	}
	return VisualAnomalyResult{
		Grid:    grid,
		Max:     clamp01(r.Max),
		Mean:    clamp01(r.Mean),
		Anomaly: clamp01(r.Anomaly),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
