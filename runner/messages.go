package runner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/impulsego/model"
)

// InferenceResult is the structured outcome of one inference. It is a
// closed sum: ClassificationResult, ObjectDetectionResult or
// VisualAnomalyResult.
type InferenceResult interface {
	isInferenceResult()
}

// ClassificationResult is the outcome of a plain classification model.
type ClassificationResult struct {
	// Classification maps class names to their probability scores.
	Classification map[string]float32
}

func (ClassificationResult) isInferenceResult() {}

// String returns a human-readable summary.
func (r ClassificationResult) String() string {
	var sb strings.Builder
	sb.WriteString("Classification results: ")
	writeClassification(&sb, r.Classification)
	return sb.String()
}

// ObjectDetectionResult is the outcome of an object-detection model.
type ObjectDetectionResult struct {
	// BoundingBoxes holds the detected objects.
	BoundingBoxes []model.BoundingBox
	// Classification optionally holds whole-image scores.
	Classification map[string]float32
}

func (ObjectDetectionResult) isInferenceResult() {}

// String returns a human-readable summary.
func (r ObjectDetectionResult) String() string {
	var sb strings.Builder
	if len(r.Classification) > 0 {
		sb.WriteString("Image classification: ")
		writeClassification(&sb, r.Classification)
		sb.WriteString("\n")
	}
	sb.WriteString("Detected objects: ")
	for _, bb := range r.BoundingBoxes {
		fmt.Fprintf(&sb, "%s(%.2f%%) at (%d,%d,%d,%d) ",
			bb.Label, bb.Value*100, bb.X, bb.Y, bb.Width, bb.Height)
	}
	return sb.String()
}

// VisualAnomalyResult is the outcome of a visual anomaly-detection model.
type VisualAnomalyResult struct {
	// Grid holds per-region anomaly scores.
	Grid []model.BoundingBox
	// Max is the maximum anomaly score across all regions.
	Max float32
	// Mean is the mean anomaly score across all regions.
	Mean float32
	// Anomaly is the overall anomaly score for the image.
	Anomaly float32
}

func (VisualAnomalyResult) isInferenceResult() {}

// String returns a human-readable summary.
func (r VisualAnomalyResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Visual anomaly detection: max=%.2f%%, mean=%.2f%%, overall=%.2f%%",
		r.Max*100, r.Mean*100, r.Anomaly*100)
	if len(r.Grid) > 0 {
		sb.WriteString("\nAnomaly grid: ")
		for _, bb := range r.Grid {
			fmt.Fprintf(&sb, "%s(%.2f%%) at (%d,%d,%d,%d) ",
				bb.Label, bb.Value*100, bb.X, bb.Y, bb.Width, bb.Height)
		}
	}
	return sb.String()
}

// InferenceResponse wraps one inference outcome.
type InferenceResponse struct {
	// Success indicates if the inference was successful.
	Success bool
	// ID identifies the response within the model's session.
	ID uint32
	// Result holds the actual inference results.
	Result InferenceResult
}

// String returns a human-readable summary of the response.
func (r InferenceResponse) String() string {
	return fmt.Sprint(r.Result)
}

func writeClassification(sb *strings.Builder, classification map[string]float32) {
	labels := make([]string, 0, len(classification))
	for label := range classification {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(sb, "%s=%.2f%% ", label, classification[label]*100)
	}
}
