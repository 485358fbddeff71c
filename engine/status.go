package engine

import "fmt"

// Status is the inference runtime's own status-code enumeration. The
// wrapper forwards these codes to callers unchanged; it performs no
// interpretation, retry or translation.
type Status int

const (
	// StatusOK indicates success.
	StatusOK Status = 0
	// StatusShapesDontMatch indicates input shapes don't match the model.
	StatusShapesDontMatch Status = -1
	// StatusCanceled indicates the run was canceled by the sample source.
	StatusCanceled Status = -2
	// StatusAllocFailed indicates a memory allocation failure.
	StatusAllocFailed Status = -3
	// StatusOnlySupportedForImages indicates an image-only operation was
	// invoked on a non-image model.
	StatusOnlySupportedForImages Status = -4
	// StatusUnsupportedInferencingEngine indicates the model targets an
	// engine this runtime does not provide.
	StatusUnsupportedInferencingEngine Status = -5
	// StatusOutOfMemory indicates the runtime ran out of memory.
	StatusOutOfMemory Status = -6
	// StatusInputTensorWasNull indicates a missing input tensor.
	StatusInputTensorWasNull Status = -7
	// StatusOutputTensorWasNull indicates a missing output tensor.
	StatusOutputTensorWasNull Status = -8
	// StatusScoreTensorWasNull indicates a missing detection score tensor.
	StatusScoreTensorWasNull Status = -9
	// StatusLabelTensorWasNull indicates a missing detection label tensor.
	StatusLabelTensorWasNull Status = -10
	// StatusTensorRTInitFailed indicates TensorRT initialization failed.
	StatusTensorRTInitFailed Status = -11
	// StatusDSPError indicates feature extraction failed.
	StatusDSPError Status = -12
	// StatusTFLiteError indicates a TensorFlow Lite invocation error.
	StatusTFLiteError Status = -13
	// StatusTFLiteArenaAllocFailed indicates the TensorFlow Lite arena
	// could not be allocated.
	StatusTFLiteArenaAllocFailed Status = -14
	// StatusInvalidSize indicates an input buffer of invalid size.
	StatusInvalidSize Status = -15
	// StatusInferenceError is the generic inference failure. The threshold
	// setters collapse every lookup failure into this code.
	StatusInferenceError Status = -16
)

// ErrInference is the generic inference-error status returned by the
// threshold setters on any lookup, null-config or tag-mismatch failure.
var ErrInference error = StatusInferenceError

// Error implements error. StatusOK stringifies but should never be
// returned as an error; use Err to convert a status into an error value.
func (s Status) Error() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusShapesDontMatch:
		return "input shapes don't match expected dimensions"
	case StatusCanceled:
		return "operation was canceled"
	case StatusAllocFailed:
		return "memory allocation failed"
	case StatusOnlySupportedForImages:
		return "only image input is supported"
	case StatusUnsupportedInferencingEngine:
		return "unsupported inferencing engine"
	case StatusOutOfMemory:
		return "out of memory"
	case StatusInputTensorWasNull:
		return "input tensor was null"
	case StatusOutputTensorWasNull:
		return "output tensor was null"
	case StatusScoreTensorWasNull:
		return "score tensor was null"
	case StatusLabelTensorWasNull:
		return "label tensor was null"
	case StatusTensorRTInitFailed:
		return "TensorRT initialization failed"
	case StatusDSPError:
		return "error during feature extraction"
	case StatusTFLiteError:
		return "TensorFlow Lite error"
	case StatusTFLiteArenaAllocFailed:
		return "TensorFlow Lite arena allocation failed"
	case StatusInvalidSize:
		return "invalid input size"
	case StatusInferenceError:
		return "inference error"
	default:
		return fmt.Sprintf("unknown status (%d)", int(s))
	}
}

// Err returns nil for StatusOK and the status itself otherwise.
func (s Status) Err() error {
	if s == StatusOK {
		return nil
	}
	return s
}
