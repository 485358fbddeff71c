package engine

import (
	"context"

	"github.com/hupe1980/impulsego/model"
	"github.com/hupe1980/impulsego/signal"
)

// Engine is the external inference runtime behind the wrapper: the model
// graph, DSP pipeline and postprocessing all live on the far side of this
// interface. Errors returned by an Engine are Status codes (or wrap one);
// the wrapper forwards them to callers unchanged.
//
// Thread safety is whatever the concrete engine provides. The wrapper
// neither adds nor removes such guarantees; callers must serialize access
// to a single handle if the engine requires it.
type Engine interface {
	// Start performs global runtime setup (static tables, operator
	// registration). It must be called before any classification run.
	Start() error

	// Stop tears the global runtime state back down.
	Stop() error

	// Default returns the process-wide default impulse handle. The engine
	// owns the handle and its block tables; callers never free it.
	Default() *model.Handle

	// InitImpulse initializes a handle from the default compiled-in model.
	InitImpulse(h *model.Handle) error

	// Classify runs a single-shot classification over sig and populates
	// res.
	Classify(ctx context.Context, h *model.Handle, sig signal.Signal, res *model.Result, debug bool) error

	// ClassifyContinuous runs the streaming-windowed classification
	// variant. enableMAF historically enabled a moving-average filter and
	// is unused by current engines; it is forwarded untouched.
	ClassifyContinuous(ctx context.Context, h *model.Handle, sig signal.Signal, res *model.Result, debug, enableMAF bool) error

	// Infer runs inference directly against a pre-computed feature matrix,
	// skipping the handle's own feature-extraction step.
	Infer(ctx context.Context, h *model.Handle, fm *model.FeatureMatrix, res *model.Result, debug bool) error
}
