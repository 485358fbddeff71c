package impulsego

import (
	"context"
	"time"

	"github.com/hupe1980/impulsego/engine"
	"github.com/hupe1980/impulsego/model"
	"github.com/hupe1980/impulsego/signal"
)

// Classifier is the wrapper surface over an external inference engine. It
// forwards lifecycle and execution calls unchanged and owns the threshold
// setters that mutate the default impulse's postprocessing configuration in
// place.
//
// A Classifier holds no state beyond the engine reference and ambient
// concerns (logging, metrics); it is as re-entrant as the engine behind it.
type Classifier struct {
	engine  engine.Engine
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Classifier forwarding into e.
func New(e engine.Engine, optFns ...Option) (*Classifier, error) {
	if e == nil {
		return nil, ErrNilEngine
	}
	opts := applyOptions(optFns)
	return &Classifier{
		engine:  e,
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}, nil
}

// Init performs the engine's global runtime setup. It must be called once
// before any classification run.
func (c *Classifier) Init() error {
	err := c.engine.Start()
	c.logger.LogLifecycle(context.Background(), "init", err)
	return err
}

// Deinit tears the engine's global runtime state back down.
func (c *Classifier) Deinit() error {
	err := c.engine.Stop()
	c.logger.LogLifecycle(context.Background(), "deinit", err)
	return err
}

// Default returns the process-wide default impulse handle. The engine owns
// it; callers never free it.
func (c *Classifier) Default() *model.Handle {
	return c.engine.Default()
}

// InitImpulse initializes h from the default compiled-in model. The
// engine's status is returned unchanged.
func (c *Classifier) InitImpulse(h *model.Handle) error {
	return c.engine.InitImpulse(h)
}

// RunClassifier runs a single-shot classification of sig over the default
// handle and populates res. The engine's status is returned unchanged.
func (c *Classifier) RunClassifier(ctx context.Context, sig signal.Signal, res *model.Result, debug bool) error {
	if sig == nil {
		return ErrNilSignal
	}
	if res == nil {
		return ErrNilResult
	}

	start := time.Now()
	err := c.engine.Classify(ctx, c.engine.Default(), sig, res, debug)
	c.metrics.RecordClassify(time.Since(start), err)
	c.logger.LogClassify(ctx, sig.TotalLength(), debug, err)

	return err
}

// RunClassifierContinuous runs the streaming-windowed classification
// variant. enableMAFUnused historically enabled a moving-average filter; it
// is forwarded to the engine untouched and ignored by current engines.
func (c *Classifier) RunClassifierContinuous(ctx context.Context, sig signal.Signal, res *model.Result, debug, enableMAFUnused bool) error {
	if sig == nil {
		return ErrNilSignal
	}
	if res == nil {
		return ErrNilResult
	}

	start := time.Now()
	err := c.engine.ClassifyContinuous(ctx, c.engine.Default(), sig, res, debug, enableMAFUnused)
	c.metrics.RecordClassifyContinuous(time.Since(start), err)
	c.logger.LogClassify(ctx, sig.TotalLength(), debug, err)

	return err
}

// RunInference runs inference against h and a pre-computed feature matrix,
// skipping the handle's own feature-extraction step. The engine's status is
// returned unchanged.
func (c *Classifier) RunInference(ctx context.Context, h *model.Handle, fm *model.FeatureMatrix, res *model.Result, debug bool) error {
	if res == nil {
		return ErrNilResult
	}

	start := time.Now()
	err := c.engine.Infer(ctx, h, fm, res, debug)
	c.metrics.RecordInfer(time.Since(start), err)

	return err
}
