package testutil

import (
	"context"
	"sync"

	"github.com/hupe1980/impulsego/engine"
	"github.com/hupe1980/impulsego/model"
	"github.com/hupe1980/impulsego/signal"
)

// Call records one forwarded engine operation.
type Call struct {
	Op        string
	Samples   []float32
	Debug     bool
	EnableMAF bool
	Rows      int
}

// FakeEngine is a recording engine.Engine implementation. Classification
// calls copy Result into the caller's result and return Status; every
// forwarded operation is recorded so tests can verify the wrapper adds no
// behavior of its own.
type FakeEngine struct {
	mu sync.Mutex

	handle *model.Handle

	// Result is copied into the caller-supplied result on every
	// classification or inference call.
	Result model.Result

	// Status is returned (via Status.Err) by classification and inference
	// calls.
	Status engine.Status

	// StartErr and StopErr are returned by Start and Stop.
	StartErr error
	StopErr  error

	// InitImpulseErr is returned by InitImpulse.
	InitImpulseErr error

	calls []Call
}

var _ engine.Engine = (*FakeEngine)(nil)

// NewFakeEngine creates a fake engine whose default handle wraps im.
func NewFakeEngine(im *model.Impulse) *FakeEngine {
	return &FakeEngine{
		handle: &model.Handle{Impulse: im},
	}
}

// Calls returns a snapshot of all recorded operations.
func (f *FakeEngine) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeEngine) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// Start implements engine.Engine.
func (f *FakeEngine) Start() error {
	f.record(Call{Op: "start"})
	return f.StartErr
}

// Stop implements engine.Engine.
func (f *FakeEngine) Stop() error {
	f.record(Call{Op: "stop"})
	return f.StopErr
}

// Default implements engine.Engine.
func (f *FakeEngine) Default() *model.Handle {
	return f.handle
}

// InitImpulse implements engine.Engine.
func (f *FakeEngine) InitImpulse(h *model.Handle) error {
	f.record(Call{Op: "init-impulse"})
	if f.InitImpulseErr != nil {
		return f.InitImpulseErr
	}
	h.Impulse = f.handle.Impulse
	return nil
}

// Classify implements engine.Engine.
func (f *FakeEngine) Classify(ctx context.Context, h *model.Handle, sig signal.Signal, res *model.Result, debug bool) error {
	samples, err := signal.ReadAll(sig)
	if err != nil {
		return engine.StatusDSPError
	}
	f.record(Call{Op: "classify", Samples: samples, Debug: debug})
	*res = f.Result
	return f.Status.Err()
}

// ClassifyContinuous implements engine.Engine.
func (f *FakeEngine) ClassifyContinuous(ctx context.Context, h *model.Handle, sig signal.Signal, res *model.Result, debug, enableMAF bool) error {
	samples, err := signal.ReadAll(sig)
	if err != nil {
		return engine.StatusDSPError
	}
	f.record(Call{Op: "classify-continuous", Samples: samples, Debug: debug, EnableMAF: enableMAF})
	*res = f.Result
	return f.Status.Err()
}

// Infer implements engine.Engine.
func (f *FakeEngine) Infer(ctx context.Context, h *model.Handle, fm *model.FeatureMatrix, res *model.Result, debug bool) error {
	f.record(Call{Op: "infer", Rows: fm.NumRows(), Debug: debug})
	*res = f.Result
	return f.Status.Err()
}
