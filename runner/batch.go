package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// InferBatch runs inference over independent feature sets with bounded
// concurrency. Responses are returned in input order. The first failure
// cancels outstanding work and is returned.
//
// Batch mode requires single-shot mode; each feature set must be a full
// input. Concurrency safety across calls on one handle is the engine's to
// guarantee, as everywhere else in this module.
func (m *Model) InferBatch(ctx context.Context, featureSets [][]float32, concurrency int) ([]*InferenceResponse, error) {
	if m.params.UseContinuousMode {
		return nil, ErrContinuousOnly
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	out := make([]*InferenceResponse, len(featureSets))
	for i, features := range featureSets {
		i, features := i, features
		g.Go(func() error {
			resp, err := m.inferSingle(ctx, features)
			if err != nil {
				return err
			}
			out[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
