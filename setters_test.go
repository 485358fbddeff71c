package impulsego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/impulsego/engine"
	"github.com/hupe1980/impulsego/model"
	"github.com/hupe1980/impulsego/testutil"
)

func newSetterClassifier(t *testing.T, im *model.Impulse) *Classifier {
	t.Helper()
	c, err := New(testutil.NewFakeEngine(im))
	require.NoError(t, err)
	return c
}

func TestSetObjectDetectionThreshold(t *testing.T) {
	t.Run("UpdatesMatchingBlock", func(t *testing.T) {
		im := newTestImpulse()
		c := newSetterClassifier(t, im)

		require.NoError(t, c.SetObjectDetectionThreshold(7, 0.85))

		cfg := im.PostprocessingBlocks[0].Config.(*model.ObjectDetectionConfig)
		assert.Equal(t, float32(0.85), cfg.Threshold)

		// All other blocks are untouched.
		assert.Equal(t, float32(0.3), im.PostprocessingBlocks[1].Config.(*model.AnomalyGMMConfig).Threshold)
		tracking := im.PostprocessingBlocks[2].Config.(*model.ObjectTrackingConfig)
		assert.Equal(t, float32(0.4), tracking.Threshold)
		assert.Equal(t, uint32(3), tracking.KeepGrace)
		assert.Equal(t, uint16(10), tracking.MaxObservations)
	})

	t.Run("UnknownID", func(t *testing.T) {
		c := newSetterClassifier(t, newTestImpulse())
		err := c.SetObjectDetectionThreshold(404, 0.85)
		assert.ErrorIs(t, err, engine.ErrInference)
	})

	t.Run("NilConfig", func(t *testing.T) {
		im := &model.Impulse{
			PostprocessingBlocks: []model.PostprocessingBlock{
				{ID: 7, Kind: model.BlockKindObjectDetection, Config: nil},
			},
		}
		c := newSetterClassifier(t, im)
		err := c.SetObjectDetectionThreshold(7, 0.85)
		assert.ErrorIs(t, err, engine.ErrInference)
	})

	t.Run("WrongKind", func(t *testing.T) {
		c := newSetterClassifier(t, newTestImpulse())
		// Block 9 exists but is an anomaly block; the kind mismatch
		// collapses into the same generic error as not-found.
		err := c.SetObjectDetectionThreshold(9, 0.85)
		assert.ErrorIs(t, err, engine.ErrInference)
	})

	t.Run("DuplicateIDFirstMatchWins", func(t *testing.T) {
		im := &model.Impulse{
			PostprocessingBlocks: []model.PostprocessingBlock{
				{ID: 7, Kind: model.BlockKindObjectDetection, Config: &model.ObjectDetectionConfig{Threshold: 0.5}},
				{ID: 7, Kind: model.BlockKindObjectDetection, Config: &model.ObjectDetectionConfig{Threshold: 0.5}},
			},
		}
		c := newSetterClassifier(t, im)

		require.NoError(t, c.SetObjectDetectionThreshold(7, 0.9))

		assert.Equal(t, float32(0.9), im.PostprocessingBlocks[0].Config.(*model.ObjectDetectionConfig).Threshold)
		assert.Equal(t, float32(0.5), im.PostprocessingBlocks[1].Config.(*model.ObjectDetectionConfig).Threshold)
	})

	t.Run("DuplicateIDScanStopsAtFirstMatch", func(t *testing.T) {
		// The first ID match is disqualified (wrong kind); a tag-wise
		// more appropriate later block with the same ID is never
		// considered.
		im := &model.Impulse{
			PostprocessingBlocks: []model.PostprocessingBlock{
				{ID: 7, Kind: model.BlockKindAnomalyGMM, Config: &model.AnomalyGMMConfig{Threshold: 0.3}},
				{ID: 7, Kind: model.BlockKindObjectDetection, Config: &model.ObjectDetectionConfig{Threshold: 0.5}},
			},
		}
		c := newSetterClassifier(t, im)

		err := c.SetObjectDetectionThreshold(7, 0.9)
		assert.ErrorIs(t, err, engine.ErrInference)
		assert.Equal(t, float32(0.5), im.PostprocessingBlocks[1].Config.(*model.ObjectDetectionConfig).Threshold)
	})

	t.Run("EmptyTable", func(t *testing.T) {
		c := newSetterClassifier(t, &model.Impulse{})
		assert.ErrorIs(t, c.SetObjectDetectionThreshold(7, 0.85), engine.ErrInference)
	})
}

func TestSetAnomalyThreshold(t *testing.T) {
	t.Run("GMM", func(t *testing.T) {
		im := newTestImpulse()
		c := newSetterClassifier(t, im)

		require.NoError(t, c.SetAnomalyThreshold(9, 0.66))
		assert.Equal(t, float32(0.66), im.PostprocessingBlocks[1].Config.(*model.AnomalyGMMConfig).Threshold)
	})

	t.Run("VisualAnomaly", func(t *testing.T) {
		im := &model.Impulse{
			PostprocessingBlocks: []model.PostprocessingBlock{
				{ID: 3, Kind: model.BlockKindVisualAnomaly, Config: &model.VisualAnomalyConfig{Threshold: 0.2}},
			},
		}
		c := newSetterClassifier(t, im)

		require.NoError(t, c.SetAnomalyThreshold(3, 0.75))
		assert.Equal(t, float32(0.75), im.PostprocessingBlocks[0].Config.(*model.VisualAnomalyConfig).Threshold)
	})

	t.Run("WrongKind", func(t *testing.T) {
		c := newSetterClassifier(t, newTestImpulse())
		assert.ErrorIs(t, c.SetAnomalyThreshold(7, 0.75), engine.ErrInference)
	})

	t.Run("UnknownID", func(t *testing.T) {
		c := newSetterClassifier(t, newTestImpulse())
		assert.ErrorIs(t, c.SetAnomalyThreshold(404, 0.75), engine.ErrInference)
	})
}

func TestSetObjectTrackingThreshold(t *testing.T) {
	t.Run("UpdatesAllThreeFields", func(t *testing.T) {
		im := newTestImpulse()
		c := newSetterClassifier(t, im)

		require.NoError(t, c.SetObjectTrackingThreshold(12, 0.77, 8, 42))

		cfg := im.PostprocessingBlocks[2].Config.(*model.ObjectTrackingConfig)
		assert.Equal(t, float32(0.77), cfg.Threshold)
		assert.Equal(t, uint32(8), cfg.KeepGrace)
		assert.Equal(t, uint16(42), cfg.MaxObservations)
	})

	t.Run("WrongKind", func(t *testing.T) {
		c := newSetterClassifier(t, newTestImpulse())
		assert.ErrorIs(t, c.SetObjectTrackingThreshold(9, 0.77, 8, 42), engine.ErrInference)
	})

	t.Run("NilConfig", func(t *testing.T) {
		im := &model.Impulse{
			PostprocessingBlocks: []model.PostprocessingBlock{
				{ID: 12, Kind: model.BlockKindObjectTracking, Config: nil},
			},
		}
		c := newSetterClassifier(t, im)
		assert.ErrorIs(t, c.SetObjectTrackingThreshold(12, 0.77, 8, 42), engine.ErrInference)
	})
}
