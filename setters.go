package impulsego

import (
	"context"

	"github.com/hupe1980/impulsego/engine"
	"github.com/hupe1980/impulsego/model"
)

// findBlock scans the default handle's postprocessing block table in index
// order and returns the first block with the requested ID. Scanning stops
// at the first ID match: a later block that also matches the ID, or that
// would be tag-wise more appropriate, is never considered.
func (c *Classifier) findBlock(blockID model.BlockID) *model.PostprocessingBlock {
	h := c.engine.Default()
	if h == nil || h.Impulse == nil {
		return nil
	}
	for i := range h.Impulse.PostprocessingBlocks {
		if h.Impulse.PostprocessingBlocks[i].ID == blockID {
			return &h.Impulse.PostprocessingBlocks[i]
		}
	}
	return nil
}

// SetObjectDetectionThreshold sets the minimum detection score of the
// object-detection block with the given ID.
//
// Every lookup failure (ID not found, nil config, block not tagged
// object-detection) collapses into engine.ErrInference.
func (c *Classifier) SetObjectDetectionThreshold(blockID model.BlockID, minScore float32) error {
	b := c.findBlock(blockID)
	if b == nil || b.Config == nil {
		return c.setterFailed(blockID, model.BlockKindObjectDetection)
	}
	cfg, ok := b.Config.(*model.ObjectDetectionConfig)
	if !ok {
		return c.setterFailed(blockID, model.BlockKindObjectDetection)
	}
	cfg.Threshold = minScore
	c.setterApplied(blockID, model.BlockKindObjectDetection)
	return nil
}

// SetAnomalyThreshold sets the minimum anomaly score of the anomaly block
// with the given ID. Both GMM and visual anomaly blocks qualify; each
// carries a single threshold field.
//
// Every lookup failure collapses into engine.ErrInference.
func (c *Classifier) SetAnomalyThreshold(blockID model.BlockID, minAnomalyScore float32) error {
	b := c.findBlock(blockID)
	if b == nil || b.Config == nil {
		return c.setterFailed(blockID, model.BlockKindVisualAnomaly)
	}
	switch cfg := b.Config.(type) {
	case *model.AnomalyGMMConfig:
		cfg.Threshold = minAnomalyScore
		c.setterApplied(blockID, model.BlockKindAnomalyGMM)
		return nil
	case *model.VisualAnomalyConfig:
		cfg.Threshold = minAnomalyScore
		c.setterApplied(blockID, model.BlockKindVisualAnomaly)
		return nil
	default:
		return c.setterFailed(blockID, model.BlockKindVisualAnomaly)
	}
}

// SetObjectTrackingThreshold sets the tracking threshold, keep-grace frame
// count and max observation count of the object-tracking block with the
// given ID.
//
// Every lookup failure collapses into engine.ErrInference.
func (c *Classifier) SetObjectTrackingThreshold(blockID model.BlockID, threshold float32, keepGrace uint32, maxObservations uint16) error {
	b := c.findBlock(blockID)
	if b == nil || b.Config == nil {
		return c.setterFailed(blockID, model.BlockKindObjectTracking)
	}
	cfg, ok := b.Config.(*model.ObjectTrackingConfig)
	if !ok {
		return c.setterFailed(blockID, model.BlockKindObjectTracking)
	}
	cfg.Threshold = threshold
	cfg.KeepGrace = keepGrace
	cfg.MaxObservations = maxObservations
	c.setterApplied(blockID, model.BlockKindObjectTracking)
	return nil
}

func (c *Classifier) setterApplied(blockID model.BlockID, kind model.BlockKind) {
	c.metrics.RecordThresholdUpdate(kind, nil)
	c.logger.LogThresholdUpdate(context.Background(), blockID, kind, nil)
}

func (c *Classifier) setterFailed(blockID model.BlockID, kind model.BlockKind) error {
	c.metrics.RecordThresholdUpdate(kind, engine.ErrInference)
	c.logger.LogThresholdUpdate(context.Background(), blockID, kind, engine.ErrInference)
	return engine.ErrInference
}
