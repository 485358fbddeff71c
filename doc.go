// Package impulsego provides a thin Go binding surface for an embedded
// impulse classifier runtime.
//
// All inference logic — the classifier state machine, signal windowing, DSP
// feature extraction and postprocessing — lives in the external engine
// behind the engine.Engine interface. This package forwards calls into it
// unchanged and adds exactly one piece of logic of its own: locating a
// postprocessing configuration block by ID and mutating threshold fields in
// place.
//
// # Quick Start
//
//	c, _ := impulsego.New(eng)
//	_ = c.Init()
//	defer c.Deinit()
//
//	sig, _ := signal.FromBuffer(samples)
//	var res model.Result
//	if err := c.RunClassifier(ctx, sig, &res, false); err != nil {
//	    // err is the engine's own status code, untranslated
//	}
//
// # Threshold Setters
//
// Setters scan the default handle's postprocessing block table in index
// order, act on the first ID match only, validate the block's tag, and
// collapse every failure into engine.ErrInference:
//
//	_ = c.SetObjectDetectionThreshold(7, 0.6)
//	_ = c.SetAnomalyThreshold(9, 0.35)
//	_ = c.SetObjectTrackingThreshold(12, 0.5, 5, 20)
//
// # Higher-Level API
//
// The runner package offers a structured model façade (parameters,
// continuous mode with moving-average filtering, typed inference results),
// and the deployment package fetches built model deployments from a studio
// instance.
package impulsego
