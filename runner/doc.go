// Package runner provides a structured, runner-client-compatible API over
// the classifier wrapper.
//
// Model mirrors the interface of socket-based runner clients but executes
// the compiled-in model directly: no model path, no process boundary. It
// exposes model parameters, typed inference results, a streaming continuous
// mode with per-label moving-average filtering, and batch inference with
// bounded concurrency.
//
//	c, _ := impulsego.New(eng)
//	m, _ := runner.New(c)
//
//	resp, _ := m.Infer(ctx, features)
//	switch r := resp.Result.(type) {
//	case runner.ClassificationResult:
//	    fmt.Println(r.Classification)
//	case runner.ObjectDetectionResult:
//	    fmt.Println(r.BoundingBoxes)
//	case runner.VisualAnomalyResult:
//	    fmt.Println(r.Anomaly)
//	}
package runner
