package impulsego

import "errors"

// These errors cover argument validation performed by the wrapper itself.
// They are distinct from engine statuses, which cross the wrapper unchanged.
var (
	// ErrNilEngine is returned by New when no engine is supplied.
	ErrNilEngine = errors.New("engine must not be nil")
	// ErrNilSignal is returned when a classification run is given a nil
	// signal.
	ErrNilSignal = errors.New("signal must not be nil")
	// ErrNilResult is returned when a classification run is given a nil
	// result to populate.
	ErrNilResult = errors.New("result must not be nil")
)
