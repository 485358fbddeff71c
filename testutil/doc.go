// Package testutil provides testing utilities for impulsego.
//
// This package is intended for use in tests and benchmarks only. It
// provides a seeded RNG for generating sample buffers and feature sets, and
// FakeEngine, a recording engine.Engine implementation for verifying the
// wrapper's pass-through contract.
package testutil
