// Package model defines the data model shared by the classifier wrapper and
// the inference engine: impulse handles, learning and postprocessing block
// tables, tagged block configurations, results and model metadata.
//
// Block configurations are an explicit tagged variant: every BlockConfig
// carries its BlockKind, and code that mutates type-specific fields checks
// the tag before down-casting. The engine owns all block tables and payloads;
// this package only describes their shape.
package model
