// Package engine defines the boundary to the external inference runtime.
//
// Engine is the collaborator interface the classifier wrapper forwards all
// lifecycle and execution calls into. Status is the runtime's own
// status-code enumeration; codes cross the wrapper unchanged.
//
// The package also hosts the process-wide operator registry, including the
// compatibility alias under which some micro-runtime resolvers expect to
// find the detection postprocessing operator.
package engine
