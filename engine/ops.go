package engine

import (
	"fmt"
	"sync"
)

// OpDetectionPostProcess is the canonical name of the detection
// postprocessing operator.
const OpDetectionPostProcess = "TFLite_Detection_PostProcess"

// OpDetectionPostProcessAlias is the alternate symbol path some
// micro-runtime operator resolvers look the detection postprocessing
// operator up under. It is installed as an alias by default.
const OpDetectionPostProcessAlias = "Register_TFLite_Detection_PostProcess"

// OpRegistration produces a runtime operator implementation. The concrete
// value is engine-specific and passed through opaquely.
type OpRegistration func() any

type opRegistry struct {
	mu      sync.RWMutex
	ops     map[string]OpRegistration
	aliases map[string]string
}

var ops = &opRegistry{
	ops: make(map[string]OpRegistration),
	aliases: map[string]string{
		OpDetectionPostProcessAlias: OpDetectionPostProcess,
	},
}

// RegisterOp registers a custom operator under name, replacing any previous
// registration.
func RegisterOp(name string, reg OpRegistration) {
	ops.mu.Lock()
	defer ops.mu.Unlock()
	ops.ops[name] = reg
}

// AliasOp re-exports the operator registered under target with an
// alternate name. The target does not have to be registered yet; the alias
// resolves lazily.
func AliasOp(alias, target string) error {
	if alias == target {
		return fmt.Errorf("alias %q must differ from target", alias)
	}
	ops.mu.Lock()
	defer ops.mu.Unlock()
	if t, ok := ops.aliases[target]; ok && t == alias {
		return fmt.Errorf("alias cycle between %q and %q", alias, target)
	}
	ops.aliases[alias] = target
	return nil
}

// ResolveOp returns the operator registered under name, following at most
// one alias hop.
func ResolveOp(name string) (OpRegistration, bool) {
	ops.mu.RLock()
	defer ops.mu.RUnlock()
	if reg, ok := ops.ops[name]; ok {
		return reg, true
	}
	if target, ok := ops.aliases[name]; ok {
		reg, ok := ops.ops[target]
		return reg, ok
	}
	return nil, false
}
