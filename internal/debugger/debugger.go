// Package debugger turns a raw oracle call into a configuration-level
// Outcome. The core algorithms never import this package; they take an
// algorithm.Oracle directly. But a real caller rarely has a pure
// function lying around; more often it has a child process to spawn,
// and Debugger bridges the two.
package debugger

import (
	"ddmin/internal/algorithm"
	"ddmin/internal/cache"
	"ddmin/internal/configuration"
)

// Debugger pairs one reduction algorithm with one oracle (and an
// optional cache) and remembers the last reduction it produced.
type Debugger[T comparable] struct {
	Algorithm algorithm.Algorithm[T]
	Oracle    algorithm.Oracle[T]
	Cache     cache.Cache[T]

	// Result holds the configuration produced by the most recent Debug
	// call, for callers that want to re-read it later.
	Result configuration.Configuration[T]
}

// New creates a Debugger driving alg against oracle.
func New[T comparable](alg algorithm.Algorithm[T], oracle algorithm.Oracle[T]) *Debugger[T] {
	return &Debugger[T]{Algorithm: alg, Oracle: oracle}
}

// Debug reduces cfg with the configured algorithm and oracle, records
// the result, and returns it.
func (d *Debugger[T]) Debug(cfg configuration.Configuration[T]) configuration.Configuration[T] {
	d.Result = d.Algorithm.Run(cfg, d.Oracle, d.Cache)
	return d.Result
}
