// Package cache memoizes oracle verdicts over configurations.
//
// A Cache must be total and deterministic: the same configuration must map
// to the same outcome for the cache's lifetime, and it must never return a
// verdict different from the one the oracle would return for that
// configuration (it is a faithful memo, never a guess).
package cache

import (
	"fmt"

	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

// Cache memoizes oracle verdicts for configurations of element type T.
type Cache[T comparable] interface {
	// Get returns the cached outcome for cfg, if present.
	Get(cfg configuration.Configuration[T]) (outcome.Outcome, bool)
	// Put records the oracle's outcome for cfg.
	Put(cfg configuration.Configuration[T], o outcome.Outcome)
	// Name identifies the cache implementation for result labelling.
	Name() string
}

// encode builds the canonical element encoding of a configuration used as
// the basis for cache keys. Elements are separated by a byte that cannot
// appear inside a %v rendering of a single element in practice for the
// element types this module is used with (bytes, runes, ints); callers that
// need a stronger guarantee should prefer TreeCache, which keys
// element-by-element instead of on a flattened encoding.
func encode[T comparable](cfg configuration.Configuration[T]) []byte {
	buf := make([]byte, 0, cfg.Len()*4)
	for _, e := range cfg.Elements() {
		buf = append(buf, fmt.Sprintf("%v\x00", e)...)
	}
	return buf
}
