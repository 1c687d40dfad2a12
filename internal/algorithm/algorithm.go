// Package algorithm defines the shared contract every reduction algorithm
// implements, plus a Base helper that provides cache-or-oracle testing and
// call-count instrumentation.
package algorithm

import (
	"github.com/davecgh/go-spew/spew"

	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

// Oracle classifies a candidate configuration.
type Oracle[T comparable] func(cfg configuration.Configuration[T]) outcome.Outcome

// Algorithm reduces a configuration while preserving Fail, given an oracle
// and an optional cache.
type Algorithm[T comparable] interface {
	// Run reduces cfg, querying oracle (through cache, if non-nil) for
	// verdicts. Postcondition: oracle(Run(cfg, oracle, cache)) == Fail,
	// provided oracle(cfg) == Fail and oracle is deterministic.
	Run(cfg configuration.Configuration[T], oracle Oracle[T], cache cache.Cache[T]) configuration.Configuration[T]
	// Name is a human-readable label, used only for result labelling.
	Name() string
}

// Logger is a side-channel sink for trace-level diagnostics. A nil Logger
// is a no-op: the core must not depend on logging's presence, so every
// Base starts with Logger unset and only logs when a caller injects one.
type Logger func(format string, args ...any)

// Base is embedded by every concrete Algorithm. It is not itself an
// Algorithm: it provides the oracle-invocation plumbing that DDMin,
// TicTocMin, and ProbDD each build their Run on top of.
type Base[T comparable] struct {
	Logger Logger

	calls int
}

// Reset clears the call counter. Call at the start of Run so CallCount
// reflects exactly one run.
func (b *Base[T]) Reset() {
	b.calls = 0
}

// CallCount returns the number of oracle invocations (cache hits excluded)
// since the last Reset.
func (b *Base[T]) CallCount() int {
	return b.calls
}

// Test returns cache[cfg] if present; otherwise it invokes oracle, stores
// the verdict (if cache is non-nil), and returns it. Every oracle
// invocation increments the call counter; cache hits do not.
func (b *Base[T]) Test(oracle Oracle[T], cfg configuration.Configuration[T], c cache.Cache[T]) outcome.Outcome {
	if c != nil {
		if o, ok := c.Get(cfg); ok {
			if b.Logger != nil {
				b.Logger("cache hit: %s", dump(cfg))
			}
			return o
		}
	}

	o := oracle(cfg)
	b.calls++
	if b.Logger != nil {
		b.Logger("oracle call #%d: %s => %s", b.calls, dump(cfg), o)
	}

	if c != nil {
		c.Put(cfg, o)
	}
	return o
}

// dump renders a configuration for trace logging. Callers only pay for
// go-spew formatting when a Logger is actually set.
func dump[T comparable](cfg configuration.Configuration[T]) string {
	return spew.Sdump(cfg.Elements())
}
