// Package tictocmin implements the TicTocMin delta debugging algorithm:
// alternating fragment-removal ("tic") and trailing-element trimming
// ("toc") passes.
//
// The deficit formula and the "halve fragment length only when nothing
// was removed this pass" policy are load-bearing: together they decide
// how many trailing-trim attempts each toc pass gets, and changing
// either changes which inputs reduce fully. Do not tune them without
// new test cases.
package tictocmin

import (
	"ddmin/internal/algorithm"
	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

// TicTocMin is the tic/toc alternating algorithm.
type TicTocMin[T comparable] struct {
	algorithm.Base[T]
}

// New creates a TicTocMin algorithm.
func New[T comparable]() *TicTocMin[T] {
	return &TicTocMin[T]{}
}

func (t *TicTocMin[T]) Name() string {
	return "TicTocMin"
}

func (t *TicTocMin[T]) Run(cfg configuration.Configuration[T], oracle algorithm.Oracle[T], c cache.Cache[T]) configuration.Configuration[T] {
	t.Reset()

	length := cfg.Len() / 2
	count := 0
	deficit := 0
	var pre, post configuration.Configuration[T]

	for length > 0 && cfg.Len() > 0 {
		if count%2 != 0 {
			// Toc: perform `deficit` attempts to trim the trailing element.
			for i := 0; i < deficit && cfg.Len() > 0; i++ {
				pre, cfg, post = t.removeLastElement(oracle, pre, cfg, post, c)
			}
			deficit = 0
		} else {
			// Tic: try deleting each fragment of the current length in turn.
			var reduced configuration.Configuration[T]
			reduced, deficit = t.removeCheckEachFragment(oracle, pre, cfg, post, length, c)
			if reduced.Equal(cfg) {
				length /= 2
			}
			cfg = reduced
		}
		count++
	}

	return configuration.Concat(pre, cfg, post)
}

// removeLastElement tries dropping the last element of cfg. It commits the
// drop iff the retest still fails; otherwise the element is relocated to
// the frozen suffix (post) rather than restored in place, since toc passes
// only ever shrink cfg from the back.
func (t *TicTocMin[T]) removeLastElement(oracle algorithm.Oracle[T], pre, cfg, post configuration.Configuration[T], c cache.Cache[T]) (configuration.Configuration[T], configuration.Configuration[T], configuration.Configuration[T]) {
	last := cfg.At(cfg.Len() - 1)
	trimmed := cfg.Slice(0, cfg.Len()-1)

	candidate := configuration.Concat(pre, trimmed, post)
	if t.Test(oracle, candidate, c) == outcome.Fail {
		return pre, trimmed, post
	}
	newPost := configuration.Concat(configuration.New([]T{last}), post)
	return pre, trimmed, newPost
}

// removeCheckEachFragment splits cfg into fragments of the given length
// and tests, for each in turn, the configuration with that fragment
// (and only that fragment, among untested ones) excluded. Fragments whose
// removal does not still fail are restored into the kept accumulator.
// Returns the reduced configuration and the deficit: how many more
// fragment-attempts were made than elements actually removed, floored at 0.
func (t *TicTocMin[T]) removeCheckEachFragment(oracle algorithm.Oracle[T], pre, cfg, post configuration.Configuration[T], length int, c cache.Cache[T]) (configuration.Configuration[T], int) {
	n := cfg.Len()
	var kept []T
	attempts := 0

	for i := 0; i < n; i += length {
		hi := i + length
		if hi > n {
			hi = n
		}
		removedFragment := cfg.Slice(i, hi)
		remaining := cfg.Slice(hi, n)

		candidate := configuration.Concat(pre, configuration.New(kept), remaining, post)
		if t.Test(oracle, candidate, c) != outcome.Fail {
			kept = append(kept, removedFragment.Elements()...)
		}
		attempts++
	}

	reduced := configuration.New(kept)
	removed := n - reduced.Len()
	deficit := attempts - removed
	if deficit < 0 {
		deficit = 0
	}
	return reduced, deficit
}
