// Package ddmin implements the classical Zeller–Hildebrandt ddmin
// algorithm.
package ddmin

import (
	"ddmin/internal/algorithm"
	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

// DDMin is the classical minimizing delta debugging algorithm: split into
// n blocks, try removing each block, then try keeping only each block,
// doubling the granularity whenever a full pass makes no progress.
type DDMin[T comparable] struct {
	algorithm.Base[T]
}

// New creates a DDMin algorithm.
func New[T comparable]() *DDMin[T] {
	return &DDMin[T]{}
}

func (d *DDMin[T]) Name() string {
	return "DDMin"
}

// Run terminates because |cfg| strictly decreases on every successful
// reduction and n is bounded above by |cfg|. The result is 1-minimal:
// removing any single remaining element yields a non-Fail verdict.
func (d *DDMin[T]) Run(cfg configuration.Configuration[T], oracle algorithm.Oracle[T], c cache.Cache[T]) configuration.Configuration[T] {
	d.Reset()

	n := 2
	for {
		if cfg.Len() == 0 {
			return cfg
		}

		bounds := blockBounds(cfg.Len(), n)

		if reduced, ok := d.tryRemoveBlocks(cfg, oracle, c, bounds); ok {
			cfg = reduced
			n = max(n-1, 2)
			continue
		}

		// A single block is the whole configuration: keeping only it is
		// no reduction, so complements are tried only with two or more.
		if len(bounds) > 1 {
			if reduced, ok := d.tryKeepOnlyBlock(cfg, oracle, c, bounds); ok {
				cfg = reduced
				n = 2
				continue
			}
		}

		if n < cfg.Len() {
			n = min(2*n, cfg.Len())
			continue
		}

		return cfg
	}
}

// tryRemoveBlocks tests, for each block in turn, the configuration with
// that block removed. The first block whose removal still fails is
// committed.
func (d *DDMin[T]) tryRemoveBlocks(cfg configuration.Configuration[T], oracle algorithm.Oracle[T], c cache.Cache[T], bounds []blockBound) (configuration.Configuration[T], bool) {
	for _, b := range bounds {
		indices := make(map[int]bool, b.hi-b.lo)
		for i := b.lo; i < b.hi; i++ {
			indices[i] = true
		}
		candidate := cfg.Without(indices)
		if d.Test(oracle, candidate, c) == outcome.Fail {
			return candidate, true
		}
	}
	return configuration.Configuration[T]{}, false
}

// tryKeepOnlyBlock tests, for each block in turn, the configuration
// consisting of only that block (the complement of removing it). The
// first block whose complement still fails is committed.
func (d *DDMin[T]) tryKeepOnlyBlock(cfg configuration.Configuration[T], oracle algorithm.Oracle[T], c cache.Cache[T], bounds []blockBound) (configuration.Configuration[T], bool) {
	for _, b := range bounds {
		indices := make(map[int]bool, b.hi-b.lo)
		for i := b.lo; i < b.hi; i++ {
			indices[i] = true
		}
		candidate := cfg.Only(indices)
		if d.Test(oracle, candidate, c) == outcome.Fail {
			return candidate, true
		}
	}
	return configuration.Configuration[T]{}, false
}

type blockBound struct {
	lo, hi int
}

// blockBounds splits a configuration of the given length into at most n
// equal-sized blocks, the last absorbing the remainder. When n exceeds
// length, it is clamped to length so every block is non-empty.
func blockBounds(length, n int) []blockBound {
	count := n
	if count > length {
		count = length
	}
	if count < 1 {
		count = 1
	}

	size := length / count
	bounds := make([]blockBound, 0, count)
	lo := 0
	for i := 0; i < count; i++ {
		hi := lo + size
		if i == count-1 {
			hi = length
		}
		bounds = append(bounds, blockBound{lo: lo, hi: hi})
		lo = hi
	}
	return bounds
}
