// Package probdd implements ProbDD, a probabilistic delta debugging
// algorithm that maintains a per-element probability of being essential
// (required for the failure) and greedily batches up the least-likely
// elements for removal, updating those probabilities from the oracle's
// verdict after each batch.
//
// The update constants and selection threshold are implementation
// choices; they are documented below and exercised by the tests in
// probdd_test.go.
package probdd

import (
	"sort"

	"ddmin/internal/algorithm"
	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

const (
	// initialProbability is the uniform prior that every element is
	// essential before any test has been run against it.
	initialProbability = 0.5

	// raiseFactor moves p_i a fraction of the way to 1 when its element
	// survives a batch test (PASS/UNRESOLVED): p_i += (1-p_i)*raiseFactor.
	raiseFactor = 0.5

	// lowerFactor moves p_i a fraction of the way to 0 when its element
	// is retained in a batch whose removal still reproduced FAIL
	// (meaning the removed elements, not these, were inessential):
	// p_i -= p_i*lowerFactor.
	lowerFactor = 0.3

	// selectionThreshold decides the size of a removal batch S.
	// Candidates are added to S lowest-probability first, and growth
	// stops when the product of (1-p_i) over the elements NOT in S (the
	// ones that would stay behind) is below this threshold. That product
	// never decreases as S grows, so S is either the single
	// lowest-probability element (product over all remaining already
	// below the threshold) or every remaining element; batches of an
	// intermediate size are not produced.
	selectionThreshold = 0.05

	// convergenceThreshold is the p_i value above which an element is
	// considered settled as essential and excluded from further batches.
	convergenceThreshold = 0.999
)

// ProbDD is the probabilistic single-element elimination algorithm.
type ProbDD[T comparable] struct {
	algorithm.Base[T]
}

// New creates a ProbDD algorithm.
func New[T comparable]() *ProbDD[T] {
	return &ProbDD[T]{}
}

func (p *ProbDD[T]) Name() string {
	return "ProbDD"
}

func (p *ProbDD[T]) Run(cfg configuration.Configuration[T], oracle algorithm.Oracle[T], c cache.Cache[T]) configuration.Configuration[T] {
	p.Reset()

	elems := cfg.Elements()
	n := len(elems)
	if n == 0 {
		return cfg
	}

	probs := make([]float64, n)
	for i := range probs {
		probs[i] = initialProbability
	}
	present := make([]bool, n)
	for i := range present {
		present[i] = true
	}

	// maxRounds is a termination safeguard: every round either commits a
	// removal (strictly shrinking the remaining set) or settles at least
	// one element's probability toward convergence, so this bound is
	// never tight in practice.
	maxRounds := n*n + n + 8

	for round := 0; round < maxRounds; round++ {
		remaining := presentIndices(present)
		if len(remaining) == 0 {
			break
		}
		if allConverged(probs, remaining) {
			break
		}

		s := selectBatch(remaining, probs)
		if len(s) == 0 {
			break
		}
		kept := subtract(remaining, s)

		candidate := buildConfig(elems, kept)
		o := p.Test(oracle, candidate, c)

		if o == outcome.Fail {
			for _, i := range s {
				present[i] = false
			}
			for _, i := range kept {
				probs[i] -= probs[i] * lowerFactor
			}
		} else {
			for _, i := range s {
				if len(s) == 1 {
					probs[i] = 1
				} else {
					probs[i] += (1 - probs[i]) * raiseFactor
				}
			}
		}
	}

	return buildConfig(elems, presentIndices(present))
}

// selectBatch picks the elements to try removing this round: the
// lowest-probability (most likely inessential) elements of remaining,
// added one at a time while the product of (1-p_i) over the elements
// that would be left behind is at least selectionThreshold. The first
// element is always added; because the product only grows as elements
// move into the batch, the result is that one element when the product
// over all of remaining is below selectionThreshold, and all of
// remaining otherwise. The last remaining element is always tried
// alone.
func selectBatch(remaining []int, probs []float64) []int {
	if len(remaining) == 1 {
		return []int{remaining[0]}
	}

	ordered := append([]int(nil), remaining...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return probs[ordered[i]] < probs[ordered[j]]
	})

	product := 1.0
	for _, i := range ordered {
		product *= 1 - probs[i]
	}

	s := make([]int, 0, len(ordered))
	for _, i := range ordered {
		if product < selectionThreshold && len(s) > 0 {
			break
		}
		s = append(s, i)
		product /= 1 - probs[i]
	}
	return s
}

func allConverged(probs []float64, indices []int) bool {
	for _, i := range indices {
		if probs[i] < convergenceThreshold {
			return false
		}
	}
	return true
}

func presentIndices(present []bool) []int {
	out := make([]int, 0, len(present))
	for i, ok := range present {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func subtract(all, remove []int) []int {
	excluded := make(map[int]bool, len(remove))
	for _, i := range remove {
		excluded[i] = true
	}
	out := make([]int, 0, len(all)-len(remove))
	for _, i := range all {
		if !excluded[i] {
			out = append(out, i)
		}
	}
	return out
}

func buildConfig[T comparable](elems []T, indices []int) configuration.Configuration[T] {
	out := make([]T, len(indices))
	for i, idx := range indices {
		out[i] = elems[idx]
	}
	return configuration.New(out)
}
