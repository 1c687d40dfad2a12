// Package hdd implements hierarchical delta debugging: it drives any
// inner algorithm.Algorithm[int] over the node-id lists of a
// parsetree.Tree, one level at a time.
package hdd

import (
	"github.com/pkg/errors"

	"ddmin/internal/algorithm"
	"ddmin/internal/cache"
	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
	"ddmin/internal/parsetree"
)

// HDD reduces a parsed tree level by level using an inner algorithm
// operating on node ids.
type HDD[T comparable] struct {
	Logger algorithm.Logger
}

func New[T comparable]() *HDD[T] {
	return &HDD[T]{}
}

func (h *HDD[T]) Name() string {
	return "HDD"
}

// Run parses cfg once, then for each depth d = 1..maxDepth builds an
// oracle adapter over the surviving node ids at that depth and lets
// inner reduce them, pruning the tree to the surviving set before
// moving to the next depth.
//
// c, if non-nil, memoizes verdicts keyed by the reconstructed
// configuration, not by the node-id list the inner algorithm sees: id
// subsets at different levels can spell the same key (the empty subset
// does at every level) while reconstructing different configurations,
// whereas two levels that reconstruct the same configuration must get
// the same verdict from a deterministic oracle. Keying on the
// reconstruction is what makes sharing one cache across every level
// sound. The inner algorithm itself runs uncached; a repeated id-level
// candidate still resolves against c before reaching the oracle.
func (h *HDD[T]) Run(cfg configuration.Configuration[T], parser parsetree.Parser[T], inner algorithm.Algorithm[int], oracle algorithm.Oracle[T], c cache.Cache[T]) (configuration.Configuration[T], error) {
	tree, err := parser.Parse(cfg)
	if err != nil {
		return configuration.Configuration[T]{}, errors.Wrap(err, "parse configuration")
	}

	present := make(map[int]bool)

	for d := 1; d <= tree.MaxDepth(); d++ {
		ids := survivingIDs(tree, present, d)
		if len(ids) == 0 {
			continue
		}

		adapter := func(candidate configuration.Configuration[int]) outcome.Outcome {
			kept := candidate.Elements()
			trial := cloneKept(present)
			keptSet := make(map[int]bool, len(kept))
			for _, id := range kept {
				keptSet[id] = true
			}
			for _, id := range ids {
				trial[id] = keptSet[id]
			}
			reconstruction := tree.Reconstruct(trial)
			if h.Logger != nil {
				h.Logger("HDD level %d: testing %d/%d nodes", d, len(kept), len(ids))
			}
			if c != nil {
				if o, ok := c.Get(reconstruction); ok {
					return o
				}
			}
			o := oracle(reconstruction)
			if c != nil {
				c.Put(reconstruction, o)
			}
			return o
		}

		reduced := inner.Run(configuration.New(ids), adapter, nil)
		reducedSet := make(map[int]bool, reduced.Len())
		for _, id := range reduced.Elements() {
			reducedSet[id] = true
		}
		for _, id := range ids {
			present[id] = reducedSet[id]
		}
	}

	return tree.Reconstruct(present), nil
}

// survivingIDs returns the ids at depth d whose ancestors are all
// still present; a node under an already-pruned ancestor is dead and
// must not be offered to the inner algorithm.
func survivingIDs[T comparable](tree *parsetree.Tree[T], present map[int]bool, d int) []int {
	// present only records decisions at already-processed levels (< d);
	// a node at level d is alive iff none of its ancestors was marked
	// false. The tree has no parent pointers, so walk down from the
	// root once per level instead, pruning as we go.
	var alive []int
	var walk func(id int, level int)
	walk = func(id int, level int) {
		if kept, ok := present[id]; ok && !kept {
			return
		}
		node := tree.Node(id)
		if node.Level == level {
			alive = append(alive, id)
			return
		}
		for _, c := range node.Children {
			walk(c, level)
		}
	}
	walk(0, d)
	return alive
}

func cloneKept(m map[int]bool) map[int]bool {
	out := make(map[int]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
