package cache

import (
	"github.com/sasha-s/go-deadlock"

	"ddmin/internal/configuration"
	"ddmin/internal/outcome"
)

// trieNode is one level of a TreeCache's prefix trie: a pointer-linked
// child map keyed by a single element, with the outcome stored at the
// terminal node.
type trieNode[T comparable] struct {
	children map[T]*trieNode[T]
	has      bool
	outcome  outcome.Outcome
}

func newTrieNode[T comparable]() *trieNode[T] {
	return &trieNode[T]{children: make(map[T]*trieNode[T])}
}

// TreeCache stores configurations in a trie keyed by the element sequence,
// with outcomes at terminal nodes. It is behaviorally equivalent to
// HashCache but amortizes memory when many configurations share a long
// common prefix, which is the common case for HDD (successive levels
// reconstruct configurations that mostly agree on their non-target
// elements).
type TreeCache[T comparable] struct {
	mu   deadlock.Mutex
	root *trieNode[T]
}

// NewTreeCache creates an empty TreeCache.
func NewTreeCache[T comparable]() *TreeCache[T] {
	return &TreeCache[T]{root: newTrieNode[T]()}
}

func (c *TreeCache[T]) Get(cfg configuration.Configuration[T]) (outcome.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := c.root
	for _, e := range cfg.Elements() {
		next, ok := node.children[e]
		if !ok {
			return outcome.Pass, false
		}
		node = next
	}
	if !node.has {
		return outcome.Pass, false
	}
	return node.outcome, true
}

func (c *TreeCache[T]) Put(cfg configuration.Configuration[T], o outcome.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := c.root
	for _, e := range cfg.Elements() {
		next, ok := node.children[e]
		if !ok {
			next = newTrieNode[T]()
			node.children[e] = next
		}
		node = next
	}
	node.has = true
	node.outcome = o
}

func (c *TreeCache[T]) Name() string {
	return "TreeCache"
}
