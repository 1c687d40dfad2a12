// Package parsetree is the ordered rooted tree abstraction that HDD
// reduces over: a flat arena of nodes indexed by pre-order id, each
// node carrying a source span, its child ids, and a cached depth.
package parsetree

import "ddmin/internal/configuration"

// Node is one tree node. ID is its pre-order index (root = 0). Value is
// the source fragment it covers; for an interior node this is the full
// span of its subtree, but only leaves (Children == nil) contribute
// their Value during reconstruction.
type Node[T comparable] struct {
	ID       int
	Value    configuration.Configuration[T]
	Children []int
	Level    int
}

func (n Node[T]) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is an arena of nodes indexed by pre-order id, built once per
// Parser.Parse call and owned by the HDD run that built it.
type Tree[T comparable] struct {
	nodes []Node[T]
}

// Builder assembles a Tree in pre-order: Reserve a node's id before
// descending into its children, then Set its value and child ids once
// they are known.
type Builder[T comparable] struct {
	nodes []Node[T]
}

func NewBuilder[T comparable]() *Builder[T] {
	return &Builder[T]{}
}

// Reserve allocates the next pre-order id for a node at the given
// depth and returns it. The caller must follow up with Set once the
// node's value and children are known.
func (b *Builder[T]) Reserve(level int) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, Node[T]{ID: id, Level: level})
	return id
}

// Set fills in the value and children of a previously reserved node.
func (b *Builder[T]) Set(id int, value configuration.Configuration[T], children []int) {
	b.nodes[id].Value = value
	if len(children) > 0 {
		b.nodes[id].Children = append([]int(nil), children...)
	}
}

// Tree finalizes the arena built so far.
func (b *Builder[T]) Tree() *Tree[T] {
	return &Tree[T]{nodes: append([]Node[T](nil), b.nodes...)}
}

// Parser builds a pre-ordered tree from a configuration. Concrete
// implementations (e.g. textparser.RecordParser) interpret the
// element type as source text, tokens, or a binary schema.
type Parser[T comparable] interface {
	Parse(cfg configuration.Configuration[T]) (*Tree[T], error)
}

func (t *Tree[T]) Node(id int) Node[T] {
	return t.nodes[id]
}

func (t *Tree[T]) Len() int {
	return len(t.nodes)
}

// MaxDepth returns the deepest level present in the tree (root is 0).
func (t *Tree[T]) MaxDepth() int {
	max := 0
	for _, n := range t.nodes {
		if n.Level > max {
			max = n.Level
		}
	}
	return max
}

// NodesAtLevel returns, in pre-order, the ids of every node at the
// given depth.
func (t *Tree[T]) NodesAtLevel(level int) []int {
	var ids []int
	for _, n := range t.nodes {
		if n.Level == level {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Reconstruct walks the tree in pre-order from the root, concatenating
// the Value of every leaf reached. present[id] == false prunes that
// node and its entire subtree from the walk; an id absent from present
// defaults to kept. This is the tree-shaped analogue of
// configuration.Configuration.Without: excluding a node contributes
// nothing, exactly as excluding an element does for a flat sequence.
func (t *Tree[T]) Reconstruct(present map[int]bool) configuration.Configuration[T] {
	if len(t.nodes) == 0 {
		return configuration.Configuration[T]{}
	}
	var out []T
	t.walk(0, present, &out)
	return configuration.New(out)
}

func (t *Tree[T]) walk(id int, present map[int]bool, out *[]T) {
	if kept, ok := present[id]; ok && !kept {
		return
	}
	node := t.nodes[id]
	if node.IsLeaf() {
		*out = append(*out, node.Value.Elements()...)
		return
	}
	for _, c := range node.Children {
		t.walk(c, present, out)
	}
}
