// Package discretepdf implements a discrete probability density function
// over an arbitrary set of items: a weighted set supporting insertion,
// removal, in-place weight update, and weighted-random draw, all in
// O(log n) expected time.
//
// Internally it is a treap ordered by insertion with random heap
// priorities; every node caches the total weight of its subtree, so a draw
// is a single root-to-node descent guided by cumulative weight.
package discretepdf

import (
	"fmt"

	"github.com/hupe1980/symgo/rng"
)

// PDF is a discrete probability density function over items of type T.
// Total weight mass need not be normalized; draws are proportional.
//
// PDF is not safe for concurrent use.
type PDF[T comparable] struct {
	root  *node[T]
	nodes map[T]*node[T]
	rng   *rng.RNG
}

type node[T comparable] struct {
	item   T
	weight float64
	sum    float64 // weight + sum of children
	prio   uint32  // min-heap priority, keeps the tree balanced
	left   *node[T]
	right  *node[T]
	parent *node[T]
}

func (n *node[T]) recalc() {
	n.sum = n.weight
	if n.left != nil {
		n.sum += n.left.sum
	}
	if n.right != nil {
		n.sum += n.right.sum
	}
}

// New creates an empty PDF. The random source seeds the treap priorities
// only; it does not influence draw outcomes. If r is nil a fixed seed is
// used.
func New[T comparable](r *rng.RNG) *PDF[T] {
	if r == nil {
		r = rng.New(1)
	}
	return &PDF[T]{
		nodes: make(map[T]*node[T]),
		rng:   r,
	}
}

// Empty reports whether the PDF holds no items.
func (p *PDF[T]) Empty() bool {
	return len(p.nodes) == 0
}

// Len returns the number of items.
func (p *PDF[T]) Len() int {
	return len(p.nodes)
}

// Contains reports whether item is present.
func (p *PDF[T]) Contains(item T) bool {
	_, ok := p.nodes[item]
	return ok
}

// Weight returns the weight of item, or false if it is not present.
func (p *PDF[T]) Weight(item T) (float64, bool) {
	n, ok := p.nodes[item]
	if !ok {
		return 0, false
	}
	return n.weight, true
}

// TotalWeight returns the sum of all weights.
func (p *PDF[T]) TotalWeight() float64 {
	if p.root == nil {
		return 0
	}
	return p.root.sum
}

// Insert adds item with the given weight.
// It panics if item is already present.
func (p *PDF[T]) Insert(item T, weight float64) {
	if _, ok := p.nodes[item]; ok {
		panic(fmt.Sprintf("discretepdf: duplicate insert of %v", item))
	}

	n := &node[T]{item: item, weight: weight, sum: weight, prio: p.rng.Uint32()}
	p.nodes[item] = n

	if p.root == nil {
		p.root = n
		return
	}

	// Attach as the rightmost leaf, then rotate up into heap order.
	at := p.root
	for at.right != nil {
		at = at.right
	}
	at.right = n
	n.parent = at
	for a := at; a != nil; a = a.parent {
		a.sum += weight
	}
	for n.parent != nil && n.prio < n.parent.prio {
		p.rotateUp(n)
	}
}

// Update sets the weight of item in place.
// It panics if item is not present.
func (p *PDF[T]) Update(item T, weight float64) {
	n, ok := p.nodes[item]
	if !ok {
		panic(fmt.Sprintf("discretepdf: update of unknown item %v", item))
	}
	n.weight = weight
	for a := n; a != nil; a = a.parent {
		a.recalc()
	}
}

// Remove deletes item.
// It panics if item is not present.
func (p *PDF[T]) Remove(item T) {
	n, ok := p.nodes[item]
	if !ok {
		panic(fmt.Sprintf("discretepdf: remove of unknown item %v", item))
	}
	delete(p.nodes, item)

	// Rotate down to a leaf, preferring the child with the smaller
	// priority so the heap order survives.
	for n.left != nil || n.right != nil {
		c := n.left
		if c == nil || (n.right != nil && n.right.prio < c.prio) {
			c = n.right
		}
		p.rotateUp(c)
	}

	par := n.parent
	if par == nil {
		p.root = nil
		return
	}
	if par.left == n {
		par.left = nil
	} else {
		par.right = nil
	}
	n.parent = nil
	for a := par; a != nil; a = a.parent {
		a.recalc()
	}
}

// Choose draws an item proportionally to its weight. pr must lie in [0,1);
// equal pr values map to equal items for an unchanged PDF, so a
// deterministic pr sweep yields a deterministic draw sequence.
//
// It panics if the PDF is empty.
func (p *PDF[T]) Choose(pr float64) T {
	if p.root == nil {
		panic("discretepdf: choose on empty PDF")
	}
	if pr < 0 || pr >= 1 {
		panic(fmt.Sprintf("discretepdf: choose probability %v outside [0,1)", pr))
	}

	target := pr * p.root.sum
	n := p.root
	for {
		if n.left != nil {
			if target < n.left.sum {
				n = n.left
				continue
			}
			target -= n.left.sum
		}
		// The right guard absorbs floating point rounding at the total.
		if target < n.weight || n.right == nil {
			return n.item
		}
		target -= n.weight
		n = n.right
	}
}

// rotateUp moves n above its parent, preserving in-order sequence and the
// cached subtree sums.
func (p *PDF[T]) rotateUp(n *node[T]) {
	par := n.parent
	g := par.parent

	if par.left == n {
		par.left = n.right
		if n.right != nil {
			n.right.parent = par
		}
		n.right = par
	} else {
		par.right = n.left
		if n.left != nil {
			n.left.parent = par
		}
		n.left = par
	}
	par.parent = n
	n.parent = g
	if g == nil {
		p.root = n
	} else if g.left == par {
		g.left = n
	} else {
		g.right = n
	}

	par.recalc()
	n.recalc()
}
