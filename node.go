package huffpack

import (
	"github.com/chronos-tachyon/assert"
	"lukechampine.com/uint128"
)

// Node is a node of a Huffman tree: either a leaf carrying a byte value or an
// internal node with exactly two children.
//
// A node's parent link is an observation used for walking upward; the parent
// owns the child, never the other way around.
type Node struct {
	weight uint128.Uint128
	left   *Node
	right  *Node
	parent *Node
	isLeft bool
	value  byte

	// seq fixes the merge order among nodes of equal weight.
	seq int
}

// NewLeaf constructs a leaf node.
func NewLeaf(weight uint128.Uint128, value byte) *Node {
	return &Node{weight: weight, value: value}
}

// NewInternal constructs an internal node that takes ownership of left and
// right.  Its weight is the sum of the children's weights.  Neither child may
// already belong to another node.
func NewInternal(left, right *Node) *Node {
	assert.Assertf(left != nil && right != nil, "internal node requires two children")
	assert.Assertf(left.parent == nil && right.parent == nil, "child node already has a parent")
	n := &Node{
		weight: left.weight.Add(right.weight),
		left:   left,
		right:  right,
	}
	left.parent, left.isLeft = n, true
	right.parent, right.isLeft = n, false
	return n
}

// Weight returns the aggregate count this node represents.
func (n *Node) Weight() uint128.Uint128 {
	return n.weight
}

// IsLeaf reports whether this node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.left == nil
}

// Value returns the byte value of a leaf.  It is meaningless for internal
// nodes.
func (n *Node) Value() byte {
	return n.value
}

// Left returns the left child, or nil for a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the right child, or nil for a leaf.
func (n *Node) Right() *Node {
	return n.right
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsLeft reports whether this node is its parent's left child.  It is false
// for the root.
func (n *Node) IsLeft() bool {
	return n.isLeft
}

// child follows one branch decision.
func (n *Node) child(left bool) *Node {
	assert.Assertf(!n.IsLeaf(), "branching from a leaf node")
	if left {
		return n.left
	}
	return n.right
}
