package huffpack

import (
	"github.com/chronos-tachyon/assert"
)

// PathTo returns the root-to-leaf code for value.  The second result is
// false if value has no leaf in the tree.
//
// The code is found by walking from the leaf up to the root, recording which
// side each step came from, and then reversing the result so that the first
// bit is the branch taken at the root.  A tree consisting of a single leaf
// yields the empty code.
//
func (t *Huffman) PathTo(value byte) (Code, bool) {
	leaf := t.index[value]
	if leaf == nil {
		return Code{}, false
	}

	var upward Code
	for n := leaf; n.parent != nil; n = n.parent {
		assert.Assertf(upward.Size < MaxCodeSize, "tree deeper than %d levels", MaxCodeSize)
		upward = upward.Append(n.isLeft)
	}
	return upward.Reversed(), true
}

// AllValues returns every byte value that has a leaf in the tree, in
// ascending order.
func (t *Huffman) AllValues() []byte {
	out := make([]byte, len(t.leaves))
	for i, leaf := range t.leaves {
		out[i] = leaf.value
	}
	return out
}
