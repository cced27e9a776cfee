package huffpack

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
	"lukechampine.com/uint128"
)

// Huffman is a Huffman tree together with an index of its leaves by byte
// value.
type Huffman struct {
	root   *Node
	leaves []*Node
	index  [256]*Node
}

// BuildTree constructs the Huffman tree for the given frequencies.  It returns
// nil if every count is zero.
//
// Nodes are merged lowest weight first.  Among nodes of equal weight, the one
// created earlier is merged first; leaves are created in ascending byte order
// and internal nodes after all leaves, in merge order.  The first node
// extracted becomes the left child.
//
func BuildTree(freqs Frequencies) *Huffman {
	h := nodeHeap{list: make([]*Node, 0, 256)}
	seq := 0
	for value, count := range freqs {
		if count == 0 {
			continue
		}
		leaf := NewLeaf(uint128.From64(count), byte(value))
		leaf.seq = seq
		seq++
		h.list = append(h.list, leaf)
	}
	if len(h.list) == 0 {
		return nil
	}

	h.Init()
	for h.Len() > 1 {
		a := heap.Pop(&h).(*Node)
		b := heap.Pop(&h).(*Node)
		n := NewInternal(a, b)
		n.seq = seq
		seq++
		heap.Push(&h, n)
	}

	t, err := NewTree(heap.Pop(&h).(*Node))
	assert.Assertf(err == nil, "freshly built tree rejected: %v", err)
	return t
}

// NewTree wraps an existing root node, indexing its leaves.  The root must
// not have a parent.  It fails if two leaves carry the same byte value.
func NewTree(root *Node) (*Huffman, error) {
	assert.Assertf(root != nil, "nil root")
	assert.Assertf(root.parent == nil, "root node has a parent")

	t := &Huffman{root: root}
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if n.IsLeaf() {
			if t.index[n.value] != nil {
				return fmt.Errorf("%w: byte %d appears in two leaves", ErrFormat, n.value)
			}
			t.index[n.value] = n
			return nil
		}
		assert.Assertf(n.right != nil, "internal node without right child")
		if err := walk(n.left); err != nil {
			return err
		}
		return walk(n.right)
	}
	if err := walk(root); err != nil {
		return nil, err
	}

	for _, leaf := range t.index {
		if leaf != nil {
			t.leaves = append(t.leaves, leaf)
		}
	}
	return t, nil
}

// Root returns the root node.
func (t *Huffman) Root() *Node {
	return t.root
}

// Leaves returns the leaf nodes in ascending byte order.
func (t *Huffman) Leaves() []*Node {
	return t.leaves
}

// Leaf returns the leaf for value, or nil if value is not in the tree.
func (t *Huffman) Leaf(value byte) *Node {
	return t.index[value]
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer, depth-first, left before right.
func (t *Huffman) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Huffman{\n")
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		indent := strings.Repeat("  ", depth)
		if n.IsLeaf() {
			fmt.Fprintf(&buf, "\t%sLeaf{weight=%s, value=%d}\n", indent, n.weight, n.value)
			return
		}
		fmt.Fprintf(&buf, "\t%sNode{weight=%s}\n", indent, n.weight)
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(t.root, 0)
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type nodeHeap {{{

type nodeHeap struct {
	list []*Node
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if cmp := a.weight.Cmp(b.weight); cmp != 0 {
		return cmp < 0
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(*Node))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list[last] = nil
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
