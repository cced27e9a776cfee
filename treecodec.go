package huffpack

import (
	"encoding/binary"
	"fmt"
	"math"

	"lukechampine.com/uint128"
)

const (
	weightFieldSize = 16
	sizeFieldSize   = 2

	// NodeHeaderSize is the fixed number of bytes preceding every node's
	// payload in a serialized tree.
	NodeHeaderSize = weightFieldSize + sizeFieldSize

	maxPayloadSize = math.MaxUint16
	leafPayload    = 1
)

// SerializeTree encodes the tree depth-first: each node is its weight, its
// payload size, and its payload.
//
// It returns ErrOversized if any subtree's payload would not fit in the
// 16-bit size field.
//
func SerializeTree(t *Huffman) ([]byte, error) {
	return appendNode(nil, t.root)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Huffman) MarshalBinary() ([]byte, error) {
	return SerializeTree(t)
}

func appendNode(dst []byte, n *Node) ([]byte, error) {
	start := len(dst)
	dst = append(dst, make([]byte, NodeHeaderSize)...)
	n.weight.PutBytesBE(dst[start : start+weightFieldSize])

	if n.IsLeaf() {
		binary.BigEndian.PutUint16(dst[start+weightFieldSize:], leafPayload)
		return append(dst, n.value), nil
	}

	var err error
	if dst, err = appendNode(dst, n.left); err != nil {
		return nil, err
	}
	if dst, err = appendNode(dst, n.right); err != nil {
		return nil, err
	}

	payload := len(dst) - start - NodeHeaderSize
	if payload > maxPayloadSize {
		return nil, fmt.Errorf("%w: node of weight %s needs %d bytes", ErrOversized, n.weight, payload)
	}
	binary.BigEndian.PutUint16(dst[start+weightFieldSize:], uint16(payload))
	return dst, nil
}

// DeserializeTree decodes a blob produced by SerializeTree.  The blob must
// be exactly one complete root node; parent links and branch flags are
// rebuilt from the nesting.
func DeserializeTree(blob []byte) (*Huffman, error) {
	root, err := parseNode(blob)
	if err != nil {
		return nil, err
	}
	return NewTree(root)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Huffman) UnmarshalBinary(blob []byte) error {
	parsed, err := DeserializeTree(blob)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// TreeSize returns the length of the serialized tree at the start of b, as
// declared by the root node's header.
func TreeSize(b []byte) (int, error) {
	if len(b) < NodeHeaderSize {
		return 0, fmt.Errorf("%w: need %d header bytes, have %d", ErrFormat, NodeHeaderSize, len(b))
	}
	return NodeHeaderSize + int(binary.BigEndian.Uint16(b[weightFieldSize:])), nil
}

func parseNode(b []byte) (*Node, error) {
	size, err := TreeSize(b)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("%w: node declares %d bytes, blob has %d", ErrFormat, size, len(b))
	}

	weight := uint128.FromBytesBE(b[:weightFieldSize])
	payload := b[NodeHeaderSize:]
	if len(payload) == leafPayload {
		return NewLeaf(weight, payload[0]), nil
	}

	leftSize, err := TreeSize(payload)
	if err != nil {
		return nil, err
	}
	if leftSize > len(payload) {
		return nil, fmt.Errorf("%w: left subtree declares %d bytes, parent payload has %d", ErrFormat, leftSize, len(payload))
	}
	left, err := parseNode(payload[:leftSize])
	if err != nil {
		return nil, err
	}
	right, err := parseNode(payload[leftSize:])
	if err != nil {
		return nil, err
	}

	sum := left.weight.AddWrap(right.weight)
	if sum.Cmp(left.weight) < 0 || !sum.Equals(weight) {
		return nil, fmt.Errorf("%w: node weight %s is not the sum of its children", ErrFormat, weight)
	}
	return NewInternal(left, right), nil
}
