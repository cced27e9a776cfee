package huffpack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"lukechampine.com/uint128"
)

func TestSerializeTree_Leaf(t *testing.T) {
	tree := BuildTree(CountFrequencies([]byte{7, 7, 7, 7}))
	actual, err := SerializeTree(tree)
	if err != nil {
		t.Fatalf("SerializeTree failed: %v", err)
	}
	expect := make([]byte, 19)
	expect[15] = 4
	expect[17] = 1
	expect[18] = 7
	if !bytes.Equal(expect, actual) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", expect, actual)
	}
}

func TestSerializeTree_Layout(t *testing.T) {
	tree := BuildTree(CountFrequencies([]byte{1, 34, 64, 124, 255, 1, 1}))
	blob, err := SerializeTree(tree)
	if err != nil {
		t.Fatalf("SerializeTree failed: %v", err)
	}

	// 5 leaves of 19 bytes, 4 internal nodes of 18 bytes.
	if len(blob) != 167 {
		t.Fatalf("expected 167 bytes, got %d", len(blob))
	}
	if size, _ := TreeSize(blob); size != len(blob) {
		t.Errorf("TreeSize: expected %d, got %d", len(blob), size)
	}
	if w := uint128.FromBytesBE(blob[:16]); !w.Equals64(7) {
		t.Errorf("root weight: expected 7, got %s", w)
	}
	if size := binary.BigEndian.Uint16(blob[16:18]); size != 149 {
		t.Errorf("root payload: expected 149, got %d", size)
	}

	// The left child of the root is the leaf for byte 1.
	left := blob[18:37]
	if w := uint128.FromBytesBE(left[:16]); !w.Equals64(3) {
		t.Errorf("left weight: expected 3, got %s", w)
	}
	if size := binary.BigEndian.Uint16(left[16:18]); size != 1 {
		t.Errorf("left payload: expected 1, got %d", size)
	}
	if left[18] != 1 {
		t.Errorf("left value: expected 1, got %d", left[18])
	}
}

func TestDeserializeTree_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"scenario": {1, 34, 64, 124, 255, 1, 1},
		"single":   {7, 7, 7, 7},
		"random":   makeTestData(20000, 256),
		"text":     []byte(strings.Repeat("abracadabra ", 50)),
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			tree := BuildTree(CountFrequencies(input))
			blob, err := SerializeTree(tree)
			if err != nil {
				t.Fatalf("SerializeTree failed: %v", err)
			}
			back, err := DeserializeTree(blob)
			if err != nil {
				t.Fatalf("DeserializeTree failed: %v", err)
			}

			var expectDump, actualDump strings.Builder
			_, _ = tree.Dump(&expectDump)
			_, _ = back.Dump(&actualDump)
			if expectDump.String() != actualDump.String() {
				t.Errorf("wrong tree:\n\texpect: %s\n\tactual: %s", expectDump.String(), actualDump.String())
			}

			checkWeights(t, back.Root())
			if !bytes.Equal(tree.AllValues(), back.AllValues()) {
				t.Errorf("registered values differ")
			}
			for _, value := range tree.AllValues() {
				expect, _ := tree.PathTo(value)
				actual, found := back.PathTo(value)
				if !found || expect != actual {
					t.Errorf("byte %d: expected code %s, got %s", value, expect, actual)
				}
			}
		})
	}
}

func TestHuffman_BinaryMarshaler(t *testing.T) {
	tree := BuildTree(CountFrequencies([]byte("hello, world")))
	blob, err := tree.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	var back Huffman
	if err := back.UnmarshalBinary(blob); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	if !bytes.Equal(tree.AllValues(), back.AllValues()) {
		t.Errorf("registered values differ")
	}
}

func TestDeserializeTree_Corrupt(t *testing.T) {
	tree := BuildTree(CountFrequencies([]byte{1, 34, 64, 124, 255, 1, 1}))
	blob, err := SerializeTree(tree)
	if err != nil {
		t.Fatalf("SerializeTree failed: %v", err)
	}

	corrupt := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), blob...)
		return f(b)
	}

	testData := map[string][]byte{
		"root size flipped": corrupt(func(b []byte) []byte {
			b[16] ^= 0xff
			b[17] ^= 0xff
			return b
		}),
		"root size low byte": corrupt(func(b []byte) []byte {
			b[17]++
			return b
		}),
		"root size says leaf": corrupt(func(b []byte) []byte {
			binary.BigEndian.PutUint16(b[16:], 1)
			return b
		}),
		"left size grown": corrupt(func(b []byte) []byte {
			b[18+17]++
			return b
		}),
		"truncated": blob[:len(blob)-1],
		"extended":  append(append([]byte(nil), blob...), 0),
		"header only": blob[:10],
		"empty":       nil,
		"root weight": corrupt(func(b []byte) []byte {
			b[15]++
			return b
		}),
	}
	for name, b := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := DeserializeTree(b)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestDeserializeTree_DuplicateLeaf(t *testing.T) {
	root := NewInternal(NewLeaf(uint128.From64(2), 5), NewLeaf(uint128.From64(3), 5))
	blob, err := appendNode(nil, root)
	if err != nil {
		t.Fatalf("appendNode failed: %v", err)
	}
	if _, err := DeserializeTree(blob); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestSerializeTree_Oversized(t *testing.T) {
	// 4096 leaves of 19 bytes cannot fit under one 16-bit payload size.
	level := make([]*Node, 4096)
	for i := range level {
		level[i] = NewLeaf(uint128.From64(1), byte(i))
	}
	for len(level) > 1 {
		next := make([]*Node, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, NewInternal(level[i], level[i+1]))
		}
		level = next
	}

	_, err := appendNode(nil, level[0])
	if !errors.Is(err, ErrOversized) {
		t.Errorf("expected ErrOversized, got %v", err)
	}
}
