package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
)

// Decoder turns packed code bits back into bytes by walking a Huffman tree.
type Decoder struct {
	tree *Huffman
}

// Init initializes this Decoder with the given tree.
func (d *Decoder) Init(t *Huffman) {
	*d = Decoder{tree: t}
}

// Decode reads bits from br, starting at the root, until it reaches a leaf,
// and returns that leaf's value.  A single-leaf tree consumes no bits.
//
// If br runs out of bits before a leaf is reached, Decode returns
// ErrTruncated.
//
func (d *Decoder) Decode(br *BitReader) (byte, error) {
	n := d.tree.root
	for !n.IsLeaf() {
		left, ok := br.ReadBit()
		if !ok {
			return 0, fmt.Errorf("%w: bit stream ended inside a code after %d bits", ErrTruncated, br.BitsRead())
		}
		n = n.child(left)
	}
	return n.value, nil
}

// DecodeAll decodes exactly count bytes from body and appends them to dst.
// Padding bits in the final byte are ignored, but whole bytes left over
// after the last code are reported as ErrFormat.
func (d *Decoder) DecodeAll(dst []byte, body []byte, count uint64) ([]byte, error) {
	root := d.tree.root
	if root.IsLeaf() {
		if len(body) != 0 {
			return dst, fmt.Errorf("%w: %d body bytes after a single-symbol tree", ErrFormat, len(body))
		}
		if count > uint64(math.MaxInt-len(dst)) {
			return dst, fmt.Errorf("%w: original length %d is too large", ErrFormat, count)
		}
		return append(dst, bytes.Repeat([]byte{root.value}, int(count))...), nil
	}

	// Every code is at least one bit long.
	bodyBits := uint64(len(body)) * 8
	if count > bodyBits {
		return dst, fmt.Errorf("%w: %d bytes recorded but body holds only %d bits", ErrTruncated, count, bodyBits)
	}

	if dst == nil {
		dst = make([]byte, 0, count)
	}
	br := NewBitReader(body)
	for i := uint64(0); i < count; i++ {
		value, err := d.Decode(br)
		if err != nil {
			return dst, err
		}
		dst = append(dst, value)
	}

	if used := bytesForBits(br.BitsRead()); used != uint64(len(body)) {
		return dst, fmt.Errorf("%w: %d trailing bytes after the last code", ErrFormat, uint64(len(body))-used)
	}
	return dst, nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer, one line per code in (length, bits) order.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	table := make(map[Code]byte, len(d.tree.leaves))
	keys := make(byCode, 0, len(d.tree.leaves))
	for _, value := range d.tree.AllValues() {
		hc, _ := d.tree.PathTo(value)
		table[hc] = value
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		fmt.Fprintf(&buf, "\tDecode(%s) = %d\n", hc, table[hc])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	return list[i].less(list[j])
}

var _ sort.Interface = byCode(nil)

// }}}
