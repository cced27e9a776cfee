package huffpack

import (
	"bytes"
	"fmt"
	"io"
)

// Encoder maps byte values to the codes assigned by a Huffman tree.
type Encoder struct {
	codes   [256]Code
	known   [256]bool
	minSize byte
	maxSize byte
}

// Init initializes this Encoder from the given tree.  The code for each
// byte value is resolved once with PathTo.
func (e *Encoder) Init(t *Huffman) {
	*e = Encoder{}
	for i, value := range t.AllValues() {
		hc, found := t.PathTo(value)
		if !found {
			continue
		}
		e.codes[value] = hc
		e.known[value] = true
		if i == 0 || e.minSize > hc.Size {
			e.minSize = hc.Size
		}
		if i == 0 || e.maxSize < hc.Size {
			e.maxSize = hc.Size
		}
	}
}

// Encode returns the code for value.  The second result is false if value
// has no leaf in the tree.
func (e *Encoder) Encode(value byte) (Code, bool) {
	return e.codes[value], e.known[value]
}

// MinSize is the bit length of the shortest code.
func (e *Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest code.
func (e *Encoder) MaxSize() byte {
	return e.maxSize
}

// EncodedBits returns the exact number of body bits needed to encode data
// with the given frequencies.
func (e *Encoder) EncodedBits(freqs *Frequencies) uint64 {
	var sum uint64
	for value, count := range freqs {
		sum += count * uint64(e.codes[value].Size)
	}
	return sum
}

// AppendEncoded packs the codes for every byte of data onto dst and returns
// the extended slice.  The final byte is zero-padded in its unused high bits.
func (e *Encoder) AppendEncoded(dst []byte, data []byte) ([]byte, error) {
	bw := NewBitWriter(dst)
	for _, value := range data {
		if !e.known[value] {
			return dst, fmt.Errorf("%w: %d", ErrUnknownByte, value)
		}
		bw.WriteCode(e.codes[value])
	}
	return bw.Bytes(), nil
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e *Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	for value := range e.codes {
		if e.known[value] {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", value, e.codes[value])
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
