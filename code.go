package huffpack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest code any tree over a byte alphabet can produce:
// 256 leaves chained one per level.
const MaxCodeSize = 255

const codeWords = 4

// Code represents a root-to-leaf sequence of branch decisions.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The least significant bit
	// of Bits[0] is the first bit, i.e. the branch taken at the root.  A 1
	// bit means "left child" and a 0 bit means "right child".
	Bits [codeWords]uint64
}

// MakeCode constructs a Code from a sequence of branch flags, first step
// first.  A true flag means "left child".
func MakeCode(path []bool) Code {
	assert.Assertf(len(path) <= MaxCodeSize, "path length %d > MaxCodeSize %d", len(path), MaxCodeSize)
	var hc Code
	for _, left := range path {
		hc = hc.Append(left)
	}
	return hc
}

// Bit returns the i'th bit of the code, counting from the root.
func (hc Code) Bit(i int) bool {
	assert.Assertf(i >= 0 && i < int(hc.Size), "bit index %d out of range [0, %d)", i, hc.Size)
	return (hc.Bits[i>>6]>>(uint(i)&63))&1 != 0
}

// Append returns the code extended by one more branch flag.
func (hc Code) Append(left bool) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code already holds %d bits", hc.Size)
	if left {
		i := uint(hc.Size)
		hc.Bits[i>>6] |= uint64(1) << (i & 63)
	}
	hc.Size++
	return hc
}

// Reversed returns the corresponding Code with the bits in reverse order.
func (hc Code) Reversed() Code {
	out := Code{Size: hc.Size}
	n := int(hc.Size)
	for i := 0; i < n; i++ {
		if hc.Bit(i) {
			j := uint(n - 1 - i)
			out.Bits[j>>6] |= uint64(1) << (j & 63)
		}
	}
	return out
}

// Path returns the code as a sequence of branch flags, first step first.
func (hc Code) Path() []bool {
	out := make([]bool, hc.Size)
	for i := range out {
		out[i] = hc.Bit(i)
	}
	return out
}

// HasPrefix reports whether prefix is a prefix of this code.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	for i := 0; i < int(prefix.Size); i++ {
		if hc.Bit(i) != prefix.Bit(i) {
			return false
		}
	}
	return true
}

// String returns the string representation of this Code, first bit first.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	var buf strings.Builder
	buf.Grow(int(hc.Size))
	for i := 0; i < int(hc.Size); i++ {
		if hc.Bit(i) {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	return strconv.Quote(buf.String())
}

var _ fmt.Stringer = Code{}

func (hc Code) less(other Code) bool {
	if hc.Size != other.Size {
		return hc.Size < other.Size
	}
	return hc.String() < other.String()
}
