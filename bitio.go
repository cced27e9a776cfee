package huffpack

// BitWriter appends bits to a byte slice, least significant bit first.
type BitWriter struct {
	buf   []byte
	acc   uint64
	nbits uint
}

// NewBitWriter returns a BitWriter that appends to dst.
func NewBitWriter(dst []byte) *BitWriter {
	return &BitWriter{buf: dst}
}

// WriteBits appends the low size bits of bits, lowest first.
func (bw *BitWriter) WriteBits(bits uint64, size uint) {
	for size > 0 {
		k := size
		if k > 32 {
			k = 32
		}
		bw.acc |= (bits & lowMask(k)) << bw.nbits
		bw.nbits += k
		bits >>= k
		size -= k
		for bw.nbits >= 8 {
			bw.buf = append(bw.buf, byte(bw.acc))
			bw.acc >>= 8
			bw.nbits -= 8
		}
	}
}

// WriteCode appends every bit of hc, first bit first.
func (bw *BitWriter) WriteCode(hc Code) {
	remain := uint(hc.Size)
	for i := 0; remain > 0; i++ {
		k := remain
		if k > 64 {
			k = 64
		}
		bw.WriteBits(hc.Bits[i], k)
		remain -= k
	}
}

// Bytes flushes any partial byte, zero-padding its unused high bits, and
// returns the accumulated slice.
func (bw *BitWriter) Bytes() []byte {
	if bw.nbits > 0 {
		bw.buf = append(bw.buf, byte(bw.acc))
		bw.acc = 0
		bw.nbits = 0
	}
	return bw.buf
}

// BitReader reads bits from a byte slice, least significant bit first.
type BitReader struct {
	buf []byte
	pos uint64
}

// NewBitReader returns a BitReader positioned at the first bit of src.
func NewBitReader(src []byte) *BitReader {
	return &BitReader{buf: src}
}

// ReadBit returns the next bit.  The second result is false once the input
// is exhausted.
func (br *BitReader) ReadBit() (bool, bool) {
	i := br.pos >> 3
	if i >= uint64(len(br.buf)) {
		return false, false
	}
	bit := (br.buf[i]>>(br.pos&7))&1 != 0
	br.pos++
	return bit, true
}

// BitsRead returns the number of bits consumed so far.
func (br *BitReader) BitsRead() uint64 {
	return br.pos
}

// BitsRemaining returns the number of bits not yet consumed.
func (br *BitReader) BitsRemaining() uint64 {
	return uint64(len(br.buf))*8 - br.pos
}
