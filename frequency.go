package huffpack

// Frequencies holds the occurrence count of each byte value.
type Frequencies [256]uint64

// CountFrequencies tallies each byte value in data.
func CountFrequencies(data []byte) Frequencies {
	var f Frequencies
	f.Add(data)
	return f
}

// Add adds the bytes of data to the running counts.
func (f *Frequencies) Add(data []byte) {
	for _, b := range data {
		f[b]++
	}
}

// Distinct returns the number of byte values with a nonzero count.
func (f *Frequencies) Distinct() int {
	var n int
	for _, count := range f {
		if count != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts.
func (f *Frequencies) Total() uint64 {
	var sum uint64
	for _, count := range f {
		sum += count
	}
	return sum
}
