package huffpack

// bytesForBits returns the number of whole bytes needed to hold n bits.
func bytesForBits(n uint64) uint64 {
	return (n + 7) >> 3
}

func lowMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}
