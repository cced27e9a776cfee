package huffpack

import (
	"errors"
)

var (
	// ErrEmptyInput is returned by Compress when there is nothing to build
	// a tree from.
	ErrEmptyInput = errors.New("huffpack: empty input")

	// ErrFormat is returned when an artifact or tree blob is malformed.
	ErrFormat = errors.New("huffpack: invalid format")

	// ErrTruncated is returned when the packed body ends before the
	// recorded number of bytes has been decoded.
	ErrTruncated = errors.New("huffpack: truncated bit stream")

	// ErrOversized is returned when a subtree's serialized payload does not
	// fit in the 16-bit payload size field.
	ErrOversized = errors.New("huffpack: subtree payload exceeds 65535 bytes")

	// ErrUnknownByte is returned when encoding a byte that has no leaf in
	// the tree.
	ErrUnknownByte = errors.New("huffpack: byte has no code in tree")
)
