// Package huffpack implements a whole-buffer byte compressor based on static
// Huffman codes.
//
// Compress counts byte frequencies, builds a Huffman tree, and emits an
// artifact made of the serialized tree, the original length, and the packed
// code bits.  Decompress rebuilds the tree from the artifact header and walks
// it one bit at a time.
//
// Artifact layout:
//
//     [ tree blob ][ u64 big-endian original length ][ packed body ]
//
// Every tree node is serialized depth-first as a 16-byte big-endian weight, a
// 2-byte big-endian payload size, and the payload.  A payload size of 1 marks
// a leaf whose payload is its byte value; otherwise the payload is the left
// subtree blob followed by the right subtree blob.
//
// Body bits are packed least significant bit first.  A 1 bit selects the left
// child and a 0 bit selects the right child.  Unused high bits of the final
// byte are zero.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffpack
