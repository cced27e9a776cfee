package huffpack

import (
	"encoding/binary"
	"fmt"
)

// LengthFieldSize is the size of the original-length field that follows the
// serialized tree in an artifact.
const LengthFieldSize = 8

// Artifact is a compressed buffer split into its parts.
type Artifact struct {
	// Tree is the Huffman tree decoded from the header.
	Tree *Huffman

	// Length is the number of bytes the body decodes to.
	Length uint64

	// HeaderSize is the number of bytes taken by the tree and length field.
	HeaderSize int

	// Body holds the packed code bits.  It aliases the parsed buffer.
	Body []byte
}

// Compress encodes data as an artifact: serialized tree, original length,
// packed body.  It returns ErrEmptyInput for empty data.
func Compress(data []byte) ([]byte, error) {
	freqs := CountFrequencies(data)
	t := BuildTree(freqs)
	if t == nil {
		return nil, ErrEmptyInput
	}

	header, err := SerializeTree(t)
	if err != nil {
		return nil, err
	}

	var e Encoder
	e.Init(t)

	out := make([]byte, 0, len(header)+LengthFieldSize+int(bytesForBits(e.EncodedBits(&freqs))))
	out = append(out, header...)
	out = binary.BigEndian.AppendUint64(out, uint64(len(data)))
	return e.AppendEncoded(out, data)
}

// Decompress reverses Compress.
func Decompress(artifact []byte) ([]byte, error) {
	a, err := ParseArtifact(artifact)
	if err != nil {
		return nil, err
	}

	var d Decoder
	d.Init(a.Tree)
	out, err := d.DecodeAll(nil, a.Body, a.Length)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// ParseArtifact decodes an artifact's header without decoding its body.
//
// The root weight must equal the recorded length, since every leaf weight is
// the count of its byte in the original data.
//
func ParseArtifact(b []byte) (*Artifact, error) {
	treeSize, err := TreeSize(b)
	if err != nil {
		return nil, err
	}
	headerSize := treeSize + LengthFieldSize
	if len(b) < headerSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, artifact has %d", ErrFormat, headerSize, len(b))
	}

	t, err := DeserializeTree(b[:treeSize])
	if err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint64(b[treeSize:headerSize])
	if !t.root.weight.Equals64(length) {
		return nil, fmt.Errorf("%w: root weight %s does not match original length %d", ErrFormat, t.root.weight, length)
	}

	return &Artifact{
		Tree:       t,
		Length:     length,
		HeaderSize: headerSize,
		Body:       b[headerSize:],
	}, nil
}
