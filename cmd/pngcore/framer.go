package main

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"pngcore/chunk"
	"pngcore/format"
	"pngcore/policy"
)

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// rawChunk is one length-prefixed, CRC-checked chunk as read off the
// wire: framing and verification kept outside the decoder core,
// here as demo-grade glue.
type rawChunk struct {
	tag  chunk.Tag
	data []byte
}

// readSignature consumes and checks the 8-byte PNG signature.
func readSignature(src byteSource) error {
	got, err := src.read(8)
	if err != nil {
		return err
	}
	if len(got) != 8 || [8]byte(got) != pngSignature {
		return fmt.Errorf("pngcore: bad signature")
	}
	return nil
}

// readChunk reads one length+tag+data+crc chunk and verifies its CRC.
func readChunk(src byteSource) (rawChunk, error) {
	header, err := src.read(8)
	if err != nil {
		return rawChunk{}, err
	}
	if len(header) != 8 {
		return rawChunk{}, fmt.Errorf("pngcore: short chunk header")
	}
	length := binary.BigEndian.Uint32(header[0:4])
	if int64(length) > policy.MaxChunkBytes {
		return rawChunk{}, fmt.Errorf("pngcore: chunk length %d exceeds policy maximum", length)
	}
	tag := chunk.Tag(header[4:8])

	data, err := src.read(int(length))
	if err != nil {
		return rawChunk{}, err
	}
	if len(data) != int(length) {
		return rawChunk{}, fmt.Errorf("pngcore: short chunk body for %s", tag)
	}

	crcBytes, err := src.read(4)
	if err != nil {
		return rawChunk{}, err
	}
	if len(crcBytes) != 4 {
		return rawChunk{}, fmt.Errorf("pngcore: short crc for %s", tag)
	}
	want := binary.BigEndian.Uint32(crcBytes)

	h := crc32.NewIEEE()
	h.Write(header[4:8])
	h.Write(data)
	if h.Sum32() != want {
		return rawChunk{}, fmt.Errorf("pngcore: crc mismatch on %s", tag)
	}

	return rawChunk{tag: tag, data: data}, nil
}

// parseIHDR extracts a format.Format, dimensions and interlace flag
// from an IHDR chunk body, matching the field layout read at
// img1b/png/reader.go:parseIHDR.
func parseIHDR(data []byte) (f format.Format, width, height int, interlaced bool, err error) {
	if len(data) != 13 {
		return format.Format{}, 0, 0, false, fmt.Errorf("pngcore: bad IHDR length %d", len(data))
	}
	width = int(binary.BigEndian.Uint32(data[0:4]))
	height = int(binary.BigEndian.Uint32(data[4:8]))
	if width <= 0 || height <= 0 {
		return format.Format{}, 0, 0, false, fmt.Errorf("pngcore: non-positive dimension")
	}
	depth := data[8]
	colorCode := data[9]
	if data[10] != 0 {
		return format.Format{}, 0, 0, false, fmt.Errorf("pngcore: unsupported compression method")
	}
	if data[11] != 0 {
		return format.Format{}, 0, 0, false, fmt.Errorf("pngcore: unsupported filter method")
	}
	switch data[12] {
	case 0:
		interlaced = false
	case 1:
		interlaced = true
	default:
		return format.Format{}, 0, 0, false, fmt.Errorf("pngcore: invalid interlace method %d", data[12])
	}
	f, err = format.New(depth, colorCode)
	if err != nil {
		return format.Format{}, 0, 0, false, err
	}
	return f, width, height, interlaced, nil
}
