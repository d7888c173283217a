package testgen

import (
	"encoding/binary"
)

// AVIF returns a minimal AVIF file: an ftyp box and a meta box whose item
// properties carry a single ispe for the given dimensions.
func AVIF(width, height int) []byte {
	ispeContent := make([]byte, 8)
	binary.BigEndian.PutUint32(ispeContent[0:4], uint32(width))  //nolint:gosec // small test sizes
	binary.BigEndian.PutUint32(ispeContent[4:8], uint32(height)) //nolint:gosec
	ispe := buildFullBox("ispe", 0, ispeContent)
	ipco := buildBox("ipco", ispe)
	iprp := buildBox("iprp", ipco)

	hdlrContent := make([]byte, 20)
	copy(hdlrContent[4:8], "pict")
	hdlr := buildFullBox("hdlr", 0, append(hdlrContent, 0))
	meta := buildFullBox("meta", 0, append(hdlr, iprp...))

	ftyp := buildBox("ftyp", []byte("avif\x00\x00\x00\x00avifmif1miaf"))
	return append(ftyp, meta...)
}

// buildBox creates an ISOBMFF box with the given type and content.
func buildBox(boxType string, content []byte) []byte {
	size := 8 + len(content)
	box := make([]byte, size)
	binary.BigEndian.PutUint32(box[0:4], uint32(size)) //nolint:gosec // size is always small for test files
	copy(box[4:8], boxType)
	copy(box[8:], content)
	return box
}

// buildFullBox creates a full box with version 0 and the given flags.
func buildFullBox(boxType string, flags uint32, content []byte) []byte {
	fullContent := make([]byte, 4+len(content))
	fullContent[1] = byte((flags >> 16) & 0xff)
	fullContent[2] = byte((flags >> 8) & 0xff)
	fullContent[3] = byte(flags & 0xff)
	copy(fullContent[4:], content)
	return buildBox(boxType, fullContent)
}
