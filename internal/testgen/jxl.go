package testgen

// JXLCodestream returns a bare JPEG XL codestream holding only a SizeHeader
// for the given dimensions.
func JXLCodestream(width, height int) []byte {
	bw := &bitWriter{}
	small := width%8 == 0 && height%8 == 0 && width <= 256 && height <= 256
	if small {
		bw.write(1, 1)
		bw.write(uint64(height/8-1), 5)
		bw.write(0, 3) // explicit width
		bw.write(uint64(width/8-1), 5)
	} else {
		bw.write(0, 1)
		bw.writeU32(uint64(height))
		bw.write(0, 3)
		bw.writeU32(uint64(width))
	}
	return append([]byte{0xff, 0x0a}, bw.bytes()...)
}

// JXLContainer wraps JXLCodestream in the ISOBMFF container.
func JXLContainer(width, height int) []byte {
	out := []byte{0x00, 0x00, 0x00, 0x0c, 'J', 'X', 'L', ' ', 0x0d, 0x0a, 0x87, 0x0a}
	out = append(out, buildBox("ftyp", []byte("jxl \x00\x00\x00\x00jxl "))...)
	return append(out, buildBox("jxlc", JXLCodestream(width, height))...)
}

type bitWriter struct {
	buf []byte
	pos int
}

// write appends the low n bits of v, least significant bit first.
func (bw *bitWriter) write(v uint64, n int) {
	for i := 0; i < n; i++ {
		if bw.pos%8 == 0 {
			bw.buf = append(bw.buf, 0)
		}
		if v>>i&1 == 1 {
			bw.buf[bw.pos/8] |= 1 << (bw.pos % 8)
		}
		bw.pos++
	}
}

func (bw *bitWriter) writeU32(v uint64) {
	v--
	for selector, bits := range []int{9, 13, 18, 30} {
		if v < 1<<bits {
			bw.write(uint64(selector), 2)
			bw.write(v, bits)
			return
		}
	}
}

func (bw *bitWriter) bytes() []byte {
	// Pad so readers never run off the end.
	return append(bw.buf, 0, 0, 0, 0)
}
