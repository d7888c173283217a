package testgen

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"
)

// RAR 5.0 block types and flags used by the writer below.
const (
	rarBlockMain   = 1
	rarBlockFile   = 2
	rarBlockEnd    = 5
	rarHasData     = 0x0002
	rarFileHasCRC  = 0x0004
	rarHostOSUnix  = 1
	rarAttrRegular = 0o644
)

// GenerateCBR creates a CBR file with the same layout GenerateCBZ would
// produce for opts.
func GenerateCBR(t *testing.T, dir, filename string, opts CBZOptions) string {
	t.Helper()
	return WriteFile(t, dir, filename, CBR(t, opts))
}

// CBR returns the bytes of a CBR built from opts.
func CBR(t *testing.T, opts CBZOptions) []byte {
	t.Helper()
	return RAR(t, comicFiles(t, opts))
}

// RAR returns a single-volume RAR 5.0 archive holding files, in order, with
// every entry stored uncompressed.
func RAR(t *testing.T, files []File) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("Rar!\x1a\x07\x01\x00")

	// Main archive header with no archive flags.
	writeRARBlock(&buf, []byte{rarBlockMain, 0, 0})

	for _, f := range files {
		var h []byte
		h = appendVint(h, rarBlockFile)
		h = appendVint(h, rarHasData)
		h = appendVint(h, uint64(len(f.Data)))
		h = appendVint(h, rarFileHasCRC)
		h = appendVint(h, uint64(len(f.Data)))
		h = appendVint(h, rarAttrRegular)
		h = binary.LittleEndian.AppendUint32(h, crc32.ChecksumIEEE(f.Data))
		h = appendVint(h, 0) // compression info: stored
		h = appendVint(h, rarHostOSUnix)
		h = appendVint(h, uint64(len(f.Name)))
		h = append(h, f.Name...)
		writeRARBlock(&buf, h)
		buf.Write(f.Data)
	}

	// End of archive, not followed by another volume.
	writeRARBlock(&buf, []byte{rarBlockEnd, 0, 0})
	return buf.Bytes()
}

// writeRARBlock writes a block header: CRC32 of the size and header, the
// header size as a vint, then the header itself.
func writeRARBlock(buf *bytes.Buffer, header []byte) {
	body := appendVint(nil, uint64(len(header)))
	body = append(body, header...)
	var crc [4]byte
	binary.LittleEndian.PutUint32(crc[:], crc32.ChecksumIEEE(body))
	buf.Write(crc[:])
	buf.Write(body)
}

// appendVint appends v as a RAR variable length integer: seven bits per
// byte, low bits first, with the high bit set on all but the last byte.
func appendVint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}
