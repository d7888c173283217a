package imageinfo

import (
	"bytes"

	gomp4 "github.com/abema/go-mp4"
	"github.com/pkg/errors"
)

var (
	jxlCodestreamSignature = []byte{0xff, 0x0a}
	jxlContainerSignature  = []byte{0x00, 0x00, 0x00, 0x0c, 'J', 'X', 'L', ' ', 0x0d, 0x0a, 0x87, 0x0a}

	boxTypeJxlc = gomp4.StrToBoxType("jxlc")
	boxTypeJxlp = gomp4.StrToBoxType("jxlp")
)

// jxlDimensions reads the SizeHeader at the start of a JPEG XL codestream,
// either bare or wrapped in the ISOBMFF container.
func jxlDimensions(data []byte) (int, int, error) {
	switch {
	case bytes.HasPrefix(data, jxlCodestreamSignature):
		return jxlSizeHeader(data[len(jxlCodestreamSignature):])
	case bytes.HasPrefix(data, jxlContainerSignature):
		codestream, err := jxlContainerCodestream(data)
		if err != nil {
			return 0, 0, err
		}
		if !bytes.HasPrefix(codestream, jxlCodestreamSignature) {
			return 0, 0, errors.New("jxl: codestream signature missing")
		}
		return jxlSizeHeader(codestream[len(jxlCodestreamSignature):])
	default:
		return 0, 0, errors.New("jxl: unrecognized signature")
	}
}

func jxlContainerCodestream(data []byte) ([]byte, error) {
	var codestream []byte
	_, err := gomp4.ReadBoxStructure(bytes.NewReader(data), func(h *gomp4.ReadHandle) (interface{}, error) {
		typ := h.BoxInfo.Type
		if codestream != nil || (typ != boxTypeJxlc && typ != boxTypeJxlp) {
			return nil, nil
		}
		var buf bytes.Buffer
		if _, err := h.ReadData(&buf); err != nil {
			return nil, errors.WithStack(err)
		}
		body := buf.Bytes()
		if typ == boxTypeJxlp {
			// Partial codestream boxes lead with a sequence number.
			if len(body) < 4 {
				return nil, errors.New("jxl: truncated jxlp box")
			}
			body = body[4:]
		}
		codestream = body
		return nil, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if codestream == nil {
		return nil, errors.New("jxl: no codestream box")
	}
	return codestream, nil
}

// Width to height ratios selected by the 3-bit ratio field.
var jxlRatios = [8][2]uint64{{0, 0}, {1, 1}, {12, 10}, {4, 3}, {3, 2}, {16, 9}, {5, 4}, {2, 1}}

func jxlSizeHeader(data []byte) (int, int, error) {
	br := &bitReader{data: data}

	small := br.read(1) == 1
	var height uint64
	if small {
		height = (br.read(5) + 1) * 8
	} else {
		height = br.readU32()
	}
	ratio := br.read(3)
	var width uint64
	switch {
	case ratio != 0:
		width = height * jxlRatios[ratio][0] / jxlRatios[ratio][1]
	case small:
		width = (br.read(5) + 1) * 8
	default:
		width = br.readU32()
	}

	if br.overrun {
		return 0, 0, errors.New("jxl: truncated size header")
	}
	return int(width), int(height), nil
}

// bitReader reads little-endian bit fields, least significant bit first.
type bitReader struct {
	data    []byte
	pos     int
	overrun bool
}

func (br *bitReader) read(n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		byteIdx := br.pos / 8
		if byteIdx >= len(br.data) {
			br.overrun = true
			return 0
		}
		bit := (br.data[byteIdx] >> (br.pos % 8)) & 1
		v |= uint64(bit) << i
		br.pos++
	}
	return v
}

// readU32 decodes the dimension distribution 1 + u(9|13|18|30).
func (br *bitReader) readU32() uint64 {
	bits := [4]int{9, 13, 18, 30}[br.read(2)]
	return br.read(bits) + 1
}
