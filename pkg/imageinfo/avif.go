package imageinfo

import (
	"bytes"
	"encoding/binary"

	gomp4 "github.com/abema/go-mp4"
	"github.com/pkg/errors"
)

var (
	boxTypeMeta = gomp4.BoxTypeMeta()
	boxTypeIprp = gomp4.StrToBoxType("iprp")
	boxTypeIpco = gomp4.StrToBoxType("ipco")
	boxTypeIspe = gomp4.StrToBoxType("ispe")
)

// avifDimensions reads the image spatial extents property out of the meta
// box. When there are several (grids, alpha planes) the largest wins, which is
// the primary image in practice.
func avifDimensions(data []byte) (int, int, error) {
	var payload []byte
	_, err := gomp4.ReadBoxStructure(bytes.NewReader(data), func(h *gomp4.ReadHandle) (interface{}, error) {
		if h.BoxInfo.Type != boxTypeMeta {
			return nil, nil
		}
		var buf bytes.Buffer
		if _, err := h.ReadData(&buf); err != nil {
			return nil, errors.WithStack(err)
		}
		payload = buf.Bytes()
		return nil, nil
	})
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	if len(payload) < 4 {
		return 0, 0, errors.New("avif: missing meta box")
	}

	// meta is a full box; skip version and flags.
	iprp := findBox(payload[4:], boxTypeIprp)
	ipco := findBox(iprp, boxTypeIpco)
	if ipco == nil {
		return 0, 0, errors.New("avif: missing item properties")
	}

	width, height := 0, 0
	eachBox(ipco, func(typ gomp4.BoxType, body []byte) {
		// version(1) flags(3) width(4) height(4)
		if typ != boxTypeIspe || len(body) < 12 {
			return
		}
		w := int(binary.BigEndian.Uint32(body[4:8]))
		h := int(binary.BigEndian.Uint32(body[8:12]))
		if w*h > width*height {
			width, height = w, h
		}
	})
	if width == 0 {
		return 0, 0, errors.New("avif: missing ispe property")
	}
	return width, height, nil
}

func findBox(data []byte, want gomp4.BoxType) []byte {
	var found []byte
	eachBox(data, func(typ gomp4.BoxType, body []byte) {
		if found == nil && typ == want {
			found = body
		}
	})
	return found
}

// eachBox walks the sibling boxes in data. It stops quietly at the first
// malformed header.
func eachBox(data []byte, fn func(gomp4.BoxType, []byte)) {
	for len(data) >= 8 {
		size := uint64(binary.BigEndian.Uint32(data[0:4]))
		var typ gomp4.BoxType
		copy(typ[:], data[4:8])
		header := uint64(8)
		switch size {
		case 0:
			size = uint64(len(data))
		case 1:
			if len(data) < 16 {
				return
			}
			size = binary.BigEndian.Uint64(data[8:16])
			header = 16
		}
		if size < header || size > uint64(len(data)) {
			return
		}
		fn(typ, data[header:size])
		data = data[size:]
	}
}
