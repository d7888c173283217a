package imageinfo

import (
	"bytes"
	"image"
	// Register the decoders image.DecodeConfig relies on.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

// Info describes an encoded image.
type Info struct {
	Suffix   string
	MimeType string
	Width    int
	Height   int
	Size     int64
}

type format struct {
	suffix     string
	dimensions func([]byte) (int, int, error)
}

var formats = map[string]format{
	"image/jpeg": {".jpeg", decodeConfig},
	"image/png":  {".png", decodeConfig},
	"image/gif":  {".gif", decodeConfig},
	"image/bmp":  {".bmp", decodeConfig},
	"image/tiff": {".tiff", decodeConfig},
	"image/webp": {".webp", decodeConfig},
	"image/jxl":  {".jxl", jxlDimensions},
	"image/avif": {".avif", avifDimensions},
}

// Suffixes are the file extensions accepted for page images.
var Suffixes = []string{".jpeg", ".jpg", ".png", ".gif", ".bmp", ".tiff", ".tif", ".webp", ".jxl", ".avif"}

// IsImageName reports whether name has one of the accepted image extensions.
func IsImageName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, s := range Suffixes {
		if ext == s {
			return true
		}
	}
	return false
}

// Inspect sniffs the format of data and reads its pixel dimensions. data is
// never modified.
func Inspect(data []byte) (*Info, error) {
	if len(data) == 0 {
		return nil, errcodes.DecodeError("image", errors.New("empty content"))
	}

	mtype := mimetype.Detect(data)
	var (
		f     format
		found bool
	)
	// Walk up the hierarchy so that e.g. APNG is treated as PNG.
	for m := mtype; m != nil; m = m.Parent() {
		if f, found = formats[m.String()]; found {
			mtype = m
			break
		}
	}
	if !found {
		if strings.HasPrefix(mtype.String(), "image/") {
			return nil, errcodes.UnsupportedFormat(mtype.String())
		}
		return nil, errcodes.DecodeError("image", errors.Errorf("content is %s", mtype.String()))
	}

	width, height, err := f.dimensions(data)
	if err != nil {
		return nil, errcodes.DecodeError(mtype.String(), err)
	}
	if width <= 0 || height <= 0 {
		return nil, errcodes.DecodeError(mtype.String(), errors.Errorf("invalid dimensions %dx%d", width, height))
	}

	return &Info{
		Suffix:   f.suffix,
		MimeType: mtype.String(),
		Width:    width,
		Height:   height,
		Size:     int64(len(data)),
	}, nil
}

func decodeConfig(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	return cfg.Width, cfg.Height, nil
}
