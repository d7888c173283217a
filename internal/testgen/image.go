package testgen

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Image returns an encoded solid color image of the given format and size.
// Supported formats: png, jpeg, gif, bmp, tiff, webp, jxl, avif. The webp,
// jxl and avif outputs only carry valid headers, which is all dimension
// probing looks at.
func Image(t *testing.T, format string, width, height int) []byte {
	t.Helper()

	switch format {
	case "webp":
		return webpHeader(width, height)
	case "jxl":
		return JXLCodestream(width, height)
	case "avif":
		return AVIF(width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	blue := color.RGBA{0, 100, 200, 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, blue)
		}
	}

	var (
		buf bytes.Buffer
		err error
	)
	switch format {
	case "jpeg", "jpg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff", "tif":
		err = tiff.Encode(&buf, img, nil)
	case "png", "":
		err = png.Encode(&buf, img)
	default:
		t.Fatalf("unsupported test image format %q", format)
	}
	if err != nil {
		t.Fatalf("failed to encode %s: %v", format, err)
	}

	return buf.Bytes()
}

// webpHeader builds a lossless (VP8L) WebP whose bitstream stops after the
// image header.
func webpHeader(width, height int) []byte {
	vp8l := make([]byte, 5)
	vp8l[0] = 0x2f
	bits := uint32(width-1) | uint32(height-1)<<14 //nolint:gosec // small test sizes
	binary.LittleEndian.PutUint32(vp8l[1:], bits)

	chunk := make([]byte, 0, 8+len(vp8l))
	chunk = append(chunk, "VP8L"...)
	chunk = binary.LittleEndian.AppendUint32(chunk, uint32(len(vp8l))) //nolint:gosec
	chunk = append(chunk, vp8l...)
	chunk = append(chunk, 0) // pad to even length

	out := make([]byte, 0, 12+len(chunk))
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(4+len(chunk))) //nolint:gosec
	out = append(out, "WEBP"...)
	return append(out, chunk...)
}
