package testgen

import (
	"bytes"
	"fmt"
	"testing"
)

// GeneratePDF creates a minimal PDF at the specified path. Every image is a
// DCTDecode (JPEG) XObject, and image n is Width+n pixels wide
// so extraction order can be checked.
func GeneratePDF(t *testing.T, dir, filename string, opts PDFOptions) string {
	t.Helper()
	return WriteFile(t, dir, filename, PDF(t, opts))
}

// PDF returns the bytes of a PDF built from opts.
func PDF(t *testing.T, opts PDFOptions) []byte {
	t.Helper()

	width := opts.Width
	if width <= 0 {
		width = 16
	}
	height := opts.Height
	if height <= 0 {
		height = 24
	}
	pages := opts.Pages
	if len(pages) == 0 {
		pages = []int{1}
	}

	// Object numbers: 1 catalog, 2 page tree, then per page the page, its
	// content stream and its images.
	var objects [][]byte
	add := func(body []byte) int {
		objects = append(objects, body)
		return len(objects)
	}
	add(nil) // catalog, filled in below
	add(nil) // page tree, filled in below

	var kids []int
	imageIdx := 0
	for _, imageCount := range pages {
		pageNr := add(nil)
		kids = append(kids, pageNr)

		var xobjects bytes.Buffer
		var draws []string
		for i := 0; i < imageCount; i++ {
			w := width + imageIdx
			data := Image(t, "jpeg", w, height)
			imageIdx++

			var img bytes.Buffer
			fmt.Fprintf(&img, "<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode /Length %d >>\nstream\n", w, height, len(data))
			img.Write(data)
			img.WriteString("\nendstream")
			objNr := add(img.Bytes())

			fmt.Fprintf(&xobjects, " /Im%d %d 0 R", i+1, objNr)
			draws = append(draws, fmt.Sprintf("q %d 0 0 %d 0 0 cm /Im%d Do Q\n", w, height, i+1))
		}
		if opts.DrawReversed {
			for i, j := 0, len(draws)-1; i < j; i, j = i+1, j-1 {
				draws[i], draws[j] = draws[j], draws[i]
			}
		}
		var content bytes.Buffer
		for _, d := range draws {
			content.WriteString(d)
		}

		contentNr := add([]byte(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String())))

		resources := "<< >>"
		if xobjects.Len() > 0 {
			resources = fmt.Sprintf("<< /XObject <<%s >> >>", xobjects.String())
		}
		objects[pageNr-1] = []byte(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources %s /Contents %d 0 R >>",
			width*4, height*4, resources, contentNr))
	}

	var kidRefs bytes.Buffer
	for _, k := range kids {
		fmt.Fprintf(&kidRefs, "%d 0 R ", k)
	}
	objects[0] = []byte("<< /Type /Catalog /Pages 2 0 R >>")
	objects[1] = []byte(fmt.Sprintf("<< /Type /Pages /Kids [ %s] /Count %d >>", kidRefs.String(), len(kids)))

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n", i+1)
		out.Write(body)
		out.WriteString("\nendobj\n")
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return out.Bytes()
}
