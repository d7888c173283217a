package testgen

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"testing"
)

// GenerateCBZ creates a valid CBZ file at the specified path with the given options.
// The generated CBZ contains:
// - ComicInfo.xml (unless NoComicInfo is set)
// - Page images (page-001.png, page-002.png, etc.)
// - Any ExtraFiles
func GenerateCBZ(t *testing.T, dir, filename string, opts CBZOptions) string {
	t.Helper()
	return WriteFile(t, dir, filename, CBZ(t, opts))
}

// CBZ returns the bytes of a CBZ built from opts.
func CBZ(t *testing.T, opts CBZOptions) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range comicFiles(t, opts) {
		if err := writeZipFile(zw, f.Name, f.Data); err != nil {
			t.Fatalf("failed to write %s: %v", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// File is a named entry of a generated archive.
type File struct {
	Name string
	Data []byte
}

// comicFiles lists the entries of a comic archive in write order: the
// metadata entry (unless NoComicInfo is set), the pages, then ExtraFiles
// sorted by name.
func comicFiles(t *testing.T, opts CBZOptions) []File {
	t.Helper()

	pageCount := opts.PageCount
	if pageCount <= 0 {
		pageCount = 3
	}
	width := opts.PageWidth
	if width <= 0 {
		width = 100
	}
	format := opts.Format
	if format == "" {
		format = "png"
	}

	var files []File
	if !opts.NoComicInfo {
		name := opts.MetadataName
		if name == "" {
			name = "ComicInfo.xml"
		}
		files = append(files, File{Name: name, Data: []byte(generateComicInfo(opts, pageCount))})
	}

	for i := 0; i < pageCount; i++ {
		// Vary the width so pages can be told apart after a round trip.
		data := Image(t, format, width+i, 100)
		name := fmt.Sprintf("page-%03d.%s", i+1, format)
		if n, ok := opts.PageNames[i]; ok {
			name = n
		}
		files = append(files, File{Name: name, Data: data})
	}

	extras := make([]string, 0, len(opts.ExtraFiles))
	for name := range opts.ExtraFiles {
		extras = append(extras, name)
	}
	sort.Strings(extras)
	for _, name := range extras {
		files = append(files, File{Name: name, Data: opts.ExtraFiles[name]})
	}
	return files
}

func generateComicInfo(opts CBZOptions, pageCount int) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<ComicInfo>
`)

	if opts.Title != "" {
		buf.WriteString(fmt.Sprintf("  <Title>%s</Title>\n", escapeXML(opts.Title)))
	}
	if opts.Series != "" {
		buf.WriteString(fmt.Sprintf("  <Series>%s</Series>\n", escapeXML(opts.Series)))
	}
	if opts.Number != "" {
		buf.WriteString(fmt.Sprintf("  <Number>%s</Number>\n", escapeXML(opts.Number)))
	}
	if opts.Writer != "" {
		buf.WriteString(fmt.Sprintf("  <Writer>%s</Writer>\n", escapeXML(opts.Writer)))
	}

	buf.WriteString(fmt.Sprintf("  <PageCount>%d</PageCount>\n", pageCount))

	if len(opts.PageTypes) > 0 {
		buf.WriteString("  <Pages>\n")
		for i := 0; i < pageCount; i++ {
			pageType := ""
			if typ, ok := opts.PageTypes[i]; ok {
				pageType = fmt.Sprintf(" Type=\"%s\"", typ)
			}
			buf.WriteString(fmt.Sprintf("    <Page Image=\"%d\"%s/>\n", i, pageType))
		}
		buf.WriteString("  </Pages>\n")
	}

	buf.WriteString("</ComicInfo>")

	return buf.String()
}

func writeZipFile(zw *zip.Writer, name string, data []byte) error {
	method := zip.Store
	if filepath.Ext(name) == ".xml" {
		method = zip.Deflate
	}
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
