package comic

import (
	"bytes"

	"github.com/shishobooks/comicinfo/pkg/archive"
	"github.com/shishobooks/comicinfo/pkg/fileutils"
)

type packOptions struct {
	rename bool
}

type PackOption func(*packOptions)

// WithRename controls whether pages are stored as page-001.ext, page-002.ext
// and so on (the default) or under their own names. Pages without a name are
// always numbered.
func WithRename(rename bool) PackOption {
	return func(o *packOptions) {
		o.rename = rename
	}
}

// Pack returns the comic as CBZ bytes: ComicInfo.xml first, then the pages in
// order, all stored uncompressed. The same comic always packs to the same
// bytes.
func (c *Comic) Pack(opts ...PackOption) ([]byte, error) {
	o := packOptions{rename: true}
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := c.Info().XML()
	if err != nil {
		return nil, err
	}

	entries := make([]archive.Entry, 0, len(c.pages)+1)
	entries = append(entries, archive.Entry{Name: archive.MetadataName, Data: doc})
	for i, name := range c.pageNames(o.rename) {
		entries = append(entries, archive.Entry{Name: name, Data: c.pages[i].content})
	}

	var buf bytes.Buffer
	if err := archive.NewZipWriter(&buf).WriteEntries(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pageNames resolves the stored name of every page. Kept names that collide
// get a numbered suffix.
func (c *Comic) pageNames(rename bool) []string {
	taken := map[string]bool{archive.MetadataName: true}
	names := make([]string, len(c.pages))
	for i, p := range c.pages {
		name := p.name
		if rename || name == "" {
			name = fileutils.PageFilename(i, p.Suffix())
		}
		names[i] = fileutils.UniqueName(name, taken)
	}
	return names
}

// Save packs the comic and writes it to path. Nothing is written unless
// packing succeeds.
func (c *Comic) Save(path string, opts ...PackOption) error {
	data, err := c.Pack(opts...)
	if err != nil {
		return err
	}
	return fileutils.WriteFileAtomic(path, data, 0644)
}
