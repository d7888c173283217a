package comic

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/shishobooks/comicinfo/pkg/archive"
	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

// FromCBZ reads the CBZ (ZIP) archive at path.
func FromCBZ(path string, opts ...Option) (*Comic, error) {
	o := newOptions(opts)
	r, err := archive.OpenZip(path, o.archiveOptions())
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return FromReader(r, path, opts...)
}

// FromCBR reads the CBR (RAR) archive at path.
func FromCBR(path string, opts ...Option) (*Comic, error) {
	o := newOptions(opts)
	r, err := archive.OpenRar(path, o.archiveOptions())
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return FromReader(r, path, opts...)
}

// FromPDF builds a comic out of the images embedded in the PDF at path, one
// page per image. The comic has no metadata.
func FromPDF(path string, opts ...Option) (*Comic, error) {
	o := newOptions(opts)
	r, err := archive.OpenPDF(path, o.archiveOptions())
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return fromPDFReader(r, path, opts)
}

// Open reads the comic at path, choosing the container from its content
// rather than its extension.
func Open(path string, opts ...Option) (*Comic, error) {
	o := newOptions(opts)
	r, kind, err := archive.Open(path, o.archiveOptions())
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if kind == archive.KindPDF {
		return fromPDFReader(r, path, opts)
	}
	return FromReader(r, path, opts...)
}

// Unpack reads a comic from CBZ bytes, such as the output of Pack.
func Unpack(data []byte, opts ...Option) (*Comic, error) {
	o := newOptions(opts)
	r, err := archive.NewZipReader(bytes.NewReader(data), int64(len(data)), o.archiveOptions())
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return FromReader(r, "<memory>", opts...)
}

func fromPDFReader(r archive.Reader, path string, opts []Option) (*Comic, error) {
	c, err := FromReader(r, path, opts...)
	if err != nil {
		return nil, err
	}
	if c.PageCount() == 0 {
		return nil, errcodes.NoImagesFound(path)
	}
	return c, nil
}

// FromReader builds a comic from an opened container. A missing ComicInfo.xml
// leaves every field at its default. Pages are paired with the <Page>
// elements of the metadata by position, not by name.
func FromReader(r archive.Reader, source string, opts ...Option) (*Comic, error) {
	o := newOptions(opts)
	log := o.logger()

	entries := r.Entries()
	metaName, pageNames := archive.SplitEntries(entries)
	skipped := len(entries) - len(pageNames)
	if metaName != "" {
		skipped--
	}
	if skipped > 0 {
		log.Debug("skipped entries that aren't pages", logger.Data{"source": source, "skipped": skipped})
	}

	meta := NewMetadata()
	info := &Info{}
	if metaName != "" {
		data, err := r.ReadEntry(metaName)
		if err != nil {
			return nil, err
		}
		info, err = ParseInfo(data)
		if err != nil {
			return nil, err
		}
		if err := metaDecoder.Decode(info.Values(), &meta); err != nil {
			return nil, errors.Wrapf(err, "invalid %s in %s", metaName, source)
		}
	}

	if len(info.Pages) > 0 && len(info.Pages) != len(pageNames) {
		log.Warn("page metadata doesn't match the number of images", logger.Data{
			"source":   source,
			"images":   len(pageNames),
			"metadata": len(info.Pages),
		})
	}

	pages := make([]*Page, 0, len(pageNames))
	for i, name := range pageNames {
		data, err := r.ReadEntry(name)
		if err != nil {
			return nil, err
		}
		frag := PageInfo{}
		if i < len(info.Pages) {
			frag = info.Pages[i]
		}
		p, err := PageFromFragment(frag, data, name)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid page %s in %s", name, source)
		}
		pages = append(pages, p)
	}

	return New(pages, meta, opts...)
}
