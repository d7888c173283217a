// Package comic holds a comic's metadata and pages and converts them to and
// from ComicInfo archives.
package comic

import (
	"fmt"
	"net/url"
	"time"

	"github.com/robinjoseph08/golib/logger"

	"github.com/shishobooks/comicinfo/pkg/archive"
	"github.com/shishobooks/comicinfo/pkg/errcodes"
	"github.com/shishobooks/comicinfo/pkg/schema"
)

// TimeFormat is the layout of FileCreationTime and FileModifiedTime.
const TimeFormat = "2006-01-02T15:04:05.000Z"

var (
	metaDecoder = schema.NewDecoder(schema.ComicFields)
	metaEncoder = schema.NewEncoder(schema.ComicFields)
)

// Comic is a comic's metadata plus its ordered pages.
type Comic struct {
	meta  Metadata
	pages []*Page
	// stamp stands in for unset file timestamps so repeated packs match.
	stamp string
	opts  options
}

type options struct {
	clock        func() time.Time
	log          *logger.Logger
	maxEntrySize int64
}

type Option func(*options)

// WithClock sets the clock used for default file timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.log = &log
	}
}

// WithMaxEntrySize caps the decompressed size of any entry read from an
// archive.
func WithMaxEntrySize(n int64) Option {
	return func(o *options) {
		o.maxEntrySize = n
	}
}

func newOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) logger() logger.Logger {
	if o.log == nil {
		return logger.NewWithLevel("warn")
	}
	return *o.log
}

func (o options) archiveOptions() archive.Options {
	return archive.Options{MaxEntrySize: o.maxEntrySize, Logger: o.log}
}

// New returns a comic with the given pages and metadata. meta is validated
// as given: start from NewMetadata so unset fields hold their defaults.
func New(pages []*Page, meta Metadata, opts ...Option) (*Comic, error) {
	if err := schema.Normalize(&meta); err != nil {
		return nil, err
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	c := &Comic{
		meta:  meta,
		stamp: o.clock().UTC().Format(TimeFormat),
		opts:  o,
	}
	for i, p := range pages {
		if err := c.checkPage(i, p); err != nil {
			return nil, err
		}
	}
	for _, p := range pages {
		p.owner = c
	}
	c.pages = append(c.pages, pages...)
	return c, nil
}

// FromValues builds a comic from metadata keyed by any accepted field
// spelling ("CoverArtist", "cover_artist", "Colourist", ...). Unknown keys
// are ignored.
func FromValues(pages []*Page, values url.Values, opts ...Option) (*Comic, error) {
	meta := NewMetadata()
	if err := metaDecoder.Decode(values, &meta); err != nil {
		return nil, err
	}
	return New(pages, meta, opts...)
}

// Metadata returns a copy of the comic's metadata.
func (c *Comic) Metadata() Metadata {
	return c.meta
}

// SetMetadata validates meta and replaces the comic's metadata with it.
func (c *Comic) SetMetadata(meta Metadata) error {
	if err := schema.Normalize(&meta); err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return err
	}
	c.meta = meta
	return nil
}

// Pages returns the pages in reading order.
func (c *Comic) Pages() []*Page {
	return append([]*Page(nil), c.pages...)
}

func (c *Comic) PageCount() int {
	return len(c.pages)
}

// AppendPage adds p as the last page. A page belongs to one comic only; use
// Page.Clone to put the same image in another.
func (c *Comic) AppendPage(p *Page) error {
	if err := c.checkPage(len(c.pages), p); err != nil {
		return err
	}
	p.owner = c
	c.pages = append(c.pages, p)
	return nil
}

func (c *Comic) checkPage(index int, p *Page) error {
	if p == nil {
		return errcodes.ValidationError("Pages", fmt.Sprintf("page %d is nil", index))
	}
	if p.owner != nil && p.owner != c {
		return errcodes.ValidationError("Pages", fmt.Sprintf("page %d already belongs to another comic", index))
	}
	return nil
}

// FileSize is the explicit FileSize, or the total size of the page images
// when it's unset.
func (c *Comic) FileSize() int64 {
	if c.meta.FileSize >= 0 {
		return c.meta.FileSize
	}
	var size int64
	for _, p := range c.pages {
		size += p.ImageSize()
	}
	return size
}
