package comic

import (
	"encoding/base64"
	"encoding/xml"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
	"github.com/shishobooks/comicinfo/pkg/fileutils"
	"github.com/shishobooks/comicinfo/pkg/imageinfo"
	"github.com/shishobooks/comicinfo/pkg/models"
	"github.com/shishobooks/comicinfo/pkg/schema"
)

var (
	pageDecoder = schema.NewDecoder(schema.PageFields)
	pageEncoder = schema.NewEncoder(schema.PageFields)
)

// PageAttrs are the caller-settable attributes of a page.
type PageAttrs struct {
	// Type is resolved by position when empty, see models.PageType.Resolve.
	Type       models.PageType `comicinfo:"Type" validate:"enum" json:"type,omitempty"`
	DoublePage bool            `comicinfo:"DoublePage" json:"double_page,omitempty"`
	Key        string          `comicinfo:"Key" json:"key,omitempty"`
	Bookmark   string          `comicinfo:"Bookmark" json:"bookmark,omitempty"`
}

// Page is a single page image. The content is the source of truth: the
// suffix, dimensions and size are always derived from it.
type Page struct {
	name    string
	content []byte
	image   *imageinfo.Info
	attrs   PageAttrs
	owner   *Comic
}

// NewPage inspects content and returns a page for it. Images outside the
// allow-list fail with an unsupported format error.
func NewPage(content []byte, attrs PageAttrs) (*Page, error) {
	p := &Page{}
	if err := p.SetAttrs(attrs); err != nil {
		return nil, err
	}
	if err := p.SetContent(content); err != nil {
		return nil, err
	}
	return p, nil
}

// PageFromBase64 decodes standard base64 content before calling NewPage.
func PageFromBase64(s string, attrs PageAttrs) (*Page, error) {
	content, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errcodes.DecodeError("base64 page content", err)
	}
	return NewPage(content, attrs)
}

// LoadPage reads the image at path. The page is named after the file.
func LoadPage(path string, attrs PageAttrs) (*Page, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	p, err := NewPage(content, attrs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load page %s", path)
	}
	p.name = filepath.Base(path)
	return p, nil
}

// PageFromFragment builds a page from its <Page> element and content. Missing
// attributes take their defaults; derived and unknown attributes are ignored.
func PageFromFragment(frag PageInfo, content []byte, name string) (*Page, error) {
	attrs := PageAttrs{}
	if err := pageDecoder.Decode(frag.Values(), &attrs); err != nil {
		return nil, err
	}
	p, err := NewPage(content, attrs)
	if err != nil {
		return nil, err
	}
	p.name = name
	return p, nil
}

func (p *Page) Name() string {
	return p.name
}

// SetName sets the name used when packing without renaming.
func (p *Page) SetName(name string) {
	p.name = name
}

// Content returns the raw image bytes. The slice must not be modified.
func (p *Page) Content() []byte {
	return p.content
}

// Suffix is the file extension of the image format, e.g. ".jpeg".
func (p *Page) Suffix() string {
	return p.image.Suffix
}

func (p *Page) MimeType() string {
	return p.image.MimeType
}

func (p *Page) ImageWidth() int {
	return p.image.Width
}

func (p *Page) ImageHeight() int {
	return p.image.Height
}

func (p *Page) ImageSize() int64 {
	return p.image.Size
}

func (p *Page) Attrs() PageAttrs {
	return p.attrs
}

// SetContent replaces the image and recomputes every derived attribute. On
// error the page is left unchanged.
func (p *Page) SetContent(content []byte) error {
	info, err := imageinfo.Inspect(content)
	if err != nil {
		return err
	}
	p.content = content
	p.image = info
	return nil
}

func (p *Page) SetAttrs(attrs PageAttrs) error {
	if err := schema.Validate(&attrs); err != nil {
		return err
	}
	p.attrs = attrs
	return nil
}

// Clone returns a copy of p that isn't owned by any comic. The content is
// shared.
func (p *Page) Clone() *Page {
	image := *p.image
	return &Page{
		name:    p.name,
		content: p.content,
		image:   &image,
		attrs:   p.attrs,
	}
}

// Save writes the image to path.
func (p *Page) Save(path string) error {
	return fileutils.WriteFileAtomic(path, p.content, 0644)
}

// Fragment returns the <Page> element for p at index. Default-valued
// attributes are left out, except Type which always carries the effective
// type.
func (p *Page) Fragment(index int) PageInfo {
	elements, err := pageEncoder.Encode(&p.attrs)
	if err != nil {
		// PageAttrs only holds strings and bools, which always encode.
		panic(err)
	}

	attrs := []xml.Attr{
		pageAttr("Image", strconv.Itoa(index)),
		pageAttr("Type", p.attrs.Type.Resolve(index).String()),
		pageAttr("ImageSize", strconv.FormatInt(p.image.Size, 10)),
		pageAttr("ImageWidth", strconv.Itoa(p.image.Width)),
		pageAttr("ImageHeight", strconv.Itoa(p.image.Height)),
	}
	for _, el := range elements {
		if el.Name == "Type" {
			continue
		}
		attrs = append(attrs, pageAttr(el.Name, el.Value))
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Name.Local < attrs[j].Name.Local
	})

	return PageInfo{Attrs: attrs}
}

func pageAttr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// PageInfo is one <Page> element of a ComicInfo document.
type PageInfo struct {
	XMLName xml.Name   `xml:"Page"`
	Attrs   []xml.Attr `xml:",any,attr"`
}

// Get returns the value of the named attribute.
func (pi PageInfo) Get(name string) (string, bool) {
	for _, a := range pi.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Values returns the attributes keyed by name, for decoding.
func (pi PageInfo) Values() url.Values {
	values := make(url.Values, len(pi.Attrs))
	for _, a := range pi.Attrs {
		values.Add(a.Name.Local, a.Value)
	}
	return values
}
