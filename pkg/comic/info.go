package comic

import (
	"bytes"
	"encoding/xml"
	"net/url"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/html/charset"

	"github.com/shishobooks/comicinfo/pkg/archive"
	"github.com/shishobooks/comicinfo/pkg/errcodes"
	"github.com/shishobooks/comicinfo/pkg/schema"
)

const (
	xmlnsXSD = "http://www.w3.org/2001/XMLSchema"
	xmlnsXSI = "http://www.w3.org/2001/XMLSchema-instance"
)

// Info is the external form of a comic: its non-default elements in document
// order, the page count and one fragment per page.
type Info struct {
	Elements  []schema.Element
	PageCount int
	Pages     []PageInfo
}

// Info returns the comic's ComicInfo document. FileSize defaults to the
// total size of the pages, and unset file timestamps to the time the comic
// was created.
func (c *Comic) Info() *Info {
	meta := c.meta
	meta.FileSize = c.FileSize()
	if meta.FileCreationTime == "" {
		meta.FileCreationTime = c.stamp
	}
	if meta.FileModifiedTime == "" {
		meta.FileModifiedTime = c.stamp
	}

	elements, err := metaEncoder.Encode(&meta)
	if err != nil {
		// Metadata only holds types the encoder knows.
		panic(err)
	}

	info := &Info{
		Elements:  elements,
		PageCount: len(c.pages),
		Pages:     make([]PageInfo, len(c.pages)),
	}
	for i, p := range c.pages {
		info.Pages[i] = p.Fragment(i)
	}
	return info
}

// Get returns the value of a scalar element. Any accepted spelling of the
// name works.
func (info *Info) Get(name string) (string, bool) {
	if name == schema.PageCountElement {
		return strconv.Itoa(info.PageCount), true
	}
	f, ok := schema.Lookup(schema.ComicFields, name)
	if !ok {
		return "", false
	}
	for _, el := range info.Elements {
		if el.Name == f.Name {
			return el.Value, true
		}
	}
	return "", false
}

// Values returns the scalar elements keyed by name, for decoding.
func (info *Info) Values() url.Values {
	values := make(url.Values, len(info.Elements))
	for _, el := range info.Elements {
		values.Add(el.Name, el.Value)
	}
	return values
}

// XML renders the ComicInfo.xml document.
func (info *Info) XML() ([]byte, error) {
	out, err := xml.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	out = bytes.ReplaceAll(out, []byte("></Page>"), []byte(" />"))
	return append([]byte(xml.Header), out...), nil
}

func (info *Info) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{
		Name: xml.Name{Local: "ComicInfo"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:xsd"}, Value: xmlnsXSD},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: xmlnsXSI},
		},
	}
	if err := e.EncodeToken(start); err != nil {
		return errors.WithStack(err)
	}
	for _, el := range info.Elements {
		if err := e.EncodeElement(el.Value, xml.StartElement{Name: xml.Name{Local: el.Name}}); err != nil {
			return errors.WithStack(err)
		}
	}
	if err := e.EncodeElement(info.PageCount, xml.StartElement{Name: xml.Name{Local: schema.PageCountElement}}); err != nil {
		return errors.WithStack(err)
	}
	if len(info.Pages) > 0 {
		pages := struct {
			Page []PageInfo `xml:"Page"`
		}{info.Pages}
		if err := e.EncodeElement(pages, xml.StartElement{Name: xml.Name{Local: schema.PagesElement}}); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(e.EncodeToken(start.End()))
}

type xmlDocument struct {
	XMLName xml.Name
	Fields  []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string     `xml:",chardata"`
	Pages   []PageInfo `xml:"Page"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseInfo reads a ComicInfo.xml document. Element names are kept as
// written; legacy spellings are resolved when the values are decoded.
func ParseInfo(data []byte) (*Info, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	var doc xmlDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, errcodes.DecodeError(archive.MetadataName, err)
	}
	if doc.XMLName.Local != "ComicInfo" {
		return nil, errcodes.DecodeError(archive.MetadataName, errors.Errorf("unexpected root element <%s>", doc.XMLName.Local))
	}

	info := &Info{}
	for _, f := range doc.Fields {
		switch f.XMLName.Local {
		case schema.PagesElement:
			info.Pages = append(info.Pages, f.Pages...)
		case schema.PageCountElement:
			// Derived from the pages, so the stored value is only a hint.
			if n, err := strconv.Atoi(f.Value); err == nil {
				info.PageCount = n
			}
		default:
			info.Elements = append(info.Elements, schema.Element{Name: f.XMLName.Local, Value: f.Value})
		}
	}
	return info, nil
}

// MarshalJSON writes the elements as one object in document order. Numeric
// fields are numbers and everything else is a string.
func (info *Info) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, el := range info.Elements {
		f, _ := schema.Lookup(schema.ComicFields, el.Name)
		writeJSONField(&buf, el.Name, jsonValue(f.Type, el.Value))
		buf.WriteByte(',')
	}
	writeJSONField(&buf, schema.PageCountElement, strconv.Itoa(info.PageCount))

	buf.WriteString(`,"Pages":[`)
	for i, page := range info.Pages {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, a := range page.Attrs {
			if j > 0 {
				buf.WriteByte(',')
			}
			f, _ := schema.Lookup(schema.PageFields, a.Name.Local)
			writeJSONField(&buf, a.Name.Local, jsonValue(f.Type, a.Value))
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

func writeJSONField(buf *bytes.Buffer, name, raw string) {
	key, _ := json.Marshal(name)
	buf.Write(key)
	buf.WriteByte(':')
	buf.WriteString(raw)
}

func jsonValue(t schema.ValueType, v string) string {
	switch t {
	case schema.TypeInt, schema.TypeRating:
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return v
		}
	case schema.TypeBool:
		if b, err := strconv.ParseBool(v); err == nil {
			return strconv.FormatBool(b)
		}
	}
	out, _ := json.Marshal(v)
	return string(out)
}

// UnmarshalJSON reads the output of MarshalJSON. Elements are put back in
// document order and unknown names are dropped.
func (info *Info) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WithStack(err)
	}

	*info = Info{}
	for _, f := range schema.ComicFields {
		msg, ok := raw[f.Name]
		if !ok {
			continue
		}
		info.Elements = append(info.Elements, schema.Element{Name: f.Name, Value: jsonString(msg)})
	}
	if msg, ok := raw[schema.PageCountElement]; ok {
		if err := json.Unmarshal(msg, &info.PageCount); err != nil {
			return errors.WithStack(err)
		}
	}
	if msg, ok := raw[schema.PagesElement]; ok {
		var pages []map[string]json.RawMessage
		if err := json.Unmarshal(msg, &pages); err != nil {
			return errors.WithStack(err)
		}
		for _, page := range pages {
			pi := PageInfo{}
			for name, v := range page {
				pi.Attrs = append(pi.Attrs, pageAttr(name, jsonString(v)))
			}
			sort.Slice(pi.Attrs, func(i, j int) bool {
				return pi.Attrs[i].Name.Local < pi.Attrs[j].Name.Local
			})
			info.Pages = append(info.Pages, pi)
		}
	}
	return nil
}

// jsonString returns a JSON string's contents, or any other value verbatim.
func jsonString(msg json.RawMessage) string {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(msg))
}
