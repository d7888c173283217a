package schema

import (
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// ValueType is the kind of value a field holds once decoded.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInt
	TypeRating
	TypeBool
	TypeEnum
	TypeLanguage
)

// Field describes one ComicInfo element or page attribute.
type Field struct {
	// Name is the external element or attribute name, e.g. "CoverArtist".
	Name string
	// Key is the internal snake_case key, e.g. "cover_artist".
	Key string
	// Aliases are legacy spellings accepted on input.
	Aliases []string
	Type    ValueType
	// Derived fields are computed from page content and never read from input.
	Derived bool
}

// ComicFields is the ordered list of ComicInfo elements. The order is the
// element order of the written document.
var ComicFields = []Field{
	{Name: "Title", Key: "title"},
	{Name: "Series", Key: "series"},
	{Name: "Number", Key: "number"},
	{Name: "Count", Key: "count", Type: TypeInt},
	{Name: "Volume", Key: "volume", Type: TypeInt},
	{Name: "AlternateSeries", Key: "alternate_series", Aliases: []string{"AlternativeSeries"}},
	{Name: "AlternateNumber", Key: "alternate_number", Aliases: []string{"AlternativeNumber"}},
	{Name: "AlternateCount", Key: "alternate_count", Type: TypeInt, Aliases: []string{"AlternativeCount"}},
	{Name: "Summary", Key: "summary"},
	{Name: "Notes", Key: "notes"},
	{Name: "Year", Key: "year", Type: TypeInt},
	{Name: "Month", Key: "month", Type: TypeInt},
	{Name: "Day", Key: "day", Type: TypeInt},
	{Name: "Writer", Key: "writer"},
	{Name: "Penciller", Key: "penciller", Aliases: []string{"Penciler"}},
	{Name: "Inker", Key: "inker"},
	{Name: "Colorist", Key: "colorist", Aliases: []string{"Colourist"}},
	{Name: "Letterer", Key: "letterer"},
	{Name: "CoverArtist", Key: "cover_artist"},
	{Name: "Editor", Key: "editor"},
	{Name: "Translator", Key: "translator"},
	{Name: "Publisher", Key: "publisher"},
	{Name: "Imprint", Key: "imprint"},
	{Name: "Genre", Key: "genre"},
	{Name: "Tags", Key: "tags"},
	{Name: "Web", Key: "web"},
	{Name: "Format", Key: "format", Type: TypeEnum},
	{Name: "EAN", Key: "ean", Aliases: []string{"GTIN"}},
	{Name: "BlackAndWhite", Key: "black_and_white", Type: TypeEnum, Aliases: []string{"BlackWhite"}},
	{Name: "Manga", Key: "manga", Type: TypeEnum},
	{Name: "Characters", Key: "characters"},
	{Name: "Teams", Key: "teams"},
	{Name: "Locations", Key: "locations"},
	{Name: "ScanInformation", Key: "scan_information"},
	{Name: "StoryArc", Key: "story_arc"},
	{Name: "StoryArcNumber", Key: "story_arc_number"},
	{Name: "SeriesGroup", Key: "series_group"},
	{Name: "AgeRating", Key: "age_rating", Type: TypeEnum},
	{Name: "MainCharacterOrTeam", Key: "main_character_or_team"},
	{Name: "Review", Key: "review"},
	{Name: "LanguageISO", Key: "language_iso", Type: TypeLanguage, Aliases: []string{"Language"}},
	{Name: "CommunityRating", Key: "community_rating", Type: TypeRating, Aliases: []string{"Rating"}},
	{Name: "Added", Key: "added"},
	{Name: "Released", Key: "released"},
	{Name: "FileSize", Key: "file_size", Type: TypeInt},
	{Name: "FileModifiedTime", Key: "file_modified_time"},
	{Name: "FileCreationTime", Key: "file_creation_time"},
	{Name: "BookPrice", Key: "book_price"},
	{Name: "CustomValuesStore", Key: "custom_values_store"},
}

// PageFields is the ordered list of <Page> attributes.
var PageFields = []Field{
	{Name: "Image", Key: "image", Type: TypeInt, Derived: true},
	{Name: "Type", Key: "type", Type: TypeEnum},
	{Name: "DoublePage", Key: "double_page", Type: TypeBool},
	{Name: "Key", Key: "key"},
	{Name: "Bookmark", Key: "bookmark"},
	{Name: "ImageSize", Key: "image_size", Type: TypeInt, Derived: true},
	{Name: "ImageWidth", Key: "image_width", Type: TypeInt, Derived: true},
	{Name: "ImageHeight", Key: "image_height", Type: TypeInt, Derived: true},
}

// Elements that are written by the codec itself rather than stored on the
// metadata, and so aren't in ComicFields.
const (
	PageCountElement = "PageCount"
	PagesElement     = "Pages"
	PageElement      = "Page"
)

var (
	comicIndex = buildIndex(ComicFields)
	pageIndex  = buildIndex(PageFields)
)

func normalizeKey(key string) string {
	key = strings.TrimSpace(strings.TrimPrefix(key, "@"))
	return strcase.ToSnake(key)
}

func buildIndex(fields []Field) map[string]int {
	index := make(map[string]int, len(fields)*2)
	for i, f := range fields {
		index[normalizeKey(f.Name)] = i
		index[f.Key] = i
		for _, alias := range f.Aliases {
			index[normalizeKey(alias)] = i
		}
	}
	return index
}

func indexFor(fields []Field) map[string]int {
	switch {
	case len(fields) > 0 && &fields[0] == &ComicFields[0]:
		return comicIndex
	case len(fields) > 0 && &fields[0] == &PageFields[0]:
		return pageIndex
	default:
		return buildIndex(fields)
	}
}

// Lookup resolves key against fields. Any casing of the external name, the
// internal key, or a legacy alias is accepted: "CoverArtist", "cover_artist",
// "coverArtist" and "cover-artist" all resolve to the same field.
func Lookup(fields []Field, key string) (Field, bool) {
	i, ok := indexFor(fields)[normalizeKey(key)]
	if !ok {
		return Field{}, false
	}
	return fields[i], true
}

// IsDefault reports whether v is the sentinel "unset" value for f. Unset
// fields are omitted on export and left at their default on decode.
func IsDefault(f Field, v string) bool {
	// Whitespace is content in a string field.
	if f.Type == TypeString {
		return v == ""
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	switch f.Type {
	case TypeInt, TypeRating:
		n, err := strconv.ParseFloat(v, 64)
		return err == nil && n == -1
	case TypeEnum:
		return strings.EqualFold(v, "Unknown")
	case TypeBool:
		b, err := strconv.ParseBool(v)
		return err == nil && !b
	default:
		return false
	}
}
