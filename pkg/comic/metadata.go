package comic

import (
	"github.com/creasty/defaults"

	"github.com/shishobooks/comicinfo/pkg/fileutils"
	"github.com/shishobooks/comicinfo/pkg/models"
	"github.com/shishobooks/comicinfo/pkg/schema"
)

// Metadata holds every ComicInfo scalar field. Fields are in document order.
// Use NewMetadata to get a value with every field unset: the zero value is not
// unset for numeric fields.
type Metadata struct {
	Title               string             `comicinfo:"Title" json:"title,omitempty"`
	Series              string             `comicinfo:"Series" json:"series,omitempty"`
	Number              string             `comicinfo:"Number" json:"number,omitempty"`
	Count               int                `comicinfo:"Count" default:"-1" validate:"min=-1" json:"count"`
	Volume              int                `comicinfo:"Volume" default:"-1" validate:"min=-1" json:"volume"`
	AlternateSeries     string             `comicinfo:"AlternateSeries" json:"alternate_series,omitempty"`
	AlternateNumber     string             `comicinfo:"AlternateNumber" json:"alternate_number,omitempty"`
	AlternateCount      int                `comicinfo:"AlternateCount" default:"-1" validate:"min=-1" json:"alternate_count"`
	Summary             string             `comicinfo:"Summary" json:"summary,omitempty"`
	Notes               string             `comicinfo:"Notes" json:"notes,omitempty"`
	Year                int                `comicinfo:"Year" default:"-1" validate:"min=-1" json:"year"`
	Month               int                `comicinfo:"Month" default:"-1" validate:"min=-1,max=12" json:"month"`
	Day                 int                `comicinfo:"Day" default:"-1" validate:"min=-1,max=31" json:"day"`
	Writer              string             `comicinfo:"Writer" json:"writer,omitempty"`
	Penciller           string             `comicinfo:"Penciller" json:"penciller,omitempty"`
	Inker               string             `comicinfo:"Inker" json:"inker,omitempty"`
	Colorist            string             `comicinfo:"Colorist" json:"colorist,omitempty"`
	Letterer            string             `comicinfo:"Letterer" json:"letterer,omitempty"`
	CoverArtist         string             `comicinfo:"CoverArtist" json:"cover_artist,omitempty"`
	Editor              string             `comicinfo:"Editor" json:"editor,omitempty"`
	Translator          string             `comicinfo:"Translator" json:"translator,omitempty"`
	Publisher           string             `comicinfo:"Publisher" json:"publisher,omitempty"`
	Imprint             string             `comicinfo:"Imprint" json:"imprint,omitempty"`
	Genre               string             `comicinfo:"Genre" json:"genre,omitempty"`
	Tags                string             `comicinfo:"Tags" json:"tags,omitempty"`
	Web                 string             `comicinfo:"Web" mod:"trim" json:"web,omitempty"`
	Format              models.Format      `comicinfo:"Format" default:"Unknown" validate:"enum" json:"format"`
	EAN                 string             `comicinfo:"EAN" mod:"trim" json:"ean,omitempty"`
	BlackAndWhite       models.YesNo       `comicinfo:"BlackAndWhite" default:"Unknown" validate:"enum" json:"black_and_white"`
	Manga               models.Manga       `comicinfo:"Manga" default:"Unknown" validate:"enum" json:"manga"`
	Characters          string             `comicinfo:"Characters" json:"characters,omitempty"`
	Teams               string             `comicinfo:"Teams" json:"teams,omitempty"`
	Locations           string             `comicinfo:"Locations" json:"locations,omitempty"`
	ScanInformation     string             `comicinfo:"ScanInformation" json:"scan_information,omitempty"`
	StoryArc            string             `comicinfo:"StoryArc" json:"story_arc,omitempty"`
	StoryArcNumber      string             `comicinfo:"StoryArcNumber" json:"story_arc_number,omitempty"`
	SeriesGroup         string             `comicinfo:"SeriesGroup" json:"series_group,omitempty"`
	AgeRating           models.AgeRating   `comicinfo:"AgeRating" default:"Unknown" validate:"enum" json:"age_rating"`
	MainCharacterOrTeam string             `comicinfo:"MainCharacterOrTeam" json:"main_character_or_team,omitempty"`
	Review              string             `comicinfo:"Review" json:"review,omitempty"`
	LanguageISO         models.LanguageTag `comicinfo:"LanguageISO" mod:"trim" validate:"language_iso" json:"language_iso,omitempty"`
	CommunityRating     models.Rating      `comicinfo:"CommunityRating" default:"-1" validate:"rating" json:"community_rating"`
	Added               string             `comicinfo:"Added" json:"added,omitempty"`
	Released            string             `comicinfo:"Released" json:"released,omitempty"`
	FileSize            int64              `comicinfo:"FileSize" default:"-1" validate:"min=-1" json:"file_size"`
	FileModifiedTime    string             `comicinfo:"FileModifiedTime" json:"file_modified_time,omitempty"`
	FileCreationTime    string             `comicinfo:"FileCreationTime" json:"file_creation_time,omitempty"`
	BookPrice           string             `comicinfo:"BookPrice" json:"book_price,omitempty"`
	CustomValuesStore   string             `comicinfo:"CustomValuesStore" json:"custom_values_store,omitempty"`
}

// NewMetadata returns Metadata with every field at its unset default.
func NewMetadata() Metadata {
	m := Metadata{}
	// Only fails on malformed default tags.
	if err := defaults.Set(&m); err != nil {
		panic(err)
	}
	return m
}

// Validate checks every field against its allowed range or enumeration and
// reports the first one that fails.
func (m Metadata) Validate() error {
	return schema.Validate(&m)
}

// Creators lists everyone credited in the creator fields, in field order.
// Multi-valued fields are split on commas and semicolons; repeats within a
// role are dropped.
func (m Metadata) Creators() []models.Creator {
	roles := []struct {
		value string
		role  string
	}{
		{m.Writer, models.CreatorRoleWriter},
		{m.Penciller, models.CreatorRolePenciller},
		{m.Inker, models.CreatorRoleInker},
		{m.Colorist, models.CreatorRoleColorist},
		{m.Letterer, models.CreatorRoleLetterer},
		{m.CoverArtist, models.CreatorRoleCoverArtist},
		{m.Editor, models.CreatorRoleEditor},
		{m.Translator, models.CreatorRoleTranslator},
	}

	var creators []models.Creator
	for _, r := range roles {
		seen := map[string]bool{}
		for _, name := range fileutils.SplitNames(r.value) {
			if seen[name] {
				continue
			}
			seen[name] = true
			creators = append(creators, models.Creator{Name: name, Role: r.role})
		}
	}
	return creators
}
