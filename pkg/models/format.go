package models

// Format is the publication format of a comic.
type Format string

const (
	FormatUnknown        Format = "Unknown"
	FormatAnnotation     Format = "Annotation"
	FormatAnnual         Format = "Annual"
	FormatAnthology      Format = "Anthology"
	FormatBlackWhite     Format = "Black & White"
	FormatBoxSet         Format = "Box-Set"
	FormatCrossover      Format = "Crossover"
	FormatDirectorsCut   Format = "Director's Cut"
	FormatEpilogue       Format = "Epilogue"
	FormatEvent          Format = "Event"
	FormatFCBD           Format = "FCBD"
	FormatFlyer          Format = "Flyer"
	FormatGiantSize      Format = "Giant-Size"
	FormatGraphicNovel   Format = "Graphic Novel"
	FormatHardcover      Format = "Hard-Cover"
	FormatKingSize       Format = "King-Size"
	FormatLimitedSeries  Format = "Limited Series"
	FormatMagazine       Format = "Magazine"
	FormatNSFW           Format = "NSFW"
	FormatOneShot        Format = "One-Shot"
	FormatPoint1         Format = "Point 1"
	FormatPreview        Format = "Preview"
	FormatPrologue       Format = "Prologue"
	FormatReference      Format = "Reference"
	FormatReview         Format = "Review"
	FormatReviewed       Format = "Reviewed"
	FormatScanlation     Format = "Scanlation"
	FormatScript         Format = "Script"
	FormatSeries         Format = "Series"
	FormatSketch         Format = "Sketch"
	FormatSpecial        Format = "Special"
	FormatTradePaperBack Format = "Trade Paper Back"
	FormatWebComic       Format = "Web Comic"
	FormatYearOne        Format = "Year One"
)

var AllFormats = []Format{
	FormatUnknown, FormatAnnotation, FormatAnnual, FormatAnthology, FormatBlackWhite,
	FormatBoxSet, FormatCrossover, FormatDirectorsCut, FormatEpilogue, FormatEvent,
	FormatFCBD, FormatFlyer, FormatGiantSize, FormatGraphicNovel, FormatHardcover,
	FormatKingSize, FormatLimitedSeries, FormatMagazine, FormatNSFW, FormatOneShot,
	FormatPoint1, FormatPreview, FormatPrologue, FormatReference, FormatReview,
	FormatReviewed, FormatScanlation, FormatScript, FormatSeries, FormatSketch,
	FormatSpecial, FormatTradePaperBack, FormatWebComic, FormatYearOne,
}

// Spellings found in the wild that map onto a canonical Format.
var formatAliases = map[string]Format{
	"1 Shot":      FormatOneShot,
	"1-Shot":      FormatOneShot,
	"One Shot":    FormatOneShot,
	"Annotations": FormatAnnotation,
	"B&W":         FormatBlackWhite,
	"B/W":         FormatBlackWhite,
	"B&&W":        FormatBlackWhite,
	"Box Set":     FormatBoxSet,
	"Giant":       FormatGiantSize,
	"Giant Size":  FormatGiantSize,
	"Hardcover":   FormatHardcover,
	"King":        FormatKingSize,
	"King Size":   FormatKingSize,
	"TPB":         FormatTradePaperBack,
	"WebComic":    FormatWebComic,
	"Year 1":      FormatYearOne,
}

var formats = newEnumSet("Format", FormatUnknown, AllFormats, formatAliases)

// ParseFormat decodes s into a Format. Legacy spellings such as "TPB" are
// accepted and mapped to their canonical variant.
func ParseFormat(s string) (Format, error) {
	return formats.parse(s)
}

func (f Format) IsValid() bool {
	return formats.valid(f)
}

func (f Format) IsUnknown() bool {
	return f == "" || f == FormatUnknown
}

func (f Format) String() string {
	if f == "" {
		return string(FormatUnknown)
	}
	return string(f)
}
