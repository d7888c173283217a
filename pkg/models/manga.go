package models

// Manga says whether a comic is manga, and if so its reading direction.
type Manga string

const (
	MangaUnknown           Manga = "Unknown"
	MangaNo                Manga = "No"
	MangaYes               Manga = "Yes"
	MangaYesAndRightToLeft Manga = "YesAndRightToLeft"
)

var AllMangas = []Manga{MangaUnknown, MangaNo, MangaYes, MangaYesAndRightToLeft}

var mangas = newEnumSet("Manga", MangaUnknown, AllMangas, map[string]Manga{
	"Yes And Right To Left": MangaYesAndRightToLeft,
	"RightToLeft":           MangaYesAndRightToLeft,
})

func ParseManga(s string) (Manga, error) {
	return mangas.parse(s)
}

func (m Manga) IsValid() bool {
	return mangas.valid(m)
}

func (m Manga) IsUnknown() bool {
	return m == "" || m == MangaUnknown
}

// IsRightToLeft reports whether pages should be read right to left.
func (m Manga) IsRightToLeft() bool {
	return m == MangaYesAndRightToLeft
}

func (m Manga) String() string {
	if m == "" {
		return string(MangaUnknown)
	}
	return string(m)
}
