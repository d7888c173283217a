package comic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shishobooks/comicinfo/internal/testgen"
	"github.com/shishobooks/comicinfo/pkg/errcodes"
	"github.com/shishobooks/comicinfo/pkg/models"
)

func TestFromCBZ(t *testing.T) {
	t.Parallel()

	path := testgen.GenerateCBZ(t, t.TempDir(), "test.cbz", testgen.CBZOptions{
		Title:     "Test Comic",
		Series:    "Test Series",
		Number:    "5",
		Writer:    "Jane Doe",
		PageCount: 4,
		PageTypes: map[int]string{0: "FrontCover", 2: "Advertisement"},
	})

	c, err := FromCBZ(path)
	require.NoError(t, err)

	meta := c.Metadata()
	assert.Equal(t, "Test Comic", meta.Title)
	assert.Equal(t, "Test Series", meta.Series)
	assert.Equal(t, "5", meta.Number)
	assert.Equal(t, "Jane Doe", meta.Writer)

	require.Equal(t, 4, c.PageCount())
	pages := c.Pages()
	for i, p := range pages {
		assert.Equal(t, 100+i, p.ImageWidth(), "page %d", i)
		assert.Equal(t, ".png", p.Suffix())
	}
	assert.Equal(t, "page-001.png", pages[0].Name())
	assert.Equal(t, models.PageTypeFrontCover, pages[0].Attrs().Type)
	assert.Equal(t, models.PageType(""), pages[1].Attrs().Type)
	assert.Equal(t, models.PageTypeAdvertisement, pages[2].Attrs().Type)
}

func TestFromCBZ_NoMetadata(t *testing.T) {
	t.Parallel()

	path := testgen.GenerateCBZ(t, t.TempDir(), "bare.cbz", testgen.CBZOptions{
		NoComicInfo: true,
		PageCount:   2,
	})

	c, err := FromCBZ(path)
	require.NoError(t, err)
	assert.Equal(t, NewMetadata(), c.Metadata())
	assert.Equal(t, 2, c.PageCount())
}

func TestFromCBZ_IgnoresStrayFiles(t *testing.T) {
	t.Parallel()

	path := testgen.GenerateCBZ(t, t.TempDir(), "stray.cbz", testgen.CBZOptions{
		PageCount: 3,
		ExtraFiles: map[string][]byte{
			"notes.txt":           []byte("scanned by someone"),
			"__MACOSX/._page.png": []byte("resource fork"),
			"folder/":             nil,
		},
	})

	c, err := FromCBZ(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.PageCount())
}

func TestFromCBZ_MetadataNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	path := testgen.GenerateCBZ(t, t.TempDir(), "lower.cbz", testgen.CBZOptions{
		Title:        "Lowercase",
		MetadataName: "comicinfo.xml",
	})

	c, err := FromCBZ(path)
	require.NoError(t, err)
	assert.Equal(t, "Lowercase", c.Metadata().Title)
}

func TestFromCBZ_LegacySpellings(t *testing.T) {
	t.Parallel()

	doc := `<?xml version="1.0"?>
<ComicInfo>
  <Title>Legacy</Title>
  <GTIN>9780316769488</GTIN>
  <Colourist>Someone</Colourist>
  <BlackWhite>Yes</BlackWhite>
  <Format>TPB</Format>
  <AgeRating>MA 15+</AgeRating>
  <Manga>YesAndRightToLeft</Manga>
  <Rating>4</Rating>
  <Language>fr</Language>
  <UnknownElement>whatever</UnknownElement>
</ComicInfo>`
	path := testgen.GenerateCBZ(t, t.TempDir(), "legacy.cbz", testgen.CBZOptions{
		NoComicInfo: true,
		ExtraFiles:  map[string][]byte{"ComicInfo.xml": []byte(doc)},
	})

	c, err := FromCBZ(path)
	require.NoError(t, err)

	meta := c.Metadata()
	assert.Equal(t, "9780316769488", meta.EAN)
	assert.Equal(t, "Someone", meta.Colorist)
	assert.Equal(t, models.YesNoYes, meta.BlackAndWhite)
	assert.Equal(t, models.FormatTradePaperBack, meta.Format)
	assert.Equal(t, models.AgeRatingMA15, meta.AgeRating)
	assert.True(t, meta.Manga.IsRightToLeft())
	assert.Equal(t, models.Rating(4), meta.CommunityRating)
	assert.Equal(t, models.LanguageTag("fr"), meta.LanguageISO)
}

func TestFromCBZ_InvalidMetadata(t *testing.T) {
	t.Parallel()

	doc := `<ComicInfo><CommunityRating>9</CommunityRating></ComicInfo>`
	path := testgen.GenerateCBZ(t, t.TempDir(), "bad.cbz", testgen.CBZOptions{
		NoComicInfo: true,
		ExtraFiles:  map[string][]byte{"ComicInfo.xml": []byte(doc)},
	})

	_, err := FromCBZ(path)
	assert.ErrorIs(t, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "CommunityRating"})
}

func TestFromCBZ_PositionalPairing(t *testing.T) {
	t.Parallel()

	// Two fragments for three images: the last image gets defaults.
	doc := `<ComicInfo><Pages>
  <Page Image="5" Type="InnerCover" />
  <Page Image="9" Type="Letters" DoublePage="true" />
</Pages></ComicInfo>`
	path := testgen.GenerateCBZ(t, t.TempDir(), "pairing.cbz", testgen.CBZOptions{
		NoComicInfo: true,
		PageCount:   3,
		ExtraFiles:  map[string][]byte{"ComicInfo.xml": []byte(doc)},
	})

	c, err := FromCBZ(path)
	require.NoError(t, err)
	pages := c.Pages()
	require.Len(t, pages, 3)
	assert.Equal(t, PageAttrs{Type: models.PageTypeInnerCover}, pages[0].Attrs())
	assert.Equal(t, PageAttrs{Type: models.PageTypeLetters, DoublePage: true}, pages[1].Attrs())
	assert.Equal(t, PageAttrs{}, pages[2].Attrs())
}

func TestFromCBZ_NotAnArchive(t *testing.T) {
	t.Parallel()

	path := testgen.WriteFile(t, t.TempDir(), "fake.cbz", []byte("this is not a zip"))
	_, err := FromCBZ(path)
	assert.ErrorIs(t, err, errcodes.ErrNotAnArchive)
	assert.Equal(t, errcodes.CategoryFile, errcodes.Category(err))
}

func TestFromCBZ_MaxEntrySize(t *testing.T) {
	t.Parallel()

	path := testgen.GenerateCBZ(t, t.TempDir(), "big.cbz", testgen.CBZOptions{PageCount: 1})
	_, err := FromCBZ(path, WithMaxEntrySize(16))
	assert.ErrorIs(t, err, errcodes.ErrDecode)
}

func TestFromCBR(t *testing.T) {
	t.Parallel()

	// Three fragments for two images: the extra fragment is dropped and the
	// text file isn't a page.
	doc := `<ComicInfo><Title>Stored</Title><Pages>
  <Page Image="0" Type="FrontCover" />
  <Page Image="1" Type="Story" DoublePage="true" />
  <Page Image="2" Type="BackCover" />
</Pages></ComicInfo>`
	path := testgen.GenerateCBR(t, t.TempDir(), "test.cbr", testgen.CBZOptions{
		NoComicInfo: true,
		PageCount:   2,
		ExtraFiles: map[string][]byte{
			"ComicInfo.xml": []byte(doc),
			"notes.txt":     []byte("scanned by someone"),
		},
	})

	c, err := FromCBR(path, WithClock(fixedClock))
	require.NoError(t, err)
	assert.Equal(t, "Stored", c.Metadata().Title)

	pages := c.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, "page-001.png", pages[0].Name())
	assert.Equal(t, 100, pages[0].ImageWidth())
	assert.Equal(t, PageAttrs{Type: models.PageTypeFrontCover}, pages[0].Attrs())
	assert.Equal(t, "page-002.png", pages[1].Name())
	assert.Equal(t, 101, pages[1].ImageWidth())
	assert.Equal(t, PageAttrs{Type: models.PageTypeStory, DoublePage: true}, pages[1].Attrs())

	opened, err := Open(path, WithClock(fixedClock))
	require.NoError(t, err)
	assert.Equal(t, c.Info(), opened.Info())
}

func TestFromCBR_MaxEntrySize(t *testing.T) {
	t.Parallel()

	path := testgen.GenerateCBR(t, t.TempDir(), "big.cbr", testgen.CBZOptions{PageCount: 1})
	_, err := FromCBR(path, WithMaxEntrySize(16))
	assert.ErrorIs(t, err, errcodes.ErrDecode)
}

func TestFromCBR_NotAnArchive(t *testing.T) {
	t.Parallel()

	path := testgen.GenerateCBZ(t, t.TempDir(), "zip.cbr", testgen.CBZOptions{PageCount: 1})
	_, err := FromCBR(path)
	assert.ErrorIs(t, err, errcodes.ErrNotAnArchive)
}

func TestFromPDF(t *testing.T) {
	t.Parallel()

	path := testgen.GeneratePDF(t, t.TempDir(), "scan.pdf", testgen.PDFOptions{Pages: []int{2, 0, 1}})

	c, err := FromPDF(path)
	require.NoError(t, err)
	require.Equal(t, 3, c.PageCount())
	for i, p := range c.Pages() {
		assert.Equal(t, 16+i, p.ImageWidth(), "page %d", i)
		assert.Equal(t, 24, p.ImageHeight())
		assert.Equal(t, ".jpeg", p.Suffix())
	}
	assert.Equal(t, NewMetadata(), c.Metadata())
}

func TestFromPDF_NoImages(t *testing.T) {
	t.Parallel()

	path := testgen.GeneratePDF(t, t.TempDir(), "empty.pdf", testgen.PDFOptions{Pages: []int{0, 0}})

	_, err := FromPDF(path)
	assert.ErrorIs(t, err, errcodes.ErrNoImagesFound)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cbz := testgen.WriteFile(t, dir, "misnamed.pdf", testgen.CBZ(t, testgen.CBZOptions{Title: "Sniffed", PageCount: 2}))
	pdf := testgen.WriteFile(t, dir, "misnamed.cbz", testgen.PDF(t, testgen.PDFOptions{Pages: []int{1}}))
	empty := testgen.WriteFile(t, dir, "empty.bin", testgen.PDF(t, testgen.PDFOptions{Pages: []int{0}}))
	text := testgen.WriteFile(t, dir, "notes.cbz", []byte("plain text"))

	c, err := Open(cbz)
	require.NoError(t, err)
	assert.Equal(t, "Sniffed", c.Metadata().Title)
	assert.Equal(t, 2, c.PageCount())

	c, err = Open(pdf)
	require.NoError(t, err)
	assert.Equal(t, 1, c.PageCount())

	_, err = Open(empty)
	assert.ErrorIs(t, err, errcodes.ErrNoImagesFound)

	_, err = Open(text)
	assert.ErrorIs(t, err, errcodes.ErrNotAnArchive)
}

func TestUnpack_Empty(t *testing.T) {
	t.Parallel()

	c, err := New(nil, NewMetadata(), WithClock(fixedClock))
	require.NoError(t, err)
	data, err := c.Pack()
	require.NoError(t, err)

	decoded, err := Unpack(data)
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.PageCount())
	assert.Equal(t, c.Info(), decoded.Info())

	_, err = Unpack([]byte("nope"))
	assert.ErrorIs(t, err, errcodes.ErrNotAnArchive)
}
