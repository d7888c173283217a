package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatUnknown},
		{"Trade Paper Back", FormatTradePaperBack},
		{"trade paper back", FormatTradePaperBack},
		{"TPB", FormatTradePaperBack},
		{"B&W", FormatBlackWhite},
		{"1-Shot", FormatOneShot},
		{"One Shot", FormatOneShot},
		{"WebComic", FormatWebComic},
		{"Giant Size", FormatGiantSize},
		{"Hardcover", FormatHardcover},
		{" Annual ", FormatAnnual},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseFormat_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseFormat("Pamphlet")
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.ErrValidation)
	assert.ErrorIs(t, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "Format"})
}

func TestEnums_ExactlyOneUnknown(t *testing.T) {
	t.Parallel()

	countUnknown := func(values []string) int {
		n := 0
		for _, v := range values {
			if v == "Unknown" {
				n++
			}
		}
		return n
	}

	var formats, yesNos, mangas, ages []string
	for _, v := range AllFormats {
		formats = append(formats, string(v))
	}
	for _, v := range AllYesNo {
		yesNos = append(yesNos, string(v))
	}
	for _, v := range AllMangas {
		mangas = append(mangas, string(v))
	}
	for _, v := range AllAgeRatings {
		ages = append(ages, string(v))
	}

	assert.Equal(t, 1, countUnknown(formats))
	assert.Equal(t, 1, countUnknown(yesNos))
	assert.Equal(t, 1, countUnknown(mangas))
	assert.Equal(t, 1, countUnknown(ages))
	assert.Len(t, AllFormats, 34)
	assert.Len(t, AllAgeRatings, 15)
	assert.Len(t, AllPageTypes, 11)
}

func TestEnums_IsValid(t *testing.T) {
	t.Parallel()

	for _, v := range AllFormats {
		assert.True(t, v.IsValid(), v)
	}
	for _, v := range AllAgeRatings {
		assert.True(t, v.IsValid(), v)
	}
	assert.True(t, Format("").IsValid())
	assert.False(t, Format("TPB").IsValid())
	assert.False(t, Format("trade paper back").IsValid())
	assert.False(t, Manga("Sideways").IsValid())
	assert.True(t, Format("").IsUnknown())
	assert.Equal(t, "Unknown", Format("").String())
}

func TestParseAgeRating(t *testing.T) {
	t.Parallel()

	got, err := ParseAgeRating("MA 15+")
	require.NoError(t, err)
	assert.Equal(t, AgeRatingMA15, got)

	got, err = ParseAgeRating("mature 17+")
	require.NoError(t, err)
	assert.Equal(t, AgeRatingMature17, got)

	_, err = ParseAgeRating("NC-17")
	assert.ErrorIs(t, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "AgeRating"})
}

func TestParseYesNoAndManga(t *testing.T) {
	t.Parallel()

	yn, err := ParseYesNo("yes")
	require.NoError(t, err)
	assert.Equal(t, YesNoYes, yn)

	yn, err = ParseYesNo("")
	require.NoError(t, err)
	assert.Equal(t, YesNoUnknown, yn)

	m, err := ParseManga("YesAndRightToLeft")
	require.NoError(t, err)
	assert.Equal(t, MangaYesAndRightToLeft, m)
	assert.True(t, m.IsRightToLeft())
	assert.False(t, MangaYes.IsRightToLeft())

	_, err = ParseManga("Maybe")
	assert.ErrorIs(t, err, errcodes.ErrValidation)
}

func TestPageType(t *testing.T) {
	t.Parallel()

	pt, err := ParsePageType("Advertisment")
	require.NoError(t, err)
	assert.Equal(t, PageTypeAdvertisement, pt)

	pt, err = ParsePageType("")
	require.NoError(t, err)
	assert.True(t, pt.IsUnknown())
	assert.Equal(t, PageTypeFrontCover, pt.Resolve(0))
	assert.Equal(t, PageTypeStory, pt.Resolve(3))
	assert.Equal(t, PageTypeBackCover, PageTypeBackCover.Resolve(0))

	_, err = ParsePageType("Unknown")
	assert.ErrorIs(t, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "Type"})
}
