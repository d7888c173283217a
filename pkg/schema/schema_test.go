package schema

import (
	"net/url"
	"testing"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
	"github.com/shishobooks/comicinfo/pkg/models"
)

type testMetadata struct {
	Title           string             `comicinfo:"Title"`
	Count           int                `comicinfo:"Count" default:"-1" validate:"min=-1"`
	Month           int                `comicinfo:"Month" default:"-1" validate:"min=-1,max=12"`
	Format          models.Format      `comicinfo:"Format" default:"Unknown" validate:"enum"`
	EAN             string             `comicinfo:"EAN" mod:"trim"`
	LanguageISO     models.LanguageTag `comicinfo:"LanguageISO" mod:"trim" validate:"language_iso"`
	CommunityRating models.Rating      `comicinfo:"CommunityRating" default:"-1" validate:"rating"`
}

func newTestMetadata(t *testing.T) *testMetadata {
	m := &testMetadata{}
	require.NoError(t, defaults.Set(m))
	return m
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"CoverArtist", "cover_artist", "coverArtist", "cover-artist", "COVER_ARTIST"} {
		f, ok := Lookup(ComicFields, key)
		require.True(t, ok, key)
		assert.Equal(t, "CoverArtist", f.Name, key)
		assert.Equal(t, "cover_artist", f.Key, key)
	}

	aliases := map[string]string{
		"GTIN":              "EAN",
		"BlackWhite":        "BlackAndWhite",
		"Language":          "LanguageISO",
		"Rating":            "CommunityRating",
		"AlternativeSeries": "AlternateSeries",
		"Colourist":         "Colorist",
		"Penciler":          "Penciller",
	}
	for alias, name := range aliases {
		f, ok := Lookup(ComicFields, alias)
		require.True(t, ok, alias)
		assert.Equal(t, name, f.Name, alias)
	}

	f, ok := Lookup(PageFields, "@DoublePage")
	require.True(t, ok)
	assert.Equal(t, "DoublePage", f.Name)

	_, ok = Lookup(ComicFields, "Bogus")
	assert.False(t, ok)
	_, ok = Lookup(ComicFields, "DoublePage")
	assert.False(t, ok)
}

func TestFieldTables(t *testing.T) {
	t.Parallel()

	assert.Len(t, ComicFields, 49)
	assert.Equal(t, "Title", ComicFields[0].Name)
	assert.Equal(t, "CustomValuesStore", ComicFields[len(ComicFields)-1].Name)
	assert.Len(t, PageFields, 8)

	seen := map[string]bool{}
	for _, f := range ComicFields {
		assert.False(t, seen[f.Name], f.Name)
		seen[f.Name] = true
	}
}

func TestIsDefault(t *testing.T) {
	t.Parallel()

	str := Field{Name: "Title"}
	num := Field{Name: "Year", Type: TypeInt}
	rating := Field{Name: "CommunityRating", Type: TypeRating}
	enum := Field{Name: "Format", Type: TypeEnum}
	flag := Field{Name: "DoublePage", Type: TypeBool}

	assert.True(t, IsDefault(str, ""))
	assert.False(t, IsDefault(str, "Unknown"))
	assert.False(t, IsDefault(str, "-1"))
	assert.True(t, IsDefault(num, "-1"))
	assert.False(t, IsDefault(num, "0"))
	assert.True(t, IsDefault(rating, "-1"))
	assert.False(t, IsDefault(rating, "0"))
	assert.True(t, IsDefault(enum, "Unknown"))
	assert.True(t, IsDefault(enum, ""))
	assert.False(t, IsDefault(enum, "Annual"))
	assert.True(t, IsDefault(flag, "false"))
	assert.False(t, IsDefault(flag, "true"))

	// Whitespace only counts as unset for non-string fields.
	assert.False(t, IsDefault(str, "  "))
	assert.True(t, IsDefault(num, " -1 "))
	assert.True(t, IsDefault(enum, "  "))
}

func TestDecoder_Canonicalize(t *testing.T) {
	t.Parallel()

	d := NewDecoder(ComicFields)

	tests := []struct {
		name   string
		values url.Values
		want   string
	}{
		{"canonical name", url.Values{"CoverArtist": {"A"}, "cover_artist": {"B"}, "coverArtist": {"C"}}, "A"},
		{"internal key", url.Values{"coverArtist": {"A"}, "cover_artist": {"B"}}, "B"},
		{"first sorted spelling", url.Values{"coverArtist": {"A"}, "Cover-Artist": {"B"}}, "B"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(tt *testing.T) {
			// Map iteration order varies between runs, the result must not.
			for i := 0; i < 50; i++ {
				got := d.Canonicalize(tc.values)
				assert.Equal(tt, []string{tc.want}, got["CoverArtist"])
			}
		})
	}

	got := d.Canonicalize(url.Values{"Title": {"  "}, "Count": {" 3 "}})
	assert.Equal(t, "  ", got.Get("Title"))
	assert.Equal(t, "3", got.Get("Count"))
}

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	d := NewDecoder(ComicFields)

	t.Run("resolves aliases and normalizes values", func(tt *testing.T) {
		m := newTestMetadata(tt)
		err := d.Decode(url.Values{
			"title":    {"Saga"},
			"GTIN":     {" 9781607066019 "},
			"Rating":   {"4.5"},
			"format":   {"TPB"},
			"Language": {"en"},
			"Bogus":    {"ignored"},
		}, m)
		require.NoError(tt, err)
		assert.Equal(tt, "Saga", m.Title)
		assert.Equal(tt, "9781607066019", m.EAN)
		assert.Equal(tt, models.Rating(4.5), m.CommunityRating)
		assert.Equal(tt, models.FormatTradePaperBack, m.Format)
		assert.Equal(tt, models.LanguageTag("en"), m.LanguageISO)
		assert.Equal(tt, -1, m.Count)
	})

	t.Run("canonical name wins over an alias", func(tt *testing.T) {
		m := newTestMetadata(tt)
		err := d.Decode(url.Values{
			"EAN":  {"111"},
			"GTIN": {"222"},
		}, m)
		require.NoError(tt, err)
		assert.Equal(tt, "111", m.EAN)
	})

	t.Run("reports type errors by field", func(tt *testing.T) {
		m := newTestMetadata(tt)
		err := d.Decode(url.Values{"Count": {"many"}}, m)
		require.Error(tt, err)
		assert.ErrorIs(tt, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "Count"})
		assert.Contains(tt, err.Error(), `"many" should be of type integer`)
	})

	t.Run("rejects out of range ratings", func(tt *testing.T) {
		m := newTestMetadata(tt)
		err := d.Decode(url.Values{"CommunityRating": {"7"}}, m)
		assert.ErrorIs(tt, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "CommunityRating"})
	})

	t.Run("rejects unknown enum values", func(tt *testing.T) {
		m := newTestMetadata(tt)
		err := d.Decode(url.Values{"Format": {"Pamphlet"}}, m)
		assert.ErrorIs(tt, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "Format"})
	})

	t.Run("runs struct validation", func(tt *testing.T) {
		m := newTestMetadata(tt)
		err := d.Decode(url.Values{"Month": {"13"}}, m)
		require.Error(tt, err)
		assert.ErrorIs(tt, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "Month"})
		assert.Contains(tt, err.Error(), "12")
	})

	t.Run("empty values keep defaults", func(tt *testing.T) {
		m := newTestMetadata(tt)
		err := d.Decode(url.Values{"Count": {""}, "Format": {""}}, m)
		require.NoError(tt, err)
		assert.Equal(tt, -1, m.Count)
		assert.Equal(tt, models.FormatUnknown, m.Format)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	m := newTestMetadata(t)
	require.NoError(t, Validate(m))

	m.CommunityRating = 9
	err := Validate(m)
	require.Error(t, err)
	assert.ErrorIs(t, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "CommunityRating"})
	assert.Equal(t, "CommunityRating must be between -1 and 5", err.Error())

	m = newTestMetadata(t)
	m.Format = "Pamphlet"
	m.LanguageISO = "not a tag"
	err = Validate(m)
	assert.ErrorIs(t, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "Format"})
}

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	m := newTestMetadata(t)
	m.Title = "Saga"
	m.CommunityRating = 3.5
	m.Count = 0

	elements, err := NewEncoder(ComicFields).Encode(m)
	require.NoError(t, err)
	assert.Equal(t, []Element{
		{Name: "Title", Value: "Saga"},
		{Name: "Count", Value: "0"},
		{Name: "CommunityRating", Value: "3.5"},
	}, elements)
}
