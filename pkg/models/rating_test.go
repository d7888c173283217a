package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

func TestNewRating(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{-1, 0, 2.5, 5} {
		r, err := NewRating(v)
		require.NoError(t, err)
		assert.InDelta(t, v, float64(r), 0)
	}

	for _, v := range []float64{-1.5, 5.1, 6, math.NaN()} {
		_, err := NewRating(v)
		assert.ErrorIs(t, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "CommunityRating"})
	}
}

func TestParseRating(t *testing.T) {
	t.Parallel()

	r, err := ParseRating("")
	require.NoError(t, err)
	assert.True(t, r.IsUnset())

	r, err = ParseRating("3.5")
	require.NoError(t, err)
	assert.Equal(t, "3.5", r.String())

	r, err = ParseRating("4")
	require.NoError(t, err)
	assert.Equal(t, "4", r.String())

	_, err = ParseRating("five")
	assert.ErrorIs(t, err, errcodes.ErrValidation)

	_, err = ParseRating("7")
	assert.ErrorIs(t, err, errcodes.ErrValidation)
}

func TestParseLanguageTag(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "en", "pt-BR", "ja", "zh-Hant"} {
		tag, err := ParseLanguageTag(in)
		require.NoError(t, err, in)
		assert.Equal(t, LanguageTag(in), tag)
		assert.True(t, tag.IsValid())
	}

	for _, in := range []string{"not a tag", "xx-zz", "english"} {
		_, err := ParseLanguageTag(in)
		assert.ErrorIs(t, err, &errcodes.Error{Kind: errcodes.KindValidation, Field: "LanguageISO"}, in)
	}

	assert.Equal(t, "pt", LanguageTag("pt-BR").Base())
	assert.Equal(t, "", LanguageTag("").Base())
}
