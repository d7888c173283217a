package fileutils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPageFilename(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "page-001.png", PageFilename(0, ".png"))
	assert.Equal(t, "page-010.jpeg", PageFilename(9, ".jpeg"))
	assert.Equal(t, "page-1000.webp", PageFilename(999, ".webp"))
}

func TestComicFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     ComicFilenameOptions
		expected string
	}{
		{
			name:     "series with number",
			opts:     ComicFilenameOptions{Writer: "Brian K. Vaughan, Fiona Staples", Series: "Saga", Number: "7", Volume: -1},
			expected: "[Brian K. Vaughan] Saga #7.cbz",
		},
		{
			name:     "series with volume",
			opts:     ComicFilenameOptions{Series: "Saga", Number: "1", Volume: 1},
			expected: "Saga v1 #1.cbz",
		},
		{
			name:     "title only",
			opts:     ComicFilenameOptions{Title: "One: Shot?", Number: "3", Volume: -1},
			expected: "One Shot.cbz",
		},
		{
			name:     "nothing",
			opts:     ComicFilenameOptions{Volume: -1},
			expected: "Unknown.cbz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComicFilename(tt.opts))
		})
	}
}

func TestComicFilename_LongMultibyteTitle(t *testing.T) {
	t.Parallel()

	// "é" is two bytes. With the leading "a", the 200 byte limit lands in
	// the middle of one.
	for _, prefix := range []string{"", "a"} {
		title := prefix + strings.Repeat("é", 150)
		name := ComicFilename(ComicFilenameOptions{Title: title, Volume: -1})

		assert.True(t, utf8.ValidString(name), name)
		assert.True(t, strings.HasSuffix(name, ".cbz"))
		base := strings.TrimSuffix(name, ".cbz")
		assert.LessOrEqual(t, len(base), maxNameBytes)
		assert.True(t, strings.HasPrefix(title, base))
	}

	name := ComicFilename(ComicFilenameOptions{Title: "a" + strings.Repeat("日本", 100), Volume: -1})
	assert.True(t, utf8.ValidString(name), name)
	assert.Equal(t, "a"+strings.Repeat("日本", 33)+".cbz", name)
}

func TestUniqueName(t *testing.T) {
	t.Parallel()

	taken := map[string]bool{}
	assert.Equal(t, "cover.png", UniqueName("cover.png", taken))
	assert.Equal(t, "cover (1).png", UniqueName("cover.png", taken))
	assert.Equal(t, "cover (2).png", UniqueName("cover.png", taken))
	assert.True(t, taken["cover (1).png"])
}

func TestSplitNames(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single name",
			input:    "John Doe",
			expected: []string{"John Doe"},
		},
		{
			name:     "comma separated",
			input:    "John Doe, Jane Smith",
			expected: []string{"John Doe", "Jane Smith"},
		},
		{
			name:     "semicolon separated",
			input:    "John Doe; Jane Smith",
			expected: []string{"John Doe", "Jane Smith"},
		},
		{
			name:     "mixed comma and semicolon",
			input:    "John Doe, Jane Smith; Bob Wilson",
			expected: []string{"John Doe", "Jane Smith", "Bob Wilson"},
		},
		{
			name:     "with extra whitespace",
			input:    "  John Doe  ,  Jane Smith  ;  Bob Wilson  ",
			expected: []string{"John Doe", "Jane Smith", "Bob Wilson"},
		},
		{
			name:     "empty parts filtered",
			input:    "John Doe,,Jane Smith;;Bob Wilson",
			expected: []string{"John Doe", "Jane Smith", "Bob Wilson"},
		},
		{
			name:     "only delimiters",
			input:    ",;,;",
			expected: nil,
		},
		{
			name:     "multiple semicolons then commas",
			input:    "Author A; Author B, Author C",
			expected: []string{"Author A", "Author B", "Author C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplitNames(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
