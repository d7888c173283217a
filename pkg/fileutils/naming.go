package fileutils

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxNameBytes = 200

var (
	doubleQuotesRE = regexp.MustCompile(`[“”]`)
	singleQuotesRE = regexp.MustCompile(`[‘’]`)
	invalidCharsRE = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	whitespaceRE   = regexp.MustCompile(`\s+`)
)

// PageFilename returns the stored name of the page at the 0-based index:
// page-001.png, page-002.png, and so on.
func PageFilename(index int, suffix string) string {
	return fmt.Sprintf("page-%03d%s", index+1, suffix)
}

// ComicFilenameOptions contains the data needed to generate an organized
// comic filename.
type ComicFilenameOptions struct {
	Writer string // only the first name is used
	Series string
	Title  string
	Number string
	Volume int // -1 when unset
}

// ComicFilename creates a standardized filename: [Writer] Series v1 #7.cbz,
// falling back to the title when there's no series.
func ComicFilename(opts ComicFilenameOptions) string {
	var parts []string

	if names := SplitNames(opts.Writer); len(names) > 0 {
		if writer := sanitizeForFilename(names[0]); writer != "" {
			parts = append(parts, fmt.Sprintf("[%s]", writer))
		}
	}

	name := opts.Series
	if name == "" {
		name = opts.Title
	}
	if name = sanitizeForFilename(name); name != "" {
		parts = append(parts, name)
	}

	if opts.Series != "" {
		if opts.Volume >= 0 {
			parts = append(parts, fmt.Sprintf("v%d", opts.Volume))
		}
		if number := sanitizeForFilename(opts.Number); number != "" {
			parts = append(parts, "#"+number)
		}
	}

	if len(parts) == 0 {
		return "Unknown.cbz"
	}

	return strings.Join(parts, " ") + ".cbz"
}

// sanitizeForFilename removes or replaces characters that are not safe for filenames.
func sanitizeForFilename(name string) string {
	// Replace smart quotes with regular quotes
	name = doubleQuotesRE.ReplaceAllString(name, `"`)
	name = singleQuotesRE.ReplaceAllString(name, `'`)

	// Different operating systems have different restrictions, so we'll be conservative
	name = invalidCharsRE.ReplaceAllString(name, "")
	name = whitespaceRE.ReplaceAllString(name, " ")

	// Trim spaces and dots from the ends (Windows doesn't like trailing dots)
	name = strings.Trim(name, " .")

	if len(name) > maxNameBytes {
		cut := maxNameBytes
		// Don't split a multi-byte character.
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = strings.Trim(name[:cut], " .")
	}

	return name
}

// UniqueName returns name, or name with a " (n)" suffix before the
// extension when name is already taken. The result is marked as taken.
func UniqueName(name string, taken map[string]bool) string {
	candidate := name
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; taken[candidate]; i++ {
		candidate = fmt.Sprintf("%s (%d)%s", base, i, ext)
	}
	taken[candidate] = true
	return candidate
}

// SplitNames splits a string of names by common delimiters (comma and semicolon),
// trims whitespace from each name, and returns non-empty names.
// This is used for parsing creator lists from metadata.
func SplitNames(s string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	for _, segment := range strings.Split(s, ";") {
		for _, part := range strings.Split(segment, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
	}
	return parts
}
