package sidecar

import (
	"github.com/shishobooks/comicinfo/pkg/comic"
	"github.com/shishobooks/comicinfo/pkg/models"
)

// CurrentVersion is the current version of the sidecar file format.
// Increment this when making breaking changes to the schema.
const CurrentVersion = 1

// ComicSidecar is the JSON copy of a comic's metadata stored next to the
// archive as {filename}.comicinfo.json.
type ComicSidecar struct {
	Version   int              `json:"version"`
	Source    string           `json:"source,omitempty"`
	PageCount int              `json:"page_count"`
	Creators  []models.Creator `json:"creators,omitempty"`
	ComicInfo *comic.Info      `json:"comic_info"`
}
