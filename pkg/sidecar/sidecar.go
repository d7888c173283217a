package sidecar

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"

	"github.com/shishobooks/comicinfo/pkg/comic"
	"github.com/shishobooks/comicinfo/pkg/fileutils"
)

const SidecarSuffix = ".comicinfo.json"

// Path returns the sidecar file path for an archive: {archive}.comicinfo.json.
func Path(archivePath string) string {
	return archivePath + SidecarSuffix
}

// Exists checks if a sidecar exists for the archive.
func Exists(archivePath string) bool {
	_, err := os.Stat(Path(archivePath))
	return err == nil
}

// Read reads and parses the sidecar of an archive.
// Returns nil, nil if the sidecar doesn't exist.
func Read(archivePath string) (*ComicSidecar, error) {
	data, err := os.ReadFile(Path(archivePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}

	var s ComicSidecar
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", Path(archivePath))
	}

	return &s, nil
}

// Write writes the sidecar of an archive.
func Write(archivePath string, s *ComicSidecar) error {
	// Ensure version is set
	if s.Version == 0 {
		s.Version = CurrentVersion
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	// Sidecar files should be readable by users and other applications
	return fileutils.WriteFileAtomic(Path(archivePath), data, 0644)
}

// FromComic creates a ComicSidecar from a comic.
func FromComic(c *comic.Comic, source string) *ComicSidecar {
	return &ComicSidecar{
		Version:   CurrentVersion,
		Source:    filepath.Base(source),
		PageCount: c.PageCount(),
		Creators:  c.Metadata().Creators(),
		ComicInfo: c.Info(),
	}
}

// WriteFromComic writes the sidecar for the comic stored at archivePath.
func WriteFromComic(archivePath string, c *comic.Comic) error {
	return Write(archivePath, FromComic(c, archivePath))
}

// Metadata decodes the sidecar's ComicInfo into validated metadata.
func (s *ComicSidecar) Metadata() (comic.Metadata, error) {
	if s.ComicInfo == nil {
		return comic.NewMetadata(), nil
	}
	c, err := comic.FromValues(nil, s.ComicInfo.Values())
	if err != nil {
		return comic.Metadata{}, err
	}
	return c.Metadata(), nil
}
