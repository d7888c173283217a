package archive

import (
	"path"
	"strings"

	"github.com/robinjoseph08/golib/logger"

	"github.com/shishobooks/comicinfo/pkg/imageinfo"
)

// MetadataName is the name of the metadata entry inside a comic archive.
const MetadataName = "ComicInfo.xml"

// DefaultMaxEntrySize caps the decompressed size of a single entry.
const DefaultMaxEntrySize int64 = 256 * 1024 * 1024

// Entry is a named blob inside a container.
type Entry struct {
	Name string
	Data []byte
}

// Reader lists and reads the entries of an opened container. Entries are
// returned in their physical order.
type Reader interface {
	Entries() []string
	ReadEntry(name string) ([]byte, error)
	Close() error
}

// Writer produces a container from a full list of entries.
type Writer interface {
	WriteEntries(entries []Entry) error
}

type Options struct {
	// MaxEntrySize defaults to DefaultMaxEntrySize.
	MaxEntrySize int64
	// Logger defaults to one that only reports warnings and errors.
	Logger *logger.Logger
}

func (o Options) maxEntrySize() int64 {
	if o.MaxEntrySize <= 0 {
		return DefaultMaxEntrySize
	}
	return o.MaxEntrySize
}

func (o Options) logger() logger.Logger {
	if o.Logger == nil {
		return logger.NewWithLevel("warn")
	}
	return *o.Logger
}

// SplitEntries separates the metadata entry from the page images. The
// metadata entry is matched case insensitively, preferring one at the root.
// Directories, hidden files, macOS resource forks, unsafe paths and anything
// that isn't an image are left out. Page order is preserved.
func SplitEntries(names []string) (meta string, pages []string) {
	for _, name := range names {
		if skipEntry(name) {
			continue
		}
		base := path.Base(name)
		if strings.EqualFold(base, MetadataName) {
			if meta == "" || (strings.Contains(meta, "/") && !strings.Contains(name, "/")) {
				meta = name
			}
			continue
		}
		if imageinfo.IsImageName(base) {
			pages = append(pages, name)
		}
	}
	return meta, pages
}

func skipEntry(name string) bool {
	if name == "" || strings.HasSuffix(name, "/") {
		return true
	}
	if !isSafePath(name) {
		return true
	}
	for _, part := range strings.Split(name, "/") {
		if part == "__MACOSX" || strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// isSafePath checks whether p stays within the archive root.
func isSafePath(p string) bool {
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if strings.HasPrefix(cleaned, "/") {
		return false
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	return true
}
