package cbzpages

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/shishobooks/comicinfo/pkg/archive"
	"github.com/shishobooks/comicinfo/pkg/fileutils"
	"github.com/shishobooks/comicinfo/pkg/imageinfo"
)

// Cache manages extracted comic page images. Pages are extracted one at a
// time on first request and served from disk afterwards.
type Cache struct {
	dir  string
	opts archive.Options
}

// NewCache creates a new Cache with the given directory.
func NewCache(dir string, opts archive.Options) *Cache {
	return &Cache{dir: dir, opts: opts}
}

// Key identifies a comic file by its absolute path, size and modification
// time, so a rewritten file gets fresh pages.
func Key(comicPath string) (string, error) {
	abs, err := filepath.Abs(comicPath)
	if err != nil {
		return "", errors.WithStack(err)
	}
	stats, err := os.Stat(abs)
	if err != nil {
		return "", errors.WithStack(err)
	}
	sum := blake2b.Sum256([]byte(abs + "\x00" + strconv.FormatInt(stats.Size(), 10) + "\x00" + strconv.FormatInt(stats.ModTime().UnixNano(), 10)))
	return hex.EncodeToString(sum[:16]), nil
}

// GetPage returns the path to a cached page image, extracting if necessary.
// pageNum is 0-indexed.
func (c *Cache) GetPage(comicPath string, pageNum int) (cachedPath string, mimeType string, err error) {
	key, err := Key(comicPath)
	if err != nil {
		return "", "", err
	}

	// Check if page is already cached
	pattern := filepath.Join(c.pageDir(key), fmt.Sprintf("page-%03d.*", pageNum+1))
	matches, _ := filepath.Glob(pattern)
	if len(matches) > 0 {
		mtype, err := mimetype.DetectFile(matches[0])
		if err != nil {
			return "", "", errors.WithStack(err)
		}
		return matches[0], mtype.String(), nil
	}

	return c.extractPage(comicPath, key, pageNum)
}

// extractPage extracts a single page from a comic and caches it.
func (c *Cache) extractPage(comicPath, key string, pageNum int) (cachedPath string, mimeType string, err error) {
	r, _, err := archive.Open(comicPath, c.opts)
	if err != nil {
		return "", "", err
	}
	defer r.Close()

	_, pages := archive.SplitEntries(r.Entries())
	if pageNum < 0 || pageNum >= len(pages) {
		return "", "", errors.Errorf("page %d out of range (0-%d)", pageNum, len(pages)-1)
	}

	data, err := r.ReadEntry(pages[pageNum])
	if err != nil {
		return "", "", err
	}
	info, err := imageinfo.Inspect(data)
	if err != nil {
		return "", "", err
	}

	cachedPath = filepath.Join(c.pageDir(key), fileutils.PageFilename(pageNum, info.Suffix))
	if err := fileutils.WriteFileAtomic(cachedPath, data, 0644); err != nil {
		return "", "", err
	}

	return cachedPath, info.MimeType, nil
}

// pageDir returns the cache directory for a comic's pages.
func (c *Cache) pageDir(key string) string {
	return filepath.Join(c.dir, "pages", key)
}

// Invalidate removes all cached pages for a comic.
func (c *Cache) Invalidate(comicPath string) error {
	key, err := Key(comicPath)
	if err != nil {
		return err
	}
	return errors.WithStack(os.RemoveAll(c.pageDir(key)))
}
