package archive

import (
	"archive/zip"
	"hash/crc32"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

// ZipReader reads entries out of a ZIP (CBZ) archive.
type ZipReader struct {
	zr      *zip.Reader
	closer  io.Closer
	names   []string
	files   map[string]*zip.File
	maxSize int64
}

// OpenZip opens the ZIP archive at path.
func OpenZip(path string, opts Options) (*ZipReader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, errcodes.NotAnArchive(path, err)
	}
	r := newZipReader(&rc.Reader, opts)
	r.closer = rc
	return r, nil
}

// NewZipReader reads a ZIP archive from r.
func NewZipReader(r io.ReaderAt, size int64, opts Options) (*ZipReader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errcodes.NotAnArchive("<memory>", err)
	}
	return newZipReader(zr, opts), nil
}

func newZipReader(zr *zip.Reader, opts Options) *ZipReader {
	log := opts.logger()
	r := &ZipReader{
		zr:      zr,
		files:   make(map[string]*zip.File, len(zr.File)),
		maxSize: opts.maxEntrySize(),
	}
	for _, f := range zr.File {
		if _, dup := r.files[f.Name]; dup {
			log.Warn("duplicate zip entry, keeping the first", logger.Data{"name": f.Name})
			continue
		}
		r.files[f.Name] = f
		r.names = append(r.names, f.Name)
	}
	return r
}

func (r *ZipReader) Entries() []string {
	return append([]string(nil), r.names...)
}

// ReadEntry returns the decompressed contents of the named entry. Entries
// larger than the configured maximum fail with a decode error.
func (r *ZipReader) ReadEntry(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, errcodes.MissingRequiredEntry(name)
	}

	if f.UncompressedSize64 > uint64(r.maxSize) {
		return nil, errcodes.DecodeError(name, errors.Errorf("entry too large: %d bytes (max %d)", f.UncompressedSize64, r.maxSize))
	}

	rc, err := f.Open()
	if err != nil {
		return nil, errcodes.DecodeError(name, err)
	}
	defer rc.Close()

	// The declared size might be forged, so read one byte past the limit.
	data, err := io.ReadAll(io.LimitReader(rc, r.maxSize+1))
	if err != nil {
		return nil, errcodes.DecodeError(name, err)
	}
	if int64(len(data)) > r.maxSize {
		return nil, errcodes.DecodeError(name, errors.Errorf("decompressed size exceeds limit (%d bytes)", r.maxSize))
	}
	return data, nil
}

func (r *ZipReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return errors.WithStack(r.closer.Close())
}

// ZipWriter writes an uncompressed ZIP archive.
type ZipWriter struct {
	w io.Writer
}

func NewZipWriter(w io.Writer) *ZipWriter {
	return &ZipWriter{w: w}
}

// WriteEntries writes every entry stored (uncompressed), in order, and
// finalizes the archive. The CRC and sizes go in the local headers, with no
// data descriptors, so streaming readers can walk the archive. Headers carry
// no modification time so the output depends only on the entries.
func (zw *ZipWriter) WriteEntries(entries []Entry) error {
	w := zip.NewWriter(zw.w)
	for _, e := range entries {
		hdr := &zip.FileHeader{
			Name:               e.Name,
			Method:             zip.Store,
			CreatorVersion:     zipVersion20,
			ReaderVersion:      zipVersion20,
			CRC32:              crc32.ChecksumIEEE(e.Data),
			CompressedSize64:   uint64(len(e.Data)),
			UncompressedSize64: uint64(len(e.Data)),
		}
		if needsUTF8Flag(e.Name) {
			hdr.Flags |= zipFlagUTF8
		}
		fw, err := w.CreateRaw(hdr)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", e.Name)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return errors.Wrapf(err, "failed to write %s", e.Name)
		}
	}
	return errors.WithStack(w.Close())
}

const (
	zipVersion20 = 20
	zipFlagUTF8  = 0x800
)

// needsUTF8Flag reports whether name has to be marked as UTF-8 to be read
// back correctly.
func needsUTF8Flag(name string) bool {
	if !utf8.ValidString(name) {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] >= utf8.RuneSelf {
			return true
		}
	}
	return false
}
