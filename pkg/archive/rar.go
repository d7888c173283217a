package archive

import (
	"io"

	"github.com/nwaples/rardecode/v2"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

// RarReader holds the contents of a RAR (CBR) archive. RAR is a solid,
// stream-oriented format, so every entry is read on open.
type RarReader struct {
	names []string
	data  map[string][]byte
	errs  map[string]error
}

// OpenRar reads the RAR archive at path into memory.
func OpenRar(path string, opts Options) (*RarReader, error) {
	rc, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, errcodes.NotAnArchive(path, err)
	}
	defer rc.Close()

	log := opts.logger()
	maxSize := opts.maxEntrySize()
	r := &RarReader{
		data: map[string][]byte{},
		errs: map[string]error{},
	}

	for {
		hdr, err := rc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(r.names) == 0 {
				return nil, errcodes.NotAnArchive(path, err)
			}
			return nil, errcodes.DecodeError(path, err)
		}
		if hdr.IsDir {
			continue
		}
		if _, dup := r.data[hdr.Name]; dup {
			log.Warn("duplicate rar entry, keeping the first", logger.Data{"name": hdr.Name})
			continue
		}

		data, err := io.ReadAll(io.LimitReader(rc, maxSize+1))
		if err != nil {
			return nil, errcodes.DecodeError(hdr.Name, err)
		}
		r.names = append(r.names, hdr.Name)
		if int64(len(data)) > maxSize {
			// Only fail if someone actually asks for it.
			r.errs[hdr.Name] = errcodes.DecodeError(hdr.Name, errors.Errorf("decompressed size exceeds limit (%d bytes)", maxSize))
			r.data[hdr.Name] = nil
			continue
		}
		r.data[hdr.Name] = data
	}

	return r, nil
}

func (r *RarReader) Entries() []string {
	return append([]string(nil), r.names...)
}

func (r *RarReader) ReadEntry(name string) ([]byte, error) {
	if err, ok := r.errs[name]; ok {
		return nil, err
	}
	data, ok := r.data[name]
	if !ok {
		return nil, errcodes.MissingRequiredEntry(name)
	}
	return data, nil
}

func (r *RarReader) Close() error {
	r.data = nil
	return nil
}
