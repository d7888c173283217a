package archive

import (
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

// Kind is a supported container type.
type Kind string

const (
	KindZip Kind = "cbz"
	KindRar Kind = "cbr"
	KindPDF Kind = "pdf"
)

// Detect sniffs the container type of the file at path from its content,
// ignoring the extension.
func Detect(path string) (Kind, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	for m := mtype; m != nil; m = m.Parent() {
		switch {
		case m.Is("application/zip"):
			return KindZip, nil
		case m.Is("application/x-rar-compressed"):
			return KindRar, nil
		case m.Is("application/pdf"):
			return KindPDF, nil
		}
	}
	return "", errcodes.NotAnArchive(path, errors.Errorf("content is %s", mtype.String()))
}

// Open detects the container type of path and opens it with the matching
// reader.
func Open(path string, opts Options) (Reader, Kind, error) {
	kind, err := Detect(path)
	if err != nil {
		return nil, "", err
	}
	var r Reader
	switch kind {
	case KindZip:
		r, err = OpenZip(path, opts)
	case KindRar:
		r, err = OpenRar(path, opts)
	case KindPDF:
		r, err = OpenPDF(path, opts)
	}
	if err != nil {
		return nil, "", err
	}
	return r, kind, nil
}
