package errcodes

import (
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
)

// Categories tell a caller whether retrying with different input can help.
const (
	CategoryData       = "data"
	CategoryFile       = "file"
	CategoryCapability = "capability"
	CategoryInternal   = "internal"
)

var kindCategories = map[Kind]string{
	KindValidation:           CategoryData,
	KindDecode:               CategoryFile,
	KindNotAnArchive:         CategoryFile,
	KindMissingRequiredEntry: CategoryFile,
	KindNoImagesFound:        CategoryFile,
	KindUnsupportedFormat:    CategoryCapability,
}

// Category returns the category of err. Errors that aren't *Error are
// internal (I/O failures and the like).
func Category(err error) string {
	var e *Error
	if ok := errors.As(err, &e); ok {
		if c, ok := kindCategories[e.Kind]; ok {
			return c
		}
	}
	return CategoryInternal
}

// Code returns a stable snake_case code for err, e.g. "not_an_archive_error".
func Code(err error) string {
	var e *Error
	if ok := errors.As(err, &e); ok {
		return strcase.ToSnake(e.Kind.String())
	}
	return "internal_error"
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch Category(err) {
	case CategoryData:
		return 2
	case CategoryFile:
		return 3
	case CategoryCapability:
		return 4
	default:
		return 1
	}
}
