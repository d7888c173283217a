package errcodes

import (
	"fmt"
	"strings"
)

// Kind classifies an Error.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnsupportedFormat
	KindDecode
	KindNotAnArchive
	KindMissingRequiredEntry
	KindNoImagesFound
)

var kindNames = map[Kind]string{
	KindValidation:           "ValidationError",
	KindUnsupportedFormat:    "UnsupportedFormatError",
	KindDecode:               "DecodeError",
	KindNotAnArchive:         "NotAnArchiveError",
	KindMissingRequiredEntry: "MissingRequiredEntryError",
	KindNoImagesFound:        "NoImagesFoundError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (err *Error) Error() string {
	msg := err.Message
	if err.Field != "" && !strings.HasPrefix(msg, err.Field+" ") {
		msg = fmt.Sprintf("%s: %s", err.Field, msg)
	}
	if err.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err.Err)
	}
	return msg
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Is matches errors of the same Kind. A target that names a Field only
// matches errors about that field.
func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	if te.Kind != err.Kind {
		return false
	}
	return te.Field == "" || te.Field == err.Field
}

// Sentinels for errors.Is.
var (
	ErrValidation           = &Error{Kind: KindValidation}
	ErrUnsupportedFormat    = &Error{Kind: KindUnsupportedFormat}
	ErrDecode               = &Error{Kind: KindDecode}
	ErrNotAnArchive         = &Error{Kind: KindNotAnArchive}
	ErrMissingRequiredEntry = &Error{Kind: KindMissingRequiredEntry}
	ErrNoImagesFound        = &Error{Kind: KindNoImagesFound}
)

// ValidationError returns an error for a field value outside its allowed
// type, range, or enumeration.
func ValidationError(field, msg string) error {
	return &Error{
		Kind:    KindValidation,
		Field:   field,
		Message: msg,
	}
}

// UnsupportedFormat returns an error for an image or container type that is
// recognized but not supported.
func UnsupportedFormat(format string) error {
	return &Error{
		Kind:    KindUnsupportedFormat,
		Message: fmt.Sprintf("unsupported format %q", format),
	}
}

// DecodeError returns an error for bytes that can't be parsed as what they
// claim to be.
func DecodeError(what string, err error) error {
	return &Error{
		Kind:    KindDecode,
		Message: "failed to decode " + what,
		Err:     err,
	}
}

func NotAnArchive(path string, err error) error {
	return &Error{
		Kind:    KindNotAnArchive,
		Message: fmt.Sprintf("%q is not a valid archive", path),
		Err:     err,
	}
}

func MissingRequiredEntry(name string) error {
	return &Error{
		Kind:    KindMissingRequiredEntry,
		Field:   name,
		Message: "required entry is missing",
	}
}

func NoImagesFound(path string) error {
	return &Error{
		Kind:    KindNoImagesFound,
		Message: fmt.Sprintf("no images found in %q", path),
	}
}
