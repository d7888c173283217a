package errcodes

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	t.Parallel()

	err := errors.WithStack(ValidationError("CommunityRating", "must be between -1 and 5"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, &Error{Kind: KindValidation, Field: "CommunityRating"})
	assert.NotErrorIs(t, err, &Error{Kind: KindValidation, Field: "Year"})
	assert.NotErrorIs(t, err, ErrDecode)
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := ValidationError("LanguageISO", `invalid language "xx-zz"`)
	assert.Equal(t, `LanguageISO: invalid language "xx-zz"`, err.Error())

	cause := errors.New("unexpected EOF")
	err = DecodeError("image", cause)
	assert.Equal(t, "failed to decode image: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestCategoryAndCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		category string
		code     string
		exit     int
	}{
		{ValidationError("Year", "bad"), CategoryData, "validation_error", 2},
		{DecodeError("image", nil), CategoryFile, "decode_error", 3},
		{NotAnArchive("a.cbz", nil), CategoryFile, "not_an_archive_error", 3},
		{NoImagesFound("a.pdf"), CategoryFile, "no_images_found_error", 3},
		{UnsupportedFormat("image/svg+xml"), CategoryCapability, "unsupported_format_error", 4},
		{errors.New("disk on fire"), CategoryInternal, "internal_error", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.category, Category(tt.err), tt.err.Error())
		assert.Equal(t, tt.code, Code(tt.err), tt.err.Error())
		assert.Equal(t, tt.exit, ExitCode(tt.err), tt.err.Error())
	}
	assert.Equal(t, 0, ExitCode(nil))
}
