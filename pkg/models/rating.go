package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

const (
	RatingUnset Rating = -1
	RatingMax   Rating = 5
)

// Rating is a community rating between 0 and 5. -1 means unset.
type Rating float64

func NewRating(v float64) (Rating, error) {
	r := Rating(v)
	if !r.IsValid() {
		return RatingUnset, errcodes.ValidationError("CommunityRating",
			fmt.Sprintf("must be between %d and %d, got %s", int(RatingUnset), int(RatingMax), r))
	}
	return r, nil
}

func ParseRating(s string) (Rating, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RatingUnset, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return RatingUnset, errcodes.ValidationError("CommunityRating", fmt.Sprintf("%q is not a number", s))
	}
	return NewRating(v)
}

// IsValid reports whether r is within range. NaN is never valid.
func (r Rating) IsValid() bool {
	return r >= RatingUnset && r <= RatingMax
}

func (r Rating) IsUnset() bool {
	return r == RatingUnset
}

func (r Rating) String() string {
	return strconv.FormatFloat(float64(r), 'f', -1, 64)
}
