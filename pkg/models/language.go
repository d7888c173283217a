package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

// LanguageTag is a BCP 47 language tag such as "en" or "pt-BR". The empty tag
// means unset.
type LanguageTag string

// ParseLanguageTag validates s against the language subtag registry. The tag
// is returned as given, without canonicalization.
func ParseLanguageTag(s string) (LanguageTag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := language.Parse(s); err != nil {
		// language.Parse returns a usable tag alongside ValueError for unknown
		// subtags; those are still invalid here.
		var verr language.ValueError
		if errors.As(err, &verr) {
			return "", errcodes.ValidationError("LanguageISO", fmt.Sprintf("unknown subtag %q in %q", verr.Subtag(), s))
		}
		return "", errcodes.ValidationError("LanguageISO", fmt.Sprintf("invalid language tag %q", s))
	}
	return LanguageTag(s), nil
}

func (l LanguageTag) IsValid() bool {
	if l == "" {
		return true
	}
	_, err := ParseLanguageTag(string(l))
	return err == nil
}

// Base returns the primary language subtag, e.g. "pt" for "pt-BR".
func (l LanguageTag) Base() string {
	if l == "" {
		return ""
	}
	tag, err := language.Parse(string(l))
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}

func (l LanguageTag) String() string {
	return string(l)
}
