package models

import (
	"fmt"
	"strings"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

// enumSet is the lookup table behind each closed enumeration. It's built once
// at init and only read afterwards.
type enumSet[T ~string] struct {
	field   string
	zero    T
	byFold  map[string]T
	aliases map[string]T
}

func newEnumSet[T ~string](field string, zero T, values []T, aliases map[string]T) *enumSet[T] {
	s := &enumSet[T]{
		field:   field,
		zero:    zero,
		byFold:  make(map[string]T, len(values)),
		aliases: make(map[string]T, len(aliases)),
	}
	for _, v := range values {
		s.byFold[strings.ToLower(string(v))] = v
	}
	for k, v := range aliases {
		s.aliases[strings.ToLower(k)] = v
	}
	return s
}

func (s *enumSet[T]) parse(value string) (T, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return s.zero, nil
	}
	key := strings.ToLower(trimmed)
	if v, ok := s.byFold[key]; ok {
		return v, nil
	}
	if v, ok := s.aliases[key]; ok {
		return v, nil
	}
	return s.zero, errcodes.ValidationError(s.field, fmt.Sprintf("unrecognized value %q", value))
}

func (s *enumSet[T]) valid(v T) bool {
	if v == "" {
		return true
	}
	got, ok := s.byFold[strings.ToLower(string(v))]
	return ok && got == v
}
