package schema

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/gorilla/schema"
	"github.com/pkg/errors"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
	"github.com/shishobooks/comicinfo/pkg/models"
)

type parser func(string) (any, error)

func parserFor[T any](parse func(string) (T, error)) parser {
	return func(s string) (any, error) {
		return parse(s)
	}
}

// Parsers for every models type, keyed by type. They back both the gorilla
// converters and the error messages for conversion failures.
var parsers = map[reflect.Type]parser{
	reflect.TypeOf(models.Format("")):      parserFor(models.ParseFormat),
	reflect.TypeOf(models.YesNo("")):       parserFor(models.ParseYesNo),
	reflect.TypeOf(models.Manga("")):       parserFor(models.ParseManga),
	reflect.TypeOf(models.AgeRating("")):   parserFor(models.ParseAgeRating),
	reflect.TypeOf(models.PageType("")):    parserFor(models.ParsePageType),
	reflect.TypeOf(models.LanguageTag("")): parserFor(models.ParseLanguageTag),
	reflect.TypeOf(models.Rating(0)):       parserFor(models.ParseRating),
}

// Decoder turns string values keyed by any accepted field spelling into a
// typed struct tagged with `comicinfo`.
type Decoder struct {
	fields  []Field
	decoder *schema.Decoder
}

func NewDecoder(fields []Field) *Decoder {
	decoder := schema.NewDecoder()
	decoder.SetAliasTag(TagName)
	decoder.IgnoreUnknownKeys(true)
	for typ, parse := range parsers {
		decoder.RegisterConverter(reflect.Zero(typ).Interface(), func(s string) reflect.Value {
			v, err := parse(s)
			if err != nil {
				return reflect.Value{}
			}
			return reflect.ValueOf(v)
		})
	}
	return &Decoder{fields: fields, decoder: decoder}
}

// Decode populates dst from values. dst should already hold its defaults;
// absent or empty values leave the current value alone. Unknown keys and
// derived fields are ignored. After decoding, dst is normalized and
// validated.
func (d *Decoder) Decode(values url.Values, dst any) error {
	canonical := d.Canonicalize(values)

	if err := d.decoder.Decode(dst, canonical); err != nil {
		return d.conversionError(err, canonical)
	}
	if err := Normalize(dst); err != nil {
		return err
	}
	return Validate(dst)
}

// Canonicalize rewrites the keys of values to external field names and drops
// anything it doesn't recognize. When a field is given under more than one
// spelling, the canonical name wins, then the internal key, then the
// spelling that sorts first. Values of non-string fields are trimmed.
func (d *Decoder) Canonicalize(values url.Values) url.Values {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	canonical := make(url.Values, len(values))
	ranks := make(map[string]int, len(values))
	for _, key := range keys {
		vs := values[key]
		f, ok := Lookup(d.fields, key)
		if !ok || f.Derived || len(vs) == 0 {
			continue
		}
		rank := spellingRank(f, key)
		if best, seen := ranks[f.Name]; seen && best <= rank {
			continue
		}
		ranks[f.Name] = rank

		v := vs[len(vs)-1]
		if f.Type != TypeString {
			v = strings.TrimSpace(v)
		}
		canonical[f.Name] = []string{v}
	}
	return canonical
}

func spellingRank(f Field, key string) int {
	switch strings.TrimPrefix(key, "@") {
	case f.Name:
		return 0
	case f.Key:
		return 1
	default:
		return 2
	}
}

func (d *Decoder) conversionError(err error, values url.Values) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return errors.WithStack(err)
	}
	// Report the first failure in field order so the result is stable.
	for _, f := range d.fields {
		ferr, ok := multi[f.Name]
		if !ok {
			continue
		}
		var cerr schema.ConversionError
		if !errors.As(ferr, &cerr) {
			return errors.WithStack(ferr)
		}
		value := values.Get(f.Name)
		if parse, ok := parsers[cerr.Type]; ok {
			if _, perr := parse(value); perr != nil {
				var e *errcodes.Error
				if errors.As(perr, &e) {
					return errcodes.ValidationError(f.Name, e.Message)
				}
			}
		}
		return errcodes.ValidationError(f.Name, fmt.Sprintf("%q should be of type %s", value, typeName(f.Type)))
	}
	for _, ferr := range multi {
		return errors.WithStack(ferr)
	}
	return errors.WithStack(err)
}

func typeName(t ValueType) string {
	switch t {
	case TypeInt:
		return "integer"
	case TypeRating:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeEnum:
		return "enumeration"
	case TypeLanguage:
		return "language tag"
	default:
		return "string"
	}
}
