package schema

import (
	"net/url"
	"reflect"

	"github.com/gorilla/schema"
	"github.com/pkg/errors"

	"github.com/shishobooks/comicinfo/pkg/models"
)

// Element is a single name/value pair ready to be written out.
type Element struct {
	Name  string
	Value string
}

// Encoder turns a struct tagged with `comicinfo` into the elements that
// differ from their defaults.
type Encoder struct {
	fields  []Field
	encoder *schema.Encoder
}

func NewEncoder(fields []Field) *Encoder {
	encoder := schema.NewEncoder()
	encoder.SetAliasTag(TagName)
	encoder.RegisterEncoder(models.Rating(0), func(v reflect.Value) string {
		return models.Rating(v.Float()).String()
	})
	return &Encoder{fields: fields, encoder: encoder}
}

// Values encodes every field of src, defaults included.
func (e *Encoder) Values(src any) (url.Values, error) {
	values := url.Values{}
	if err := e.encoder.Encode(src, values); err != nil {
		return nil, errors.WithStack(err)
	}
	return values, nil
}

// Encode returns the non-default fields of src in field order.
func (e *Encoder) Encode(src any) ([]Element, error) {
	values, err := e.Values(src)
	if err != nil {
		return nil, err
	}
	elements := make([]Element, 0, len(values))
	for _, f := range e.fields {
		v := values.Get(f.Name)
		if IsDefault(f, v) {
			continue
		}
		elements = append(elements, Element{Name: f.Name, Value: v})
	}
	return elements, nil
}
