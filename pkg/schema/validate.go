package schema

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
	"github.com/shishobooks/comicinfo/pkg/models"
)

// TagName is the struct tag that carries the external field name.
const TagName = "comicinfo"

var (
	conform  *mold.Transformer
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	conform = modifiers.New()

	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(TagName), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("enum", enumValidator)
	_ = validate.RegisterValidation("language_iso", languageValidator)
	_ = validate.RegisterValidation("rating", ratingValidator)

	locale := en.New()
	trans, _ = ut.New(locale, locale).GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, trans)
	registerTranslation("enum", "{0} must be one of its known values")
	registerTranslation("language_iso", "{0} must be a valid BCP 47 language tag")
	registerTranslation("rating", "{0} must be between -1 and 5")
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

type validatable interface {
	IsValid() bool
}

func enumValidator(fl validator.FieldLevel) bool {
	v, ok := fl.Field().Interface().(validatable)
	if !ok {
		return false
	}
	return v.IsValid()
}

func languageValidator(fl validator.FieldLevel) bool {
	return models.LanguageTag(fl.Field().String()).IsValid()
}

func ratingValidator(fl validator.FieldLevel) bool {
	return models.Rating(fl.Field().Float()).IsValid()
}

// Normalize applies the `mod` struct tags of v.
func Normalize(v any) error {
	return errors.WithStack(conform.Struct(context.Background(), v))
}

// Validate checks the `validate` struct tags of v. Only the first failing
// field is reported, in struct order.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return errors.WithStack(err)
	}
	fe := errs[0]
	return errcodes.ValidationError(fe.Field(), fe.Translate(trans))
}
