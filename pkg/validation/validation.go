// Package validation configures gin's request validator to report errors
// keyed by JSON field name with readable English messages.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	apperrors "edusync/backend/pkg/errors"
)

const requiredText = "{0} is required"

var (
	once       sync.Once
	setupErr   error
	translator ut.Translator
)

// Setup registers JSON tag names and English translations on gin's default
// validator engine. Safe to call more than once.
func Setup() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("validation: gin validator engine is not go-playground/validator")
			return
		}

		locale := en.New()
		translator, _ = ut.New(locale, locale).GetTranslator("en")

		if err := en_translations.RegisterDefaultTranslations(v, translator); err != nil {
			setupErr = err
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// notblank rejects whitespace-only strings that required lets through.
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			setupErr = err
			return
		}

		registerTranslation(v, "required", requiredText)
		registerTranslation(v, "notblank", requiredText)
	})
	return setupErr
}

func registerTranslation(v *validator.Validate, tag, text string) {
	_ = v.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FromBindError converts the error returned by ShouldBind* into a
// ValidationError. It returns nil when err is not a field validation failure
// (malformed JSON, wrong types).
func FromBindError(err error) *apperrors.ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := &apperrors.ValidationError{}
	for _, fe := range verrs {
		msg := fe.Error()
		if translator != nil {
			msg = fe.Translate(translator)
		}
		out.Add(fe.Field(), msg)
	}
	return out
}
