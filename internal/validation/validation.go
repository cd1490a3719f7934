// Package validation holds the domain format rules shared by the wizard step
// gates and the gin binding layer.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags
	citizenIDTag = "citizen_id"
	mobileTag    = "mobile_th"
	mooTag       = "moo"
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(citizenIDTag, citizenIDValidation)
	_ = Validate.RegisterValidation(mobileTag, mobileValidation)
	_ = Validate.RegisterValidation(mooTag, mooValidation)
	registerCustomTranslation(citizenIDTag, "must be a 13-digit Thai citizen ID")
	registerCustomTranslation(mobileTag, "must be a 10-digit mobile number")
	registerCustomTranslation(mooTag, "must be between 0 and 1000")
}

// registerCustomTranslation registers an error message for a custom tag.
func registerCustomTranslation(tag, text string) {
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func citizenIDValidation(fl validator.FieldLevel) bool {
	return IsCitizenID(fl.Field().String())
}

func mobileValidation(fl validator.FieldLevel) bool {
	return IsMobile(fl.Field().String())
}

func mooValidation(fl validator.FieldLevel) bool {
	return IsMoo(int(fl.Field().Int()))
}
