package validator

import (
	"reflect"
	"strings"
	"trainhub-api/core/authz"
	"trainhub-api/core/errors"
	"trainhub-api/core/timeofday"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	notBlankTag   = "notblank"
	weekdayTag    = "weekday"
	hhmmTag       = "hhmm"
	recurrenceTag = "recurrence"
	roleTag       = "role"
)

var weekdays = map[string]bool{"MON": true, "TUE": true, "WED": true, "THU": true, "FRI": true, "SAT": true, "SUN": true}

var recurrenceTypes = map[string]bool{"none": true, "daily": true, "weekly": true, "monthly": true}

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(weekdayTag, stringIn(weekdays))
	_ = validate.RegisterValidation(recurrenceTag, stringIn(recurrenceTypes))
	_ = validate.RegisterValidation(hhmmTag, hhmmValidation)
	_ = validate.RegisterValidation(roleTag, roleValidation)

	registerCustomTranslations(notBlankTag, weekdayTag, hhmmTag, recurrenceTag, roleTag)
}

// The default english translations are already registered; custom tags only
// need the translate func, so the register func is a noop.
func registerCustomTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case weekdayTag:
		return fe.Field() + " must be one of MON, TUE, WED, THU, FRI, SAT, SUN"
	case hhmmTag:
		return fe.Field() + " must be a time formatted as HH:MM"
	case recurrenceTag:
		return fe.Field() + " must be one of none, daily, weekly, monthly"
	case roleTag:
		return fe.Field() + " is not a known role"
	}
	return fe.Error()
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func stringIn(set map[string]bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return set[fl.Field().String()]
	}
}

func hhmmValidation(fl validator.FieldLevel) bool {
	_, err := timeofday.Parse(fl.Field().String())
	return err == nil
}

func roleValidation(fl validator.FieldLevel) bool {
	return authz.Role(fl.Field().String()).Valid()
}

type ValidationResult struct {
	Errors []errors.Violation `json:"errors,omitempty"`
}

func (v ValidationResult) HasError() bool {
	return len(v.Errors) > 0
}

func (v *ValidationResult) Add(field string, code errors.ErrorCode, message string) {
	v.Errors = append(v.Errors, errors.Violation{Field: field, Code: code, Message: message})
}

// Validate runs the struct tags of s and returns every failing field.
func Validate(s any) ValidationResult {
	var result ValidationResult
	err := validate.Struct(s)
	if err == nil {
		return result
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.Add("", errors.ErrInvalidInput, err.Error())
		return result
	}
	for _, fe := range fieldErrs {
		result.Add(fe.Field(), errors.ErrInvalidInput, fe.Translate(translator))
	}
	return result
}
