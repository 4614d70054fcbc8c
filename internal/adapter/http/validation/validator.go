package validation

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"todoapi/internal/core/domain"
)

// FieldErrors maps a request field to its messages.
type FieldErrors map[string][]string

const SlugTakenMessage = "The slug has already been taken."

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	Validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	if err := Validator.RegisterValidation("date_format", validateDateFormat); err != nil {
		panic(err)
	}

	if err := Validator.RegisterValidation("not_blank", validateNotBlank); err != nil {
		panic(err)
	}

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

func validateDateFormat(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())

	return err == nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func addCustomTranslations() {
	Validator.RegisterTranslation("required", Translator, func(ut ut.Translator) error {
		return ut.Add("required", "The {0} field is required.", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})

	// Blank strings are reported like missing ones.
	Validator.RegisterTranslation("not_blank", Translator, func(ut ut.Translator) error {
		return ut.Add("not_blank", "The {0} field is required.", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("not_blank", fe.Field())
		return t
	})

	Validator.RegisterTranslation("min", Translator, func(ut ut.Translator) error {
		return ut.Add("min", "The {0} must be at least {1} characters.", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("min", fe.Field(), fe.Param())
		return t
	})

	Validator.RegisterTranslation("date_format", Translator, func(ut ut.Translator) error {
		return ut.Add("date_format", "The {0} does not match the format d/m/Y.", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("date_format", fe.Field())
		return t
	})
}

// Bind type-checks params against the json fields of dst, decodes the string
// values into dst and runs the struct rules. Every violated field is reported;
// a field that is not a string gets only the type message. null counts as
// absent.
func Bind(params map[string]any, dst any) FieldErrors {
	fieldErrors := FieldErrors{}
	accepted := map[string]any{}

	for _, name := range jsonFields(dst) {
		value, present := params[name]
		if !present || value == nil {
			continue
		}

		if _, ok := value.(string); !ok {
			fieldErrors[name] = []string{"The " + name + " must be a string."}
			continue
		}

		accepted[name] = value
	}

	payload, _ := json.Marshal(accepted)
	if err := json.Unmarshal(payload, dst); err != nil {
		fieldErrors["body"] = append(fieldErrors["body"], "The body could not be read.")
	}

	if err := Validator.Struct(dst); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				name := fieldError.Field()

				if _, typeFailed := fieldErrors[name]; typeFailed {
					continue
				}

				fieldErrors[name] = append(fieldErrors[name], fieldError.Translate(Translator))
			}
		}
	}

	if len(fieldErrors) == 0 {
		return nil
	}

	return fieldErrors
}

// MalformedBody is reported when the body is not a JSON object.
func MalformedBody() FieldErrors {
	return FieldErrors{"body": {"The body must be a valid JSON object."}}
}

func SlugTaken() FieldErrors {
	return FieldErrors{"slug": {SlugTakenMessage}}
}

func jsonFields(dst any) []string {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	names := make([]string, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}

	return names
}
