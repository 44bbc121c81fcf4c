// internal/app/system/inputval/inputval.go
package inputval

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule, already rendered as a user-facing sentence.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects the failures from one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field failed any rule.
func (r *Result) Has(field string) bool {
	if r == nil {
		return false
	}
	for _, e := range r.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

var (
	initOnce sync.Once
	validate *validator.Validate
	trans    ut.Translator
)

// messages maps rule tags to sentences. {0} is the field label, {1} the param.
var messages = map[string]string{
	"required": "{0} is required.",
	"notblank": "{0} is required.",
	"richtext": "{0} is required.",
	"max":      "{0} must be at most {1} characters.",
	"email":    "{0} must be a valid email address.",
	"objectid": "{0} must be selected.",
	"timezone": "{0} must be a valid time zone.",
	"httpurl":  "{0} must be a valid http(s) URL.",
	"datetime": "{0} must be a valid date and time.",
}

func setup() {
	initOnce.Do(func() {
		locale := en.New()
		uni := ut.New(locale, locale)
		trans, _ = uni.GetTranslator("en")

		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if label := fld.Tag.Get("label"); label != "" {
				return label
			}
			return fld.Name
		})
		registerRules(validate)

		for tag, text := range messages {
			tag, text := tag, text
			_ = validate.RegisterTranslation(tag, trans,
				func(t ut.Translator) error { return t.Add(tag, text, true) },
				func(t ut.Translator, fe validator.FieldError) string {
					s, err := t.T(tag, fe.Field(), fe.Param())
					if err != nil {
						return fe.Error()
					}
					return s
				},
			)
		}
	})
}

// Validate runs the `validate` tags on s. Labels come from `label` tags.
func Validate(s any) *Result {
	setup()
	res := &Result{}
	err := validate.Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.StructField(),
			Tag:     fe.Tag(),
			Message: fe.Translate(trans),
		})
	}
	return res
}
