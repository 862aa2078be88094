// Package validation runs struct-tag rules over request payloads and turns
// validator failures into the user-facing messages each payload declares.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Error is a single failed rule.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Messager is implemented by payloads that carry their own messages, keyed
// by "<json field>.<tag>".
type Messager interface {
	Messages() map[string]string
}

// Normalizer is implemented by payloads that trim or otherwise clean their
// fields before the rules run.
type Normalizer interface {
	Normalize()
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("urlorempty", urlOrEmpty)
	})
	return validate
}

// urlOrEmpty accepts the empty string or an absolute URL with a host.
func urlOrEmpty(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// First validates v and returns the first failed rule, in field declaration
// order, or nil.
func First(v interface{}) error {
	errs, err := run(v)
	if err != nil {
		return err
	}
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// All validates v and returns every failed rule keyed by field. A nil map
// means v is valid.
func All(v interface{}) map[string]string {
	errs, err := run(v)
	if err != nil {
		return map[string]string{"": err.Error()}
	}
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

func run(v interface{}) ([]*Error, error) {
	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}
	err := instance().Struct(v)
	if err == nil {
		return nil, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("validate %T: %w", v, err)
	}
	var messages map[string]string
	if m, ok := v.(Messager); ok {
		messages = m.Messages()
	}
	out := make([]*Error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &Error{Field: fe.Field(), Message: message(messages, fe)})
	}
	return out, nil
}

func message(messages map[string]string, fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[fe.Field()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// Trim trims s in place.
func Trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
