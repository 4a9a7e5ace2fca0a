package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"fakturierung-local/utils"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field key to a human-readable message. An empty map means the
// input is acceptable.
type Errors map[string]string

func (e Errors) Empty() bool { return len(e) == 0 }

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var simpleEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so namespaces read like "Invoice.products[0].price".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		return utils.Finite(fl.Field().Float())
	})
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return simpleEmail.MatchString(fl.Field().String())
	})
	return v
}

// fieldErrors runs the shared validator on v and hands every failure to
// describe, which returns the key and message to report (or "" to skip).
func fieldErrors(v any, describe func(field string, fe validator.FieldError) (string, string)) Errors {
	out := Errors{}
	err := validate.Struct(v)
	if err == nil {
		return out
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["form"] = err.Error()
		return out
	}
	for _, fe := range ve {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		key, msg := describe(field, fe)
		if key == "" {
			continue
		}
		if _, seen := out[key]; !seen {
			out[key] = msg
		}
	}
	return out
}
