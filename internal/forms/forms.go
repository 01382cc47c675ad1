// Package forms validates the multi-step tribute form and the smaller event
// and ticket forms before anything is sent upstream.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a JSON field name to a human readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + v[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into field errors when it carries any.
func AsValidation(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
	return v
}

// check runs struct validation and converts the failures to field errors.
func check(s any) ValidationErrors {
	errs := ValidationErrors{}
	err := validate.Struct(s)
	if err == nil {
		return errs
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range ves {
		if _, dup := errs[fe.Field()]; dup {
			continue
		}
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "isodate":
		return field + " must be a date in YYYY-MM-DD format"
	case "clock":
		return field + " must be a time in HH:MM format"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	}
	return field + " is invalid"
}

func orNil(v ValidationErrors) error {
	if len(v) == 0 {
		return nil
	}
	return v
}
