package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validator collects field errors.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator. The first error of a field wins.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks if a string is not blank
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// Struct runs the `validate` tags of s and records one error per failing
// field, keyed by the field's json name.
func (v *Validator) Struct(s interface{}) {
	err := structValidator.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.AddError("request", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), describe(fe))
	}
}

// Error joins the collected errors in field order.
func (v *Validator) Error() string {
	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, v.Errors[field]))
	}
	return strings.Join(parts, "; ")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must not be more than %s characters long", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "alphanum":
		return "must contain only letters and digits"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
