// Package validate runs struct-tag validation and reports failures as a
// map keyed by the JSON field name, one human readable message per field.
//
// Rules are the go-playground/validator tags:
//
//	type Input struct {
//	    Email string   `json:"email" validate:"required,email,max=180"`
//	    Roles []string `json:"roles" validate:"omitempty,dive,oneof=ROLE_USER ROLE_ADMIN"`
//	    Phone *string  `json:"phoneNumber" validate:"omitnil,max=20"`
//	}
//
//	errs := validate.Struct(in)
//	if validate.HasErrors(errs) { ... }
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once   sync.Once
	engine *validator.Validate
)

// Engine returns the shared validator, configured to report JSON names.
func Engine() *validator.Validate {
	once.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return engine
}

// Struct validates v. Returns an empty map when v is valid.
func Struct(v any) map[string]string {
	errs := make(map[string]string)

	err := Engine().Struct(v)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range fieldErrs {
		name := fieldName(fe)
		if _, seen := errs[name]; seen {
			continue // first failing rule per field
		}
		errs[name] = message(name, fe)
	}
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// fieldName drops slice indexes so "roles[1]" is reported as "roles".
func fieldName(fe validator.FieldError) string {
	name, _, _ := strings.Cut(fe.Field(), "[")
	return name
}

func message(field string, fe validator.FieldError) string {
	numeric := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		numeric = true
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "url", "http_url":
		return fmt.Sprintf("The %s field must be a valid URL.", field)
	case "max":
		if numeric {
			return fmt.Sprintf("The %s field must not be greater than %s.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must not exceed %s characters.", field, fe.Param())
	case "min":
		if numeric {
			return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be greater than or equal to %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "unique":
		return fmt.Sprintf("The %s field contains duplicate values.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
