package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected payload field.
type FieldError struct {
	Field string
	Tag   string
}

func (e FieldError) Message() string {
	switch e.Tag {
	case "required":
		return "field required"
	case "min":
		return "ensure this value has at least 1 characters"
	default:
		return fmt.Sprintf("failed on the '%s' rule", e.Tag)
	}
}

// ValidationError is returned before the store is touched.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message()
	}
	return "invalid item: " + strings.Join(parts, "; ")
}

func newValidationError(verrs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

// jsonTagName reports fields by their JSON name.
func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
