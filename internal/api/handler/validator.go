package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator adapts go-playground/validator to echo's Validator interface.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns the validator assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate flattens all failures into a single client-facing message, one
// clause per offending field, so a bad registration payload reports every
// missing field at once.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	clauses := make([]string, 0, len(ve))
	for _, fe := range ve {
		clauses = append(clauses, fieldMessage(fe))
	}
	return errors.New(strings.Join(clauses, "; "))
}

// fieldMessage renders one failure using the tag set this API's request
// schemas actually carry.
func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}
