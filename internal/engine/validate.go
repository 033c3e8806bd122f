package engine

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// inputValidate is the shared validator instance for engine input structs.
var inputValidate *validator.Validate

func init() {
	inputValidate = validator.New()
}

// validateInput runs struct tag validation and converts the first failure
// into a ValidationError so callers never see validator internals.
func validateInput(v any) error {
	err := inputValidate.Struct(v)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return ValidationError{Field: strings.ToLower(fe.Field()), Reason: validationReason(fe)}
	}
	return ValidationError{Reason: err.Error()}
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	default:
		return "failed " + fe.Tag() + " constraint"
	}
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "is required"}
	}
	if len([]rune(t)) > 200 {
		return "", ValidationError{Field: "title", Reason: "must be at most 200 characters"}
	}
	return t, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
