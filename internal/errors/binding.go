package errors

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromBinding turns a gin binding failure into a 400 with per-field messages.
// Non-validator errors (malformed JSON and the like) become a plain 400.
func FromBinding(err error) *APIError {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return BadRequest("Invalid request body", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = messageForTag(fe)
	}
	return Validation(fields, err)
}

// FromStrictJSON maps a strict-decode failure to the 400 shape. Unknown
// payload keys get a per-field message like validator failures do.
func FromStrictJSON(err error) *APIError {
	if name, ok := strings.CutPrefix(err.Error(), `json: unknown field "`); ok {
		field := strings.TrimSuffix(name, `"`)
		return Validation(map[string]string{field: "Unknown field"}, err)
	}
	return BadRequest("Invalid request body", err)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	case "oneof":
		return "Must be one of: " + fe.Param()
	default:
		return "Invalid value"
	}
}
