package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every caller; validator caches struct metadata.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// ValidateStruct checks v against its `validate` struct tags. A failure is
// reported as a coded error carrying the first offending field.
func ValidateStruct(v any, code Code) error {
	if err := validate.Struct(v); err != nil {
		return New(code, "%s", formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := fieldPath(e.Namespace())
		switch e.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s: field is required", field))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, e.Param()))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("%s: must not exceed %s", field, e.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s: must be greater than %s", field, e.Param()))
		case "lt":
			msgs = append(msgs, fmt.Sprintf("%s: must be less than %s", field, e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s], got %v", field, e.Param(), e.Value()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s: must be a valid URL", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
