package pushover

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Violation paths use the wire field names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(validateMessageStruct, Message{})

	return v
}

// validateMessageStruct holds the cross-field rules the tag syntax cannot
// express: priority range, emergency option presence, and render-flag
// mutual exclusion.
func validateMessageStruct(sl validator.StructLevel) {
	m := sl.Current().Interface().(Message)

	if !m.Priority.IsValid() {
		sl.ReportError(m.Priority, "priority", "Priority", "priority_level", "")
	}

	if m.Priority == PriorityEmergency && m.Emergency == nil {
		sl.ReportError(m.Emergency, "emergency", "Emergency", "emergency_required", "")
	}
	if m.Priority != PriorityEmergency && m.Emergency != nil {
		sl.ReportError(m.Emergency, "emergency", "Emergency", "emergency_forbidden", "")
	}

	if m.HTML && m.Monospace {
		sl.ReportError(m.HTML, "html", "HTML", "render_exclusive", "")
	}
}

// Validate checks the message against the API's documented constraints.
// It accumulates every violation instead of stopping at the first; on
// failure the returned error is a *ValidationError and satisfies
// errors.Is(err, ErrValidation).
func (m Message) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Path:    violationPath(fe),
			Message: violationMessage(fe),
		})
	}

	return &ValidationError{Violations: violations}
}

func violationPath(fe validator.FieldError) string {
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	return path
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "priority_level":
		return "must be between lowest (-2) and emergency (2)"
	case "emergency_required":
		return "is required when priority is emergency"
	case "emergency_forbidden":
		return "is only allowed when priority is emergency"
	case "render_exclusive":
		return "html and monospace cannot both be set"
	}
	return fmt.Sprintf("failed %q constraint", fe.Tag())
}
