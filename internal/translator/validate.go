package translator

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrMissingParameters = errors.New("missing required parameters")

type ValidationError struct {
	Operation string
	Missing   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Operation, ErrMissingParameters, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrMissingParameters
}

// present reports whether any value recorded for name passes ozzo's Required
// rule. A name supplied more than once counts if one of its values does.
func present(p Params, name string) bool {
	for _, v := range p.Values {
		if v.Name == name && validation.Validate(v.Value, validation.Required) == nil {
			return true
		}
	}
	return false
}

// validate checks the required fields of op against p. It never touches the
// network.
func validate(op Operation, p Params) error {
	var missing []string
	for _, name := range op.Required {
		if !present(p, name) {
			missing = append(missing, name)
		}
	}

	if len(op.AnyOf) > 0 {
		found := false
		for _, name := range op.AnyOf {
			if present(p, name) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, "one of "+strings.Join(op.AnyOf, "|"))
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Operation: op.Name, Missing: missing}
	}
	return nil
}
