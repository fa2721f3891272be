package schema

import (
	"fmt"
	"strings"
)

// ValidationError reports a recognized field carrying a value outside its
// declared set, or a value of the wrong type. It is returned synchronously
// and never coerced into a silent default.
type ValidationError struct {
	Field   string
	Value   interface{}
	Allowed []string
}

func (e *ValidationError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("invalid value %q for field %q (allowed: %s)",
			fmt.Sprint(e.Value), e.Field, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("invalid value %q for field %q", fmt.Sprint(e.Value), e.Field)
}
