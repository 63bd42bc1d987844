package tripflow

import (
	"errors"
	"fmt"
)

var errNilTool = errors.New("tripflow: tool must not be nil")

// MissingFieldError reports a mandatory argument that could not be resolved
// by direct name, legacy alias, or derivation.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Field)
}

// DuplicateToolError reports a second registration under an existing name.
// This is a startup wiring failure and is never converted into a Result.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tripflow: tool %q is already registered", e.Name)
}

// UnknownToolError reports a dispatch against a name with no registry entry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %q", e.Name)
}
