package tripflow

import (
	"context"
	"fmt"
)

// Tool is one named, independently schema-described operation exposed to
// callers. Name is the registry key; Schema must be derivable without
// executing the tool; Execute never panics or returns out-of-band — every
// failure path is a failure Result.
type Tool interface {
	Name() string
	Schema() Schema
	Execute(ctx context.Context, args Args) Result
}

// MapFunc resolves the raw argument bag into a typed criteria value,
// applying alias priority, derivations, and defaults. A missing mandatory
// field is reported as *MissingFieldError.
type MapFunc func(args Args) (Criteria, error)

// SearchFunc delegates the validated criteria to the bound domain service.
// Services own their I/O and encode their own failures as failure Results;
// they never return raw errors past this boundary.
type SearchFunc func(ctx context.Context, criteria Criteria) Result

// Binding couples one tool's mapper, validator, and service.
type Binding struct {
	Map      MapFunc
	Validate Validator
	Search   SearchFunc
}

// SearchTool runs the standard per-call pipeline: map, validate, delegate.
// Mapping or validation failures short-circuit to a failure Result without
// reaching the service. Only criteria that passed validation are handed on.
type SearchTool struct {
	name    string
	schema  Schema
	binding Binding
}

// NewTool binds a named schema to its mapping/validation/search pipeline.
func NewTool(name string, schema Schema, binding Binding) *SearchTool {
	return &SearchTool{name: name, schema: schema, binding: binding}
}

// Name implements Tool.
func (t *SearchTool) Name() string { return t.name }

// Schema implements Tool.
func (t *SearchTool) Schema() Schema { return t.schema }

// Execute implements Tool.
func (t *SearchTool) Execute(ctx context.Context, args Args) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Failuref("tool execution error: %v", r)
		}
	}()

	criteria, err := t.binding.Map(args)
	if err != nil {
		return Failure(err.Error())
	}

	if t.binding.Validate != nil {
		if ok, msg := t.binding.Validate.Validate(criteria.Fields()); !ok {
			return Failure(msg)
		}
	}

	if t.binding.Search == nil {
		return Failure(fmt.Sprintf("tool %q has no bound service", t.name))
	}
	return t.binding.Search(ctx, criteria)
}
