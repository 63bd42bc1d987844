package tripflow

import "slices"

// Type literals accepted in tool schemas.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeArray   = "array"
)

// Field describes one named parameter in a tool schema.
type Field struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Default     any      `json:"default,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Items       *Field   `json:"items,omitempty"`
}

// Schema is the static, protocol-facing description of a tool's accepted
// arguments. It must be derivable without executing the tool.
type Schema struct {
	Name        string
	Description string
	Params      map[string]Field
	Required    []string

	order []string
}

// InputSchema renders the JSON-Schema-shaped object advertised to clients.
// Parameters appear in declaration order under "properties".
func (s Schema) InputSchema() map[string]any {
	props := make(map[string]any, len(s.Params))
	for _, name := range s.order {
		spec := s.Params[name]
		prop := map[string]any{"type": spec.Type}
		if spec.Description != "" {
			prop["description"] = spec.Description
		}
		if spec.Default != nil {
			prop["default"] = spec.Default
		}
		if len(spec.Enum) > 0 {
			prop["enum"] = spec.Enum
		}
		if spec.Items != nil {
			prop["items"] = map[string]any{"type": spec.Items.Type}
		}
		props[name] = prop
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   slices.Clone(s.Required),
	}
}

// SchemaBuilder assembles a Schema fluently. Startup wiring reads better as
// a chain than as struct literals with nested maps.
type SchemaBuilder struct {
	schema Schema
}

// NewSchema starts a schema with the given tool name and description.
func NewSchema(name, description string) *SchemaBuilder {
	return &SchemaBuilder{
		schema: Schema{
			Name:        name,
			Description: description,
			Params:      make(map[string]Field),
			Required:    make([]string, 0),
		},
	}
}

// Param adds a parameter. Required parameters land in the required list.
func (b *SchemaBuilder) Param(name, typ, description string, required bool) *SchemaBuilder {
	return b.add(name, Field{Type: typ, Description: description}, required)
}

// ParamDefault adds an optional parameter with a documented default value.
func (b *SchemaBuilder) ParamDefault(name, typ, description string, def any) *SchemaBuilder {
	return b.add(name, Field{Type: typ, Description: description, Default: def}, false)
}

// ParamEnum adds a parameter constrained to an enumerated value set.
func (b *SchemaBuilder) ParamEnum(name, typ, description string, enum []string, def any) *SchemaBuilder {
	return b.add(name, Field{Type: typ, Description: description, Enum: enum, Default: def}, false)
}

// ParamArray adds an array parameter with the given item type.
func (b *SchemaBuilder) ParamArray(name, itemType, description string) *SchemaBuilder {
	return b.add(name, Field{Type: TypeArray, Description: description, Items: &Field{Type: itemType}}, false)
}

func (b *SchemaBuilder) add(name string, spec Field, required bool) *SchemaBuilder {
	if _, exists := b.schema.Params[name]; !exists {
		b.schema.order = append(b.schema.order, name)
	}
	b.schema.Params[name] = spec
	if required && !slices.Contains(b.schema.Required, name) {
		b.schema.Required = append(b.schema.Required, name)
	}
	return b
}

// Build returns the finished schema.
func (b *SchemaBuilder) Build() Schema {
	return b.schema
}
