package tripflow

import "sync"

// Registry is the name-keyed store of all known tools. Registration happens
// single-threaded during startup wiring; afterwards the registry is treated
// as read-only and is safe for concurrent reads. Registration order is
// preserved so the client-visible tool listing stays stable.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry returns an empty, ready-to-use registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. A duplicate name is a hard failure: the existing
// entry is never overwritten.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return errNilTool
	}
	name := tool.Name()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		return &DuplicateToolError{Name: name}
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Get returns the tool with the given name, or false when no entry exists.
// It never constructs a placeholder.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// All returns a snapshot of every registered tool in registration order.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Unregister removes the named tool and reports whether a removal occurred.
// It exists for test isolation and dynamic reconfiguration, not steady-state
// operation.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; !exists {
		return false
	}
	delete(r.tools, name)
	for i, existing := range r.order {
		if existing == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Builder accumulates registrations fluently and yields a finished registry,
// keeping startup wiring declarative. The first registration error sticks
// and surfaces at Build.
type Builder struct {
	registry *Registry
	err      error
}

// NewBuilder starts an empty registry builder.
func NewBuilder() *Builder {
	return &Builder{registry: NewRegistry()}
}

// Add registers one or more tools, retaining the first error encountered.
func (b *Builder) Add(tools ...Tool) *Builder {
	for _, tool := range tools {
		if b.err != nil {
			return b
		}
		b.err = b.registry.Register(tool)
	}
	return b
}

// Build returns the populated registry, or the first registration error.
// Duplicate names are configuration mistakes and must abort startup.
func (b *Builder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.registry, nil
}
