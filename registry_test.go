package tripflow

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type stubTool struct {
	name   string
	calls  int
	result Result
}

func (s *stubTool) Name() string   { return s.name }
func (s *stubTool) Schema() Schema { return NewSchema(s.name, "stub").Build() }
func (s *stubTool) Execute(ctx context.Context, args Args) Result {
	s.calls++
	return s.result
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	tool := &stubTool{name: "searchHotels"}

	if err := r.Register(tool); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, ok := r.Get("searchHotels")
	if !ok {
		t.Fatal("Get should find registered tool")
	}
	if got.Name() != "searchHotels" {
		t.Errorf("Name() = %q, want %q", got.Name(), "searchHotels")
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()
	first := &stubTool{name: "searchHotels", result: Success(map[string]any{"which": "first"}, "stub")}
	second := &stubTool{name: "searchHotels"}

	if err := r.Register(first); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	err := r.Register(second)
	var dup *DuplicateToolError
	if !errors.As(err, &dup) {
		t.Fatalf("second Register() error = %v, want *DuplicateToolError", err)
	}
	if dup.Name != "searchHotels" {
		t.Errorf("DuplicateToolError.Name = %q, want %q", dup.Name, "searchHotels")
	}

	// The first entry must survive untouched.
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	got, _ := r.Get("searchHotels")
	result := got.Execute(context.Background(), nil)
	if result.Data["which"] != "first" {
		t.Error("duplicate registration overwrote the original entry")
	}
}

func TestRegistry_GetNotFound(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("nonexistent"); ok {
		t.Error("Get should report not found for an unregistered name")
	}
}

func TestRegistry_RegisterNil(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); err == nil {
		t.Error("Register(nil) should fail")
	}
}

func TestRegistry_AllPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"searchFlights", "searchHotels", "searchCars", "searchTrains", "generateItinerary"}
	for _, name := range names {
		if err := r.Register(&stubTool{name: name}); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}

	all := r.All()
	if len(all) != len(names) {
		t.Fatalf("All() returned %d tools, want %d", len(all), len(names))
	}
	for i, tool := range all {
		if tool.Name() != names[i] {
			t.Errorf("All()[%d] = %q, want %q", i, tool.Name(), names[i])
		}
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubTool{name: "searchHotels"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if !r.Unregister("searchHotels") {
		t.Error("Unregister should report removal of an existing tool")
	}
	if r.Unregister("searchHotels") {
		t.Error("Unregister should report false for an already-removed tool")
	}
	if _, ok := r.Get("searchHotels"); ok {
		t.Error("Get should not find an unregistered tool")
	}
	if len(r.All()) != 0 {
		t.Error("All() should be empty after unregistering the only tool")
	}
}

func TestBuilder_Build(t *testing.T) {
	registry, err := NewBuilder().
		Add(&stubTool{name: "searchHotels"}).
		Add(&stubTool{name: "searchFlights"}, &stubTool{name: "searchCars"}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if registry.Len() != 3 {
		t.Errorf("Len() = %d, want 3", registry.Len())
	}
}

func TestBuilder_FirstErrorSticks(t *testing.T) {
	_, err := NewBuilder().
		Add(&stubTool{name: "searchHotels"}).
		Add(&stubTool{name: "searchHotels"}).
		Add(&stubTool{name: "searchCars"}).
		Build()

	var dup *DuplicateToolError
	if !errors.As(err, &dup) {
		t.Fatalf("Build() error = %v, want *DuplicateToolError", err)
	}
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		if err := r.Register(&stubTool{name: fmt.Sprintf("tool%d", i)}); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				r.Get("tool3")
				r.All()
				r.Len()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
