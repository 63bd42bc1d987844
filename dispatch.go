package tripflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Reply is the transport-facing shape a dispatch resolves to. On success the
// payload is the result data merged with searchTimestamp and source; on
// failure it is {error, timestamp}. Raw errors and stack traces never reach
// the caller.
type Reply struct {
	Data      map[string]any
	Err       string
	Timestamp string
	Source    string
}

// Failed reports whether the reply carries the failure branch.
func (r Reply) Failed() bool { return r.Err != "" }

// Payload renders the wire map handed to the protocol layer.
func (r Reply) Payload() map[string]any {
	if r.Failed() {
		payload := map[string]any{"error": r.Err}
		if r.Timestamp != "" {
			payload["timestamp"] = r.Timestamp
		}
		return payload
	}
	payload := make(map[string]any, len(r.Data)+2)
	for key, value := range r.Data {
		payload[key] = value
	}
	payload["searchTimestamp"] = r.Timestamp
	payload["source"] = r.Source
	return payload
}

// DispatchObservation captures one dispatch outcome for observability hooks.
type DispatchObservation struct {
	Tool       string
	RequestID  string
	Success    bool
	DurationMS int64
	Error      string
}

// Observer receives dispatch-level observability events. The otel subpackage
// provides an implementation; the zero value of Dispatcher uses a no-op.
type Observer interface {
	ObserveDispatch(observation DispatchObservation)
}

type noopObserver struct{}

func (noopObserver) ObserveDispatch(DispatchObservation) {}

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	Registry *Registry
	Logger   *slog.Logger
	Observer Observer
}

// Dispatcher is the single externally visible entry point for tool calls.
// It holds a reference to the immutable-after-startup registry; dispatch is
// stateless per call and safe to run concurrently.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
	observer Observer
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(cfg DispatcherConfig) (*Dispatcher, error) {
	if cfg.Registry == nil {
		return nil, errors.New("tripflow: dispatcher registry is nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = noopObserver{}
	}
	return &Dispatcher{registry: cfg.Registry, logger: logger, observer: observer}, nil
}

// Dispatch resolves the named tool and executes it, normalizing every
// outcome — including panics that escape the tool's own recovery — into a
// well-formed Reply.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args Args) Reply {
	requestID := uuid.NewString()
	start := time.Now()

	tool, ok := d.registry.Get(name)
	if !ok {
		reply := Reply{
			Err:       (&UnknownToolError{Name: name}).Error(),
			Timestamp: nowStamp(),
		}
		d.finish(name, requestID, start, reply)
		return reply
	}

	result := d.execute(ctx, tool, args)

	reply := Reply{Timestamp: result.Timestamp, Source: result.Source}
	if reply.Timestamp == "" {
		reply.Timestamp = nowStamp()
	}
	if result.Success {
		reply.Data = result.Data
	} else {
		reply.Err = result.Err
		if reply.Err == "" {
			reply.Err = "tool execution failed"
		}
	}
	d.finish(name, requestID, start, reply)
	return reply
}

// execute wraps Tool.Execute so that a panic escaping the tool's own
// recovery still becomes a failure Result rather than reaching the protocol
// layer.
func (d *Dispatcher) execute(ctx context.Context, tool Tool, args Args) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Failuref("tool execution failed: %v", r)
		}
	}()
	return tool.Execute(ctx, args)
}

func (d *Dispatcher) finish(name, requestID string, start time.Time, reply Reply) {
	durationMS := time.Since(start).Milliseconds()
	if reply.Failed() {
		d.logger.Error("tool call failed",
			"tool", name,
			"request_id", requestID,
			"error", reply.Err,
		)
	} else {
		d.logger.Debug("tool call completed",
			"tool", name,
			"request_id", requestID,
			"duration_ms", durationMS,
		)
	}
	d.observer.ObserveDispatch(DispatchObservation{
		Tool:       name,
		RequestID:  requestID,
		Success:    !reply.Failed(),
		DurationMS: durationMS,
		Error:      reply.Err,
	})
}
