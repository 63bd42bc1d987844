package tripflow

import (
	"fmt"
	"time"
)

// Result is the uniform outcome envelope returned by every search and
// generation service. Exactly one branch is meaningful: Data with Success
// set, or Err with Success unset. Timestamp and Source may accompany either
// branch as diagnostics.
//
// Results are created by a Service (or by the dispatcher when an execution
// fails before or around the service), consumed once to build the protocol
// reply, and discarded.
type Result struct {
	Success   bool           `json:"success"`
	Data      map[string]any `json:"data,omitempty"`
	Err       string         `json:"error,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
	Source    string         `json:"source,omitempty"`
}

// Success builds a successful result stamped with the current time.
// Source names the upstream provider the data came from.
func Success(data map[string]any, source string) Result {
	return Result{
		Success:   true,
		Data:      data,
		Timestamp: nowStamp(),
		Source:    source,
	}
}

// Failure builds a failed result carrying a caller-safe message.
func Failure(msg string) Result {
	return Result{
		Err:       msg,
		Timestamp: nowStamp(),
	}
}

// Failuref is Failure with fmt-style formatting.
func Failuref(format string, args ...any) Result {
	return Failure(fmt.Sprintf(format, args...))
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
