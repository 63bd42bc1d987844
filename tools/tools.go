// Package tools wires the travel search tools: each constructor binds a
// protocol-facing schema, an argument mapper, a date validator and a domain
// service into one registrable tool.
package tools

import "time"

// Clock supplies the current time for date validation. A nil Clock means
// time.Now.
type Clock func() time.Time

func (c Clock) orNow() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c
}
