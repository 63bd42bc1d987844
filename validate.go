package tripflow

import (
	"fmt"
	"time"
)

// Validator is a pure pass/fail check over resolved argument values. It never
// errors out-of-band: malformed input is a validation failure, not an
// exception. The message in the false case names the specific rule violated.
type Validator interface {
	Validate(fields map[string]string) (bool, string)
}

// DateRangeValidator checks a start/end date pair: both must parse under the
// fixed YYYY-MM-DD layout, the end must be strictly later than the start, and
// the start must not be earlier than the current calendar day. Comparison is
// at day granularity.
//
// StartLabel and EndLabel name the argument keys inside the fields map and
// double as the human-readable names in failure messages.
type DateRangeValidator struct {
	StartLabel string
	EndLabel   string

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// Validate implements Validator.
func (v DateRangeValidator) Validate(fields map[string]string) (bool, string) {
	start, end := fields[v.StartLabel], fields[v.EndLabel]
	if start == "" || end == "" {
		return false, fmt.Sprintf("missing required dates: %s and %s", v.StartLabel, v.EndLabel)
	}

	startDay, err := time.Parse(DateLayout, start)
	if err != nil {
		return false, fmt.Sprintf("invalid %s format: %q is not YYYY-MM-DD", v.StartLabel, start)
	}
	endDay, err := time.Parse(DateLayout, end)
	if err != nil {
		return false, fmt.Sprintf("invalid %s format: %q is not YYYY-MM-DD", v.EndLabel, end)
	}

	if !endDay.After(startDay) {
		return false, fmt.Sprintf("%s must be after %s", v.EndLabel, v.StartLabel)
	}
	if startDay.Before(v.today()) {
		return false, fmt.Sprintf("%s cannot be in the past", v.StartLabel)
	}
	return true, ""
}

func (v DateRangeValidator) today() time.Time {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateValidator checks a single travel date: parseable and not in the past.
type DateValidator struct {
	Label string
	Now   func() time.Time
}

// Validate implements Validator.
func (v DateValidator) Validate(fields map[string]string) (bool, string) {
	value := fields[v.Label]
	if value == "" {
		return false, fmt.Sprintf("missing required date: %s", v.Label)
	}
	day, err := time.Parse(DateLayout, value)
	if err != nil {
		return false, fmt.Sprintf("invalid %s format: %q is not YYYY-MM-DD", v.Label, value)
	}
	if day.Before(DateRangeValidator{Now: v.Now}.today()) {
		return false, fmt.Sprintf("%s cannot be in the past", v.Label)
	}
	return true, ""
}

// NopValidator passes everything. Tools whose services do their own input
// checking (e.g. the itinerary generator's city/day bounds) use it.
type NopValidator struct{}

// Validate implements Validator.
func (NopValidator) Validate(map[string]string) (bool, string) { return true, "" }
