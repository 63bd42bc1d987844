package tripflow

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the fixed calendar format used across all tool arguments.
const DateLayout = "2006-01-02"

// Args is the raw, loosely typed argument bag delivered by the protocol
// layer. JSON decoding yields float64 for every number, so the accessors
// coerce rather than type-assert.
//
// Each accessor takes the current parameter name first and any legacy
// aliases after it, in priority order; the first present key wins. A current
// name always shadows a legacy alias supplied in the same call.
type Args map[string]any

// String resolves a string field by name priority.
func (a Args) String(names ...string) (string, bool) {
	for _, name := range names {
		v, ok := a[name]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// Int resolves an integer field by name priority.
func (a Args) Int(names ...string) (int, bool) {
	for _, name := range names {
		v, ok := a[name]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// Float resolves a floating-point field by name priority.
func (a Args) Float(names ...string) (float64, bool) {
	for _, name := range names {
		v, ok := a[name]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// StringSlice resolves an array-of-strings field. Non-string elements are
// skipped rather than failing the whole field.
func (a Args) StringSlice(name string) ([]string, bool) {
	v, ok := a[name]
	if !ok || v == nil {
		return nil, false
	}
	switch items := v.(type) {
	case []string:
		return items, len(items) > 0
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, len(out) > 0
	}
	return nil, false
}

// StringOr resolves a string field, falling back to def.
func (a Args) StringOr(def string, names ...string) string {
	if v, ok := a.String(names...); ok {
		return v
	}
	return def
}

// IntOr resolves an integer field, falling back to def.
func (a Args) IntOr(def int, names ...string) int {
	if v, ok := a.Int(names...); ok {
		return v
	}
	return def
}

// AddDays derives a date N whole calendar days after start. Used by mappers
// to compute an end date from a legacy start-plus-duration argument pair.
func AddDays(start string, days int) (string, error) {
	parsed, err := time.Parse(DateLayout, start)
	if err != nil {
		return "", err
	}
	return parsed.AddDate(0, 0, days).Format(DateLayout), nil
}
