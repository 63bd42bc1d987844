package tripflow

import (
	"strings"
	"testing"
	"time"
)

// fixedNow pins validation "today" to 2025-06-15 so tests stay stable.
func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
}

func TestDateRangeValidator(t *testing.T) {
	v := DateRangeValidator{StartLabel: "arrival_date", EndLabel: "departure_date", Now: fixedNow}

	tests := []struct {
		name    string
		start   string
		end     string
		wantOK  bool
		wantMsg string
	}{
		{"valid range", "2025-10-01", "2025-10-04", true, ""},
		{"same day today", "2025-06-15", "2025-06-18", true, ""},
		{"end equals start", "2025-10-01", "2025-10-01", false, "departure_date must be after arrival_date"},
		{"end before start", "2025-10-04", "2025-10-01", false, "departure_date must be after arrival_date"},
		{"start in past", "2025-06-14", "2025-06-20", false, "arrival_date cannot be in the past"},
		{"bad start format", "10/01/2025", "2025-10-04", false, "invalid arrival_date format"},
		{"bad end format", "2025-10-01", "tomorrow", false, "invalid departure_date format"},
		{"missing dates", "", "2025-10-04", false, "missing required dates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := v.Validate(map[string]string{
				"arrival_date":   tt.start,
				"departure_date": tt.end,
			})
			if ok != tt.wantOK {
				t.Fatalf("Validate() ok = %v, want %v (msg %q)", ok, tt.wantOK, msg)
			}
			if !ok && !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("Validate() msg = %q, want containing %q", msg, tt.wantMsg)
			}
			if ok && msg != "" {
				t.Errorf("Validate() msg = %q, want empty on pass", msg)
			}
		})
	}
}

func TestDateRangeValidator_DayGranularity(t *testing.T) {
	// Starting today passes even though the wall clock is mid-afternoon:
	// comparison ignores time of day.
	v := DateRangeValidator{StartLabel: "arrival_date", EndLabel: "departure_date", Now: fixedNow}
	ok, msg := v.Validate(map[string]string{
		"arrival_date":   "2025-06-15",
		"departure_date": "2025-06-16",
	})
	if !ok {
		t.Errorf("Validate() failed for a stay starting today: %s", msg)
	}
}

func TestDateValidator(t *testing.T) {
	v := DateValidator{Label: "date", Now: fixedNow}

	tests := []struct {
		name    string
		date    string
		wantOK  bool
		wantMsg string
	}{
		{"future date", "2025-07-01", true, ""},
		{"today", "2025-06-15", true, ""},
		{"past date", "2025-06-01", false, "date cannot be in the past"},
		{"unparseable", "July 1st", false, "invalid date format"},
		{"missing", "", false, "missing required date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := v.Validate(map[string]string{"date": tt.date})
			if ok != tt.wantOK {
				t.Fatalf("Validate() ok = %v, want %v (msg %q)", ok, tt.wantOK, msg)
			}
			if !ok && !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("Validate() msg = %q, want containing %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestNopValidator(t *testing.T) {
	ok, msg := NopValidator{}.Validate(nil)
	if !ok || msg != "" {
		t.Errorf("NopValidator.Validate() = %v, %q, want true, \"\"", ok, msg)
	}
}
