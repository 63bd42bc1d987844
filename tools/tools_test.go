package tools

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/petal-labs/tripflow"
)

func fixedClock() time.Time {
	return time.Date(2025, time.June, 15, 14, 30, 0, 0, time.UTC)
}

// echoHotels replies with the criteria it was handed, so tests can see
// exactly what crossed the service boundary.
type echoHotels struct {
	calls int
}

func (s *echoHotels) Search(ctx context.Context, c tripflow.HotelCriteria) tripflow.Result {
	s.calls++
	return tripflow.Success(map[string]any{
		"location":       c.Location,
		"arrival_date":   c.ArrivalDate,
		"departure_date": c.DepartureDate,
		"nights":         c.Nights(),
		"adults":         c.Adults,
	}, "stub")
}

type stubFlights struct {
	calls int
	got   tripflow.FlightCriteria
}

func (s *stubFlights) Search(ctx context.Context, c tripflow.FlightCriteria) tripflow.Result {
	s.calls++
	s.got = c
	return tripflow.Success(map[string]any{"ok": true}, "stub")
}

type stubCars struct {
	calls int
	got   tripflow.CarCriteria
}

func (s *stubCars) Search(ctx context.Context, c tripflow.CarCriteria) tripflow.Result {
	s.calls++
	s.got = c
	return tripflow.Success(map[string]any{"ok": true}, "stub")
}

type stubTrains struct {
	calls int
	got   tripflow.TrainCriteria
}

func (s *stubTrains) Search(ctx context.Context, c tripflow.TrainCriteria) tripflow.Result {
	s.calls++
	s.got = c
	return tripflow.Success(map[string]any{"ok": true}, "stub")
}

type stubItinerary struct {
	calls int
	got   tripflow.ItineraryParams
}

func (s *stubItinerary) Generate(ctx context.Context, p tripflow.ItineraryParams) tripflow.Result {
	s.calls++
	s.got = p
	return tripflow.Success(map[string]any{"ok": true}, "stub")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestMapHotelArgsCurrentLegacyEquivalence(t *testing.T) {
	tests := []struct {
		name    string
		current tripflow.Args
		legacy  tripflow.Args
	}{
		{
			name: "full search",
			current: tripflow.Args{
				"location":       "Austin",
				"arrival_date":   "2025-10-01",
				"departure_date": "2025-10-04",
				"adults":         2,
			},
			legacy: tripflow.Args{
				"city":    "Austin",
				"checkIn": "2025-10-01",
				"nights":  3,
				"guests":  2,
			},
		},
		{
			name: "defaults applied",
			current: tripflow.Args{
				"location":       "Miami",
				"arrival_date":   "2025-11-10",
				"departure_date": "2025-11-12",
			},
			legacy: tripflow.Args{
				"city":    "Miami",
				"checkIn": "2025-11-10",
				"nights":  2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromCurrent, err := mapHotelArgs(tt.current)
			if err != nil {
				t.Fatalf("map current: %v", err)
			}
			fromLegacy, err := mapHotelArgs(tt.legacy)
			if err != nil {
				t.Fatalf("map legacy: %v", err)
			}
			if fromCurrent != fromLegacy {
				t.Errorf("criteria differ:\ncurrent: %+v\nlegacy:  %+v", fromCurrent, fromLegacy)
			}
		})
	}
}

func TestMapHotelArgsCurrentNameShadowsLegacy(t *testing.T) {
	criteria, err := mapHotelArgs(tripflow.Args{
		"location":       "Austin",
		"city":           "Dallas",
		"arrival_date":   "2025-10-01",
		"departure_date": "2025-10-04",
		"adults":         3,
		"guests":         1,
	})
	if err != nil {
		t.Fatalf("mapHotelArgs() error = %v", err)
	}
	hotel := criteria.(tripflow.HotelCriteria)
	if hotel.Location != "Austin" {
		t.Errorf("Location = %q, want current name to win over legacy", hotel.Location)
	}
	if hotel.Adults != 3 {
		t.Errorf("Adults = %d, want current name to win over legacy", hotel.Adults)
	}
}

func TestMapHotelArgsDerivesDeparture(t *testing.T) {
	criteria, err := mapHotelArgs(tripflow.Args{
		"city":    "Austin",
		"checkIn": "2025-12-30",
		"nights":  5,
	})
	if err != nil {
		t.Fatalf("mapHotelArgs() error = %v", err)
	}
	hotel := criteria.(tripflow.HotelCriteria)
	if hotel.DepartureDate != "2026-01-04" {
		t.Errorf("DepartureDate = %q, want %q (check-in + 5 days across year end)",
			hotel.DepartureDate, "2026-01-04")
	}
}

func TestMapHotelArgsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		args tripflow.Args
		want string
	}{
		{"no location", tripflow.Args{"arrival_date": "2025-10-01", "departure_date": "2025-10-04"}, "location"},
		{"no arrival", tripflow.Args{"location": "Austin", "departure_date": "2025-10-04"}, "arrival_date"},
		{"no departure or nights", tripflow.Args{"location": "Austin", "arrival_date": "2025-10-01"}, "departure_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapHotelArgs(tt.args)
			var missing *tripflow.MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("error = %v, want *MissingFieldError", err)
			}
			if missing.Field != tt.want {
				t.Errorf("Field = %q, want %q", missing.Field, tt.want)
			}
		})
	}
}

func TestMapFlightArgsDefaults(t *testing.T) {
	criteria, err := mapFlightArgs(tripflow.Args{
		"from_id":     "AUS.AIRPORT",
		"to_id":       "JFK.AIRPORT",
		"depart_date": "2025-11-02",
	})
	if err != nil {
		t.Fatalf("mapFlightArgs() error = %v", err)
	}
	flight := criteria.(tripflow.FlightCriteria)
	if flight.Adults != 1 || flight.Children != 0 {
		t.Errorf("passengers = %d/%d, want 1/0", flight.Adults, flight.Children)
	}
	if flight.Stops != "none" || flight.CabinClass != "ECONOMY" || flight.Currency != "USD" {
		t.Errorf("defaults = %q/%q/%q, want none/ECONOMY/USD",
			flight.Stops, flight.CabinClass, flight.Currency)
	}
}

func TestMapCarArgsRequiresCoordinates(t *testing.T) {
	_, err := mapCarArgs(tripflow.Args{
		"pick_up_latitude":  30.26,
		"pick_up_longitude": -97.74,
		"drop_off_latitude": 30.26,
		"pick_up_date":      "2025-10-01",
		"drop_off_date":     "2025-10-04",
	})
	var missing *tripflow.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingFieldError", err)
	}
	if missing.Field != "drop_off_longitude" {
		t.Errorf("Field = %q, want %q", missing.Field, "drop_off_longitude")
	}
}

func TestCarsToolAllowsSameDayRental(t *testing.T) {
	svc := &stubCars{}
	tool := NewCarsTool(svc)

	result := tool.Execute(context.Background(), tripflow.Args{
		"pick_up_latitude":   30.26,
		"pick_up_longitude":  -97.74,
		"drop_off_latitude":  30.26,
		"drop_off_longitude": -97.74,
		"pick_up_date":       "2025-10-01",
		"drop_off_date":      "2025-10-01",
	})
	if !result.Success {
		t.Fatalf("Execute() failed: %s", result.Err)
	}
	if svc.calls != 1 {
		t.Errorf("service calls = %d, want 1", svc.calls)
	}
	if svc.got.PickupTime != "10:00" || svc.got.DriverAge != 30 {
		t.Errorf("defaults = %q/%d, want 10:00/30", svc.got.PickupTime, svc.got.DriverAge)
	}
}

func TestTrainsToolLegacyCityNames(t *testing.T) {
	svc := &stubTrains{}
	tool := NewTrainsTool(svc, fixedClock)

	result := tool.Execute(context.Background(), tripflow.Args{
		"from_city": "New York",
		"to_city":   "Boston",
		"date":      "2025-10-01",
	})
	if !result.Success {
		t.Fatalf("Execute() failed: %s", result.Err)
	}
	if svc.got.From != "New York" || svc.got.To != "Boston" {
		t.Errorf("criteria = %q->%q, want legacy names mapped", svc.got.From, svc.got.To)
	}
	if svc.got.Passengers != 1 {
		t.Errorf("Passengers = %d, want default 1", svc.got.Passengers)
	}
}

func TestFlightsToolRejectsPastDate(t *testing.T) {
	svc := &stubFlights{}
	tool := NewFlightsTool(svc, fixedClock)

	result := tool.Execute(context.Background(), tripflow.Args{
		"from_id":     "AUS.AIRPORT",
		"to_id":       "JFK.AIRPORT",
		"depart_date": "2025-01-01",
	})
	if result.Success {
		t.Fatal("expected failure for past departure date")
	}
	if svc.calls != 0 {
		t.Errorf("service calls = %d, want 0 after validation failure", svc.calls)
	}
}

func TestItineraryToolPassesInterests(t *testing.T) {
	svc := &stubItinerary{}
	tool := NewItineraryTool(svc)

	result := tool.Execute(context.Background(), tripflow.Args{
		"city":      "Austin",
		"days":      3,
		"interests": []any{"food", "nightlife"},
	})
	if !result.Success {
		t.Fatalf("Execute() failed: %s", result.Err)
	}
	if len(svc.got.Interests) != 2 || svc.got.Interests[0] != "food" {
		t.Errorf("Interests = %v, want [food nightlife]", svc.got.Interests)
	}
}

func newTestRegistry(t *testing.T, hotels *echoHotels) *tripflow.Registry {
	t.Helper()
	registry, err := NewRegistry(Services{
		Hotels:    hotels,
		Flights:   &stubFlights{},
		Cars:      &stubCars{},
		Trains:    &stubTrains{},
		Itinerary: &stubItinerary{},
		Clock:     fixedClock,
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return registry
}

func TestNewRegistryOrder(t *testing.T) {
	registry := newTestRegistry(t, &echoHotels{})

	var names []string
	for _, tool := range registry.All() {
		names = append(names, tool.Name())
	}
	want := []string{"searchFlights", "searchHotels", "searchCars", "searchTrains", "generateItinerary"}
	if len(names) != len(want) {
		t.Fatalf("len(tools) = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("tools[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDispatchHotelSearchEndToEnd(t *testing.T) {
	hotels := &echoHotels{}
	dispatcher, err := tripflow.NewDispatcher(tripflow.DispatcherConfig{
		Registry: newTestRegistry(t, hotels),
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	reply := dispatcher.Dispatch(context.Background(), "searchHotels", tripflow.Args{
		"location":       "Austin",
		"arrival_date":   "2025-10-01",
		"departure_date": "2025-10-04",
		"adults":         2,
	})
	if reply.Failed() {
		t.Fatalf("Dispatch() failed: %s", reply.Err)
	}
	if got := reply.Data["location"]; got != "Austin" {
		t.Errorf("data.location = %v, want %q", got, "Austin")
	}
	if got := reply.Data["nights"]; got != 3 {
		t.Errorf("data.nights = %v, want 3", got)
	}
	if hotels.calls != 1 {
		t.Errorf("service calls = %d, want 1", hotels.calls)
	}
}

func TestDispatchInvertedDatesNeverReachesService(t *testing.T) {
	hotels := &echoHotels{}
	dispatcher, err := tripflow.NewDispatcher(tripflow.DispatcherConfig{
		Registry: newTestRegistry(t, hotels),
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	reply := dispatcher.Dispatch(context.Background(), "searchHotels", tripflow.Args{
		"location":       "Austin",
		"arrival_date":   "2025-10-04",
		"departure_date": "2025-10-01",
	})
	if !reply.Failed() {
		t.Fatal("expected failure for inverted dates")
	}
	if reply.Err == "" || reply.Timestamp == "" {
		t.Errorf("failure reply missing error or timestamp: %+v", reply)
	}
	if hotels.calls != 0 {
		t.Errorf("service calls = %d, want 0", hotels.calls)
	}
}
