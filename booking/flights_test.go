package booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petal-labs/tripflow"
)

func newFlightCriteria() tripflow.FlightCriteria {
	return tripflow.FlightCriteria{
		FromID:     "AUS.AIRPORT",
		ToID:       "JFK.AIRPORT",
		DepartDate: "2025-11-02",
		Adults:     1,
		Stops:      "none",
		CabinClass: "ECONOMY",
		Currency:   "USD",
	}
}

const flightOfferJSON = `{
	"segments": [{"legs": [{
		"departureAirport": {"code": "AUS", "name": "Austin-Bergstrom", "cityName": "Austin"},
		"arrivalAirport": {"code": "JFK", "name": "John F. Kennedy", "cityName": "New York"},
		"departureTime": "2025-11-02T08:30:00",
		"arrivalTime": "2025-11-02T13:00:00",
		"totalTime": 16200,
		"cabinClass": "ECONOMY",
		"flightInfo": {"flightNumber": 1542, "carrierInfo": {"marketingCarrier": "DL"}},
		"carriersData": [{"name": "Delta Air Lines"}],
		"flightStops": []
	}]}],
	"priceBreakdown": {
		"total": {"currencyCode": "USD", "units": 289, "nanos": 990000000},
		"baseFare": {"currencyCode": "USD", "units": 240},
		"tax": {"currencyCode": "USD", "units": 49, "nanos": 990000000}
	},
	"tripType": "ONEWAY",
	"token": "tok-123"
}`

func TestFlightSearchParsesOffers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("fromId"); got != "AUS.AIRPORT" {
			t.Errorf("fromId = %q, want %q", got, "AUS.AIRPORT")
		}
		if got := q.Get("sort"); got != "BEST" {
			t.Errorf("sort = %q, want %q", got, "BEST")
		}
		fmt.Fprintf(w, `{
			"status": true,
			"data": {
				"flightOffers": [%s],
				"aggregation": {
					"totalCount": 57,
					"minPrice": {"currencyCode": "USD", "units": 189},
					"budget": {"max": {"currencyCode": "USD", "units": 950}},
					"airlines": [1, 2, 3],
					"stops": [{"numberOfStops": 0, "count": 12}, {"numberOfStops": 1, "count": 30}]
				}
			}
		}`, flightOfferJSON)
	}))
	defer srv.Close()

	client, _ := NewClient(ClientConfig{BaseURL: srv.URL})
	svc := NewFlightService(FlightServiceConfig{Client: client})

	result := svc.Search(context.Background(), newFlightCriteria())
	if !result.Success {
		t.Fatalf("Search() failed: %s", result.Err)
	}

	flights := result.Data["flights"].([]map[string]any)
	if len(flights) != 1 {
		t.Fatalf("len(flights) = %d, want 1", len(flights))
	}
	flight := flights[0]
	if got := flight["totalPrice"]; got != "USD 289.99" {
		t.Errorf("totalPrice = %v, want %q", got, "USD 289.99")
	}
	if got := flight["isRoundTrip"]; got != false {
		t.Errorf("isRoundTrip = %v, want false", got)
	}

	segments := flight["segments"].([]map[string]any)
	departure := segments[0]["departure"].(map[string]any)
	if got := departure["time"]; got != "08:30" {
		t.Errorf("departure.time = %v, want %q", got, "08:30")
	}
	if got := departure["date"]; got != "2025-11-02" {
		t.Errorf("departure.date = %v, want %q", got, "2025-11-02")
	}
	if got := segments[0]["flightNumber"]; got != "DL1542" {
		t.Errorf("flightNumber = %v, want %q", got, "DL1542")
	}
	if got := segments[0]["duration"]; got != "4h 30m" {
		t.Errorf("duration = %v, want %q", got, "4h 30m")
	}

	summary := result.Data["summary"].(map[string]any)
	if got := summary["directFlights"]; got != 12 {
		t.Errorf("summary.directFlights = %v, want 12", got)
	}
	if got := summary["airlines"]; got != 3 {
		t.Errorf("summary.airlines = %v, want 3", got)
	}
	if got := summary["priceRange"]; got != "USD 189.00 - USD 950.00" {
		t.Errorf("summary.priceRange = %v, want %q", got, "USD 189.00 - USD 950.00")
	}
}

func TestFlightSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": true, "data": {"error": {"code": "SEARCH_EXPIRED"}}}`)
	}))
	defer srv.Close()

	client, _ := NewClient(ClientConfig{BaseURL: srv.URL})
	svc := NewFlightService(FlightServiceConfig{Client: client})

	result := svc.Search(context.Background(), newFlightCriteria())
	if result.Success {
		t.Fatal("expected failure for API error payload")
	}
	if want := "API Error: SEARCH_EXPIRED"; result.Err != want {
		t.Errorf("Err = %q, want %q", result.Err, want)
	}
}

func TestParseFlightOfferSkipsEmptySegments(t *testing.T) {
	if _, ok := parseFlightOffer(flightOffer{}); ok {
		t.Error("expected offer with no segments to be skipped")
	}

	var offer flightOffer
	offer.Segments = make([]struct {
		Legs []flightLeg `json:"legs"`
	}, 1)
	if _, ok := parseFlightOffer(offer); ok {
		t.Error("expected offer with no legs to be skipped")
	}
}

func TestFlightSearchRoundTripParam(t *testing.T) {
	var gotReturn string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReturn = r.URL.Query().Get("returnDate")
		fmt.Fprint(w, `{"status": true, "data": {"flightOffers": [], "aggregation": {}}}`)
	}))
	defer srv.Close()

	client, _ := NewClient(ClientConfig{BaseURL: srv.URL})
	svc := NewFlightService(FlightServiceConfig{Client: client})

	criteria := newFlightCriteria()
	criteria.ReturnDate = "2025-11-09"
	if result := svc.Search(context.Background(), criteria); !result.Success {
		t.Fatalf("Search() failed: %s", result.Err)
	}
	if gotReturn != "2025-11-09" {
		t.Errorf("returnDate param = %q, want %q", gotReturn, "2025-11-09")
	}
}
