package tripflow

import "time"

// Criteria is the canonical, validated input to one domain search or
// generation operation. Implementations are plain immutable records built
// fresh per call by a tool's mapper and discarded when the call completes.
//
// Fields exposes the date-bearing string fields a Validator inspects, keyed
// by the protocol-facing argument name.
type Criteria interface {
	Fields() map[string]string
}

// HotelCriteria describes one hotel search.
type HotelCriteria struct {
	Location      string
	ArrivalDate   string
	DepartureDate string
	Adults        int
	ChildrenAges  string
	Rooms         int
	Currency      string
	Language      string
}

// Fields implements Criteria.
func (c HotelCriteria) Fields() map[string]string {
	return map[string]string{
		"arrival_date":   c.ArrivalDate,
		"departure_date": c.DepartureDate,
	}
}

// FlightCriteria describes one flight search. ReturnDate is empty for
// one-way trips.
type FlightCriteria struct {
	FromID     string
	ToID       string
	DepartDate string
	ReturnDate string
	Adults     int
	Children   int
	Stops      string
	CabinClass string
	Currency   string
}

// Fields implements Criteria.
func (c FlightCriteria) Fields() map[string]string {
	return map[string]string{"depart_date": c.DepartDate}
}

// CarCriteria describes one rental car search.
type CarCriteria struct {
	PickupLat   float64
	PickupLon   float64
	DropoffLat  float64
	DropoffLon  float64
	PickupDate  string
	DropoffDate string
	PickupTime  string
	DropoffTime string
	DriverAge   int
	Currency    string
	Market      string
}

// Fields implements Criteria.
func (c CarCriteria) Fields() map[string]string {
	return map[string]string{
		"pick_up_date":  c.PickupDate,
		"drop_off_date": c.DropoffDate,
	}
}

// TrainCriteria describes one train route search.
type TrainCriteria struct {
	From       string
	To         string
	Date       string
	Passengers int
}

// Fields implements Criteria.
func (c TrainCriteria) Fields() map[string]string {
	return map[string]string{"date": c.Date}
}

// ItineraryParams describes one itinerary generation request.
type ItineraryParams struct {
	City      string
	Days      int
	Interests []string
}

// Fields implements Criteria. Itinerary generation carries no travel dates;
// its service does its own city and day-count bounds checking.
func (p ItineraryParams) Fields() map[string]string { return map[string]string{} }

// Nights reports the stay length implied by a hotel criteria's date pair,
// or 0 when either date does not parse.
func (c HotelCriteria) Nights() int {
	arrival, err := time.Parse(DateLayout, c.ArrivalDate)
	if err != nil {
		return 0
	}
	departure, err := time.Parse(DateLayout, c.DepartureDate)
	if err != nil {
		return 0
	}
	return int(departure.Sub(arrival).Hours() / 24)
}
