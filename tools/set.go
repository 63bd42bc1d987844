package tools

import "github.com/petal-labs/tripflow"

// Services collects the domain services behind the standard tool set.
type Services struct {
	Hotels    HotelSearcher
	Flights   FlightSearcher
	Cars      CarSearcher
	Trains    TrainSearcher
	Itinerary ItineraryGenerator

	// Clock feeds the date validators; nil means time.Now.
	Clock Clock
}

// NewRegistry registers the full travel tool set in its published order.
func NewRegistry(svcs Services) (*tripflow.Registry, error) {
	return tripflow.NewBuilder().
		Add(
			NewFlightsTool(svcs.Flights, svcs.Clock),
			NewHotelsTool(svcs.Hotels, svcs.Clock),
			NewCarsTool(svcs.Cars),
			NewTrainsTool(svcs.Trains, svcs.Clock),
			NewItineraryTool(svcs.Itinerary),
		).
		Build()
}
