package tools

import (
	"context"

	"github.com/petal-labs/tripflow"
)

// FlightSearcher is the service boundary for flight lookups.
type FlightSearcher interface {
	Search(ctx context.Context, c tripflow.FlightCriteria) tripflow.Result
}

// NewFlightsTool builds the searchFlights tool.
func NewFlightsTool(svc FlightSearcher, clock Clock) tripflow.Tool {
	schema := tripflow.NewSchema("searchFlights",
		"Search for flights between two cities using live Booking.com API").
		Param("from_id", tripflow.TypeString, "Departure airport ID (e.g., 'BOM.AIRPORT', 'LON.AIRPORT')", true).
		Param("to_id", tripflow.TypeString, "Arrival airport ID (e.g., 'DEL.AIRPORT', 'NYC.AIRPORT')", true).
		Param("depart_date", tripflow.TypeString, "Departure date in YYYY-MM-DD format", true).
		Param("return_date", tripflow.TypeString, "Return date in YYYY-MM-DD format (optional for round trip)", false).
		ParamDefault("adults", tripflow.TypeInteger, "Number of adult passengers (default: 1)", 1).
		ParamDefault("children", tripflow.TypeInteger, "Number of child passengers (default: 0)", 0).
		ParamEnum("stops", tripflow.TypeString, "Number of stops: 'none', 'one', 'any' (default: 'none')",
			[]string{"none", "one", "any"}, "none").
		ParamEnum("cabin_class", tripflow.TypeString, "Cabin class (default: 'ECONOMY')",
			[]string{"ECONOMY", "PREMIUM_ECONOMY", "BUSINESS", "FIRST"}, "ECONOMY").
		ParamDefault("currency_code", tripflow.TypeString, "Currency code (default: 'USD')", "USD").
		Build()

	return tripflow.NewTool("searchFlights", schema, tripflow.Binding{
		Map: mapFlightArgs,
		Validate: tripflow.DateValidator{
			Label: "depart_date",
			Now:   clock.orNow(),
		},
		Search: func(ctx context.Context, c tripflow.Criteria) tripflow.Result {
			return svc.Search(ctx, c.(tripflow.FlightCriteria))
		},
	})
}

func mapFlightArgs(args tripflow.Args) (tripflow.Criteria, error) {
	fromID, ok := args.String("from_id")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "from_id"}
	}
	toID, ok := args.String("to_id")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "to_id"}
	}
	departDate, ok := args.String("depart_date")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "depart_date"}
	}

	criteria := tripflow.FlightCriteria{
		FromID:     fromID,
		ToID:       toID,
		DepartDate: departDate,
		Adults:     args.IntOr(1, "adults"),
		Children:   args.IntOr(0, "children"),
		Stops:      args.StringOr("none", "stops"),
		CabinClass: args.StringOr("ECONOMY", "cabin_class"),
		Currency:   args.StringOr("USD", "currency_code"),
	}
	criteria.ReturnDate, _ = args.String("return_date")
	return criteria, nil
}
