package tools

import (
	"context"

	"github.com/petal-labs/tripflow"
)

// HotelSearcher is the service boundary for hotel lookups.
type HotelSearcher interface {
	Search(ctx context.Context, c tripflow.HotelCriteria) tripflow.Result
}

// NewHotelsTool builds the searchHotels tool.
func NewHotelsTool(svc HotelSearcher, clock Clock) tripflow.Tool {
	schema := tripflow.NewSchema("searchHotels",
		"Search for hotels in a location using live Booking.com API").
		Param("location", tripflow.TypeString, "City or location name (e.g., 'Austin', 'San Francisco', 'New York')", true).
		Param("arrival_date", tripflow.TypeString, "Check-in date in YYYY-MM-DD format", true).
		Param("departure_date", tripflow.TypeString, "Check-out date in YYYY-MM-DD format", true).
		ParamDefault("adults", tripflow.TypeInteger, "Number of adult guests (default: 1)", 1).
		ParamDefault("children_age", tripflow.TypeString, "Ages of children separated by comma (e.g., '0,17')", "").
		ParamDefault("room_qty", tripflow.TypeInteger, "Number of rooms required (default: 1)", 1).
		ParamDefault("currency_code", tripflow.TypeString, "Currency code (default: 'USD')", "USD").
		ParamDefault("languagecode", tripflow.TypeString, "Language code (default: 'en-us')", "en-us").
		Build()

	return tripflow.NewTool("searchHotels", schema, tripflow.Binding{
		Map: mapHotelArgs,
		Validate: tripflow.DateRangeValidator{
			StartLabel: "arrival_date",
			EndLabel:   "departure_date",
			Now:        clock.orNow(),
		},
		Search: func(ctx context.Context, c tripflow.Criteria) tripflow.Result {
			return svc.Search(ctx, c.(tripflow.HotelCriteria))
		},
	})
}

// mapHotelArgs resolves both argument generations: the current
// location/arrival_date/departure_date names and the legacy
// city/checkIn/nights/guests ones. When only a stay length is given, the
// check-out date is derived as check-in plus that many calendar days.
func mapHotelArgs(args tripflow.Args) (tripflow.Criteria, error) {
	location, ok := args.String("location", "city")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "location"}
	}
	arrival, ok := args.String("arrival_date", "checkIn")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "arrival_date"}
	}

	departure, ok := args.String("departure_date")
	if !ok {
		if nights, found := args.Int("nights"); found {
			if derived, err := tripflow.AddDays(arrival, nights); err == nil {
				departure = derived
				ok = true
			}
		}
	}
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "departure_date"}
	}

	criteria := tripflow.HotelCriteria{
		Location:      location,
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Adults:        args.IntOr(1, "adults", "guests"),
		Rooms:         args.IntOr(1, "room_qty"),
		Currency:      args.StringOr("USD", "currency_code"),
		Language:      args.StringOr("en-us", "languagecode"),
	}
	criteria.ChildrenAges, _ = args.String("children_age")
	return criteria, nil
}
