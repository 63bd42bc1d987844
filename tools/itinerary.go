package tools

import (
	"context"

	"github.com/petal-labs/tripflow"
)

// ItineraryGenerator is the service boundary for itinerary generation.
type ItineraryGenerator interface {
	Generate(ctx context.Context, p tripflow.ItineraryParams) tripflow.Result
}

// NewItineraryTool builds the generateItinerary tool.
func NewItineraryTool(svc ItineraryGenerator) tripflow.Tool {
	schema := tripflow.NewSchema("generateItinerary",
		"Generate a detailed travel itinerary for a city").
		Param("city", tripflow.TypeString, "Destination city", true).
		Param("days", tripflow.TypeInteger, "Number of days (1-7)", true).
		ParamArray("interests", tripflow.TypeString, "Areas of interest (food, culture, nature, nightlife, shopping)").
		Build()

	return tripflow.NewTool("generateItinerary", schema, tripflow.Binding{
		Map: mapItineraryArgs,
		// The generator does its own city and day-count bounds checking.
		Validate: tripflow.NopValidator{},
		Search: func(ctx context.Context, c tripflow.Criteria) tripflow.Result {
			return svc.Generate(ctx, c.(tripflow.ItineraryParams))
		},
	})
}

func mapItineraryArgs(args tripflow.Args) (tripflow.Criteria, error) {
	city, ok := args.String("city")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "city"}
	}
	days, ok := args.Int("days")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "days"}
	}

	params := tripflow.ItineraryParams{City: city, Days: days}
	params.Interests, _ = args.StringSlice("interests")
	return params, nil
}
