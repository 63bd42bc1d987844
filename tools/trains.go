package tools

import (
	"context"

	"github.com/petal-labs/tripflow"
)

// TrainSearcher is the service boundary for train route lookups.
type TrainSearcher interface {
	Search(ctx context.Context, c tripflow.TrainCriteria) tripflow.Result
}

// NewTrainsTool builds the searchTrains tool.
func NewTrainsTool(svc TrainSearcher, clock Clock) tripflow.Tool {
	schema := tripflow.NewSchema("searchTrains",
		"Search for train routes between two cities").
		Param("from", tripflow.TypeString, "Departure city (e.g., 'NYC', 'Boston')", true).
		Param("to", tripflow.TypeString, "Arrival city", true).
		Param("date", tripflow.TypeString, "Travel date in YYYY-MM-DD format", true).
		ParamDefault("passengers", tripflow.TypeInteger, "Number of passengers (default: 1)", 1).
		Build()

	return tripflow.NewTool("searchTrains", schema, tripflow.Binding{
		Map: mapTrainArgs,
		Validate: tripflow.DateValidator{
			Label: "date",
			Now:   clock.orNow(),
		},
		Search: func(ctx context.Context, c tripflow.Criteria) tripflow.Result {
			return svc.Search(ctx, c.(tripflow.TrainCriteria))
		},
	})
}

func mapTrainArgs(args tripflow.Args) (tripflow.Criteria, error) {
	from, ok := args.String("from", "from_city")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "from"}
	}
	to, ok := args.String("to", "to_city")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "to"}
	}
	date, ok := args.String("date")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "date"}
	}

	return tripflow.TrainCriteria{
		From:       from,
		To:         to,
		Date:       date,
		Passengers: args.IntOr(1, "passengers"),
	}, nil
}
