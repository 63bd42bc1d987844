package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/petal-labs/tripflow"
)

// CarSearcher is the service boundary for rental car lookups.
type CarSearcher interface {
	Search(ctx context.Context, c tripflow.CarCriteria) tripflow.Result
}

// NewCarsTool builds the searchCars tool.
func NewCarsTool(svc CarSearcher) tripflow.Tool {
	schema := tripflow.NewSchema("searchCars",
		"Search for rental cars using coordinates and dates").
		Param("pick_up_latitude", tripflow.TypeNumber, "Latitude for pickup location", true).
		Param("pick_up_longitude", tripflow.TypeNumber, "Longitude for pickup location", true).
		Param("drop_off_latitude", tripflow.TypeNumber, "Latitude for drop-off location", true).
		Param("drop_off_longitude", tripflow.TypeNumber, "Longitude for drop-off location", true).
		Param("pick_up_date", tripflow.TypeString, "Pickup date in YYYY-MM-DD format", true).
		Param("drop_off_date", tripflow.TypeString, "Drop-off date in YYYY-MM-DD format", true).
		ParamDefault("pick_up_time", tripflow.TypeString, "Pickup time in HH:MM format (default: 10:00)", "10:00").
		ParamDefault("drop_off_time", tripflow.TypeString, "Drop-off time in HH:MM format (default: 10:00)", "10:00").
		ParamDefault("driver_age", tripflow.TypeInteger, "Driver age (default: 30)", 30).
		ParamDefault("currency_code", tripflow.TypeString, "Currency code (default: USD)", "USD").
		ParamDefault("location", tripflow.TypeString, "Location code (default: US)", "US").
		Build()

	return tripflow.NewTool("searchCars", schema, tripflow.Binding{
		Map: mapCarArgs,
		// Same-day rentals are normal, so only the date format is checked;
		// the rental window itself is the provider's call.
		Validate: carDateFormats{},
		Search: func(ctx context.Context, c tripflow.Criteria) tripflow.Result {
			return svc.Search(ctx, c.(tripflow.CarCriteria))
		},
	})
}

func mapCarArgs(args tripflow.Args) (tripflow.Criteria, error) {
	var criteria tripflow.CarCriteria
	coords := []struct {
		name string
		dest *float64
	}{
		{"pick_up_latitude", &criteria.PickupLat},
		{"pick_up_longitude", &criteria.PickupLon},
		{"drop_off_latitude", &criteria.DropoffLat},
		{"drop_off_longitude", &criteria.DropoffLon},
	}
	for _, c := range coords {
		value, ok := args.Float(c.name)
		if !ok {
			return nil, &tripflow.MissingFieldError{Field: c.name}
		}
		*c.dest = value
	}

	pickupDate, ok := args.String("pick_up_date")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "pick_up_date"}
	}
	dropoffDate, ok := args.String("drop_off_date")
	if !ok {
		return nil, &tripflow.MissingFieldError{Field: "drop_off_date"}
	}

	criteria.PickupDate = pickupDate
	criteria.DropoffDate = dropoffDate
	criteria.PickupTime = args.StringOr("10:00", "pick_up_time")
	criteria.DropoffTime = args.StringOr("10:00", "drop_off_time")
	criteria.DriverAge = args.IntOr(30, "driver_age")
	criteria.Currency = args.StringOr("USD", "currency_code")
	criteria.Market = args.StringOr("US", "location")
	return criteria, nil
}

// carDateFormats checks that both rental dates parse, without ordering or
// past-date rules.
type carDateFormats struct{}

func (carDateFormats) Validate(fields map[string]string) (bool, string) {
	for _, label := range []string{"pick_up_date", "drop_off_date"} {
		value := fields[label]
		if _, err := time.Parse(tripflow.DateLayout, value); err != nil {
			return false, fmt.Sprintf("invalid %s format: %q is not YYYY-MM-DD", label, value)
		}
	}
	return true, ""
}
