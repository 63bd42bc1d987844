package booking

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/petal-labs/tripflow"
)

// carDisplayCap bounds how many rentals one reply carries.
const carDisplayCap = 15

// CarServiceConfig configures a CarService.
type CarServiceConfig struct {
	Client *Client
	Logger *slog.Logger
}

// CarService searches rental cars by pickup and drop-off coordinates.
type CarService struct {
	client *Client
	logger *slog.Logger
}

// NewCarService creates a car rental search service.
func NewCarService(cfg CarServiceConfig) *CarService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CarService{client: cfg.Client, logger: logger}
}

type carSearchResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		SearchResults []carRental `json:"search_results"`
		Count         float64     `json:"count"`
		Provider      string      `json:"provider"`
		Filter        []any       `json:"filter"`
		Sort          []any       `json:"sort"`
	} `json:"data"`
}

type carRental struct {
	Vendor struct {
		Name   string `json:"name"`
		Rating any    `json:"rating"`
	} `json:"vendor"`
	Vehicle struct {
		VehicleInfo struct {
			Category        string `json:"category"`
			Name            string `json:"name"`
			Passengers      any    `json:"passengers"`
			Doors           any    `json:"doors"`
			Transmission    string `json:"transmission"`
			FuelType        string `json:"fuel_type"`
			AirConditioning bool   `json:"air_conditioning"`
		} `json:"vehicle_info"`
	} `json:"vehicle"`
	Pricing struct {
		TotalPrice any    `json:"total_price"`
		DailyPrice any    `json:"daily_price"`
		Currency   string `json:"currency"`
		BasePrice  any    `json:"base_price"`
		Taxes      any    `json:"taxes"`
		Fees       any    `json:"fees"`
	} `json:"pricing"`
	Location struct {
		Pickup struct {
			Location string `json:"location"`
		} `json:"pickup"`
		Dropoff struct {
			Location string `json:"location"`
		} `json:"dropoff"`
	} `json:"location"`
	PickupDate         string `json:"pickup_date"`
	DropoffDate        string `json:"dropoff_date"`
	MileagePolicy      string `json:"mileage_policy"`
	FuelPolicy         string `json:"fuel_policy"`
	CancellationPolicy string `json:"cancellation_policy"`
	MinimumAge         int    `json:"minimum_age"`
	BookingToken       string `json:"booking_token"`
	ID                 string `json:"id"`
	Features           []any  `json:"features"`
}

// Search implements the rental car lookup.
func (s *CarService) Search(ctx context.Context, c tripflow.CarCriteria) tripflow.Result {
	params := url.Values{}
	params.Set("pick_up_latitude", strconv.FormatFloat(c.PickupLat, 'f', -1, 64))
	params.Set("pick_up_longitude", strconv.FormatFloat(c.PickupLon, 'f', -1, 64))
	params.Set("drop_off_latitude", strconv.FormatFloat(c.DropoffLat, 'f', -1, 64))
	params.Set("drop_off_longitude", strconv.FormatFloat(c.DropoffLon, 'f', -1, 64))
	params.Set("pick_up_date", c.PickupDate)
	params.Set("drop_off_date", c.DropoffDate)
	params.Set("pick_up_time", c.PickupTime)
	params.Set("drop_off_time", c.DropoffTime)
	params.Set("driver_age", strconv.Itoa(c.DriverAge))
	params.Set("currency_code", c.Currency)
	params.Set("location", c.Market)

	var resp carSearchResponse
	if err := s.client.GetJSON(ctx, "/searchCarRentals", params, &resp); err != nil {
		s.logger.Error("car search failed", "pickup", c.PickupDate, "error", err)
		return tripflow.Failuref("failed to fetch car rental data: %v", err)
	}
	if !resp.Status {
		message := resp.Message
		if message == "" {
			message = "Unknown error"
		}
		return tripflow.Failuref("API Error: %s", message)
	}

	criteria := map[string]any{
		"pickupLocation":  fmt.Sprintf("Lat: %g, Lng: %g", c.PickupLat, c.PickupLon),
		"dropoffLocation": fmt.Sprintf("Lat: %g, Lng: %g", c.DropoffLat, c.DropoffLon),
		"pickupDate":      c.PickupDate,
		"dropoffDate":     c.DropoffDate,
		"pickupTime":      c.PickupTime,
		"dropoffTime":     c.DropoffTime,
		"driverAge":       c.DriverAge,
		"currency":        c.Currency,
		"location":        c.Market,
	}

	cars := make([]map[string]any, 0, carDisplayCap)
	for _, rental := range resp.Data.SearchResults {
		if len(cars) == carDisplayCap {
			break
		}
		cars = append(cars, parseCarRental(rental))
	}

	provider := resp.Data.Provider
	if provider == "" {
		provider = "Unknown"
	}

	if resp.Data.Count == 0 && len(cars) == 0 {
		return tripflow.Success(map[string]any{
			"searchCriteria":   criteria,
			"resultsFound":     0,
			"resultsDisplayed": 0,
			"cars":             []any{},
			"message":          "No car rentals available for the specified criteria",
			"provider":         provider,
		}, sourceName)
	}

	return tripflow.Success(map[string]any{
		"searchCriteria":   criteria,
		"resultsFound":     int(resp.Data.Count),
		"resultsDisplayed": len(cars),
		"cars":             cars,
		"provider":         provider,
		"availableFilters": resp.Data.Filter,
		"sortOptions":      resp.Data.Sort,
	}, sourceName)
}

func parseCarRental(r carRental) map[string]any {
	bookingToken := r.BookingToken
	if bookingToken == "" {
		bookingToken = r.ID
	}
	minimumAge := r.MinimumAge
	if minimumAge == 0 {
		minimumAge = 21
	}

	return map[string]any{
		"company":         nameOr(r.Vendor.Name, "Unknown"),
		"carType":         nameOr(r.Vehicle.VehicleInfo.Category, "Unknown"),
		"model":           nameOr(r.Vehicle.VehicleInfo.Name, "Unknown"),
		"pickupLocation":  nameOr(r.Location.Pickup.Location, "Unknown"),
		"dropoffLocation": nameOr(r.Location.Dropoff.Location, "Unknown"),
		"pickupDate":      r.PickupDate,
		"returnDate":      r.DropoffDate,
		"pricing": map[string]any{
			"totalCost": formatPriceValue(r.Pricing.TotalPrice),
			"dailyRate": formatPriceValue(r.Pricing.DailyPrice),
			"currency":  nameOr(r.Pricing.Currency, "USD"),
			"breakdown": map[string]any{
				"base":  formatPriceValue(r.Pricing.BasePrice),
				"taxes": formatPriceValue(r.Pricing.Taxes),
				"fees":  formatPriceValue(r.Pricing.Fees),
			},
		},
		"specifications": map[string]any{
			"passengers":      valueOr(r.Vehicle.VehicleInfo.Passengers, "N/A"),
			"doors":           valueOr(r.Vehicle.VehicleInfo.Doors, "N/A"),
			"transmission":    nameOr(r.Vehicle.VehicleInfo.Transmission, "N/A"),
			"fuelType":        nameOr(r.Vehicle.VehicleInfo.FuelType, "N/A"),
			"airConditioning": r.Vehicle.VehicleInfo.AirConditioning,
			"category":        nameOr(r.Vehicle.VehicleInfo.Category, "N/A"),
		},
		"policies": map[string]any{
			"mileage":      nameOr(r.MileagePolicy, "Check with supplier"),
			"fuelPolicy":   nameOr(r.FuelPolicy, "Check with supplier"),
			"cancellation": nameOr(r.CancellationPolicy, "Check with supplier"),
			"minimumAge":   minimumAge,
		},
		"bookingToken": bookingToken,
		"features":     r.Features,
		"rating":       valueOr(r.Vendor.Rating, "N/A"),
	}
}

// formatPriceValue renders prices that arrive either as units+nanos objects
// or as bare numbers, depending on the upstream provider.
func formatPriceValue(v any) string {
	switch p := v.(type) {
	case nil:
		return "N/A"
	case map[string]any:
		price := Price{CurrencyCode: "USD"}
		if s, ok := p["currencyCode"].(string); ok && s != "" {
			price.CurrencyCode = s
		}
		if units, ok := p["units"].(float64); ok {
			price.Units = units
		}
		if nanos, ok := p["nanos"].(float64); ok {
			price.Nanos = nanos
		}
		return FormatPrice(&price)
	case float64:
		return fmt.Sprintf("USD %.2f", p)
	default:
		return fmt.Sprint(p)
	}
}

func valueOr(v any, def string) any {
	if v == nil {
		return def
	}
	return v
}
