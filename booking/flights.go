package booking

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/petal-labs/tripflow"
)

// flightDisplayCap bounds how many offers one reply carries.
const flightDisplayCap = 10

// FlightServiceConfig configures a FlightService.
type FlightServiceConfig struct {
	Client *Client
	Logger *slog.Logger
}

// FlightService searches flights between two airports.
type FlightService struct {
	client *Client
	logger *slog.Logger
}

// NewFlightService creates a flight search service.
func NewFlightService(cfg FlightServiceConfig) *FlightService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FlightService{client: cfg.Client, logger: logger}
}

type flightSearchResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Error *struct {
			Code      string `json:"code"`
			RequestID string `json:"requestId"`
		} `json:"error"`
		FlightOffers []flightOffer `json:"flightOffers"`
		Aggregation  struct {
			TotalCount float64 `json:"totalCount"`
			MinPrice   *Price  `json:"minPrice"`
			Budget     struct {
				Max *Price `json:"max"`
			} `json:"budget"`
			Airlines []any `json:"airlines"`
			Stops    []struct {
				NumberOfStops int     `json:"numberOfStops"`
				Count         float64 `json:"count"`
			} `json:"stops"`
		} `json:"aggregation"`
	} `json:"data"`
}

type flightOffer struct {
	Segments []struct {
		Legs []flightLeg `json:"legs"`
	} `json:"segments"`
	PriceBreakdown struct {
		Total    *Price `json:"total"`
		BaseFare *Price `json:"baseFare"`
		Tax      *Price `json:"tax"`
	} `json:"priceBreakdown"`
	TripType string `json:"tripType"`
	Token    string `json:"token"`
}

type flightLeg struct {
	DepartureAirport airportInfo `json:"departureAirport"`
	ArrivalAirport   airportInfo `json:"arrivalAirport"`
	DepartureTime    string      `json:"departureTime"`
	ArrivalTime      string      `json:"arrivalTime"`
	TotalTime        int         `json:"totalTime"`
	CabinClass       string      `json:"cabinClass"`
	FlightInfo       struct {
		FlightNumber int `json:"flightNumber"`
		CarrierInfo  struct {
			MarketingCarrier string `json:"marketingCarrier"`
		} `json:"carrierInfo"`
	} `json:"flightInfo"`
	CarriersData []struct {
		Name string `json:"name"`
	} `json:"carriersData"`
	FlightStops []any `json:"flightStops"`
}

// Search implements the flight lookup.
func (s *FlightService) Search(ctx context.Context, c tripflow.FlightCriteria) tripflow.Result {
	params := url.Values{}
	params.Set("fromId", c.FromID)
	params.Set("toId", c.ToID)
	params.Set("departDate", c.DepartDate)
	params.Set("pageNo", "1")
	params.Set("adults", strconv.Itoa(c.Adults))
	params.Set("children", fmt.Sprintf("%d,17", c.Children))
	params.Set("sort", "BEST")
	params.Set("cabinClass", c.CabinClass)
	params.Set("currency_code", c.Currency)
	params.Set("stops", c.Stops)
	if c.ReturnDate != "" {
		params.Set("returnDate", c.ReturnDate)
	}

	var resp flightSearchResponse
	if err := s.client.GetJSON(ctx, "/searchFlights", params, &resp); err != nil {
		s.logger.Error("flight search failed", "from", c.FromID, "to", c.ToID, "error", err)
		return tripflow.Failuref("failed to fetch flight data: %v", err)
	}
	if !resp.Status || resp.Data.Error != nil {
		code := "Unknown error"
		if resp.Data.Error != nil && resp.Data.Error.Code != "" {
			code = resp.Data.Error.Code
		}
		return tripflow.Failuref("API Error: %s", code)
	}

	flights := make([]map[string]any, 0, flightDisplayCap)
	for _, offer := range resp.Data.FlightOffers {
		if len(flights) == flightDisplayCap {
			break
		}
		if parsed, ok := parseFlightOffer(offer); ok {
			flights = append(flights, parsed)
		}
	}

	agg := resp.Data.Aggregation
	directFlights := 0.0
	for _, stop := range agg.Stops {
		if stop.NumberOfStops == 0 {
			directFlights = stop.Count
			break
		}
	}

	return tripflow.Success(map[string]any{
		"searchCriteria": map[string]any{
			"from":       c.FromID,
			"to":         c.ToID,
			"departDate": c.DepartDate,
			"returnDate": c.ReturnDate,
			"adults":     c.Adults,
			"children":   c.Children,
			"cabinClass": c.CabinClass,
			"stops":      c.Stops,
		},
		"resultsFound":     len(resp.Data.FlightOffers),
		"resultsDisplayed": len(flights),
		"summary": map[string]any{
			"totalFlights":  int(agg.TotalCount),
			"minPrice":      FormatPrice(agg.MinPrice),
			"priceRange":    fmt.Sprintf("%s - %s", FormatPrice(agg.MinPrice), FormatPrice(agg.Budget.Max)),
			"airlines":      len(agg.Airlines),
			"directFlights": int(directFlights),
		},
		"flights": flights,
	}, sourceName)
}

// parseFlightOffer flattens one raw offer. Offers that carry no usable legs
// are skipped rather than failing the whole search.
func parseFlightOffer(offer flightOffer) (map[string]any, bool) {
	if len(offer.Segments) == 0 {
		return nil, false
	}

	segments := make([]map[string]any, 0, len(offer.Segments))
	for _, segment := range offer.Segments {
		if len(segment.Legs) == 0 {
			continue
		}
		// Direct flights, or the first leg of a connection.
		leg := segment.Legs[0]

		airline := "Unknown"
		if len(leg.CarriersData) > 0 {
			airline = leg.CarriersData[0].Name
		}

		segments = append(segments, map[string]any{
			"departure": legEndpoint(leg.DepartureAirport, leg.DepartureTime),
			"arrival":   legEndpoint(leg.ArrivalAirport, leg.ArrivalTime),
			"duration":  FormatDuration(leg.TotalTime),
			"flightNumber": fmt.Sprintf("%s%d",
				leg.FlightInfo.CarrierInfo.MarketingCarrier, leg.FlightInfo.FlightNumber),
			"airline":    airline,
			"stops":      len(leg.FlightStops),
			"cabinClass": cabinOr(leg.CabinClass),
		})
	}
	if len(segments) == 0 {
		return nil, false
	}

	return map[string]any{
		"segments":   segments,
		"totalPrice": FormatPrice(offer.PriceBreakdown.Total),
		"priceBreakdown": map[string]any{
			"baseFare": FormatPrice(offer.PriceBreakdown.BaseFare),
			"taxes":    FormatPrice(offer.PriceBreakdown.Tax),
			"total":    FormatPrice(offer.PriceBreakdown.Total),
		},
		"tripType":     tripTypeOr(offer.TripType),
		"bookingToken": offer.Token,
		"isRoundTrip":  len(offer.Segments) > 1,
	}, true
}

type airportInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	CityName string `json:"cityName"`
}

func legEndpoint(airport airportInfo, isoTime string) map[string]any {
	date, clock := splitISOTime(isoTime)
	return map[string]any{
		"airport":     airport.Code,
		"airportName": airport.Name,
		"city":        airport.CityName,
		"time":        clock,
		"date":        date,
	}
}

// splitISOTime pulls "2025-10-01" and "08:30" out of an ISO timestamp.
func splitISOTime(iso string) (date, clock string) {
	date, rest, ok := strings.Cut(iso, "T")
	if !ok {
		return iso, ""
	}
	if len(rest) > 5 {
		rest = rest[:5]
	}
	return date, rest
}

func cabinOr(cabin string) string {
	if cabin == "" {
		return "ECONOMY"
	}
	return cabin
}

func tripTypeOr(tripType string) string {
	if tripType == "" {
		return "UNKNOWN"
	}
	return tripType
}
