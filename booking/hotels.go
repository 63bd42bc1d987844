package booking

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/petal-labs/tripflow"
	"github.com/petal-labs/tripflow/geo"
)

const sourceName = "Booking.com RapidAPI"

// hotelDisplayCap bounds how many hotels one reply carries.
const hotelDisplayCap = 20

// Locator resolves a free-form location to coordinates.
type Locator interface {
	Resolve(ctx context.Context, city string) (geo.Coordinates, error)
}

// HotelServiceConfig configures a HotelService.
type HotelServiceConfig struct {
	Client  *Client
	Locator Locator
	Logger  *slog.Logger
}

// HotelService searches hotels by geocoding the location and querying the
// coordinate-based RapidAPI endpoint.
type HotelService struct {
	client  *Client
	locator Locator
	logger  *slog.Logger
}

// NewHotelService creates a hotel search service.
func NewHotelService(cfg HotelServiceConfig) *HotelService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HotelService{client: cfg.Client, locator: cfg.Locator, logger: logger}
}

type hotelSearchResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Result []hotelRecord `json:"result"`
	} `json:"data"`
}

type hotelRecord struct {
	HotelID         float64 `json:"hotel_id"`
	HotelName       string  `json:"hotel_name"`
	ReviewScore     float64 `json:"review_score"`
	ReviewScoreWord string  `json:"review_score_word"`
	ReviewCount     float64 `json:"review_nr"`
	City            string  `json:"city"`
	CityInTrans     string  `json:"city_in_trans"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Class           float64 `json:"class"`

	CompositePriceBreakdown struct {
		GrossAmount struct {
			Value    float64 `json:"value"`
			Currency string  `json:"currency"`
		} `json:"gross_amount"`
		GrossAmountPerNight struct {
			Value         float64 `json:"value"`
			AmountRounded string  `json:"amount_rounded"`
		} `json:"gross_amount_per_night"`
		NetAmount struct {
			Value float64 `json:"value"`
		} `json:"net_amount"`
	} `json:"composite_price_breakdown"`

	UnitConfigurationLabel string `json:"unit_configuration_label"`

	HasSwimmingPool       float64 `json:"has_swimming_pool"`
	IsFreeCancellable     float64 `json:"is_free_cancellable"`
	HotelIncludeBreakfast float64 `json:"hotel_include_breakfast"`
	IsGeniusDeal          float64 `json:"is_genius_deal"`
	IsSmartDeal           float64 `json:"is_smart_deal"`
	IsNoPrepaymentBlock   float64 `json:"is_no_prepayment_block"`
	SoldOut               float64 `json:"soldout"`
	CantBook              any     `json:"cant_book"`

	Checkin struct {
		From string `json:"from"`
	} `json:"checkin"`
	Checkout struct {
		Until string `json:"until"`
	} `json:"checkout"`

	MainPhotoURL string `json:"main_photo_url"`
}

// Search implements the hotel lookup: geocode the location, query the
// coordinate search endpoint, and shape the response for callers.
func (s *HotelService) Search(ctx context.Context, c tripflow.HotelCriteria) tripflow.Result {
	coords, err := s.locator.Resolve(ctx, c.Location)
	if err != nil {
		return tripflow.Failuref("failed to get coordinates for location %q: %v", c.Location, err)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	params.Set("arrival_date", c.ArrivalDate)
	params.Set("departure_date", c.DepartureDate)
	params.Set("adults", strconv.Itoa(c.Adults))
	params.Set("room_qty", strconv.Itoa(c.Rooms))
	params.Set("units", "metric")
	params.Set("page_number", "1")
	params.Set("temperature_unit", "c")
	params.Set("languagecode", c.Language)
	params.Set("currency_code", c.Currency)
	params.Set("location", "US")
	if c.ChildrenAges != "" {
		params.Set("children_age", c.ChildrenAges)
	}

	var resp hotelSearchResponse
	if err := s.client.GetJSON(ctx, "/searchHotelsByCoordinates", params, &resp); err != nil {
		s.logger.Error("hotel search failed", "location", c.Location, "error", err)
		return tripflow.Failuref("failed to fetch hotel data: %v", err)
	}
	if !resp.Status {
		message := resp.Message
		if message == "" {
			message = "Unknown API error"
		}
		return tripflow.Failuref("API Error: %s", message)
	}

	criteria := map[string]any{
		"location":       c.Location,
		"coordinates":    coords.String(),
		"arrival_date":   c.ArrivalDate,
		"departure_date": c.DepartureDate,
		"nights":         c.Nights(),
		"adults":         c.Adults,
		"room_qty":       c.Rooms,
		"currency_code":  c.Currency,
	}

	if len(resp.Data.Result) == 0 {
		return tripflow.Success(map[string]any{
			"searchCriteria": criteria,
			"resultsFound":   0,
			"hotels":         []any{},
			"message":        "No hotels found for the specified criteria",
		}, sourceName)
	}

	hotels := make([]map[string]any, 0, hotelDisplayCap)
	for _, record := range resp.Data.Result {
		if len(hotels) == hotelDisplayCap {
			break
		}
		hotels = append(hotels, formatHotel(record))
	}

	return tripflow.Success(map[string]any{
		"searchCriteria":   criteria,
		"resultsFound":     len(resp.Data.Result),
		"resultsDisplayed": len(hotels),
		"summary":          summarizeHotels(hotels, c.Currency),
		"hotels":           hotels,
	}, sourceName)
}

func formatHotel(r hotelRecord) map[string]any {
	pricePerNight := r.CompositePriceBreakdown.GrossAmountPerNight.Value
	totalPrice := r.CompositePriceBreakdown.GrossAmount.Value
	if pricePerNight == 0 && totalPrice > 0 {
		// Per-night figure missing from some providers; approximate from
		// the total assuming a typical three-night stay.
		pricePerNight = totalPrice / 3
	}
	currency := r.CompositePriceBreakdown.GrossAmount.Currency
	if currency == "" {
		currency = "USD"
	}

	priceDisplay := r.CompositePriceBreakdown.GrossAmountPerNight.AmountRounded
	if priceDisplay == "" {
		priceDisplay = fmt.Sprintf("$%.0f", pricePerNight)
	}

	amenities := []string{}
	if r.HasSwimmingPool != 0 {
		amenities = append(amenities, "Swimming Pool")
	}
	if r.IsFreeCancellable != 0 {
		amenities = append(amenities, "Free Cancellation")
	}
	if r.HotelIncludeBreakfast != 0 {
		amenities = append(amenities, "Breakfast Included")
	}

	location := r.City
	if r.CityInTrans != "" {
		location = strings.TrimPrefix(r.CityInTrans, "in ")
	}

	checkin := r.Checkin.From
	if checkin == "" {
		checkin = "3:00 PM"
	}
	checkout := r.Checkout.Until
	if checkout == "" {
		checkout = "11:00 AM"
	}

	cancellation := "Check hotel policy"
	if r.IsFreeCancellable != 0 {
		cancellation = "Free cancellation"
	}
	prepayment := "Prepayment required"
	if r.IsNoPrepaymentBlock != 0 {
		prepayment = "No prepayment needed"
	}

	roomConfig := r.UnitConfigurationLabel
	if roomConfig == "" {
		roomConfig = "Standard Room"
	}

	return map[string]any{
		"hotelId":   int(r.HotelID),
		"hotelName": nameOr(r.HotelName, "Unknown Hotel"),
		"location":  location,
		"city":      r.City,
		"coordinates": map[string]any{
			"latitude":  r.Latitude,
			"longitude": r.Longitude,
		},
		"rating":      NormalizeRating(r.ReviewScore),
		"ratingWord":  r.ReviewScoreWord,
		"reviewCount": int(r.ReviewCount),
		"hotelClass":  int(r.Class),
		"pricing": map[string]any{
			"pricePerNight": round2(pricePerNight),
			"totalPrice":    round2(totalPrice),
			"currency":      currency,
			"netAmount":     round2(r.CompositePriceBreakdown.NetAmount.Value),
			"priceDisplay":  priceDisplay,
		},
		"roomConfiguration": roomConfig,
		"amenities":         amenities,
		"photos":            map[string]any{"main": r.MainPhotoURL},
		"policies": map[string]any{
			"checkIn":      checkin,
			"checkOut":     checkout,
			"cancellation": cancellation,
			"prepayment":   prepayment,
		},
		"features": map[string]any{
			"swimmingPool":      r.HasSwimmingPool != 0,
			"freeCancellation":  r.IsFreeCancellable != 0,
			"breakfastIncluded": r.HotelIncludeBreakfast != 0,
			"geniusDeal":        r.IsGeniusDeal != 0,
			"smartDeal":         r.IsSmartDeal != 0,
		},
		"availability": map[string]any{
			"soldOut":  r.SoldOut != 0,
			"cantBook": r.CantBook != nil,
		},
	}
}

// NormalizeRating maps review scores to a 5-point-style scale: scores above
// 10 are treated as a 0-100 scale and divided by 10; a score of exactly 10
// or below passes through unchanged.
func NormalizeRating(score float64) float64 {
	if score > 10 {
		return score / 10
	}
	return score
}

func summarizeHotels(hotels []map[string]any, currency string) map[string]any {
	var (
		priceSum, minPrice, maxPrice float64
		priced                       int
		ratingSum                    float64
		rated                        int
		classes                      []int
		seenClasses                  = map[int]bool{}
	)
	for _, h := range hotels {
		pricing := h["pricing"].(map[string]any)
		if p := pricing["pricePerNight"].(float64); p > 0 {
			if priced == 0 || p < minPrice {
				minPrice = p
			}
			if p > maxPrice {
				maxPrice = p
			}
			priceSum += p
			priced++
		}
		if r := h["rating"].(float64); r > 0 {
			ratingSum += r
			rated++
		}
		if c := h["hotelClass"].(int); c > 0 && !seenClasses[c] {
			seenClasses[c] = true
			classes = append(classes, c)
		}
	}

	avgPrice := 0.0
	priceRange := "N/A"
	if priced > 0 {
		avgPrice = round2(priceSum / float64(priced))
		priceRange = fmt.Sprintf("%.2f - %.2f %s", minPrice, maxPrice, currency)
	}
	avgRating := 0.0
	if rated > 0 {
		avgRating = math.Round(ratingSum/float64(rated)*10) / 10
	}

	return map[string]any{
		"totalHotels":          len(hotels),
		"hotelsDisplayed":      len(hotels),
		"averagePricePerNight": avgPrice,
		"priceRangePerNight":   priceRange,
		"averageRating":        avgRating,
		"hotelClasses":         classes,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func nameOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
