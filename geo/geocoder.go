// Package geo resolves free-form place names to coordinates.
//
// The primary path is the OpenStreetMap Nominatim search endpoint, which is
// free and needs no API key. When Nominatim is unreachable or returns no
// match, a small table of common US cities keeps the happy path working
// offline.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// String renders the pair the way search responses echo it.
func (c Coordinates) String() string {
	return fmt.Sprintf("%g, %g", c.Lat, c.Lon)
}

// fallbackCities covers the markets the hotel search is most often asked
// about, so a Nominatim outage does not take the whole tool down.
var fallbackCities = map[string]Coordinates{
	"austin":        {30.2672, -97.7431},
	"san francisco": {37.7749, -122.4194},
	"new york":      {40.7128, -74.0060},
	"miami":         {25.7617, -80.1918},
	"chicago":       {41.8781, -87.6298},
	"los angeles":   {34.0522, -118.2437},
	"seattle":       {47.6062, -122.3321},
	"denver":        {39.7392, -104.9903},
	"atlanta":       {33.7490, -84.3880},
	"boston":        {42.3601, -71.0589},
}

// Doer abstracts the HTTP round trip for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeocoderConfig configures a Geocoder. Zero values pick sensible defaults.
type GeocoderConfig struct {
	// BaseURL overrides the Nominatim search endpoint.
	BaseURL string
	// UserAgent is sent on every request; Nominatim requires one.
	UserAgent string
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient Doer
}

// Geocoder resolves city names via Nominatim with a static fallback.
type Geocoder struct {
	baseURL   string
	userAgent string
	client    Doer
}

// NewGeocoder creates a geocoder from config.
func NewGeocoder(cfg GeocoderConfig) *Geocoder {
	g := &Geocoder{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    cfg.HTTPClient,
	}
	if g.baseURL == "" {
		g.baseURL = defaultNominatimURL
	}
	if g.userAgent == "" {
		g.userAgent = "tripflow/1.0"
	}
	if g.client == nil {
		g.client = &http.Client{Timeout: 10 * time.Second}
	}
	return g
}

// Resolve returns coordinates for a city name. The first Nominatim hit wins;
// lookup failures fall back to the static city table before erroring.
func (g *Geocoder) Resolve(ctx context.Context, city string) (Coordinates, error) {
	coords, err := g.lookup(ctx, city)
	if err == nil {
		return coords, nil
	}

	if fallback, ok := fallbackCities[strings.ToLower(strings.TrimSpace(city))]; ok {
		return fallback, nil
	}
	return Coordinates{}, fmt.Errorf("geo: resolve %q: %w", city, err)
}

func (g *Geocoder) lookup(ctx context.Context, city string) (Coordinates, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: build request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geo: nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: read nominatim response: %w", err)
	}

	var places []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.Unmarshal(body, &places); err != nil {
		return Coordinates{}, fmt.Errorf("geo: decode nominatim response: %w", err)
	}
	if len(places) == 0 {
		return Coordinates{}, fmt.Errorf("geo: city %q not found", city)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: parse longitude: %w", err)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}
