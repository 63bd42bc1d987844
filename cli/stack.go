package cli

import (
	"fmt"
	"log/slog"

	"github.com/petal-labs/tripflow"
	"github.com/petal-labs/tripflow/booking"
	"github.com/petal-labs/tripflow/config"
	"github.com/petal-labs/tripflow/geo"
	"github.com/petal-labs/tripflow/guide"
	"github.com/petal-labs/tripflow/rail"
	"github.com/petal-labs/tripflow/tools"
)

const (
	defaultRapidAPIBase = "https://booking-com15.p.rapidapi.com/api/v1"
	defaultRapidAPIHost = "booking-com15.p.rapidapi.com"
)

// toolStack is the fully wired tool set behind the MCP surface.
type toolStack struct {
	registry    *tripflow.Registry
	dispatcher  *tripflow.Dispatcher
	hotelClient *booking.Client
	catalog     *rail.Catalog
}

// close releases the stack's backing resources.
func (s *toolStack) close() {
	if s.catalog != nil {
		_ = s.catalog.Close()
	}
}

// buildToolStack wires the travel services, registry and dispatcher from
// config. The observer may be nil.
func buildToolStack(cfg *config.Config, logger *slog.Logger, observer tripflow.Observer) (*toolStack, error) {
	hotelClient, err := newAPIClient(cfg.HotelAPI.RapidAPI)
	if err != nil {
		return nil, fmt.Errorf("hotel api client: %w", err)
	}
	flightClient, err := newAPIClient(cfg.FlightAPI.RapidAPI)
	if err != nil {
		return nil, fmt.Errorf("flight api client: %w", err)
	}
	carClient, err := newAPIClient(cfg.CarAPI.RapidAPI)
	if err != nil {
		return nil, fmt.Errorf("car api client: %w", err)
	}

	catalog, err := rail.OpenCatalog(cfg.Rail.CatalogDSN)
	if err != nil {
		return nil, fmt.Errorf("rail catalog: %w", err)
	}

	geocoder := geo.NewGeocoder(geo.GeocoderConfig{})

	registry, err := tools.NewRegistry(tools.Services{
		Hotels: booking.NewHotelService(booking.HotelServiceConfig{
			Client:  hotelClient,
			Locator: geocoder,
			Logger:  logger,
		}),
		Flights: booking.NewFlightService(booking.FlightServiceConfig{
			Client: flightClient,
			Logger: logger,
		}),
		Cars: booking.NewCarService(booking.CarServiceConfig{
			Client: carClient,
			Logger: logger,
		}),
		Trains: rail.NewService(rail.ServiceConfig{
			Catalog: catalog,
			Logger:  logger,
		}),
		Itinerary: guide.NewService(guide.ServiceConfig{
			Logger: logger,
		}),
	})
	if err != nil {
		_ = catalog.Close()
		return nil, fmt.Errorf("building tool registry: %w", err)
	}

	dispatcher, err := tripflow.NewDispatcher(tripflow.DispatcherConfig{
		Registry: registry,
		Logger:   logger,
		Observer: observer,
	})
	if err != nil {
		_ = catalog.Close()
		return nil, fmt.Errorf("building dispatcher: %w", err)
	}

	return &toolStack{
		registry:    registry,
		dispatcher:  dispatcher,
		hotelClient: hotelClient,
		catalog:     catalog,
	}, nil
}

func newAPIClient(api config.RapidAPIConfig) (*booking.Client, error) {
	base := api.BaseURL
	if base == "" {
		base = defaultRapidAPIBase
	}
	host := api.Host
	if host == "" {
		host = defaultRapidAPIHost
	}
	return booking.NewClient(booking.ClientConfig{
		BaseURL: base,
		Host:    host,
		Key:     api.Key,
	})
}
