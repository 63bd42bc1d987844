// Package rail provides train route search over a seeded route catalog.
//
// Routes are mock data modeled on real US rail corridors. Production use
// would swap the schedule generator for a live operator API while keeping
// the catalog as fallback reference data.
package rail

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS routes (
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	operator TEXT NOT NULL,
	distance TEXT NOT NULL,
	base_duration_min INTEGER NOT NULL,
	base_price INTEGER NOT NULL,
	PRIMARY KEY (origin, destination)
);
CREATE TABLE IF NOT EXISTS city_aliases (
	alias TEXT PRIMARY KEY,
	canonical TEXT NOT NULL
);`

// Route is one rail corridor between two cities.
type Route struct {
	Origin      string
	Destination string
	Operator    string
	Distance    string
	// BaseDuration is the typical end-to-end travel time in minutes.
	BaseDuration int
	// BasePrice is the coach fare per person in whole dollars.
	BasePrice int
}

type seedRoute struct {
	origin, destination, operator, distance string
	durationMin, price                      int
}

var seedRoutes = []seedRoute{
	{"NYC", "Boston", "Amtrak Northeast Regional", "230 miles", 240, 120},
	{"NYC", "Philadelphia", "Amtrak Northeast Regional", "95 miles", 90, 65},
	{"NYC", "Washington DC", "Amtrak Northeast Regional", "225 miles", 180, 110},
	{"Chicago", "Milwaukee", "Amtrak Hiawatha", "85 miles", 90, 45},
	{"San Francisco", "Los Angeles", "Amtrak Coast Starlight", "470 miles", 720, 180},
	{"Seattle", "Portland", "Amtrak Cascades", "173 miles", 210, 85},
	{"Austin", "Dallas", "Texas Central Railway", "200 miles", 180, 95},
	{"Miami", "Orlando", "Brightline", "235 miles", 210, 120},
}

var seedAliases = map[string]string{
	"New York":      "NYC",
	"New York City": "NYC",
	"SF":            "San Francisco",
	"LA":            "Los Angeles",
	"Washington":    "Washington DC",
	"DC":            "Washington DC",
}

// Catalog is the SQLite-backed route reference data.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens (or creates) a catalog at dsn and seeds it with the
// known corridors. Use ":memory:" for an ephemeral catalog.
func OpenCatalog(dsn string) (*Catalog, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("rail: catalog dsn is required")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("rail: open catalog: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("rail: set WAL mode: %w", err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("rail: create catalog schema: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.seed(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) seed() error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("rail: seed catalog: %w", err)
	}
	defer tx.Rollback()

	for _, r := range seedRoutes {
		if _, err := tx.Exec(`
INSERT OR REPLACE INTO routes (origin, destination, operator, distance, base_duration_min, base_price)
VALUES (?, ?, ?, ?, ?, ?)`,
			r.origin, r.destination, r.operator, r.distance, r.durationMin, r.price); err != nil {
			return fmt.Errorf("rail: seed route %s-%s: %w", r.origin, r.destination, err)
		}
	}
	for alias, canonical := range seedAliases {
		if _, err := tx.Exec(`
INSERT OR REPLACE INTO city_aliases (alias, canonical) VALUES (?, ?)`, alias, canonical); err != nil {
			return fmt.Errorf("rail: seed alias %s: %w", alias, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rail: seed catalog commit: %w", err)
	}
	return nil
}

// Normalize maps a city name through the alias table; unknown names pass
// through unchanged.
func (c *Catalog) Normalize(ctx context.Context, city string) (string, error) {
	var canonical string
	err := c.db.QueryRowContext(ctx,
		`SELECT canonical FROM city_aliases WHERE alias = ?`, city).Scan(&canonical)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return city, nil
	case err != nil:
		return "", fmt.Errorf("rail: normalize city: %w", err)
	}
	return canonical, nil
}

// Lookup finds the corridor between two cities, trying the reverse direction
// when the forward one is not listed. The boolean reports whether a route
// was found at all.
func (c *Catalog) Lookup(ctx context.Context, from, to string) (Route, bool, error) {
	fromCity, err := c.Normalize(ctx, from)
	if err != nil {
		return Route{}, false, err
	}
	toCity, err := c.Normalize(ctx, to)
	if err != nil {
		return Route{}, false, err
	}

	route, found, err := c.lookupDirect(ctx, fromCity, toCity)
	if err != nil || found {
		return route, found, err
	}
	return c.lookupDirect(ctx, toCity, fromCity)
}

func (c *Catalog) lookupDirect(ctx context.Context, origin, destination string) (Route, bool, error) {
	var route Route
	err := c.db.QueryRowContext(ctx, `
SELECT origin, destination, operator, distance, base_duration_min, base_price
FROM routes WHERE origin = ? AND destination = ?`, origin, destination).
		Scan(&route.Origin, &route.Destination, &route.Operator,
			&route.Distance, &route.BaseDuration, &route.BasePrice)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Route{}, false, nil
	case err != nil:
		return Route{}, false, fmt.Errorf("rail: lookup route: %w", err)
	}
	return route, true, nil
}

// Corridors lists every seeded corridor as "Origin → Destination", in
// deterministic order. Used in no-route failure messages.
func (c *Catalog) Corridors(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT origin, destination FROM routes ORDER BY origin, destination`)
	if err != nil {
		return nil, fmt.Errorf("rail: list corridors: %w", err)
	}
	defer rows.Close()

	var corridors []string
	for rows.Next() {
		var origin, destination string
		if err := rows.Scan(&origin, &destination); err != nil {
			return nil, fmt.Errorf("rail: scan corridor: %w", err)
		}
		corridors = append(corridors, origin+" → "+destination)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rail: iterate corridors: %w", err)
	}
	return corridors, nil
}

// Close releases the underlying database handle.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
