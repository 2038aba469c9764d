// Package catalog holds the locations a round's secret is drawn from.
package catalog

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/spyfall/internal/common/random"
)

// ErrEmptyCatalog is returned when a catalog is built without locations
var ErrEmptyCatalog = errors.New("catalog must contain at least one location")

// defaultLocations is the built-in location list
var defaultLocations = []string{
	"Airplane",
	"Bank",
	"Beach",
	"Casino",
	"Cathedral",
	"Circus Tent",
	"Corporate Party",
	"Crusader Army",
	"Day Spa",
	"Embassy",
	"Hospital",
	"Hotel",
	"Military Base",
	"Movie Studio",
	"Ocean Liner",
	"Passenger Train",
	"Pirate Ship",
	"Polar Station",
	"Police Station",
	"Restaurant",
	"School",
	"Service Station",
	"Space Station",
	"Submarine",
}

// Catalog is an immutable list of candidate locations
type Catalog struct {
	locations []string
	index     map[string]struct{}
}

// New creates a catalog from the given locations
func New(locations []string) (*Catalog, error) {
	if len(locations) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		locations: make([]string, 0, len(locations)),
		index:     make(map[string]struct{}, len(locations)),
	}
	for _, loc := range locations {
		if loc == "" {
			return nil, errors.New("location name cannot be empty")
		}
		if _, ok := c.index[loc]; ok {
			return nil, fmt.Errorf("duplicate location %q", loc)
		}
		c.index[loc] = struct{}{}
		c.locations = append(c.locations, loc)
	}

	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(defaultLocations)
	if err != nil {
		panic(err)
	}
	return c
}

// Pick returns a location chosen uniformly at random
func (c *Catalog) Pick(r random.Random) string {
	return c.locations[r.Intn(len(c.locations))]
}

// Contains reports whether name is an exact match for a catalog location
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Locations returns a copy of the locations in catalog order
func (c *Catalog) Locations() []string {
	out := make([]string, len(c.locations))
	copy(out, c.locations)
	return out
}

// Len returns the number of locations
func (c *Catalog) Len() int {
	return len(c.locations)
}
