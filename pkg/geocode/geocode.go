// Package geocode resolves free-form origins and destinations to coordinates.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"googlemaps.github.io/maps"
)

// ErrNotFound is returned when no geocoder could resolve a query
var ErrNotFound = errors.New("location not found")

// Geocoder turns a place description into a coordinate
type Geocoder interface {
	Geocode(ctx context.Context, query string) (maps.LatLng, error)
}

// Func adapts a plain function to the Geocoder interface
type Func func(ctx context.Context, query string) (maps.LatLng, error)

func (f Func) Geocode(ctx context.Context, query string) (maps.LatLng, error) {
	return f(ctx, query)
}

// Coordinates resolves literal "lat,lng" strings without any network call
type Coordinates struct{}

func (Coordinates) Geocode(_ context.Context, query string) (maps.LatLng, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(query), " ", "")
	if strings.Count(cleaned, ",") != 1 {
		return maps.LatLng{}, fmt.Errorf("%w: %q is not a lat,lng pair", ErrNotFound, query)
	}

	ll, err := maps.ParseLatLng(cleaned)
	if err != nil {
		return maps.LatLng{}, fmt.Errorf("%w: %q is not a lat,lng pair", ErrNotFound, query)
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return maps.LatLng{}, fmt.Errorf("coordinate out of range: %q", query)
	}
	return ll, nil
}

// Chain tries each geocoder in order and returns the first success.
// Only ErrNotFound moves on to the next geocoder; any other error stops the chain.
type Chain []Geocoder

func (c Chain) Geocode(ctx context.Context, query string) (maps.LatLng, error) {
	for _, g := range c {
		ll, err := g.Geocode(ctx, query)
		if err == nil {
			return ll, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return maps.LatLng{}, err
		}
	}
	return maps.LatLng{}, fmt.Errorf("%w: %q", ErrNotFound, query)
}

// Cached keeps recent answers of another geocoder in an LRU with expiry
type Cached struct {
	next  Geocoder
	cache gcache.Cache
}

// NewCached wraps next with an LRU of the given size whose entries live for ttl
func NewCached(next Geocoder, size int, ttl time.Duration) *Cached {
	return &Cached{
		next: next,
		cache: gcache.New(size).
			LRU().
			Expiration(ttl).
			Build(),
	}
}

func (c *Cached) Geocode(ctx context.Context, query string) (maps.LatLng, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	if v, err := c.cache.Get(key); err == nil {
		if ll, ok := v.(maps.LatLng); ok {
			return ll, nil
		}
	}

	ll, err := c.next.Geocode(ctx, query)
	if err != nil {
		return maps.LatLng{}, err
	}

	_ = c.cache.Set(key, ll)
	return ll, nil
}
