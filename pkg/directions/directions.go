// Package directions fetches transit directions from HopStop and presents them
// in the mapping provider's routes/legs/steps shape.
package directions

import (
	"context"
	"fmt"

	"hootroot/pkg/config"
	"hootroot/pkg/geocode"
	"hootroot/pkg/hopstop"

	"golang.org/x/sync/errgroup"
	"googlemaps.github.io/maps"
)

// Fetcher is the part of the HopStop client that directions depend on
type Fetcher interface {
	Fetch(ctx context.Context, p hopstop.Params) (*hopstop.Result, error)
}

// AllWalkingSegmentsError is returned when HopStop's best transit answer never leaves the sidewalk
type AllWalkingSegmentsError struct {
	Message string
}

func (e *AllWalkingSegmentsError) Error() string {
	return "all walking segments: " + e.Message
}

// HopStopDirections plans one trip between two places through HopStop
type HopStopDirections struct {
	Origin      string
	Destination string
	Mode        TravelMode
	When        string

	OriginLatLng      maps.LatLng
	DestinationLatLng maps.LatLng

	DirectionsResult *Result
	Segments         []Segment
	DistanceInKm     float64

	hopstop       Fetcher
	geocoder      geocode.Geocoder
	directDefault func() bool
}

// Option configures a HopStopDirections
type Option func(*HopStopDirections)

func WithFetcher(f Fetcher) Option {
	return func(d *HopStopDirections) { d.hopstop = f }
}

func WithGeocoder(g geocode.Geocoder) Option {
	return func(d *HopStopDirections) { d.geocoder = g }
}

// WithDirectDefault replaces the TRANSIT_DIRECT_DEFAULT lookup
func WithDirectDefault(f func() bool) Option {
	return func(d *HopStopDirections) { d.directDefault = f }
}

// New prepares directions from origin to destination. An empty mode means
// PUBLICTRANSIT and an empty when means "now".
func New(origin, destination string, mode TravelMode, when string, opts ...Option) *HopStopDirections {
	if mode == "" {
		mode = PublicTransit
	}
	if when == "" {
		when = hopstop.WhenNow
	}

	d := &HopStopDirections{
		Origin:        origin,
		Destination:   destination,
		Mode:          mode,
		When:          when,
		hopstop:       hopstop.NewClient(),
		geocoder:      geocode.Chain{geocode.Coordinates{}, geocode.NewNominatim("")},
		directDefault: config.TransitDirectDefault,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HopStopMode maps a requested travel mode to the proxy's mode parameter
func HopStopMode(m TravelMode) string {
	switch m {
	case Subwaying:
		return hopstop.ModeSubway
	case Bussing:
		return hopstop.ModeBus
	default:
		return hopstop.ModePublicTransit
	}
}

// Params builds the HopStop query from the geocoded endpoints
func (d *HopStopDirections) Params() hopstop.Params {
	return hopstop.Params{
		X1:   d.OriginLatLng.Lng,
		Y1:   d.OriginLatLng.Lat,
		X2:   d.DestinationLatLng.Lng,
		Y2:   d.DestinationLatLng.Lat,
		Mode: HopStopMode(d.Mode),
		When: d.When,
	}
}

// Geocode resolves origin and destination concurrently
func (d *HopStopDirections) Geocode(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	var origin, destination maps.LatLng
	g.Go(func() error {
		ll, err := d.geocoder.Geocode(ctx, d.Origin)
		if err != nil {
			return fmt.Errorf("could not geocode origin %q: %w", d.Origin, err)
		}
		origin = ll
		return nil
	})
	g.Go(func() error {
		ll, err := d.geocoder.Geocode(ctx, d.Destination)
		if err != nil {
			return fmt.Errorf("could not geocode destination %q: %w", d.Destination, err)
		}
		destination = ll
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	d.OriginLatLng = origin
	d.DestinationLatLng = destination
	return nil
}

// FetchHopStop sends the current params to HopStop
func (d *HopStopDirections) FetchHopStop(ctx context.Context) (*hopstop.Result, error) {
	return d.hopstop.Fetch(ctx, d.Params())
}

// StoreRoute keeps a translated result and derives its segments and distance
func (d *HopStopDirections) StoreRoute(r *Result) {
	d.DirectionsResult = r
	d.Segments = SegmentsFromResult(r)
	d.DistanceInKm = d.CalculateDistance()
}

// IsAllWalkingSegments reports whether every stored segment is walked.
// A route with no segments counts as all walking.
func (d *HopStopDirections) IsAllWalkingSegments() bool {
	for _, s := range d.Segments {
		if !s.IsWalking() {
			return false
		}
	}
	return true
}

// CalculateDistance sums the distance of every stored step in kilometers
func (d *HopStopDirections) CalculateDistance() float64 {
	if d.DirectionsResult == nil || len(d.DirectionsResult.Routes) == 0 {
		return 0
	}

	meters := 0
	for _, leg := range d.DirectionsResult.Routes[0].Legs {
		for _, step := range leg.Steps {
			meters += step.Distance.Value
		}
	}
	return float64(meters) / 1000
}

// Route geocodes, fetches and translates. On failure it hands the error to the
// fallback registered for the mode, which may substitute a direct route.
func (d *HopStopDirections) Route(ctx context.Context) (*Result, error) {
	result, err := d.route(ctx)
	if err == nil {
		return result, nil
	}

	if fallback := fallbackFor(d.Mode); fallback != nil {
		return fallback(ctx, d, err)
	}
	return nil, err
}

func (d *HopStopDirections) route(ctx context.Context) (*Result, error) {
	if err := d.Geocode(ctx); err != nil {
		return nil, err
	}

	hs, err := d.FetchHopStop(ctx)
	if err != nil {
		return nil, err
	}

	d.StoreRoute(TranslateRoute(hs))

	if d.IsAllWalkingSegments() {
		return nil, &AllWalkingSegmentsError{
			Message: fmt.Sprintf("no %s found between %s and %s", d.Mode, d.Origin, d.Destination),
		}
	}

	return d.DirectionsResult, nil
}
