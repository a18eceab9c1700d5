package directions

import (
	"context"
	"errors"
	"fmt"
	"math"

	"hootroot/pkg/config"
	"hootroot/pkg/geo"
	"hootroot/pkg/hopstop"

	"googlemaps.github.io/maps"
)

// Average cruising speeds used to time a direct route
const (
	railSpeedKmh = 40.0
	busSpeedKmh  = 20.0
)

// DirectRouteWarning is attached to every direct route
const DirectRouteWarning = "Direct route estimate: transit directions were unavailable"

// FallbackFunc decides what to return when routing failed with cause
type FallbackFunc func(ctx context.Context, d *HopStopDirections, cause error) (*Result, error)

// Events holds the fallbacks used for SUBWAYING and BUSSING routes.
// Other modes have no fallback.
var Events = struct {
	RailFallback FallbackFunc
	BusFallback  FallbackFunc
}{
	RailFallback: railFallback,
	BusFallback:  busFallback,
}

func fallbackFor(mode TravelMode) FallbackFunc {
	switch mode {
	case Subwaying:
		return Events.RailFallback
	case Bussing:
		return Events.BusFallback
	default:
		return nil
	}
}

func railFallback(ctx context.Context, d *HopStopDirections, cause error) (*Result, error) {
	return d.directFallback(cause, Subwaying, railSpeedKmh)
}

func busFallback(ctx context.Context, d *HopStopDirections, cause error) (*Result, error) {
	return d.directFallback(cause, Bussing, busSpeedKmh)
}

func (d *HopStopDirections) directFallback(cause error, mode TravelMode, speedKmh float64) (*Result, error) {
	if !shouldDefault(cause, d.directDefault()) {
		return nil, cause
	}

	r := DirectRoute(d.OriginLatLng, d.DestinationLatLng, mode, speedKmh)
	d.StoreRoute(r)
	return r, nil
}

// ShouldDefaultTransitToDirectRoute reports whether a failed transit lookup should
// be replaced by a direct route: only for all-walking or HopStop errors, and only
// when TRANSIT_DIRECT_DEFAULT is true.
func ShouldDefaultTransitToDirectRoute(err error) bool {
	return shouldDefault(err, config.TransitDirectDefault())
}

func shouldDefault(err error, enabled bool) bool {
	if err == nil || !enabled {
		return false
	}

	var walkErr *AllWalkingSegmentsError
	var hsErr *hopstop.Error
	return errors.As(err, &walkErr) || errors.As(err, &hsErr)
}

// DirectRoute builds a one-step route straight from origin to destination,
// timed at the given average speed
func DirectRoute(origin, destination maps.LatLng, mode TravelMode, speedKmh float64) *Result {
	path := []maps.LatLng{origin, destination}
	km := geo.DistanceKm(origin, destination)

	seconds := 0
	if speedKmh > 0 {
		seconds = int(math.Round(km / speedKmh * 3600))
	}
	meters := int(math.Round(km * 1000))

	step := Step{
		Duration:      durationValue(seconds),
		Distance:      distanceValue(meters),
		StartLocation: origin,
		EndLocation:   destination,
		Instructions:  fmt.Sprintf("Travel directly to your destination (%s)", mode),
		TravelMode:    mode,
		Path:          path,
	}

	leg := Leg{
		Duration:      step.Duration,
		Distance:      step.Distance,
		StartLocation: origin,
		EndLocation:   destination,
		Steps:         []Step{step},
		ViaWaypoints:  []maps.LatLng{},
	}

	return &Result{Routes: []Route{{
		Bounds:           geo.Bounds(path),
		OverviewPath:     path,
		OverviewPolyline: maps.Polyline{Points: maps.Encode(path)},
		Legs:             []Leg{leg},
		Warnings:         []string{DirectRouteWarning},
	}}}
}
