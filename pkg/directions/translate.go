package directions

import (
	"math"

	"hootroot/pkg/geo"
	"hootroot/pkg/hopstop"

	"googlemaps.github.io/maps"
)

// HopStopCopyright is attached to every route translated from HopStop
const HopStopCopyright = "Copyright HopStop.com, Inc."

// stepModes maps HopStop step types onto travel modes.
// Entrances, exits and transfers are walked.
var stepModes = map[string]TravelMode{
	"W": Walking,
	"E": Walking,
	"T": Walking,
	"S": Subwaying,
	"B": Bussing,
	"R": Railing,
	"L": LightRailing,
	"F": Ferrying,
}

// StepTravelMode returns the travel mode for a HopStop step type, defaulting to walking
func StepTravelMode(stepType string) TravelMode {
	if m, ok := stepModes[stepType]; ok {
		return m
	}
	return Walking
}

func toLatLng(p *hopstop.Position) maps.LatLng {
	return maps.LatLng{Lat: p.Lat, Lng: p.Lon}
}

// TranslateRoute reshapes a HopStop answer into a single-route, single-leg directions result
func TranslateRoute(hs *hopstop.Result) *Result {
	steps := GenerateSteps(hs.Steps)
	path := GenerateOverviewPath(hs.Steps)

	duration := hs.Duration
	meters := 0
	stepSeconds := 0
	for _, s := range steps {
		meters += s.Distance.Value
		stepSeconds += s.Duration.Value
	}
	if duration == 0 {
		duration = stepSeconds
	}

	leg := Leg{
		Duration:     durationValue(duration),
		Distance:     distanceValue(meters),
		Steps:        steps,
		ViaWaypoints: []maps.LatLng{},
	}
	if len(steps) > 0 {
		leg.StartLocation = steps[0].StartLocation
		leg.EndLocation = steps[len(steps)-1].EndLocation
	}

	route := Route{
		Bounds:           geo.Bounds(path),
		Copyrights:       HopStopCopyright,
		OverviewPath:     path,
		OverviewPolyline: maps.Polyline{Points: maps.Encode(path)},
		Legs:             []Leg{leg},
		Warnings:         []string{},
	}

	return &Result{Routes: []Route{route}}
}

// GenerateOverviewPath lists the start and end positions of every step in order,
// dropping consecutive duplicates and steps that carry no position
func GenerateOverviewPath(steps []hopstop.Step) []maps.LatLng {
	path := []maps.LatLng{}

	add := func(p *hopstop.Position) {
		if p == nil {
			return
		}
		ll := toLatLng(p)
		if len(path) > 0 && geo.Equal(path[len(path)-1], ll) {
			return
		}
		path = append(path, ll)
	}

	for _, s := range steps {
		add(s.StartPosition)
		add(s.EndPosition)
	}

	return path
}

// GenerateSteps converts HopStop steps one for one.
// A step missing one position borrows the other; missing both, it sits where the previous step ended.
func GenerateSteps(steps []hopstop.Step) []Step {
	out := make([]Step, 0, len(steps))
	var last maps.LatLng

	for _, s := range steps {
		start, end := last, last
		switch {
		case s.StartPosition != nil && s.EndPosition != nil:
			start, end = toLatLng(s.StartPosition), toLatLng(s.EndPosition)
		case s.StartPosition != nil:
			start = toLatLng(s.StartPosition)
			end = start
		case s.EndPosition != nil:
			end = toLatLng(s.EndPosition)
			start = end
		}

		path := []maps.LatLng{start, end}

		var meters int
		if s.Distance != nil {
			meters = *s.Distance
		} else {
			meters = int(math.Round(geo.PathKm(path) * 1000))
		}

		out = append(out, Step{
			Duration:      durationValue(s.Duration),
			Distance:      distanceValue(meters),
			StartLocation: start,
			EndLocation:   end,
			Instructions:  s.Instructions,
			TravelMode:    StepTravelMode(s.Type),
			Path:          path,
		})

		last = end
	}

	return out
}

// GenerateBounds returns the smallest box containing the path
func GenerateBounds(path []maps.LatLng) maps.LatLngBounds {
	return geo.Bounds(path)
}
