package directions

import (
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// TravelMode names how a step or route is travelled
type TravelMode string

const (
	Walking       TravelMode = "WALKING"
	Driving       TravelMode = "DRIVING"
	Bicycling     TravelMode = "BICYCLING"
	PublicTransit TravelMode = "PUBLICTRANSIT"
	Subwaying     TravelMode = "SUBWAYING"
	Bussing       TravelMode = "BUSSING"
	Railing       TravelMode = "RAILING"
	LightRailing  TravelMode = "LIGHTRAILING"
	Ferrying      TravelMode = "FERRYING"
)

var travelModes = []TravelMode{
	Walking, Driving, Bicycling, PublicTransit, Subwaying, Bussing, Railing, LightRailing, Ferrying,
}

// ParseTravelMode accepts a mode name in any case. An empty string means PUBLICTRANSIT.
func ParseTravelMode(s string) (TravelMode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return PublicTransit, nil
	}
	for _, m := range travelModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown travel mode %q", s)
}

// Result mirrors the mapping provider's DirectionsResult
type Result struct {
	Routes []Route `json:"routes"`
}

// Route mirrors DirectionsRoute
type Route struct {
	Bounds           maps.LatLngBounds `json:"bounds"`
	Copyrights       string            `json:"copyrights"`
	OverviewPath     []maps.LatLng     `json:"overview_path"`
	OverviewPolyline maps.Polyline     `json:"overview_polyline"`
	Legs             []Leg             `json:"legs"`
	Warnings         []string          `json:"warnings"`
}

// Leg mirrors DirectionsLeg
type Leg struct {
	Duration      TextValue     `json:"duration"`
	Distance      TextValue     `json:"distance"`
	StartAddress  string        `json:"start_address"`
	EndAddress    string        `json:"end_address"`
	StartLocation maps.LatLng   `json:"start_location"`
	EndLocation   maps.LatLng   `json:"end_location"`
	Steps         []Step        `json:"steps"`
	ViaWaypoints  []maps.LatLng `json:"via_waypoints"`
}

// Step mirrors DirectionsStep
type Step struct {
	Duration      TextValue     `json:"duration"`
	Distance      TextValue     `json:"distance"`
	StartLocation maps.LatLng   `json:"start_location"`
	EndLocation   maps.LatLng   `json:"end_location"`
	Instructions  string        `json:"instructions"`
	TravelMode    TravelMode    `json:"travel_mode"`
	Path          []maps.LatLng `json:"path"`
}

// TextValue is a numeric value with its human readable rendering.
// Durations are in seconds, distances in meters.
type TextValue struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

func durationValue(seconds int) TextValue {
	return TextValue{Value: seconds, Text: FormatDuration(seconds)}
}

func distanceValue(meters int) TextValue {
	return TextValue{Value: meters, Text: FormatDistance(meters)}
}

// FormatDuration renders seconds as "1 min", "12 mins", "1 hour 5 mins"
func FormatDuration(seconds int) string {
	minutes := (seconds + 30) / 60
	if minutes < 1 {
		minutes = 1
	}

	hours := minutes / 60
	minutes = minutes % 60

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	switch {
	case hours == 0:
		return plural(minutes, "min")
	case minutes == 0:
		return plural(hours, "hour")
	default:
		return plural(hours, "hour") + " " + plural(minutes, "min")
	}
}

// FormatDistance renders meters as "850 m" or "9.1 km"
func FormatDistance(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}
