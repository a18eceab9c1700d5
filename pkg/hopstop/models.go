package hopstop

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Modes accepted by the /hopstops endpoint
const (
	ModePublicTransit = "PUBLICTRANSIT"
	ModeSubway        = "SUBWAY"
	ModeBus           = "BUS"
)

// WhenNow asks HopStop for the next departures from the current time
const WhenNow = "now"

// ValidateWhen accepts an empty value, "now" or an RFC 3339 timestamp
func ValidateWhen(when string) error {
	if when == "" || when == WhenNow {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, when); err != nil {
		return fmt.Errorf("invalid departure time %q: use %q or RFC 3339", when, WhenNow)
	}
	return nil
}

// Params are the query parameters sent to /hopstops.
// X is longitude and Y is latitude.
type Params struct {
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
	Mode string  `json:"mode"`
	When string  `json:"when"`
}

// Encode renders the params as a query string in the order the proxy documents:
// x1, y1, x2, y2, mode, when
func (p Params) Encode() string {
	mode := p.Mode
	if mode == "" {
		mode = ModePublicTransit
	}
	when := p.When
	if when == "" {
		when = WhenNow
	}

	parts := []string{
		"x1=" + formatCoord(p.X1),
		"y1=" + formatCoord(p.Y1),
		"x2=" + formatCoord(p.X2),
		"y2=" + formatCoord(p.Y2),
		"mode=" + url.QueryEscape(mode),
		"when=" + url.QueryEscape(when),
	}
	return strings.Join(parts, "&")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Result is the body returned by /hopstops
type Result struct {
	Duration int    `json:"duration"`
	Steps    []Step `json:"steps"`
	Error    string `json:"error,omitempty"`
}

// Step is one instruction of a HopStop itinerary.
// Type is a single letter: W walk, E station entrance/exit, T transfer,
// S subway, B bus, R rail, L light rail, F ferry.
type Step struct {
	Type          string    `json:"type"`
	Duration      int       `json:"duration"`
	Distance      *int      `json:"distance,omitempty"` // meters, not always present
	Instructions  string    `json:"instructions"`
	StartPosition *Position `json:"start_position,omitempty"`
	EndPosition   *Position `json:"end_position,omitempty"`
}

// Position is a HopStop coordinate pair
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Error is returned when HopStop answers but cannot provide directions
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hopstop error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("hopstop error: %s", e.Message)
}
