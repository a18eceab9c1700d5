package directions

import (
	"context"
	"time"

	"hootroot/pkg/config"
	"hootroot/pkg/geocode"
	"hootroot/pkg/hopstop"
)

// Request describes one trip to plan
type Request struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Mode        TravelMode `json:"mode"`
	When        string     `json:"when"`
}

// Planner creates HopStopDirections that share one client and geocoder
type Planner struct {
	Fetcher       Fetcher
	Geocoder      geocode.Geocoder
	DirectDefault func() bool
}

// NewPlanner wires a planner from resolved configuration
func NewPlanner(cfg config.AppConfig) *Planner {
	directDefault := cfg.TransitDirectDefault
	return &Planner{
		Fetcher: hopstop.NewClient(
			hopstop.WithBaseURL(cfg.HopStopURL),
			hopstop.WithCache(cfg.CacheEnabled),
		),
		Geocoder: geocode.Chain{
			geocode.Coordinates{},
			geocode.NewCached(geocode.NewNominatim(cfg.GeocoderURL), 1000, 24*time.Hour),
		},
		DirectDefault: func() bool { return directDefault },
	}
}

// New builds directions for req using the planner's dependencies
func (p *Planner) New(req Request) *HopStopDirections {
	var opts []Option
	if p.Fetcher != nil {
		opts = append(opts, WithFetcher(p.Fetcher))
	}
	if p.Geocoder != nil {
		opts = append(opts, WithGeocoder(p.Geocoder))
	}
	if p.DirectDefault != nil {
		opts = append(opts, WithDirectDefault(p.DirectDefault))
	}
	return New(req.Origin, req.Destination, req.Mode, req.When, opts...)
}

// Route plans req and returns the translated result
func (p *Planner) Route(ctx context.Context, req Request) (*Result, error) {
	return p.New(req).Route(ctx)
}
