package directions

import (
	"time"
)

// Segment is one travelled piece of a route, classified by mode
type Segment struct {
	Index        int
	Mode         TravelMode
	DistanceKm   float64
	Duration     time.Duration
	Instructions string
}

func (s Segment) IsWalking() bool {
	return s.Mode == Walking
}

// SegmentsFromResult builds one segment per step across every leg of the first route
func SegmentsFromResult(r *Result) []Segment {
	if r == nil || len(r.Routes) == 0 {
		return nil
	}

	var segments []Segment
	for _, leg := range r.Routes[0].Legs {
		for _, step := range leg.Steps {
			segments = append(segments, Segment{
				Index:        len(segments),
				Mode:         step.TravelMode,
				DistanceKm:   float64(step.Distance.Value) / 1000,
				Duration:     time.Duration(step.Duration.Value) * time.Second,
				Instructions: step.Instructions,
			})
		}
	}
	return segments
}

// Summarize merges consecutive segments travelled the same way so a walk,
// a station entrance and a transfer collapse into a single walking segment.
// The merged segment keeps the index and instructions of its first part.
func Summarize(segments []Segment) []Segment {
	var out []Segment
	for _, s := range segments {
		if n := len(out); n > 0 && out[n-1].Mode == s.Mode {
			out[n-1].DistanceKm += s.DistanceKm
			out[n-1].Duration += s.Duration
			continue
		}
		out = append(out, s)
	}
	return out
}
