package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"hootroot/pkg/directions"

	ics "github.com/arran4/golang-ical"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ModeTitle renders a travel mode for people, e.g. SUBWAYING -> "Subwaying"
func ModeTitle(m directions.TravelMode) string {
	return cases.Title(language.English).String(strings.ToLower(string(m)))
}

// GenerateICS writes the first route of result as a calendar, one event per step,
// laid end to end from the departure time. Steps that take no time are folded
// into the description of the following event.
func GenerateICS(result *directions.Result, departure time.Time, w io.Writer) error {
	if result == nil || len(result.Routes) == 0 {
		return fmt.Errorf("no route to export")
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	route := result.Routes[0]
	start := departure
	var pending []string

	for li, leg := range route.Legs {
		for si, step := range leg.Steps {
			instructions := directions.PlainInstructions(step.Instructions)

			if step.Duration.Value <= 0 {
				pending = append(pending, instructions)
				continue
			}

			end := start.Add(time.Duration(step.Duration.Value) * time.Second)

			event := cal.AddEvent(fmt.Sprintf("%s-%d-%d", departure.UTC().Format("20060102T150405Z"), li, si))
			event.SetCreatedTime(time.Now())
			event.SetDtStampTime(time.Now())
			event.SetModifiedAt(time.Now())
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(fmt.Sprintf("%s: %s", ModeTitle(step.TravelMode), instructions))
			event.SetLocation(fmt.Sprintf("%.6f,%.6f", step.StartLocation.Lat, step.StartLocation.Lng))

			desc := strings.Join(append(pending, instructions), "\n")
			desc += fmt.Sprintf("\nDistance: %s\nDuration: %s", step.Distance.Text, step.Duration.Text)
			if route.Copyrights != "" {
				desc += "\n" + route.Copyrights
			}
			event.SetDescription(desc)

			pending = nil
			start = end
		}
	}

	return cal.SerializeTo(w)
}
