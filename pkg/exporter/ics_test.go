package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"hootroot/pkg/directions"
	"hootroot/pkg/hopstop"
)

func sampleResult() *directions.Result {
	distance := 9100
	return directions.TranslateRoute(&hopstop.Result{
		Steps: []hopstop.Step{
			{
				Type:          "W",
				Duration:      240,
				Instructions:  "Start out on <b>Broadway</b>",
				StartPosition: &hopstop.Position{Lat: 40.6819, Lon: -73.90871},
				EndPosition:   &hopstop.Position{Lat: 40.68265, Lon: -73.91002},
			},
			{
				Type:          "E",
				Instructions:  "Enter the Halsey St station",
				StartPosition: &hopstop.Position{Lat: 40.68265, Lon: -73.91002},
			},
			{
				Type:          "S",
				Duration:      1320,
				Distance:      &distance,
				Instructions:  "Take the J train",
				StartPosition: &hopstop.Position{Lat: 40.68265, Lon: -73.91002},
				EndPosition:   &hopstop.Position{Lat: 40.74577, Lon: -73.98222},
			},
		},
	})
}

func TestGenerateICS(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	departure := time.Date(2026, 3, 4, 8, 15, 0, 0, loc)

	var buf bytes.Buffer
	if err := GenerateICS(sampleResult(), departure, &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "SUMMARY:Walking: Start out on Broadway") {
		t.Errorf("Expected ICS to contain the walking step without markup, got: \n%s", output)
	}
	if !strings.Contains(output, "SUMMARY:Subwaying: Take the J train") {
		t.Errorf("Expected ICS to contain the subway step, got: \n%s", output)
	}
	if strings.Count(output, "BEGIN:VEVENT") != 2 {
		t.Errorf("Expected the zero-length station entrance to be folded away, got: \n%s", output)
	}
	if !strings.Contains(output, "Enter the Halsey St station") {
		t.Errorf("Expected the station entrance in the subway description")
	}

	// 04-Mar-2026 08:15 New York time is 13:15 UTC; the subway leaves 4 minutes later.
	if !strings.Contains(output, "DTSTART:20260304T131500Z") {
		t.Errorf("Expected walking start time in UTC, got: \n%s", output)
	}
	if !strings.Contains(output, "DTSTART:20260304T131900Z") {
		t.Errorf("Expected subway start time in UTC, got: \n%s", output)
	}
}

func TestGenerateICS_NoRoute(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateICS(&directions.Result{}, time.Now(), &buf); err == nil {
		t.Errorf("expected an error for an empty result")
	}
}

func TestModeTitle(t *testing.T) {
	if got := ModeTitle(directions.LightRailing); got != "Lightrailing" {
		t.Errorf("expected Lightrailing, got %s", got)
	}
}
