package hopstop

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestHopStopIntegration_Fetch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if os.Getenv("HOOTROOT_INTEGRATION") == "" {
		t.Skip("Set HOOTROOT_INTEGRATION to run against a live HopStop proxy")
	}

	client := NewClient(WithBaseURL(os.Getenv("HOPSTOP_URL")))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Bushwick to Herald Square
	result, err := client.Fetch(ctx, Params{
		X1: -73.90871, Y1: 40.6819,
		X2: -73.983644, Y2: 40.746824,
		Mode: ModePublicTransit, When: WhenNow,
	})
	if err != nil {
		t.Fatalf("Failed to fetch directions: %v", err)
	}

	for _, step := range result.Steps {
		if step.Type == "" {
			t.Errorf("Step missing type: %+v", step)
		}
	}
}
