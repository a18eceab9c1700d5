package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"hootroot/pkg/config"
	"hootroot/pkg/directions"
	"hootroot/pkg/exporter"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

var modeOptions = []huh.Option[string]{
	huh.NewOption("Any public transit", string(directions.PublicTransit)),
	huh.NewOption("Subway", string(directions.Subwaying)),
	huh.NewOption("Bus", string(directions.Bussing)),
}

var modeIcons = map[directions.TravelMode]string{
	directions.Walking:      "🚶",
	directions.Subwaying:    "🚇",
	directions.Bussing:      "🚌",
	directions.Railing:      "🚆",
	directions.LightRailing: "🚊",
	directions.Ferrying:     "⛴️",
}

// ErrAborted is returned when the user quits the spinner before planning finishes
var ErrAborted = errors.New("trip planning aborted")

// PlanWithSpinner plans req while showing a spinner and returns the directions
// so callers can reach both the result and its segments
func PlanWithSpinner(ctx context.Context, planner *directions.Planner, req directions.Request) (*directions.HopStopDirections, error) {
	d := planner.New(req)
	title := fmt.Sprintf("Asking HopStop for %s -> %s...", req.Origin, req.Destination)

	spin := func(spinCtx context.Context) error {
		return spinner.New().Title(title).Context(spinCtx).Run()
	}
	work := func(routeCtx context.Context) error {
		_, err := d.Route(routeCtx)
		return err
	}

	if err := runWhileSpinning(ctx, spin, work); err != nil {
		return nil, err
	}
	if d.DirectionsResult == nil || len(d.DirectionsResult.Routes) == 0 {
		return nil, fmt.Errorf("no route returned for %s -> %s", req.Origin, req.Destination)
	}
	return d, nil
}

// runWhileSpinning runs work in the background and spin in the foreground.
// spin is stopped once work returns. If spin returns first the user quit,
// so work is cancelled and ErrAborted is returned after it has stopped.
func runWhileSpinning(ctx context.Context, spin, work func(context.Context) error) error {
	workCtx, cancelWork := context.WithCancel(ctx)
	defer cancelWork()
	spinCtx, stopSpin := context.WithCancel(ctx)
	defer stopSpin()

	done := make(chan struct{})
	var workErr error
	go func() {
		defer stopSpin()
		defer close(done)
		workErr = work(workCtx)
	}()

	spinErr := spin(spinCtx)

	select {
	case <-done:
	default:
		cancelWork()
		<-done
		if spinErr != nil {
			return spinErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrAborted
	}

	if workErr != nil {
		return workErr
	}
	return spinErr
}

// PrintRoute renders the planned route as a numbered list of summarized segments
func PrintRoute(d *directions.HopStopDirections) {
	if d == nil || d.DirectionsResult == nil || len(d.DirectionsResult.Routes) == 0 ||
		len(d.DirectionsResult.Routes[0].Legs) == 0 {
		fmt.Println(errorStyle.Render("No route to show."))
		return
	}

	GetTheme()

	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	modeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	route := d.DirectionsResult.Routes[0]
	leg := route.Legs[0]

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n--- 🧭 %s -> %s ---", d.Origin, d.Destination)))
	fmt.Printf("%s total, %.1f km\n", timeStyle.Render(leg.Duration.Text), d.DistanceInKm)

	for _, w := range route.Warnings {
		fmt.Println(warnStyle.Render("⚠️ " + w))
	}
	fmt.Println()

	for i, s := range directions.Summarize(d.Segments) {
		icon := modeIcons[s.Mode]
		if icon == "" {
			icon = "•"
		}

		mins := int(s.Duration.Round(time.Minute) / time.Minute)
		fmt.Printf("%d. %s %s %s\n",
			i+1,
			icon,
			modeStyle.Render(exporter.ModeTitle(s.Mode)),
			dimStyle.Render(fmt.Sprintf("(%d min, %.2f km)", mins, s.DistanceKm)),
		)
		if text := directions.PlainInstructions(s.Instructions); text != "" {
			fmt.Printf("   %s\n", text)
		}
	}

	if route.Copyrights != "" {
		fmt.Println(dimStyle.Render("\n" + route.Copyrights))
	}
	fmt.Println()
}

// RunDirectionsTUI asks for a trip, plans it and optionally exports it as a calendar
func RunDirectionsTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	resolved := cfg.Resolved()

	var origin, destination, mode string
	mode = resolved.DefaultMode
	if mode == "" {
		mode = string(directions.PublicTransit)
	}
	destination = resolved.HomeAddress

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Where are you starting from?").
				Description("An address, a place name or a lat,lng pair.").
				Placeholder("e.g. Halsey St & Broadway, Brooklyn").
				Value(&origin).
				Validate(requireText),

			huh.NewInput().
				Title("Where are you going?").
				Placeholder("e.g. Herald Square").
				Value(&destination).
				Validate(requireText),

			huh.NewSelect[string]().
				Title("How do you want to travel?").
				Options(modeOptions...).
				Value(&mode),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	return planAndShow(resolved, directions.Request{
		Origin:      strings.TrimSpace(origin),
		Destination: strings.TrimSpace(destination),
		Mode:        directions.TravelMode(mode),
	})
}

// RunTripHomeTUI plans a trip from a typed origin to the saved home address
func RunTripHomeTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	resolved := cfg.Resolved()

	if resolved.HomeAddress == "" {
		fmt.Println(errorStyle.Render("Home address is not configured."))
		fmt.Println("Please run 'hootroot config --set-home \"Your Address\"' in your terminal first.")
		return nil
	}

	var origin string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Where are you? Heading home to %s", resolved.HomeAddress)).
				Value(&origin).
				Validate(requireText),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	mode, err := directions.ParseTravelMode(resolved.DefaultMode)
	if err != nil {
		mode = directions.PublicTransit
	}

	return planAndShow(resolved, directions.Request{
		Origin:      strings.TrimSpace(origin),
		Destination: resolved.HomeAddress,
		Mode:        mode,
	})
}

func planAndShow(cfg config.AppConfig, req directions.Request) error {
	d, err := PlanWithSpinner(context.Background(), directions.NewPlanner(cfg), req)
	if err != nil {
		var walking *directions.AllWalkingSegmentsError
		if errors.As(err, &walking) {
			fmt.Println(errorStyle.Render("HopStop only found a walking route. Try walking, or enable the direct route fallback in settings."))
			return nil
		}
		return fmt.Errorf("could not plan trip: %w", err)
	}

	PrintRoute(d)

	var export bool
	confirm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Export this trip to a calendar file?").
				Value(&export),
		),
	).WithTheme(GetTheme())

	if err := confirm.Run(); err != nil {
		return err
	}
	if !export {
		return nil
	}

	filename := "trip.ics"
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(d.DirectionsResult, time.Now(), file); err != nil {
		return fmt.Errorf("failed to generate ICS: %w", err)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✨ Trip exported to: %s\n", filename)))
	return nil
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("please enter a place")
	}
	return nil
}
