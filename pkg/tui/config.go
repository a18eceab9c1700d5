package tui

import (
	"context"
	"fmt"
	"strings"

	"hootroot/pkg/config"
	"hootroot/pkg/geocode"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI lets the user edit ~/.hootroot.json until they go back
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Home Address", "home"),
						huh.NewOption("Set Default Travel Mode", "mode"),
						huh.NewOption("Routing Service & Fallback", "routing"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "home":
			err = runSetHomeTUI(cfg)
		case "mode":
			err = runSetModeTUI(cfg)
		case "routing":
			err = runSetRoutingTUI(cfg)
		case "view":
			printConfig(cfg)
		}

		if err != nil {
			return err
		}
	}
}

func printConfig(cfg *config.AppConfig) {
	resolved := cfg.Resolved()

	fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.hootroot.json) ---"))
	if cfg.HomeAddress == "" {
		fmt.Println("Home Address: Not set")
	} else {
		fmt.Printf("Home Address: %s\n", cfg.HomeAddress)
	}
	fmt.Printf("Default Mode: %s\n", orDefault(cfg.DefaultMode, "PUBLICTRANSIT"))
	fmt.Printf("HopStop URL: %s\n", orDefault(resolved.HopStopURL, "built-in"))
	fmt.Printf("Geocoder URL: %s\n", orDefault(resolved.GeocoderURL, "built-in"))
	fmt.Printf("Direct Route Fallback: %t\n", resolved.TransitDirectDefault)
	fmt.Printf("Response Cache: %t\n", cfg.CacheEnabled)
	fmt.Printf("Accent Color: %s\n", orDefault(cfg.AccentColor, defaultAccent))
	fmt.Println()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func runSetModeTUI(cfg *config.AppConfig) error {
	selected := orDefault(cfg.DefaultMode, modeOptions[0].Value)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select the travel mode used when none is given").
				Options(modeOptions...).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.DefaultMode = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Default travel mode changed to: %s\n", selected)))
	return nil
}

func runSetRoutingTUI(cfg *config.AppConfig) error {
	hopstopURL := cfg.HopStopURL
	geocoderURL := cfg.GeocoderURL
	direct := cfg.TransitDirectDefault
	cache := cfg.CacheEnabled

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("HopStop proxy URL").
				Description("Leave empty for the built-in proxy. HOPSTOP_URL overrides this.").
				Placeholder("http://cm1-route.brighterplanet.com").
				Value(&hopstopURL),

			huh.NewInput().
				Title("Geocoder URL").
				Description("A Nominatim compatible search service. GEOCODER_URL overrides this.").
				Placeholder("https://nominatim.openstreetmap.org").
				Value(&geocoderURL),

			huh.NewConfirm().
				Title("Fall back to a direct route when transit directions fail?").
				Description("TRANSIT_DIRECT_DEFAULT overrides this.").
				Value(&direct),

			huh.NewConfirm().
				Title("Cache HopStop answers for 15 minutes?").
				Value(&cache),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.HopStopURL = strings.TrimSpace(hopstopURL)
	cfg.GeocoderURL = strings.TrimSpace(geocoderURL)
	cfg.TransitDirectDefault = direct
	cfg.CacheEnabled = cache

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Routing settings saved.\n"))
	return nil
}

func runSetHomeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your home address").
				Description("This will be saved to your local config for quick trips home.").
				Placeholder("e.g. 350 5th Ave, New York").
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "" {
		fmt.Println("Operation cancelled: No address provided.")
		return nil
	}

	place, err := LookupHome(context.Background(), cfg.Resolved().GeocoderURL, input)
	if err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("❌ %v", err)))
		return nil
	}

	cfg.HomeAddress = place.DisplayName
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Successfully saved home location: %s\n", place.DisplayName)))
	return nil
}

// LookupHome checks that query can be geocoded and returns the best match
func LookupHome(ctx context.Context, geocoderURL, query string) (*geocode.Place, error) {
	var places []geocode.Place
	var err error

	_ = spinner.New().
		Title(fmt.Sprintf("Searching for '%s'...", query)).
		Action(func() {
			places, err = geocode.NewNominatim(geocoderURL).Search(ctx, query, 1)
		}).
		Run()

	if err != nil {
		return nil, fmt.Errorf("could not lookup address: %w", err)
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("no matching places found for '%s'", query)
	}
	return &places[0], nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for hootroot").
				Description("Select a curated style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Night Owl Purple", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Express Red", colorBlock("196")), "196"),
					huh.NewOption(fmt.Sprintf("%s Local Green", colorBlock("42")), "42"),
					huh.NewOption(fmt.Sprintf("%s Harbor Blue", colorBlock("86")), "86"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(validateHex),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		input = hexInput
	}

	cfg.AccentColor = input
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(GetCustomTheme(input).Focused.Title.Render("\n✅ The theme color is now saved.\n"))
	return nil
}

func validateHex(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	return nil
}
