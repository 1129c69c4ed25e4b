package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/cddis"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/config"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/model"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/pipeline"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/sdcard"
)

func main() {
	// Command line flags
	var (
		latFlag       = flag.String("lat", "", "Latitude to simulate (e.g. -22.9519)")
		lonFlag       = flag.String("lon", "", "Longitude to simulate (e.g. -43.2105)")
		altFlag       = flag.String("alt", "", "Altitude in meters (e.g. 710)")
		dateFlag      = flag.String("date", "", "Simulation date, YYYY-MM-DD")
		timeFlag      = flag.String("time", "", "Simulation start time, HH:MM:SS")
		toolFlag      = flag.String("tool", "", "Path to the gps-sdr-sim executable (overrides config)")
		ephemerisFlag = flag.String("ephemeris", "", "Use this ephemeris file instead of downloading one")
		outputFlag    = flag.String("out", "", "Work directory for generated files (overrides config)")
		copyToFlag    = flag.String("copy-to", "", "SD card location to copy the files to (drive letter or path)")
		configFlag    = flag.String("config", "", "Path to config file")
		verboseFlag   = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag    = flag.Bool("dry-run", false, "Show what would be done without downloading or generating")
	)

	flag.Parse()

	if *latFlag == "" || *lonFlag == "" || *altFlag == "" || *dateFlag == "" || *timeFlag == "" {
		fmt.Println("GPS Simulator Prep - prepare gps-sdr-sim captures for the PortaPack")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  gpssim -lat <deg> -lon <deg> -alt <m> -date <YYYY-MM-DD> -time <HH:MM:SS> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: gpssim-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *toolFlag != "" {
		settings.ToolPath = *toolFlag
	}
	if *outputFlag != "" {
		settings.WorkDir = *outputFlag
	}

	req, err := buildRequest(*latFlag, *lonFlag, *altFlag, *dateFlag, *timeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create runner with progress callback
	runner := pipeline.NewRunner(settings, func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case pipeline.LevelError:
			prefix = "❌ "
		case pipeline.LevelWarning:
			prefix = "⚠️  "
		case pipeline.LevelSuccess:
			prefix = "✅ "
		case pipeline.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("🛰  GPS Simulator Prep")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if *dryRunFlag {
		printPlan(runner.Plan(req), *ephemerisFlag)
		return
	}

	var result *pipeline.Result
	if *ephemerisFlag != "" {
		result, err = runner.RunWithEphemeris(ctx, req, *ephemerisFlag)
	} else {
		result, err = runner.Run(ctx, req)
	}
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nCancelled.")
			os.Exit(130)
		}
		if errors.Is(err, cddis.ErrAllCandidatesFailed) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "The archive download failed. cddis.nasa.gov requires a free")
			fmt.Fprintln(os.Stderr, "account for scripted access; download the file for your date from")
			fmt.Fprintln(os.Stderr, "gnss/data/daily/<year>/<day>/brdc/ in a browser, decompress it,")
			fmt.Fprintln(os.Stderr, "and rerun with -ephemeris <path>.")
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *copyToFlag != "" {
		root, rootErr := sdcard.ResolveRoot(*copyToFlag)
		if rootErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", rootErr)
			fmt.Fprintf(os.Stderr, "The generated files remain in %s for manual copying.\n", settings.WorkDir)
			os.Exit(1)
		}
		if _, err := runner.Distribute(ctx, result.Pair, root); err != nil {
			fmt.Fprintf(os.Stderr, "Error copying to SD card: %v\n", err)
			fmt.Fprintf(os.Stderr, "The generated files remain in %s for manual copying.\n", settings.WorkDir)
			os.Exit(1)
		}
	}

	captureName, configName := result.Pair.FileNames()
	doneBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#4ECDC4")).
		Padding(0, 1)
	fmt.Println()
	fmt.Println(doneBox.Render(fmt.Sprintf("✨ Done! Generated %s and %s\nLocation: %s | Start: %s",
		captureName, configName, req.LocationArg(), req.StartTime.Format("2006-01-02 15:04:05"))))
	fmt.Println()
	fmt.Println("On the PortaPack:")
	fmt.Println("1. Eject the SD card safely and insert it into the PortaPack.")
	fmt.Println("2. Navigate to Transmit > GPS Sim.")
	fmt.Printf("3. Load %s from the gps folder.\n", captureName)
	fmt.Println("4. Start with TX Gain at 0 dB and raise it carefully.")
}

// buildRequest parses the flag values into a simulation request.
func buildRequest(lat, lon, alt, date, tm string) (model.SimulationRequest, error) {
	latitude, err := model.ParseCoordinate(lat)
	if err != nil {
		return model.SimulationRequest{}, fmt.Errorf("latitude: %w", err)
	}
	longitude, err := model.ParseCoordinate(lon)
	if err != nil {
		return model.SimulationRequest{}, fmt.Errorf("longitude: %w", err)
	}
	altitude, err := model.ParseCoordinate(alt)
	if err != nil {
		return model.SimulationRequest{}, fmt.Errorf("altitude: %w", err)
	}
	start, err := model.ParseDateTime(date, tm)
	if err != nil {
		return model.SimulationRequest{}, err
	}
	return model.SimulationRequest{
		Latitude:  latitude,
		Longitude: longitude,
		Altitude:  altitude,
		StartTime: start,
	}, nil
}

// printPlan shows what a run would do: the candidate downloads and the
// exact tool invocation.
func printPlan(plan pipeline.Plan, manualEphemeris string) {
	fmt.Println("[Dry run - nothing downloaded or generated]")
	fmt.Println()
	fmt.Printf("Simulation tool: %s\n", plan.ToolPath)
	if manualEphemeris != "" {
		fmt.Printf("Ephemeris file:  %s (supplied manually)\n", manualEphemeris)
	} else {
		fmt.Printf("Ephemeris file:  %s, tried in order:\n", plan.EphemerisFile)
		for _, url := range plan.CandidateURLs {
			fmt.Printf("  %s\n", url)
		}
	}
	fmt.Println()
	fmt.Printf("Command: %s\n", strings.Join(plan.CommandLine, " "))
}
