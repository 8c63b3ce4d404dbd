package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nbwiss/mediasite-downloader/internal/config"
	"github.com/nbwiss/mediasite-downloader/internal/download"
	"github.com/nbwiss/mediasite-downloader/internal/manifest"
	"github.com/nbwiss/mediasite-downloader/internal/model"
	"github.com/nbwiss/mediasite-downloader/internal/ytdlp"
)

func main() {
	// Command line flags
	var (
		manifestFlag    = flag.String("urls", "urls.txt", "Path to the URL manifest (one \"<name> <url>\" per line)")
		configFlag      = flag.String("config", "config.yml", "Path to config file")
		outputFlag      = flag.String("output", "", "Output directory (overrides config)")
		browserFlag     = flag.String("browser", "", "Browser to take cookies from (overrides config)")
		concurrencyFlag = flag.Int("concurrency", 0, "Max parallel downloads (overrides config)")
		tracksFlag      = flag.String("tracks", "", "Track selection: both, video or audio (overrides config)")
		reportFlag      = flag.Bool("report", false, "Write a JSON run report into the output directory")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag      = flag.Bool("dry-run", false, "Parse the manifest without downloading")
	)

	flag.Parse()

	// Environment overrides may live in a .env next to the binary.
	_ = godotenv.Load()

	// Load config, then layer environment and flags on top
	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	settings.ApplyEnv()

	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *browserFlag != "" {
		settings.Browser = *browserFlag
	}
	if *concurrencyFlag > 0 {
		settings.Concurrency = *concurrencyFlag
	}
	if *tracksFlag != "" {
		settings.Tracks = *tracksFlag
	}
	settings.Normalize()

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

	client := ytdlp.New(settings.YtDlpPath)

	version, err := client.Version(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: yt-dlp is required but was not found: %v\n", err)
		os.Exit(1)
	}

	tasks, warnings, err := manifest.ParseFile(*manifestFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading manifest: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "⚠️  %s: %s\n", *manifestFlag, w)
	}

	fmt.Println("📼 Mediasite Downloader")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("yt-dlp %s • %d task(s) • concurrency %d • cookies from %s • tracks: %s\n",
		version, len(tasks), settings.Concurrency, settings.Browser, settings.Tracks)
	fmt.Println()

	if len(tasks) == 0 {
		fmt.Println("Nothing to download.")
		return
	}

	if *dryRunFlag {
		for _, task := range tasks {
			fmt.Printf("  %s  %s\n", task.Name, task.SourceURL)
		}
		fmt.Println("\n[Dry run - not downloading]")
		return
	}

	dispatcher := download.NewDispatcher(settings, client, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	summary, err := dispatcher.Run(ctx, tasks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during dispatch: %v\n", err)
		os.Exit(1)
	}
	if ctx.Err() != nil {
		fmt.Println("\nRun cancelled.")
		os.Exit(130)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ %d succeeded, %d failed\n", summary.Succeeded(), summary.Failed())
	for _, outcome := range summary {
		if outcome.Status == model.StatusFailed {
			fmt.Printf("   ✗ %s: %s\n", outcome.Task.Name, outcome.Diagnostic)
		}
	}

	if *reportFlag {
		if path, err := writeReport(settings.OutputDir, dispatcher.RunID(), summary); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Could not write run report: %v\n", err)
		} else {
			fmt.Printf("   Report: %s\n", path)
		}
	}

	// Partial failure still exits zero; per-task status was reported above.
	if summary.AllFailed() {
		os.Exit(1)
	}
}

// writeReport saves the run summary as JSON next to the downloads.
func writeReport(dir, runID string, summary model.RunSummary) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	report := struct {
		RunID     string           `json:"run_id"`
		Succeeded int              `json:"succeeded"`
		Failed    int              `json:"failed"`
		Outcomes  model.RunSummary `json:"outcomes"`
	}{runID, summary.Succeeded(), summary.Failed(), summary}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, "run-"+runID+".json")
	return path, os.WriteFile(path, data, 0644)
}
