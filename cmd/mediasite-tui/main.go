package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nbwiss/mediasite-downloader/internal/config"
	"github.com/nbwiss/mediasite-downloader/internal/tui"
)

func main() {
	_ = godotenv.Load()

	settings, err := config.Load("config.yml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	settings.ApplyEnv()
	settings.Normalize()

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
