// Package config provides configuration management for mediasite-downloader.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - Environment variable overrides (MEDIASITE_* keys)
//   - Normalization of out-of-range values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// One download at a time
//	// Output to the current directory
//	// Cookies from Firefox
//
// # Loading from File
//
//	settings, err := config.Load("config.yml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Normalization
//
// Settings values coming from a config file or environment may be malformed.
// Normalize never rejects them; it clamps concurrency to at least 1, defaults
// the output directory to ".", and falls back to Firefox for unrecognized
// browsers, so a bad config degrades the run rather than blocking it.
package config
