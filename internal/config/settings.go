package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/nbwiss/mediasite-downloader/internal/model"
)

// Browsers yt-dlp can extract cookies from.
var validBrowsers = []string{"firefox", "chrome", "edge", "brave", "opera", "safari"}

// Settings holds all configuration options for a run.
//
// A Settings value is built once, normalized, and never mutated after
// dispatch begins; every concurrent download reads the same value.
type Settings struct {
	// Concurrency is the maximum number of downloads in flight at once.
	Concurrency int `yaml:"concurrency"`

	// OutputDir is the directory downloaded files are written to.
	OutputDir string `yaml:"output_dir"`

	// Browser names the browser profile yt-dlp extracts cookies from.
	Browser string `yaml:"browser"`

	// Tracks selects which media components to download: both, video or audio.
	Tracks string `yaml:"tracks"`

	// YtDlpPath overrides the yt-dlp binary location. Empty means $PATH lookup.
	YtDlpPath string `yaml:"ytdlp_path,omitempty"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Concurrency: 1,
		OutputDir:   ".",
		Browser:     "firefox",
		Tracks:      "both",
	}
}

// Load reads settings from a YAML file. A missing file is not an error;
// defaults are returned instead.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays MEDIASITE_* environment variables onto the settings.
// Unset variables leave the corresponding field untouched; a non-numeric
// MEDIASITE_CONCURRENCY is ignored rather than fatal.
func (s *Settings) ApplyEnv() {
	if v := os.Getenv("MEDIASITE_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Concurrency = n
		}
	}
	if v := os.Getenv("MEDIASITE_OUTPUT_DIR"); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv("MEDIASITE_BROWSER"); v != "" {
		s.Browser = v
	}
	if v := os.Getenv("MEDIASITE_TRACKS"); v != "" {
		s.Tracks = v
	}
	if v := os.Getenv("MEDIASITE_YTDLP"); v != "" {
		s.YtDlpPath = v
	}
}

// Normalize clamps malformed values to usable ones. Concurrency below 1
// becomes 1, never "unlimited". Quoted or empty paths are cleaned up, and
// an unrecognized browser falls back to firefox.
func (s *Settings) Normalize() {
	if s.Concurrency < 1 {
		s.Concurrency = 1
	}

	s.OutputDir = strings.TrimSpace(s.OutputDir)
	if strings.HasPrefix(s.OutputDir, `"`) && strings.HasSuffix(s.OutputDir, `"`) && len(s.OutputDir) >= 2 {
		s.OutputDir = s.OutputDir[1 : len(s.OutputDir)-1]
	}
	if s.OutputDir == "" {
		s.OutputDir = "."
	}

	s.Browser = strings.ToLower(strings.TrimSpace(s.Browser))
	if !isValidBrowser(s.Browser) {
		s.Browser = "firefox"
	}

	if _, err := model.ParseTrackSelection(s.Tracks); err != nil {
		s.Tracks = "both"
	}
}

// TrackSelection returns the typed selection for the Tracks field.
// Call Normalize first; afterwards the field always parses.
func (s *Settings) TrackSelection() model.TrackSelection {
	ts, _ := model.ParseTrackSelection(s.Tracks)
	return ts
}

func isValidBrowser(name string) bool {
	for _, b := range validBrowsers {
		if name == b {
			return true
		}
	}
	return false
}
