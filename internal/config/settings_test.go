package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", s.Concurrency)
	}
	if s.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", s.OutputDir, ".")
	}
	if s.Browser != "firefox" {
		t.Errorf("Browser = %q, want %q", s.Browser, "firefox")
	}
	if s.Tracks != "both" {
		t.Errorf("Tracks = %q, want %q", s.Tracks, "both")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Concurrency != 1 || s.Browser != "firefox" {
		t.Errorf("missing config should yield defaults, got %+v", s)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "concurrency: 4\noutput_dir: /tmp/lectures\nbrowser: chrome\ntracks: audio\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", s.Concurrency)
	}
	if s.OutputDir != "/tmp/lectures" {
		t.Errorf("OutputDir = %q, want /tmp/lectures", s.OutputDir)
	}
	if s.Browser != "chrome" {
		t.Errorf("Browser = %q, want chrome", s.Browser)
	}
	if s.Tracks != "audio" {
		t.Errorf("Tracks = %q, want audio", s.Tracks)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("concurrency: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Concurrency != 3 {
		t.Errorf("Concurrency = %d, want 3", s.Concurrency)
	}
	if s.Browser != "firefox" {
		t.Errorf("Browser = %q, want default firefox", s.Browser)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("concurrency: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestSettings_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{
			name: "zero concurrency clamped",
			in:   Settings{Concurrency: 0, OutputDir: ".", Browser: "firefox", Tracks: "both"},
			want: Settings{Concurrency: 1, OutputDir: ".", Browser: "firefox", Tracks: "both"},
		},
		{
			name: "negative concurrency clamped",
			in:   Settings{Concurrency: -3, OutputDir: ".", Browser: "firefox", Tracks: "both"},
			want: Settings{Concurrency: 1, OutputDir: ".", Browser: "firefox", Tracks: "both"},
		},
		{
			name: "quoted path unwrapped",
			in:   Settings{Concurrency: 2, OutputDir: `"/my downloads"`, Browser: "firefox", Tracks: "both"},
			want: Settings{Concurrency: 2, OutputDir: "/my downloads", Browser: "firefox", Tracks: "both"},
		},
		{
			name: "empty path defaults to cwd",
			in:   Settings{Concurrency: 2, OutputDir: "  ", Browser: "firefox", Tracks: "both"},
			want: Settings{Concurrency: 2, OutputDir: ".", Browser: "firefox", Tracks: "both"},
		},
		{
			name: "browser lowercased",
			in:   Settings{Concurrency: 2, OutputDir: ".", Browser: " Chrome ", Tracks: "both"},
			want: Settings{Concurrency: 2, OutputDir: ".", Browser: "chrome", Tracks: "both"},
		},
		{
			name: "unknown browser falls back to firefox",
			in:   Settings{Concurrency: 2, OutputDir: ".", Browser: "netscape", Tracks: "both"},
			want: Settings{Concurrency: 2, OutputDir: ".", Browser: "firefox", Tracks: "both"},
		},
		{
			name: "unknown tracks falls back to both",
			in:   Settings{Concurrency: 2, OutputDir: ".", Browser: "firefox", Tracks: "hd"},
			want: Settings{Concurrency: 2, OutputDir: ".", Browser: "firefox", Tracks: "both"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.Normalize()
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSettings_ApplyEnv(t *testing.T) {
	t.Setenv("MEDIASITE_CONCURRENCY", "5")
	t.Setenv("MEDIASITE_BROWSER", "brave")
	t.Setenv("MEDIASITE_OUTPUT_DIR", "/data")

	s := DefaultSettings()
	s.ApplyEnv()

	if s.Concurrency != 5 {
		t.Errorf("Concurrency = %d, want 5", s.Concurrency)
	}
	if s.Browser != "brave" {
		t.Errorf("Browser = %q, want brave", s.Browser)
	}
	if s.OutputDir != "/data" {
		t.Errorf("OutputDir = %q, want /data", s.OutputDir)
	}
}

func TestSettings_ApplyEnv_BadNumberIgnored(t *testing.T) {
	t.Setenv("MEDIASITE_CONCURRENCY", "lots")

	s := DefaultSettings()
	s.ApplyEnv()

	if s.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want untouched default 1", s.Concurrency)
	}
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yml")

	s := &Settings{Concurrency: 3, OutputDir: "/lectures", Browser: "edge", Tracks: "video"}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *s {
		t.Errorf("round trip = %+v, want %+v", loaded, s)
	}
}
