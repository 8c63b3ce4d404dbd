package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nbwiss/mediasite-downloader/internal/config"
	"github.com/nbwiss/mediasite-downloader/internal/model"
)

func testSettings(tracks string) *config.Settings {
	s := config.DefaultSettings()
	s.Tracks = tracks
	s.Browser = "chrome"
	s.OutputDir = "/lectures"
	return s
}

func TestBuildArgs(t *testing.T) {
	task := model.DownloadTask{Name: "lecture01", SourceURL: "https://host/a.m3u8"}

	tests := []struct {
		tracks     string
		wantFormat string
	}{
		{"both", ""},
		{"video", "bestvideo"},
		{"audio", "bestaudio"},
	}

	for _, tt := range tests {
		t.Run(tt.tracks, func(t *testing.T) {
			args := buildArgs(task, testSettings(tt.tracks))

			if args[0] != "--no-check-certificates" {
				t.Errorf("args[0] = %q, want --no-check-certificates", args[0])
			}
			if !hasPair(args, "--cookies-from-browser", "chrome") {
				t.Errorf("args missing --cookies-from-browser chrome: %v", args)
			}
			if !hasPair(args, "-o", filepath.Join("/lectures", "lecture01.%(ext)s")) {
				t.Errorf("args missing output template: %v", args)
			}
			if args[len(args)-1] != task.SourceURL {
				t.Errorf("URL should be the last argument, got %v", args)
			}

			hasFormat := hasPair(args, "-f", tt.wantFormat)
			if tt.wantFormat == "" {
				for i, a := range args {
					if a == "-f" {
						t.Errorf("unexpected format flag at args[%d]: %v", i, args)
					}
				}
			} else if !hasFormat {
				t.Errorf("args missing -f %s: %v", tt.wantFormat, args)
			}
		})
	}
}

func hasPair(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestClassifyFailure(t *testing.T) {
	exitErr := errors.New("exit status 1")

	tests := []struct {
		name     string
		tail     []string
		wantFrag string
	}{
		{"auth", []string{"ERROR: unable to load cookies", "HTTP Error 403: Forbidden"}, "authentication:"},
		{"rate limit", []string{"HTTP Error 429: Too Many Requests"}, "rate-limited:"},
		{"not found", []string{"ERROR: HTTP Error 404: Not Found"}, "not found:"},
		{"plain", []string{"something unexpected"}, "yt-dlp failed"},
		{"no stderr", nil, "yt-dlp failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyFailure(exitErr, tt.tail)
			if err == nil {
				t.Fatal("classifyFailure() returned nil")
			}
			if !strings.Contains(err.Error(), tt.wantFrag) {
				t.Errorf("diagnostic %q should contain %q", err.Error(), tt.wantFrag)
			}
			if len(tt.tail) > 0 && !strings.Contains(err.Error(), tt.tail[0]) {
				t.Errorf("diagnostic %q should carry the stderr excerpt %q", err.Error(), tt.tail[0])
			}
		})
	}
}

// fakeTool writes an executable shell script standing in for yt-dlp.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub not runnable on windows")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp-fake")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	client := New(fakeTool(t, "echo 2025.08.11\n"))

	got, err := client.Version(context.Background())
	if err != nil {
		t.Fatalf("Version() error = %v", err)
	}
	if got != "2025.08.11" {
		t.Errorf("Version() = %q, want 2025.08.11", got)
	}
}

func TestVersion_MissingBinary(t *testing.T) {
	client := New(filepath.Join(t.TempDir(), "nope"))

	if _, err := client.Version(context.Background()); err == nil {
		t.Error("Version() should fail for a missing binary")
	}
}

func TestFetch_RelaysPrefixedOutput(t *testing.T) {
	client := New(fakeTool(t, "echo downloading segment 1\necho downloading segment 2\n"))

	var out bytes.Buffer
	client.SetOutput(&out, nil)

	task := model.DownloadTask{Name: "lecture01", SourceURL: "https://host/a.m3u8"}
	settings := config.DefaultSettings()
	settings.OutputDir = t.TempDir()

	if err := client.Fetch(context.Background(), task, settings); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := "[lecture01] downloading segment 1\n[lecture01] downloading segment 2\n"
	if out.String() != want {
		t.Errorf("relayed output = %q, want %q", out.String(), want)
	}
}

func TestFetch_FailureCarriesStderr(t *testing.T) {
	client := New(fakeTool(t, "echo 'ERROR: HTTP Error 404: Not Found' >&2\nexit 1\n"))
	client.SetOutput(nil, nil)

	task := model.DownloadTask{Name: "gone", SourceURL: "https://host/gone.m3u8"}
	settings := config.DefaultSettings()
	settings.OutputDir = t.TempDir()

	err := client.Fetch(context.Background(), task, settings)
	if err == nil {
		t.Fatal("Fetch() should fail when the tool exits non-zero")
	}
	if !strings.Contains(err.Error(), "not found:") {
		t.Errorf("diagnostic %q should be classified as not found", err.Error())
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("diagnostic %q should carry the stderr excerpt", err.Error())
	}
}
