package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nbwiss/mediasite-downloader/internal/config"
	"github.com/nbwiss/mediasite-downloader/internal/model"
)

// stderrTailLines is how many trailing stderr lines are kept for diagnostics.
const stderrTailLines = 5

// Client runs the yt-dlp binary for one download at a time per call.
// A single Client is safe for use by concurrent downloads.
type Client struct {
	binaryPath string

	// mu serializes writes so lines from concurrent fetches don't interleave
	// mid-line.
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

// New creates a Client. An empty binaryPath means "yt-dlp" from $PATH.
func New(binaryPath string) *Client {
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}
	return &Client{
		binaryPath: binaryPath,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// SetOutput redirects the relayed subprocess output. Nil writers discard.
func (c *Client) SetOutput(stdout, stderr io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	c.stdout = stdout
	c.stderr = stderr
}

// Version probes the binary and returns its version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.binaryPath, "--version")

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp not available: %w", err)
	}

	return strings.TrimSpace(out.String()), nil
}

// Fetch downloads one task, blocking until yt-dlp exits.
//
// The output directory is created if needed. Subprocess output is relayed
// line by line, prefixed with the task name, so interleaved output from
// concurrent fetches stays attributable.
func (c *Client) Fetch(ctx context.Context, task model.DownloadTask, settings *config.Settings) error {
	if settings.OutputDir != "." {
		if err := os.MkdirAll(settings.OutputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, c.binaryPath, buildArgs(task, settings)...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("attaching stdout: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("attaching stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting yt-dlp: %w", err)
	}

	prefix := "[" + task.Name + "] "
	var tail []string

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.relay(stdoutPipe, prefix, false, nil)
	}()
	go func() {
		defer wg.Done()
		tail = c.relay(stderrPipe, prefix, true, make([]string, 0, stderrTailLines))
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return classifyFailure(err, tail)
	}
	return nil
}

// relay copies lines from pipe to the client's writer, prefixed. When keep
// is non-nil the trailing lines are collected and returned.
func (c *Client) relay(pipe io.Reader, prefix string, toStderr bool, keep []string) []string {
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		c.mu.Lock()
		w := c.stdout
		if toStderr {
			w = c.stderr
		}
		fmt.Fprintln(w, prefix+line)
		c.mu.Unlock()

		if keep != nil && strings.TrimSpace(line) != "" {
			if len(keep) == stderrTailLines {
				copy(keep, keep[1:])
				keep = keep[:stderrTailLines-1]
			}
			keep = append(keep, line)
		}
	}
	return keep
}

// buildArgs derives the yt-dlp command line for one task.
func buildArgs(task model.DownloadTask, settings *config.Settings) []string {
	args := []string{
		"--no-check-certificates",
		"--cookies-from-browser", settings.Browser,
		"-o", filepath.Join(settings.OutputDir, task.Name+".%(ext)s"),
	}

	switch settings.TrackSelection() {
	case model.VideoOnly:
		args = append(args, "-f", "bestvideo")
	case model.AudioOnly:
		args = append(args, "-f", "bestaudio")
	}

	return append(args, task.SourceURL)
}

// classifyFailure turns an exit error and the stderr tail into a diagnostic
// that keeps the failure categories a user cares about distinguishable.
func classifyFailure(err error, tail []string) error {
	detail := strings.Join(tail, "; ")
	category := ""

	lower := strings.ToLower(detail)
	switch {
	case containsAny(lower, "login", "authentication", "cookies", "401", "403", "forbidden", "unauthorized"):
		category = "authentication: "
	case containsAny(lower, "429", "rate limit", "too many requests"):
		category = "rate-limited: "
	case containsAny(lower, "404", "not found", "does not exist", "unable to download webpage"):
		category = "not found: "
	}

	if detail == "" {
		return fmt.Errorf("%syt-dlp failed: %w", category, err)
	}
	return fmt.Errorf("%syt-dlp failed: %w (%s)", category, err, detail)
}

func containsAny(s string, fragments ...string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
