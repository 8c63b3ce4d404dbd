package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nbwiss/mediasite-downloader/internal/model"
)

// Warning describes a manifest line that was skipped or looks suspicious.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Parse reads download tasks from r.
//
// Tasks keep manifest order. Malformed lines produce a Warning instead of
// an error; duplicate task names are also warned about, since two tasks with
// the same name would race for the same output file, but they are kept —
// which download wins the file is up to the filesystem.
func Parse(r io.Reader) ([]model.DownloadTask, []Warning, error) {
	var tasks []model.DownloadTask
	var warnings []Warning
	seen := make(map[string]int)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, url, found := strings.Cut(line, " ")
		if !found {
			warnings = append(warnings, Warning{lineNum, fmt.Sprintf("skipped: expected \"<name> <url>\", got %q", line)})
			continue
		}

		task := model.DownloadTask{
			Name:      strings.TrimSpace(name),
			SourceURL: strings.TrimSpace(url),
		}
		if err := task.Validate(); err != nil {
			warnings = append(warnings, Warning{lineNum, fmt.Sprintf("skipped: %v", err)})
			continue
		}

		if prev, ok := seen[task.Name]; ok {
			warnings = append(warnings, Warning{lineNum, fmt.Sprintf("duplicate name %q (first used on line %d); downloads will write to the same file", task.Name, prev)})
		} else {
			seen[task.Name] = lineNum
		}

		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading manifest: %w", err)
	}

	return tasks, warnings, nil
}

// ParseFile reads download tasks from the manifest at path.
func ParseFile(path string) ([]model.DownloadTask, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
