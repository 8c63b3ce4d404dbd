package download

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nbwiss/mediasite-downloader/internal/config"
	"github.com/nbwiss/mediasite-downloader/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Executor performs one fetch-and-save operation for one task. It may be
// slow and may fail; it must return once the fetch has terminated either way.
type Executor interface {
	Fetch(ctx context.Context, task model.DownloadTask, settings *config.Settings) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, task model.DownloadTask, settings *config.Settings) error

func (f ExecutorFunc) Fetch(ctx context.Context, task model.DownloadTask, settings *config.Settings) error {
	return f(ctx, task, settings)
}

// Dispatcher coordinates a bounded number of concurrent downloads.
type Dispatcher struct {
	settings   *config.Settings
	execute    Executor
	onProgress func(ProgressEvent)
	runID      string
}

// NewDispatcher creates a Dispatcher. onProgress may be nil.
func NewDispatcher(settings *config.Settings, execute Executor, onProgress func(ProgressEvent)) *Dispatcher {
	return &Dispatcher{
		settings:   settings,
		execute:    execute,
		onProgress: onProgress,
		runID:      uuid.New().String(),
	}
}

// RunID identifies this run in progress output and reports.
func (d *Dispatcher) RunID() string {
	return d.runID
}

// Run executes every task and returns one Outcome per task, in submission
// order. It returns an error only for structurally invalid input; per-task
// failures are recorded in the summary, never escalated.
func (d *Dispatcher) Run(ctx context.Context, tasks []model.DownloadTask) (model.RunSummary, error) {
	if d.settings == nil {
		return nil, fmt.Errorf("dispatcher: settings are required")
	}
	if d.execute == nil {
		return nil, fmt.Errorf("dispatcher: executor is required")
	}

	if len(tasks) == 0 {
		return model.RunSummary{}, nil
	}

	limit := d.settings.Concurrency
	if limit < 1 {
		limit = 1
	}

	// Each worker writes only its own index, so the slice needs no lock and
	// the summary comes out in submission order whatever the completion order.
	outcomes := make([]model.Outcome, len(tasks))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, task := range tasks {
		g.Go(func() error {
			d.progress(ProgressEvent{Message: fmt.Sprintf("Starting %s", task.Name), Level: LevelInfo})

			if err := d.execute.Fetch(ctx, task, d.settings); err != nil {
				outcomes[i] = model.Outcome{Task: task, Status: model.StatusFailed, Diagnostic: err.Error()}
				d.progress(ProgressEvent{Message: fmt.Sprintf("%s: failed: %v", task.Name, err), Level: LevelError})
				return nil
			}

			outcomes[i] = model.Outcome{Task: task, Status: model.StatusSucceeded}
			d.progress(ProgressEvent{Message: fmt.Sprintf("%s: done", task.Name), Level: LevelSuccess})
			return nil
		})
	}

	// Workers never return errors; Wait is purely a join.
	_ = g.Wait()

	return model.RunSummary(outcomes), nil
}

func (d *Dispatcher) progress(event ProgressEvent) {
	if d.onProgress != nil {
		d.onProgress(event)
	}
}
