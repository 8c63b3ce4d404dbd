// Package download provides the concurrent dispatch core of
// mediasite-downloader.
//
// # Dispatcher
//
// The Dispatcher fans a task list out to an Executor, keeping at most
// Settings.Concurrency fetches in flight, and collects exactly one Outcome
// per task:
//
//	dispatcher := download.NewDispatcher(settings, executor, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	summary, err := dispatcher.Run(ctx, tasks)
//
// # Guarantees
//
//   - Tasks start in manifest order; completion order is unconstrained.
//   - The returned RunSummary preserves submission order regardless of
//     completion order.
//   - One task's failure never aborts, cancels or delays the others; it is
//     recorded as a failed Outcome and dispatch continues.
//   - A concurrency limit below 1 is normalized to 1, never "unlimited".
//   - There is no retry and no per-task timeout; a hung fetch holds its
//     worker slot until the run's context is cancelled.
//
// # Executor
//
// Executor is the capability that performs one actual fetch-and-save
// operation. The real implementation shells out to yt-dlp (package ytdlp);
// tests substitute stubs via ExecutorFunc.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package download
