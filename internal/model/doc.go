// Package model defines the core data structures used throughout
// the mediasite-downloader application.
//
// # DownloadTask
//
// DownloadTask pairs a filesystem-safe output name with the stream URL
// it should be fetched from:
//
//	task := model.DownloadTask{Name: "lecture01", SourceURL: "https://host/x.m3u8"}
//	if err := task.Validate(); err != nil {
//	    // name contains whitespace, or a field is empty
//	}
//
// Tasks are immutable once parsed from the manifest; each task is consumed
// by exactly one executor invocation.
//
// # Outcome and RunSummary
//
// Outcome is the terminal record for one task:
//
//	model.Outcome{Task: task, Status: model.StatusSucceeded}
//	model.Outcome{Task: task, Status: model.StatusFailed, Diagnostic: "authentication: ..."}
//
// RunSummary collects one Outcome per task in submission order, regardless
// of completion order, and provides the tallies for final reporting.
//
// # TrackSelection
//
// TrackSelection picks which media components to retrieve:
//
//	model.AudioAndVideo // default
//	model.VideoOnly
//	model.AudioOnly
//
// Parse user-facing strings ("both", "video", "audio") with ParseTrackSelection.
package model
