package model

import "fmt"

// TrackSelection picks which media components the fetch tool retrieves.
type TrackSelection int

const (
	// AudioAndVideo downloads the full stream (default).
	AudioAndVideo TrackSelection = iota

	// VideoOnly downloads only the video track.
	VideoOnly

	// AudioOnly downloads only the audio track.
	AudioOnly
)

// ParseTrackSelection converts a user-facing string into a TrackSelection.
// Accepted values: "both" (or empty), "video", "audio".
func ParseTrackSelection(s string) (TrackSelection, error) {
	switch s {
	case "", "both":
		return AudioAndVideo, nil
	case "video":
		return VideoOnly, nil
	case "audio":
		return AudioOnly, nil
	default:
		return AudioAndVideo, fmt.Errorf("unknown track selection %q (want both, video or audio)", s)
	}
}

// String returns the user-facing name of the selection.
func (ts TrackSelection) String() string {
	switch ts {
	case VideoOnly:
		return "video"
	case AudioOnly:
		return "audio"
	default:
		return "both"
	}
}
