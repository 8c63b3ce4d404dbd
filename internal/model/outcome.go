package model

// Status is the terminal state of one task.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
)

// String returns a human-readable status label.
func (s Status) String() string {
	if s == StatusFailed {
		return "failed"
	}
	return "succeeded"
}

// Outcome records the result of exactly one executor invocation.
//
// Diagnostic is empty for successful tasks. For failed tasks it carries
// enough detail to tell an authentication failure from rate-limiting or
// a missing stream, insofar as the executor surfaced that distinction.
type Outcome struct {
	Task       DownloadTask `json:"task"`
	Status     Status       `json:"status"`
	Diagnostic string       `json:"diagnostic,omitempty"`
}

// RunSummary is the ordered collection of outcomes for one run,
// one per input task, in task-submission order.
type RunSummary []Outcome

// Succeeded returns the number of successful outcomes.
func (rs RunSummary) Succeeded() int {
	n := 0
	for _, o := range rs {
		if o.Status == StatusSucceeded {
			n++
		}
	}
	return n
}

// Failed returns the number of failed outcomes.
func (rs RunSummary) Failed() int {
	return len(rs) - rs.Succeeded()
}

// AllFailed reports whether the run produced outcomes and every one failed.
func (rs RunSummary) AllFailed() bool {
	return len(rs) > 0 && rs.Succeeded() == 0
}

// MarshalText makes Status render as its label in JSON reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
