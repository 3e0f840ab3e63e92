package pipeline

import (
	"errors"
)

// Error kinds surfaced on a Result. All expected failure modes propagate as
// data; the pipeline never panics on malformed input.
var (
	// ErrImageDecode reports input bytes that are not a decodable image.
	// Fatal for the request, no retry.
	ErrImageDecode = errors.New("image decode failed")

	// ErrNoPattern reports that every strategy was exhausted without a
	// checksum-valid candidate. Recoverable by the caller.
	ErrNoPattern = errors.New("no barcode detected")

	// ErrBudgetExceeded reports that the iteration or time budget ran out
	// before the search completed. Distinct from ErrNoPattern so callers can
	// tell "tried everything, nothing there" from "gave up early".
	ErrBudgetExceeded = errors.New("decode budget exceeded")
)

// TraceEntry records one rejected strategy and why it failed.
type TraceEntry struct {
	Strategy string `json:"strategy"`
	Reason   string `json:"reason"`
}

// Result is the outcome of a single decode request.
type Result struct {
	Success   bool         `json:"success"`
	Payload   string       `json:"payload,omitempty"`
	Symbology string       `json:"symbology,omitempty"`
	Error     string       `json:"error,omitempty"`
	Attempts  int          `json:"attempts"`
	DurationNs int64       `json:"duration_ns"`
	Trace     []TraceEntry `json:"trace,omitempty"`

	// Err carries the error kind for errors.Is checks; Error mirrors it for
	// serialized output.
	Err error `json:"-"`
}

func failure(err error, attempts int, trace []TraceEntry) Result {
	return Result{
		Success:  false,
		Error:    err.Error(),
		Err:      err,
		Attempts: attempts,
		Trace:    trace,
	}
}
