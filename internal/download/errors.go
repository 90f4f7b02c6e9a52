package download

import "errors"

// Error message prefixes surfaced in the queue table's status column.
const (
	DownloadFailedPrefix  = "Download failed: "
	UnexpectedErrorPrefix = "An unexpected error occurred: "
)

// ErrRunActive is returned by Runner.Start while a run is in flight.
var ErrRunActive = errors.New("a run is already active")

// ExtractionError wraps a failure reported by the extraction library itself
// (geo-block, removed video, retry exhaustion). It terminates one item only,
// never the run.
type ExtractionError struct {
	Err error
}

// Error returns the underlying cause string
func (e *ExtractionError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the underlying cause for errors.Is/As
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// itemErrorMessage formats the status text for a failed item, distinguishing
// library-reported failures from everything else.
func itemErrorMessage(err error) string {
	var exErr *ExtractionError
	if errors.As(err, &exErr) {
		return DownloadFailedPrefix + exErr.Err.Error()
	}
	return UnexpectedErrorPrefix + err.Error()
}
