package download

import (
	"context"

	"github.com/localtools/ytbulk/internal/model"
)

// Fetcher is the capability the queue worker drives for each item: a
// best-effort metadata probe and a blocking download that reports normalized
// progress events through the supplied sink.
type Fetcher interface {
	// ResolveTitle probes metadata for a display title. Failures are
	// expected and must never affect the subsequent download attempt.
	ResolveTitle(ctx context.Context, url string) (string, error)

	// Download fetches and merges the media behind url, invoking progress
	// for every normalized event. Returns ExtractionError for failures the
	// extraction library reported; anything else is unexpected.
	Download(ctx context.Context, url string, progress func(model.ProgressEvent)) error
}
