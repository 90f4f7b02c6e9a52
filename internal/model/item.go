package model

import (
	"strings"
	"time"
)

// AddedAtFormat renders timestamps the way the queue table displays them.
const AddedAtFormat = "01/02/2006 03:04:05 PM"

// QueueItem is a single queued URL plus its evolving display state. URL and
// AddedAt are immutable once enqueued; the remaining fields are last-value-wins
// mirrors of the worker's progress events, owned by the UI goroutine.
type QueueItem struct {
	ID      string
	URL     string
	AddedAt time.Time

	Title   string
	Status  ItemStatus
	Percent int
	Speed   string
	Message string // error text shown in place of the status when set
}

// DisplayTitle returns the resolved title, or the URL until one is known
func (qi *QueueItem) DisplayTitle() string {
	if t := strings.TrimSpace(qi.Title); t != "" {
		return t
	}
	return qi.URL
}

// DisplayStatus returns the status cell text; an error message wins over status
func (qi *QueueItem) DisplayStatus() string {
	if qi.Message != "" {
		return qi.Message
	}
	return qi.Status.String()
}

// FormatAddedAt returns the enqueue timestamp for the queue table
func (qi *QueueItem) FormatAddedAt() string {
	return qi.AddedAt.Format(AddedAtFormat)
}
