package model

// EventKind discriminates the closed set of progress events the worker emits
type EventKind string

const (
	// EventStarting is emitted once when the worker picks an item up
	EventStarting EventKind = "starting"

	// EventTitleResolved carries a best-effort title, at most once per item
	EventTitleResolved EventKind = "title"

	// EventDownloading carries percent and speed while bytes are moving
	EventDownloading EventKind = "downloading"

	// EventMerging means the download completed and the merge step is pending
	EventMerging EventKind = "merging"

	// EventDone is the successful terminal event for an item
	EventDone EventKind = "done"

	// EventError is the failing terminal event for an item
	EventError EventKind = "error"
)

// ProgressEvent is a normalized, UI-agnostic status update for one item at one
// point in time. Only the fields relevant to the Kind are populated.
type ProgressEvent struct {
	Kind    EventKind
	Percent int
	Speed   string
	Title   string
	Message string
}

// Update tags a ProgressEvent with the queue index it belongs to. It is the
// unit of delivery on the worker's event channel.
type Update struct {
	Index int
	Event ProgressEvent
}

// StartingEvent reports that an item began processing
func StartingEvent() ProgressEvent {
	return ProgressEvent{Kind: EventStarting, Percent: 0}
}

// TitleEvent reports a resolved display title
func TitleEvent(title string) ProgressEvent {
	return ProgressEvent{Kind: EventTitleResolved, Title: title}
}

// DownloadingEvent reports download progress
func DownloadingEvent(percent int, speed string) ProgressEvent {
	return ProgressEvent{Kind: EventDownloading, Percent: percent, Speed: speed}
}

// MergingEvent reports that the library finished downloading and is merging
func MergingEvent() ProgressEvent {
	return ProgressEvent{Kind: EventMerging, Percent: 100}
}

// DoneEvent reports successful completion of an item
func DoneEvent() ProgressEvent {
	return ProgressEvent{Kind: EventDone, Percent: 100}
}

// ErrorEvent reports a per-item failure with a human-readable cause
func ErrorEvent(message string) ProgressEvent {
	return ProgressEvent{Kind: EventError, Message: message}
}

// Status maps the event kind to the item status it implies
func (pe ProgressEvent) Status() ItemStatus {
	switch pe.Kind {
	case EventStarting:
		return ItemStatusStarting
	case EventDownloading:
		return ItemStatusDownloading
	case EventMerging:
		return ItemStatusMerging
	case EventDone:
		return ItemStatusDone
	case EventError:
		return ItemStatusError
	default:
		return ItemStatusQueued
	}
}
