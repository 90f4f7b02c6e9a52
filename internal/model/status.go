package model

// ItemStatus represents the status of a single queued download
type ItemStatus string

const (
	// ItemStatusQueued means the item is listed but no run has reached it
	ItemStatusQueued ItemStatus = "Queued"

	// ItemStatusStarting means the worker picked the item up
	ItemStatusStarting ItemStatus = "Starting"

	// ItemStatusDownloading means the download is in progress
	ItemStatusDownloading ItemStatus = "Downloading"

	// ItemStatusMerging means the download finished and streams are being merged
	ItemStatusMerging ItemStatus = "Merging"

	// ItemStatusDone means the item finished successfully
	ItemStatusDone ItemStatus = "Done"

	// ItemStatusError means the item failed; the run still continues
	ItemStatusError ItemStatus = "Error"
)

// String returns the string representation of ItemStatus
func (is ItemStatus) String() string {
	return string(is)
}

// IsTerminal returns true if the item reached a final state for this run
func (is ItemStatus) IsTerminal() bool {
	return is == ItemStatusDone || is == ItemStatusError
}

// RunPhase represents the lifecycle of the queue worker
type RunPhase string

const (
	// RunIdle is the initial phase, before any run was started
	RunIdle RunPhase = "Idle"

	// RunActive means a run is currently processing items
	RunActive RunPhase = "Running"

	// RunCompleted means the last run processed every item
	RunCompleted RunPhase = "Completed"

	// RunStopped means the last run halted early on a stop request
	RunStopped RunPhase = "Stopped"
)

// String returns the string representation of RunPhase
func (rp RunPhase) String() string {
	return string(rp)
}

// IsFinished returns true if the phase is a terminal run state
func (rp RunPhase) IsFinished() bool {
	return rp == RunCompleted || rp == RunStopped
}
