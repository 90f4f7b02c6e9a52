package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Text fragments
const (
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing (QueueRow / lists)
const (
	StatusLabelWidth  float32 = 110
	SpeedLabelWidth   float32 = 100
	AddedLabelWidth   float32 = 170
	ProgressBarWidth  float32 = 140
	PercentLabelWidth float32 = 48

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 56
)

// Window sizing
const (
	WindowWidth  float32 = 980
	WindowHeight float32 = 640
)
