package model

// Container is the target container format for merged output files
type Container string

const (
	// ContainerMKV merges into Matroska, the safe default for any codec pair
	ContainerMKV Container = "mkv"

	// ContainerMP4 merges into MP4
	ContainerMP4 Container = "mp4"
)

// Ext returns the container file extension without a leading dot
func (c Container) Ext() string {
	return string(c)
}

// DownloadOptions holds the fixed option set for one run. Constructed once
// when the run starts and shared read-only by every item in that run.
type DownloadOptions struct {
	// MaxHeight caps the video stream height in pixels; 0 means uncapped
	MaxHeight int

	// Container is the merge target for separate audio/video streams
	Container Container

	// OutputDir is where finished files are placed
	OutputDir string
}
