package config

import (
	"fyne.io/fyne/v2"

	"github.com/localtools/ytbulk/internal/model"
	"github.com/localtools/ytbulk/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir       = "output_directory"
	KeyResolutionIndex = "resolution_index"
	KeyContainerIndex  = "container_index"
)

// Default values
const (
	DefaultResolutionIndex = 0
	DefaultContainerIndex  = 0
)

// resolutionCaps maps resolution option index to the height cap in pixels.
// Index 0 means no cap.
var resolutionCaps = []int{0, 2160, 1440, 1080, 720}

// containers maps container option index to the output container
var containers = []model.Container{model.ContainerMKV, model.ContainerMP4}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the configured output directory
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetResolutionIndex returns the selected resolution option index
func (s *Settings) GetResolutionIndex() int {
	index := s.app.Preferences().IntWithFallback(KeyResolutionIndex, DefaultResolutionIndex)
	if index < 0 || index >= len(resolutionCaps) {
		return DefaultResolutionIndex
	}
	return index
}

// SetResolutionIndex sets the resolution option index
func (s *Settings) SetResolutionIndex(index int) {
	if index < 0 || index >= len(resolutionCaps) {
		index = DefaultResolutionIndex
	}
	s.app.Preferences().SetInt(KeyResolutionIndex, index)
}

// GetContainerIndex returns the selected container option index
func (s *Settings) GetContainerIndex() int {
	index := s.app.Preferences().IntWithFallback(KeyContainerIndex, DefaultContainerIndex)
	if index < 0 || index >= len(containers) {
		return DefaultContainerIndex
	}
	return index
}

// SetContainerIndex sets the container option index
func (s *Settings) SetContainerIndex(index int) {
	if index < 0 || index >= len(containers) {
		index = DefaultContainerIndex
	}
	s.app.Preferences().SetInt(KeyContainerIndex, index)
}

// ResolutionOptions returns the resolution labels in display order
func ResolutionOptions() []string {
	return []string{"No cap", "2160", "1440", "1080", "720"}
}

// ContainerOptions returns the container labels in display order
func ContainerOptions() []string {
	return []string{"MKV (safe)", "MP4"}
}

// ResolutionCap returns the height cap for a resolution option index.
// Zero means unlimited.
func ResolutionCap(index int) int {
	if index < 0 || index >= len(resolutionCaps) {
		return 0
	}
	return resolutionCaps[index]
}

// ContainerAt returns the output container for a container option index
func ContainerAt(index int) model.Container {
	if index < 0 || index >= len(containers) {
		return containers[DefaultContainerIndex]
	}
	return containers[index]
}
