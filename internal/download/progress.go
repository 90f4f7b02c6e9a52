package download

import (
	"fmt"
	"math"
	"time"

	"github.com/localtools/ytbulk/internal/model"
)

// Raw yt-dlp progress phases this layer understands.
const (
	phaseDownloading    = "downloading"
	phaseFinished       = "finished"
	phasePostProcessing = "post_processing"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// HumanBytes formats a byte count with binary units and one decimal place.
// Zero and negative counts render as "0 B".
func HumanBytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(byteUnits) {
		i = len(byteUnits) - 1
	}
	val := float64(n) / math.Pow(1024, float64(i))
	return fmt.Sprintf("%.1f %s", val, byteUnits[i])
}

// FormatSpeed renders a human-readable byte rate, or "" when the elapsed time
// is not yet known.
func FormatSpeed(downloaded int64, elapsed time.Duration) string {
	if downloaded <= 0 || elapsed <= 0 {
		return ""
	}
	rate := float64(downloaded) / elapsed.Seconds()
	return HumanBytes(int64(rate)) + "/s"
}

// mapProgress normalizes a raw library progress payload into a ProgressEvent.
// The second return is false for phases the UI has no representation for.
// Percent reads 0 until a total size (actual or estimated) is known; that is
// accepted behavior, not a gap to paper over.
func mapProgress(phase string, downloaded, total int64, elapsed time.Duration) (model.ProgressEvent, bool) {
	switch phase {
	case phaseDownloading:
		percent := 0
		if total > 0 {
			percent = int(downloaded * 100 / total)
		}
		return model.DownloadingEvent(percent, FormatSpeed(downloaded, elapsed)), true
	case phaseFinished, phasePostProcessing:
		return model.MergingEvent(), true
	default:
		return model.ProgressEvent{}, false
	}
}
