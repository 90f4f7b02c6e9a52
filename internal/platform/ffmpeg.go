package platform

import "os/exec"

// FFmpegPath returns the absolute path of the ffmpeg binary on PATH
func FFmpegPath() (string, error) {
	return exec.LookPath("ffmpeg")
}

// HasFFmpeg reports whether ffmpeg is available on PATH. Merging the best
// video and audio streams into one container requires it; without it only
// pre-muxed formats download cleanly.
func HasFFmpeg() bool {
	_, err := FFmpegPath()
	return err == nil
}
