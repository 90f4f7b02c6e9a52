package download

import "fmt"

// BuildFormat returns the yt-dlp format selector for a resolution cap:
// best video with height <= cap merged with best audio, falling back to the
// best pre-muxed stream under the same cap. A cap of 0 means uncapped.
func BuildFormat(maxHeight int) string {
	if maxHeight > 0 {
		return fmt.Sprintf("bv*[height<=%d]+ba/b[height<=%d]", maxHeight, maxHeight)
	}
	return "bv*+ba/b"
}
