package download

// Package download implements the core download pipeline built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp). It holds the format selector
// builder, the extraction client adapter, the progress normalization layer,
// and the sequential queue worker that relays events to the UI.
