package platform

// Package platform contains OS integration glue: filesystem helpers,
// ffmpeg detection, and opening the output folder in the system file
// manager.
