package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2/app"
	"github.com/lrstanley/go-ytdlp"

	"github.com/localtools/ytbulk/internal/config"
	"github.com/localtools/ytbulk/internal/download"
	"github.com/localtools/ytbulk/internal/platform"
	"github.com/localtools/ytbulk/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.localtools.ytbulk"
	AppName = "YT Bulk Downloader"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))

	// Initialize settings and ensure the output directory exists
	settings := config.NewSettings(myApp)
	outputDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		log.Printf("failed to ensure output dir: %v", err)
	}

	// Fetch the yt-dlp binary in the background if it is not installed yet.
	// Downloads started before this finishes will trigger the same install
	// path and simply wait for it.
	go func() {
		if _, err := ytdlp.Install(context.Background(), nil); err != nil {
			log.Printf("yt-dlp install failed: %v", err)
		}
	}()

	if !platform.HasFFmpeg() {
		log.Printf("ffmpeg not found on PATH; stream merging may fail")
	}

	runner := download.NewRunner()
	ui.NewRootUI(myWindow, myApp, runner)

	myWindow.ShowAndRun()
}
