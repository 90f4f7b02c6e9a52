package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ytdlp "github.com/lrstanley/go-ytdlp"
	ytmeta "github.com/ytget/ytdlp/v2"

	"github.com/localtools/ytbulk/internal/model"
	"github.com/localtools/ytbulk/internal/platform"
)

// Fixed extraction options. Retry counts and chunk size follow yt-dlp's
// sweet spot for flaky consumer connections; there is no retry layer above
// these in the worker itself.
const (
	// OutputTemplate names files by title plus source id so two uploads
	// with the same title never collide.
	OutputTemplate = "%(title)s [%(id)s].%(ext)s"

	defaultRetries   = 10
	defaultChunkSize = "10M"

	browserUserAgent = "User-Agent:Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	// androidClientArgs requests the android player client, which sidesteps
	// throttled web-client streams.
	androidClientArgs = "youtube:player_client=android"

	progressInterval = 500 * time.Millisecond
	probeTimeout     = 15 * time.Second
)

// Client adapts the external extraction library to the Fetcher contract with
// a fixed option set derived from one run's DownloadOptions.
type Client struct {
	opts model.DownloadOptions
}

// NewClient creates an extraction client for one run
func NewClient(opts model.DownloadOptions) *Client {
	return &Client{opts: opts}
}

// ResolveTitle probes video metadata for a display title without downloading
// anything. Callers discard the error; a failed probe is cosmetic only.
func (c *Client) ResolveTitle(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	_, info, err := ytmeta.New().ResolveURL(ctx, url)
	if err != nil {
		return "", err
	}
	if info == nil || strings.TrimSpace(info.Title) == "" {
		return "", fmt.Errorf("no title in metadata for %s", url)
	}
	return info.Title, nil
}

// Download fetches and merges the media behind url. Raw library progress is
// normalized before it reaches the sink. Errors from the extraction run are
// wrapped as ExtractionError; pre-flight failures stay plain.
func (c *Client) Download(ctx context.Context, url string, progress func(model.ProgressEvent)) error {
	if err := platform.CreateDirectoryIfNotExists(c.opts.OutputDir); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}

	cmd := c.buildCommand()
	cmd.ProgressFunc(progressInterval, func(up ytdlp.ProgressUpdate) {
		phase := fmt.Sprintf("%s", up.Status)
		if ev, ok := mapProgress(phase, int64(up.DownloadedBytes), int64(up.TotalBytes), up.Duration()); ok {
			progress(ev)
		}
	})

	if _, err := cmd.Run(ctx, url); err != nil {
		return &ExtractionError{Err: err}
	}
	return nil
}

// buildCommand assembles the fixed yt-dlp option bundle for one item
func (c *Client) buildCommand() *ytdlp.Command {
	return ytdlp.New().
		Format(BuildFormat(c.opts.MaxHeight)).
		MergeOutputFormat(c.opts.Container.Ext()).
		Output(outputTemplate(c.opts.OutputDir)).
		HTTPChunkSize(defaultChunkSize).
		Retries(strconv.Itoa(defaultRetries)).
		FragmentRetries(strconv.Itoa(defaultRetries)).
		Continue().
		IgnoreErrors().
		GeoBypass().
		ExtractorArgs(androidClientArgs).
		AddHeaders(browserUserAgent)
}

// outputTemplate joins the run's output directory with the filename template
func outputTemplate(dir string) string {
	return filepath.Join(dir, OutputTemplate)
}
