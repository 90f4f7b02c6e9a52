package download

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/localtools/ytbulk/internal/model"
)

// fakeFetcher drives the runner without touching the network
type fakeFetcher struct {
	resolveTitle func(url string) (string, error)
	download     func(url string, progress func(model.ProgressEvent)) error
}

func (f *fakeFetcher) ResolveTitle(_ context.Context, url string) (string, error) {
	if f.resolveTitle == nil {
		return "", errors.New("no metadata")
	}
	return f.resolveTitle(url)
}

func (f *fakeFetcher) Download(_ context.Context, url string, progress func(model.ProgressEvent)) error {
	if f.download == nil {
		return nil
	}
	return f.download(url, progress)
}

func newTestRunner(fake Fetcher) *Runner {
	r := NewRunner()
	r.newFetcher = func(model.DownloadOptions) Fetcher { return fake }
	return r
}

func queueItems(urls ...string) []model.QueueItem {
	items := make([]model.QueueItem, 0, len(urls))
	for _, u := range urls {
		items = append(items, model.QueueItem{URL: u, Status: model.ItemStatusQueued})
	}
	return items
}

// collect drains the event channel until the run-finished close
func collect(t *testing.T, events <-chan model.Update) []model.Update {
	t.Helper()

	var updates []model.Update
	timeout := time.After(5 * time.Second)
	for {
		select {
		case upd, ok := <-events:
			if !ok {
				return updates
			}
			updates = append(updates, upd)
		case <-timeout:
			t.Fatalf("run did not finish; collected %d updates", len(updates))
		}
	}
}

func terminalEvents(updates []model.Update) []model.Update {
	var terminal []model.Update
	for _, upd := range updates {
		if upd.Event.Kind == model.EventDone || upd.Event.Kind == model.EventError {
			terminal = append(terminal, upd)
		}
	}
	return terminal
}

func TestRunner_AllItemsSucceed(t *testing.T) {
	fake := &fakeFetcher{
		resolveTitle: func(url string) (string, error) {
			return "title for " + url, nil
		},
		download: func(url string, progress func(model.ProgressEvent)) error {
			progress(model.DownloadingEvent(50, "1.0 MB/s"))
			progress(model.MergingEvent())
			return nil
		},
	}

	runner := newTestRunner(fake)
	events, err := runner.Start(context.Background(), queueItems("https://a", "https://b"), model.DownloadOptions{})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	updates := collect(t, events)

	terminal := terminalEvents(updates)
	if len(terminal) != 2 {
		t.Fatalf("expected 2 terminal events, got %d", len(terminal))
	}
	for _, upd := range terminal {
		if upd.Event.Kind != model.EventDone {
			t.Errorf("item %d finished with %s, expected done", upd.Index, upd.Event.Kind)
		}
	}

	// Events for item 0 are fully ordered before any event for item 1.
	lastIndex := 0
	for _, upd := range updates {
		if upd.Index < lastIndex {
			t.Fatalf("event for item %d arrived after item %d started", upd.Index, lastIndex)
		}
		lastIndex = upd.Index
	}

	if runner.Phase() != model.RunCompleted {
		t.Errorf("phase = %s, expected %s", runner.Phase(), model.RunCompleted)
	}
}

func TestRunner_PerItemEventOrder(t *testing.T) {
	fake := &fakeFetcher{
		resolveTitle: func(string) (string, error) { return "resolved", nil },
		download: func(url string, progress func(model.ProgressEvent)) error {
			progress(model.DownloadingEvent(10, ""))
			progress(model.DownloadingEvent(90, ""))
			progress(model.MergingEvent())
			return nil
		},
	}

	runner := newTestRunner(fake)
	events, err := runner.Start(context.Background(), queueItems("https://a"), model.DownloadOptions{})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	updates := collect(t, events)

	var kinds []model.EventKind
	for _, upd := range updates {
		kinds = append(kinds, upd.Event.Kind)
	}

	expected := []model.EventKind{
		model.EventStarting,
		model.EventTitleResolved,
		model.EventDownloading,
		model.EventDownloading,
		model.EventMerging,
		model.EventDone,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("got %d events %v, expected %d", len(kinds), kinds, len(expected))
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("event %d = %s, expected %s", i, kinds[i], expected[i])
		}
	}
}

func TestRunner_RejectsConcurrentRun(t *testing.T) {
	release := make(chan struct{})
	fake := &fakeFetcher{
		download: func(string, func(model.ProgressEvent)) error {
			<-release
			return nil
		},
	}

	runner := newTestRunner(fake)
	events, err := runner.Start(context.Background(), queueItems("https://a"), model.DownloadOptions{})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := runner.Start(context.Background(), queueItems("https://b"), model.DownloadOptions{}); !errors.Is(err, ErrRunActive) {
		t.Errorf("second Start returned %v, expected ErrRunActive", err)
	}

	close(release)
	collect(t, events)

	// A finished run frees the worker for the next one.
	events2, err := runner.Start(context.Background(), queueItems("https://c"), model.DownloadOptions{})
	if err != nil {
		t.Fatalf("Start after completion failed: %v", err)
	}
	collect(t, events2)
}

func TestRunner_StopSkipsRemainingItems(t *testing.T) {
	runner := NewRunner()
	fake := &fakeFetcher{
		download: func(url string, progress func(model.ProgressEvent)) error {
			// Stop lands mid-item; the in-flight item still finishes.
			runner.Stop()
			runner.Stop() // idempotent
			progress(model.DownloadingEvent(100, ""))
			return nil
		},
	}
	runner.newFetcher = func(model.DownloadOptions) Fetcher { return fake }

	events, err := runner.Start(context.Background(), queueItems("https://a", "https://b", "https://c"), model.DownloadOptions{})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	updates := collect(t, events)

	for _, upd := range updates {
		if upd.Index != 0 {
			t.Errorf("item %d emitted %s after stop, expected no events", upd.Index, upd.Event.Kind)
		}
	}

	terminal := terminalEvents(updates)
	if len(terminal) != 1 || terminal[0].Event.Kind != model.EventDone {
		t.Fatalf("expected the in-flight item to finish normally, got %v", terminal)
	}

	if runner.Phase() != model.RunStopped {
		t.Errorf("phase = %s, expected %s", runner.Phase(), model.RunStopped)
	}
}

func TestRunner_ExtractionFailureIsPerItem(t *testing.T) {
	fake := &fakeFetcher{
		download: func(url string, progress func(model.ProgressEvent)) error {
			if url == "https://geo-blocked" {
				return &ExtractionError{Err: errors.New("video is not available in your country")}
			}
			return nil
		},
	}

	runner := newTestRunner(fake)
	events, err := runner.Start(context.Background(), queueItems("https://geo-blocked", "https://ok"), model.DownloadOptions{})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	updates := collect(t, events)

	terminal := terminalEvents(updates)
	if len(terminal) != 2 {
		t.Fatalf("expected 2 terminal events, got %d", len(terminal))
	}

	if terminal[0].Event.Kind != model.EventError {
		t.Fatalf("item 0 finished with %s, expected error", terminal[0].Event.Kind)
	}
	if !strings.HasPrefix(terminal[0].Event.Message, DownloadFailedPrefix) {
		t.Errorf("message %q, expected prefix %q", terminal[0].Event.Message, DownloadFailedPrefix)
	}

	// The run advanced past the failure.
	if terminal[1].Event.Kind != model.EventDone {
		t.Errorf("item 1 finished with %s, expected done", terminal[1].Event.Kind)
	}
	if runner.Phase() != model.RunCompleted {
		t.Errorf("phase = %s, expected %s", runner.Phase(), model.RunCompleted)
	}
}

func TestRunner_UnexpectedFailurePrefix(t *testing.T) {
	fake := &fakeFetcher{
		download: func(string, func(model.ProgressEvent)) error {
			return errors.New("ensure output directory: permission denied")
		},
	}

	runner := newTestRunner(fake)
	events, err := runner.Start(context.Background(), queueItems("https://a"), model.DownloadOptions{})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	updates := collect(t, events)
	terminal := terminalEvents(updates)
	if len(terminal) != 1 {
		t.Fatalf("expected 1 terminal event, got %d", len(terminal))
	}
	if !strings.HasPrefix(terminal[0].Event.Message, UnexpectedErrorPrefix) {
		t.Errorf("message %q, expected prefix %q", terminal[0].Event.Message, UnexpectedErrorPrefix)
	}
}

func TestRunner_PanicDoesNotKillRun(t *testing.T) {
	fake := &fakeFetcher{
		download: func(url string, _ func(model.ProgressEvent)) error {
			if url == "https://bad" {
				panic("nil dereference in callback")
			}
			return nil
		},
	}

	runner := newTestRunner(fake)
	events, err := runner.Start(context.Background(), queueItems("https://bad", "https://ok"), model.DownloadOptions{})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	updates := collect(t, events)
	terminal := terminalEvents(updates)
	if len(terminal) != 2 {
		t.Fatalf("expected 2 terminal events, got %d", len(terminal))
	}
	if terminal[0].Event.Kind != model.EventError || !strings.HasPrefix(terminal[0].Event.Message, UnexpectedErrorPrefix) {
		t.Errorf("item 0 = %+v, expected unexpected-error classification", terminal[0].Event)
	}
	if terminal[1].Event.Kind != model.EventDone {
		t.Errorf("item 1 finished with %s, expected done", terminal[1].Event.Kind)
	}
}

func TestRunner_TitleProbeFailureIsSilent(t *testing.T) {
	fake := &fakeFetcher{
		resolveTitle: func(string) (string, error) {
			return "", errors.New("metadata fetch timed out")
		},
		download: func(url string, progress func(model.ProgressEvent)) error {
			progress(model.DownloadingEvent(100, ""))
			return nil
		},
	}

	runner := newTestRunner(fake)
	events, err := runner.Start(context.Background(), queueItems("https://slow-metadata"), model.DownloadOptions{})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	updates := collect(t, events)
	for _, upd := range updates {
		if upd.Event.Kind == model.EventTitleResolved {
			t.Error("expected no title event after a failed probe")
		}
		if upd.Event.Kind == model.EventError {
			t.Errorf("probe failure surfaced as %q, expected silence", upd.Event.Message)
		}
	}

	terminal := terminalEvents(updates)
	if len(terminal) != 1 || terminal[0].Event.Kind != model.EventDone {
		t.Fatalf("expected the download to proceed to done, got %v", terminal)
	}
}

func TestRunner_PercentNeverRegresses(t *testing.T) {
	fake := &fakeFetcher{
		download: func(url string, progress func(model.ProgressEvent)) error {
			// A second stream restarting from a lower byte count must not
			// move the visible percent backwards, and spikes are capped.
			progress(model.DownloadingEvent(40, ""))
			progress(model.DownloadingEvent(10, ""))
			progress(model.DownloadingEvent(250, ""))
			progress(model.DownloadingEvent(80, ""))
			return nil
		},
	}

	runner := newTestRunner(fake)
	events, err := runner.Start(context.Background(), queueItems("https://a"), model.DownloadOptions{})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	updates := collect(t, events)

	var percents []int
	for _, upd := range updates {
		if upd.Event.Kind == model.EventDownloading {
			percents = append(percents, upd.Event.Percent)
		}
	}

	expected := []int{40, 40, 100, 100}
	if len(percents) != len(expected) {
		t.Fatalf("got percents %v, expected %v", percents, expected)
	}
	for i := range expected {
		if percents[i] != expected[i] {
			t.Errorf("percent %d = %d, expected %d", i, percents[i], expected[i])
		}
	}
}

func TestRunner_InitialPhase(t *testing.T) {
	runner := NewRunner()
	if runner.Phase() != model.RunIdle {
		t.Errorf("new runner phase = %s, expected %s", runner.Phase(), model.RunIdle)
	}
}
