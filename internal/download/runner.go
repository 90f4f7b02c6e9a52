package download

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/localtools/ytbulk/internal/model"
)

// eventBuffer keeps the worker from stalling on short UI hiccups.
const eventBuffer = 64

// Runner is the sequential queue worker. It owns one run at a time: an
// ordered snapshot of items, fixed options, and a cooperative stop flag.
// All events of a run are emitted from a single goroutine, so per-item and
// cross-item ordering need no further coordination.
type Runner struct {
	// newFetcher builds the per-run extraction client; replaced in tests
	newFetcher func(model.DownloadOptions) Fetcher

	mu    sync.Mutex
	phase model.RunPhase
	stop  atomic.Bool
}

// NewRunner creates an idle queue worker
func NewRunner() *Runner {
	return &Runner{
		newFetcher: func(opts model.DownloadOptions) Fetcher { return NewClient(opts) },
		phase:      model.RunIdle,
	}
}

// Start launches a run over a snapshot of items. It returns ErrRunActive if
// a run is already in flight. The returned channel delivers one Update per
// event; its close is the single terminal run-finished signal.
func (r *Runner) Start(ctx context.Context, items []model.QueueItem, opts model.DownloadOptions) (<-chan model.Update, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == model.RunActive {
		return nil, ErrRunActive
	}
	r.phase = model.RunActive
	r.stop.Store(false)

	snapshot := make([]model.QueueItem, len(items))
	copy(snapshot, items)

	events := make(chan model.Update, eventBuffer)
	go r.run(ctx, snapshot, opts, events)
	return events, nil
}

// Stop requests a halt at the next item boundary. It is idempotent, safe
// from any goroutine, and never interrupts the item currently in flight.
func (r *Runner) Stop() {
	r.stop.Store(true)
}

// Phase returns the current run phase
func (r *Runner) Phase() model.RunPhase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// run processes items strictly in enqueue order on the worker goroutine
func (r *Runner) run(ctx context.Context, items []model.QueueItem, opts model.DownloadOptions, events chan<- model.Update) {
	defer close(events)

	fetcher := r.newFetcher(opts)

	halted := false
	for i := range items {
		if r.stop.Load() {
			halted = true
			break
		}
		r.processItem(ctx, fetcher, i, items[i].URL, events)
	}

	r.mu.Lock()
	if halted {
		r.phase = model.RunStopped
	} else {
		r.phase = model.RunCompleted
	}
	r.mu.Unlock()

	log.Printf("run finished: phase=%s items=%d", r.Phase(), len(items))
}

// processItem drives one item to a terminal event. Failures, including
// recovered panics, terminate this item only.
func (r *Runner) processItem(ctx context.Context, fetcher Fetcher, index int, url string, events chan<- model.Update) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("item %d panicked: %v", index, p)
			events <- model.Update{Index: index, Event: model.ErrorEvent(UnexpectedErrorPrefix + fmt.Sprint(p))}
		}
	}()

	events <- model.Update{Index: index, Event: model.StartingEvent()}

	// Best-effort title probe; a failure here never blocks the download.
	if title, err := fetcher.ResolveTitle(ctx, url); err == nil && title != "" {
		events <- model.Update{Index: index, Event: model.TitleEvent(title)}
	}

	lastPercent := 0
	err := fetcher.Download(ctx, url, func(ev model.ProgressEvent) {
		if ev.Kind == model.EventDownloading {
			// Percent never regresses within an item and never exceeds 100.
			if ev.Percent < lastPercent {
				ev.Percent = lastPercent
			}
			if ev.Percent > 100 {
				ev.Percent = 100
			}
			lastPercent = ev.Percent
		}
		events <- model.Update{Index: index, Event: ev}
	})
	if err != nil {
		log.Printf("item %d failed: %v", index, err)
		events <- model.Update{Index: index, Event: model.ErrorEvent(itemErrorMessage(err))}
		return
	}

	events <- model.Update{Index: index, Event: model.DoneEvent()}
}
