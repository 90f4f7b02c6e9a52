package ui

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/localtools/ytbulk/internal/config"
	"github.com/localtools/ytbulk/internal/download"
	"github.com/localtools/ytbulk/internal/model"
	"github.com/localtools/ytbulk/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	settings *config.Settings
	runner   *download.Runner

	// Queue state, owned by the UI goroutine
	items []*model.QueueItem

	// UI components
	urlEntry  *widget.Entry
	addBtn    *widget.Button
	queueList *widget.List

	outDirEntry   *widget.Entry
	browseBtn     *widget.Button
	openFolderBtn *widget.Button
	resolutionSel *widget.Select
	containerSel  *widget.Select
	startBtn      *widget.Button
	stopBtn       *widget.Button
	clearBtn      *widget.Button

	// running mirrors whether a run is in flight. While true, the queue must
	// not be compacted: worker events address rows by snapshot index.
	running bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, runner *download.Runner) *RootUI {
	settings := config.NewSettings(app)

	// Ensure the configured directory exists up front
	outDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outDir); err != nil {
		log.Printf("failed to create output directory %s: %v", outDir, err)
	}

	ui := &RootUI{
		window:   window,
		settings: settings,
		runner:   runner,
	}
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// URL entry row
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Paste a video URL and press Enter")
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onAddClick()
	}
	ui.addBtn = widget.NewButton("Add", ui.onAddClick)
	topPanel := container.NewBorder(nil, nil, nil, ui.addBtn, ui.urlEntry)

	// Queue list
	ui.queueList = widget.NewList(
		func() int {
			return len(ui.items)
		},
		func() fyne.CanvasObject {
			return NewQueueRow()
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ui.items) {
				return
			}
			row, ok := obj.(*QueueRow)
			if !ok {
				log.Printf("unexpected list item type %T", obj)
				return
			}
			row.SetItem(ui.items[id])
		},
	)

	// Options panel
	ui.outDirEntry = widget.NewEntry()
	ui.outDirEntry.SetText(ui.settings.GetOutputDirectory())
	ui.outDirEntry.OnChanged = func(dir string) {
		if dir != "" {
			ui.settings.SetOutputDirectory(dir)
		}
	}
	ui.browseBtn = widget.NewButton("Browse…", ui.onBrowseClick)
	ui.openFolderBtn = widget.NewButton("Open folder", ui.onOpenFolderClick)

	ui.resolutionSel = widget.NewSelect(config.ResolutionOptions(), func(string) {
		ui.settings.SetResolutionIndex(ui.resolutionSel.SelectedIndex())
	})
	ui.resolutionSel.SetSelectedIndex(ui.settings.GetResolutionIndex())

	ui.containerSel = widget.NewSelect(config.ContainerOptions(), func(string) {
		ui.settings.SetContainerIndex(ui.containerSel.SelectedIndex())
	})
	ui.containerSel.SetSelectedIndex(ui.settings.GetContainerIndex())

	ui.startBtn = widget.NewButton("Start", ui.onStartClick)
	ui.startBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton("Stop", ui.onStopClick)
	ui.stopBtn.Disable()
	ui.clearBtn = widget.NewButton("Clear finished", ui.onClearClick)

	optionsPanel := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Save to"), ui.browseBtn, ui.outDirEntry),
		container.NewHBox(
			widget.NewLabel("Max resolution"), ui.resolutionSel,
			widget.NewLabel("Container"), ui.containerSel,
		),
		container.NewHBox(ui.startBtn, ui.stopBtn, ui.clearBtn, ui.openFolderBtn),
	)

	content := container.NewBorder(topPanel, optionsPanel, nil, nil, ui.queueList)
	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
}

// validateURL performs basic URL validation for the entry field
func (ui *RootUI) validateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("URL must start with http:// or https://")
	}
	return nil
}

// onAddClick appends the entered URL to the queue
func (ui *RootUI) onAddClick() {
	raw := strings.TrimSpace(ui.urlEntry.Text)
	if raw == "" {
		return
	}
	if err := ui.validateURL(raw); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	ui.items = append(ui.items, &model.QueueItem{
		ID:      uuid.NewString(),
		URL:     raw,
		AddedAt: time.Now(),
		Status:  model.ItemStatusQueued,
	})
	ui.urlEntry.SetText("")
	ui.queueList.Refresh()
	log.Printf("queued %s (%d items)", raw, len(ui.items))
}

// onBrowseClick opens the folder picker for the output directory
func (ui *RootUI) onBrowseClick() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if dir == nil {
			return
		}
		ui.outDirEntry.SetText(dir.Path())
	}, ui.window)
}

// onOpenFolderClick reveals the output directory in the system file manager
func (ui *RootUI) onOpenFolderClick() {
	dir := ui.outDirEntry.Text
	if err := platform.OpenFolder(dir); err != nil {
		log.Printf("failed to open folder %s: %v", dir, err)
		dialog.ShowError(err, ui.window)
	}
}

// setRunning toggles the run controls. Clear is locked for the whole run so
// item indices stay stable for in-flight worker events.
func (ui *RootUI) setRunning(running bool) {
	ui.running = running
	if running {
		ui.startBtn.Disable()
		ui.clearBtn.Disable()
		ui.stopBtn.Enable()
	} else {
		ui.startBtn.Enable()
		ui.clearBtn.Enable()
		ui.stopBtn.Disable()
	}
}

// onClearClick removes finished items from the queue
func (ui *RootUI) onClearClick() {
	if ui.running {
		return
	}
	kept := ui.items[:0]
	for _, item := range ui.items {
		if !item.Status.IsTerminal() {
			kept = append(kept, item)
		}
	}
	ui.items = kept
	ui.queueList.Refresh()
}

// onStartClick launches a sequential run over the current queue
func (ui *RootUI) onStartClick() {
	if len(ui.items) == 0 {
		dialog.ShowInformation("Nothing to download", "Add at least one URL to the queue first.", ui.window)
		return
	}

	outDir := strings.TrimSpace(ui.outDirEntry.Text)
	if outDir == "" {
		outDir = ui.settings.GetOutputDirectory()
		ui.outDirEntry.SetText(outDir)
	}
	if err := platform.CreateDirectoryIfNotExists(outDir); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	ui.settings.SetOutputDirectory(outDir)

	ui.maybeWarnFFmpeg()

	opts := model.DownloadOptions{
		MaxHeight: config.ResolutionCap(ui.resolutionSel.SelectedIndex()),
		Container: config.ContainerAt(ui.containerSel.SelectedIndex()),
		OutputDir: outDir,
	}

	// Snapshot for the worker; the UI keeps the live pointers
	snapshot := make([]model.QueueItem, len(ui.items))
	for i, item := range ui.items {
		snapshot[i] = *item
	}

	events, err := ui.runner.Start(context.Background(), snapshot, opts)
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	log.Printf("run started: items=%d maxHeight=%d container=%s dir=%s",
		len(snapshot), opts.MaxHeight, opts.Container, opts.OutputDir)

	ui.setRunning(true)

	go ui.consumeEvents(events)
}

// maybeWarnFFmpeg warns before every run when ffmpeg is missing from PATH;
// merging separate audio/video streams needs it.
func (ui *RootUI) maybeWarnFFmpeg() {
	if platform.HasFFmpeg() {
		return
	}
	dialog.ShowInformation("ffmpeg not found",
		"ffmpeg is not on PATH. Merging video and audio streams may fail; only pre-muxed formats will download cleanly.",
		ui.window)
}

// onStopClick requests a stop at the next item boundary
func (ui *RootUI) onStopClick() {
	ui.runner.Stop()
	ui.stopBtn.Disable()
}

// consumeEvents drains the worker channel and mirrors events into the queue
// rows. Runs on its own goroutine; all UI mutation goes through fyne.Do.
func (ui *RootUI) consumeEvents(events <-chan model.Update) {
	for upd := range events {
		upd := upd
		fyne.Do(func() {
			ui.applyUpdate(upd)
		})
	}

	fyne.Do(func() {
		ui.setRunning(false)
		log.Printf("run finished: phase=%s", ui.runner.Phase())
	})
}

// applyUpdate mutates one queue item from a progress event. Must run on the
// UI goroutine.
func (ui *RootUI) applyUpdate(upd model.Update) {
	if upd.Index < 0 || upd.Index >= len(ui.items) {
		log.Printf("dropping update for out-of-range index %d", upd.Index)
		return
	}
	item := ui.items[upd.Index]
	ev := upd.Event

	switch ev.Kind {
	case model.EventStarting:
		item.Status = model.ItemStatusStarting
		item.Percent = 0
		item.Speed = ""
		item.Message = ""
	case model.EventTitleResolved:
		item.Title = ev.Title
	case model.EventDownloading:
		item.Status = model.ItemStatusDownloading
		item.Percent = ev.Percent
		item.Speed = ev.Speed
	case model.EventMerging:
		item.Status = model.ItemStatusMerging
		item.Percent = ev.Percent
		item.Speed = ""
	case model.EventDone:
		item.Status = model.ItemStatusDone
		item.Percent = 100
		item.Speed = ""
	case model.EventError:
		item.Status = model.ItemStatusError
		item.Message = ev.Message
		item.Speed = ""
	}

	ui.queueList.RefreshItem(upd.Index)
}
