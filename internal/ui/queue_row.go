package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/localtools/ytbulk/internal/model"
)

// QueueRow represents a compact queue row widget
type QueueRow struct {
	widget.BaseWidget

	item *model.QueueItem

	// UI components
	titleLabel   *widget.Label
	addedLabel   *widget.Label
	statusLabel  *widget.Label
	speedLabel   *widget.Label
	percentLabel *widget.Label
	progressBar  *widget.ProgressBar
}

// NewQueueRow creates a new queue row widget
func NewQueueRow() *QueueRow {
	qr := &QueueRow{}
	qr.ExtendBaseWidget(qr)
	qr.createUI()
	return qr
}

// SetItem updates the row with new item data
func (qr *QueueRow) SetItem(item *model.QueueItem) {
	qr.item = item
	qr.updateFromItem()
	qr.Refresh()
}

// createUI creates the UI components
func (qr *QueueRow) createUI() {
	qr.titleLabel = widget.NewLabel("")
	qr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	qr.titleLabel.Truncation = fyne.TextTruncateEllipsis
	qr.titleLabel.Alignment = fyne.TextAlignLeading

	qr.addedLabel = widget.NewLabel("")
	qr.addedLabel.Alignment = fyne.TextAlignTrailing
	qr.addedLabel.TextStyle = fyne.TextStyle{Monospace: true}

	qr.statusLabel = widget.NewLabel("")
	qr.statusLabel.Alignment = fyne.TextAlignTrailing
	qr.statusLabel.Truncation = fyne.TextTruncateEllipsis

	qr.speedLabel = widget.NewLabel("")
	qr.speedLabel.Alignment = fyne.TextAlignTrailing
	qr.speedLabel.TextStyle = fyne.TextStyle{Monospace: true}

	qr.percentLabel = widget.NewLabel("")
	qr.percentLabel.Alignment = fyne.TextAlignTrailing

	qr.progressBar = widget.NewProgressBar()
	qr.progressBar.Min = 0
	qr.progressBar.Max = 100
}

// updateFromItem updates UI components based on item state
func (qr *QueueRow) updateFromItem() {
	if qr.item == nil {
		return
	}

	// Titles can carry newlines from upstream metadata; flatten for display
	titleText := strings.Join(strings.Fields(qr.item.DisplayTitle()), " ")
	qr.titleLabel.SetText(titleText)

	qr.addedLabel.SetText(qr.item.FormatAddedAt())

	// Status label color and text
	switch qr.item.Status {
	case model.ItemStatusError:
		qr.statusLabel.Importance = widget.DangerImportance
	case model.ItemStatusDone:
		qr.statusLabel.Importance = widget.SuccessImportance
	case model.ItemStatusDownloading, model.ItemStatusMerging:
		qr.statusLabel.Importance = widget.HighImportance
	default:
		qr.statusLabel.Importance = widget.MediumImportance
	}
	qr.statusLabel.SetText(qr.item.DisplayStatus())

	qr.progressBar.SetValue(float64(qr.item.Percent))
	qr.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, qr.item.Percent))

	if qr.item.Status == model.ItemStatusDownloading && qr.item.Speed != "" {
		qr.speedLabel.SetText(qr.item.Speed)
	} else {
		qr.speedLabel.SetText(DashPlaceholder)
	}
}

// CreateRenderer creates the widget renderer
func (qr *QueueRow) CreateRenderer() fyne.WidgetRenderer {
	return &queueRowRenderer{queueRow: qr}
}

// queueRowRenderer renders the queue row widget
type queueRowRenderer struct {
	queueRow *QueueRow
	layout   *fyne.Container
}

// Layout arranges the components
func (r *queueRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *queueRowRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	min := r.layout.MinSize()
	if min.Width < RowMinWidth {
		min.Width = RowMinWidth
	}
	if min.Height < RowMinHeight {
		min.Height = RowMinHeight
	}
	return min
}

// Refresh refreshes the renderer
func (r *queueRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *queueRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *queueRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *queueRowRenderer) createLayout() {
	qr := r.queueRow

	// Fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	// Right cluster: added-at, progress bar with percent, speed, status.
	// Fixed widths keep the columns aligned across rows.
	rightCluster := container.NewHBox(
		fixedWidth(AddedLabelWidth, qr.addedLabel),
		fixedWidth(ProgressBarWidth, qr.progressBar),
		fixedWidth(PercentLabelWidth, qr.percentLabel),
		fixedWidth(SpeedLabelWidth, qr.speedLabel),
		fixedWidth(StatusLabelWidth, qr.statusLabel),
	)

	// Title occupies the remaining space on the left with truncation
	mainContent := container.NewBorder(nil, nil, nil, rightCluster, qr.titleLabel)

	r.layout = container.NewVBox(
		mainContent,
		widget.NewSeparator(),
	)
}
