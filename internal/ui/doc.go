package ui

// Package ui contains the Fyne widgets and layout for the bulk download
// queue: the URL entry, the options panel, and the queue table.
