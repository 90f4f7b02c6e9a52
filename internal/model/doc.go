package model

// Package model defines domain data structures shared across the app: queue
// items, download options, status enums, and the progress events the worker
// emits toward the UI. Values crossing goroutines are treated as immutable.
