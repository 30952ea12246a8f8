// Package chart binds a renderer, a surface and an interaction controller
// into one chart instance.
//
// A [Chart] recomputes on change: it renders only when the dataset pointer,
// the viewport size, or the selection content differs from the last pass.
// Each pass clears and redraws the whole surface and re-attaches the
// interaction controller, so highlight state never outlives the elements it
// refers to.
//
// # Loading
//
// [Chart.Load] tags every request with a monotonically increasing token. A
// response whose token is no longer the latest is discarded and reported as
// [ErrStale], so a slow early load can never overwrite a newer one. A failed
// load is logged and leaves the chart in its empty state.
//
// # Concurrency
//
// All methods serialize on one mutex. The viewport observer's timer callback
// goes through the same lock, which is the only goroutine the engine runs.
package chart
