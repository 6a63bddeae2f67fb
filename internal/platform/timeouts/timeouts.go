// Package timeouts defines shared durations for the crumbtrail commands.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// ReloadDebounce coalesces bursts of definition file writes into one reload.
const ReloadDebounce = 250 * time.Millisecond
