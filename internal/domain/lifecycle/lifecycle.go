// Package lifecycle holds shared timeouts for graceful startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and background workers.
const DefaultTimeout = 10 * time.Second
