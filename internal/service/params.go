package service

import "time"

// LogFilter supports journal filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "READY", "READY_CLEARED", "DISCONNECTED", "RECONNECTED"
}
