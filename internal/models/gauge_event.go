package models

import "time"

// Event types written to the gauge journal.
const (
	EventReady        = "READY"
	EventReadyCleared = "READY_CLEARED"
	EventDisconnected = "DISCONNECTED"
	EventReconnected  = "RECONNECTED"
)

// GaugeEvent is a single journal entry.
type GaugeEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // READY | READY_CLEARED | DISCONNECTED | RECONNECTED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
