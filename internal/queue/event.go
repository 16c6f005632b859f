// Package queue defines message payloads exchanged over the message broker.
package queue

// Lifecycle event names carried in SessionEvent.Event.
const (
    EventSessionBooked   = "session.booked"
    EventSessionCanceled = "session.canceled"
)

// SessionEvent is published when a training session is booked or canceled.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type SessionEvent struct {
    Event        string `json:"event"` // session.booked or session.canceled
    SessionID    uint64 `json:"session_id"`
    CourtID      uint64 `json:"court_id,omitempty"`
    CourtName    string `json:"court_name,omitempty"`
    Date         string `json:"date"`
    StartTime    string `json:"start_time"`
    EndTime      string `json:"end_time"`
    FocusArea    string `json:"focus_area"`
    MaxPlayers   uint8  `json:"max_players"`
    ActiveCount  int    `json:"active_players"`
    CreatedBy    uint64 `json:"created_by"`
    OccurredAt   string `json:"occurred_at"`
    CancelReason string `json:"cancel_reason,omitempty"`
}
