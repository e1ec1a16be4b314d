package events

import "time"

const (
	LeaveLifecycleTopic = "leave.request.lifecycle.v1"

	EventTypeLeaveResolved = "leave.request.resolved"
)

// LeaveResolvedEvent is published when a pending request reaches a terminal
// state. Downstream consumers (payroll export, reporting) subscribe to the
// lifecycle topic.
type LeaveResolvedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	RequesterID string    `json:"requester_id"`
	Category    string    `json:"category"`
	TotalDays   int       `json:"total_days"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
