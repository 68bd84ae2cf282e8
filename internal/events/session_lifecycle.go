package events

import "time"

const SessionLifecycleTopic = "presence.session.lifecycle.v1"

type SessionEndedEvent struct {
	EventType        string    `json:"event_type"`
	SessionID        string    `json:"session_id"`
	EmployeeID       string    `json:"employee_id"`
	SiteID           string    `json:"site_id"`
	ReliabilityScore int       `json:"reliability_score"`
	StartedAt        time.Time `json:"started_at"`
	EndedAt          time.Time `json:"ended_at"`
	OccurredAt       time.Time `json:"occurred_at"`
}
