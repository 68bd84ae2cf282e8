package events

import "time"

const AlertRaisedTopic = "presence.alert.raised.v1"

type AlertRaisedEvent struct {
	EventType       string    `json:"event_type"`
	AlertID         string    `json:"alert_id"`
	EmployeeID      string    `json:"employee_id"`
	AlertType       string    `json:"alert_type"`
	Severity        string    `json:"severity"`
	ConfidenceScore int       `json:"confidence_score"`
	OccurredAt      time.Time `json:"occurred_at"`
}
