package alert

import "time"

type ListAlertsQuery struct {
	EmployeeID string `form:"employee_id"`
	Severity   string `form:"severity"`
	Status     string `form:"status"`
}

type ResolveAlertRequest struct {
	Note string `json:"note"`
}

type AlertResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	Type            string     `json:"type"`
	Severity        string     `json:"severity"`
	Status          string     `json:"status"`
	Details         string     `json:"details"`
	ConfidenceScore int        `json:"confidence_score"`
	OccurredAt      time.Time  `json:"occurred_at"`
	ResolvedBy      string     `json:"resolved_by,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	EscalatedAt     *time.Time `json:"escalated_at,omitempty"`
}
