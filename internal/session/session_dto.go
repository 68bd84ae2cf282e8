package session

import "time"

type StartSessionRequest struct {
	SiteID         string  `json:"site_id" binding:"required,uuid"`
	Latitude       float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude      float64 `json:"longitude" binding:"min=-180,max=180"`
	FaceSample     string  `json:"face_sample"`
	SkipFacial     bool    `json:"skip_facial"`
	SecurityAnswer string  `json:"security_answer" binding:"required"`
}

type PeriodicCheckInRequest struct {
	Latitude       float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude      float64 `json:"longitude" binding:"min=-180,max=180"`
	FaceSample     string  `json:"face_sample"`
	SkipFacial     bool    `json:"skip_facial"`
	SecurityAnswer string  `json:"security_answer" binding:"required"`
}

type EndSessionRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

type ClaimPairCodeRequest struct {
	Code      string `json:"code" binding:"required"`
	Confirmed bool   `json:"confirmed"`
}

type SessionResponse struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employee_id"`
	SiteID             string     `json:"site_id"`
	Status             string     `json:"status"`
	StartedAt          time.Time  `json:"started_at"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	NextVerificationAt *time.Time `json:"next_verification_at,omitempty"`
	ReliabilityScore   int        `json:"reliability_score"`
	TotalMinutes       int        `json:"total_minutes,omitempty"`
	MinutesWithPair    int        `json:"minutes_with_pair,omitempty"`
}

type CheckInResponse struct {
	ID                 string    `json:"id"`
	SessionID          string    `json:"session_id"`
	OccurredAt         time.Time `json:"occurred_at"`
	Type               string    `json:"type"`
	VerificationMethod string    `json:"verification_method"`
	Status             string    `json:"status"`
	AIConfidenceScore  int       `json:"ai_confidence_score"`
	PairPresent        bool      `json:"pair_present"`
}

type PairCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type DaySummaryResponse struct {
	Date             string           `json:"date"`
	TotalCheckIns    int              `json:"total_check_ins"`
	VerifiedCheckIns int              `json:"verified_check_ins"`
	FailedCheckIns   int              `json:"failed_check_ins"`
	FirstCheckInAt   *time.Time       `json:"first_check_in_at,omitempty"`
	LastCheckInAt    *time.Time       `json:"last_check_in_at,omitempty"`
	CheckIns         []CheckInResponse `json:"check_ins"`
}
