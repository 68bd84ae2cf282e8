package checkin

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeStart    = "start"
	TypePeriodic = "periodic"
	TypeEnd      = "end"
)

const (
	MethodFacial   = "facial"
	MethodQuestion = "question"
)

const (
	StatusVerified = "verified"
	StatusFailed   = "failed"
)

// CheckIn is one completed (or failed) identity-and-location verification
// event. Rows are append-only and never mutated after creation.
type CheckIn struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID          uuid.UUID `gorm:"column:session_id;type:uuid;not null;index"`
	EmployeeID         uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	SiteID             uuid.UUID `gorm:"column:site_id;type:uuid;not null;index"`
	OccurredAt         time.Time `gorm:"column:occurred_at;type:timestamptz;not null"`
	Type               string    `gorm:"column:type;type:varchar(10);not null"`
	VerificationMethod string    `gorm:"column:verification_method;type:varchar(10);not null"`
	Latitude           float64   `gorm:"column:latitude;not null"`
	Longitude          float64   `gorm:"column:longitude;not null"`
	Status             string    `gorm:"column:status;type:varchar(10);not null"`
	AIConfidenceScore  int       `gorm:"column:ai_confidence_score;not null"`
	PairPresent        bool      `gorm:"column:pair_present;not null"`
	DistanceToPair     *float64  `gorm:"column:distance_to_pair"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (CheckIn) TableName() string {
	return "check_ins"
}

// LocationSample is a raw GPS reading captured during an active session,
// consumed by the anomaly detector.
type LocationSample struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	Latitude   float64   `gorm:"column:latitude;not null"`
	Longitude  float64   `gorm:"column:longitude;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;type:timestamptz;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (LocationSample) TableName() string {
	return "location_samples"
}
