package alert

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Type identifies the anomaly pattern a detector flagged.
type Type string

const (
	TypeGPSStable           Type = "gpsStable"
	TypeIdenticalSelfies    Type = "identicalSelfies"
	TypeNoPair              Type = "noPair"
	TypeUnrealisticMovement Type = "unrealisticMovement"
	TypeLateAuth            Type = "lateAuth"
)

func (t Type) Valid() bool {
	switch t {
	case TypeGPSStable, TypeIdenticalSelfies, TypeNoPair, TypeUnrealisticMovement, TypeLateAuth:
		return true
	default:
		return false
	}
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	default:
		return false
	}
}

const (
	StatusOpen      = "OPEN"
	StatusResolved  = "RESOLVED"
	StatusEscalated = "ESCALATED"
)

// Draft is an alert produced by the anomaly detector before persistence
// assigns it an id and resolution state.
type Draft struct {
	EmployeeID      string
	Type            Type
	Severity        Severity
	Timestamp       time.Time
	Details         string
	ConfidenceScore int
}

type AIAlert struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID      uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index"`
	Type            Type           `gorm:"column:type;type:varchar(40);not null"`
	Severity        Severity       `gorm:"column:severity;type:varchar(10);not null"`
	OccurredAt      time.Time      `gorm:"column:occurred_at;type:timestamptz;not null"`
	Details         string         `gorm:"column:details;type:text;not null"`
	ConfidenceScore int            `gorm:"column:confidence_score;not null"`
	Status          string         `gorm:"column:status;type:varchar(20);not null;default:OPEN"`
	ResolvedBy      *uuid.UUID     `gorm:"column:resolved_by;type:uuid"`
	ResolvedAt      *time.Time     `gorm:"column:resolved_at;type:timestamptz"`
	EscalatedAt     *time.Time     `gorm:"column:escalated_at;type:timestamptz"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (AIAlert) TableName() string {
	return "ai_alerts"
}
