package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusNotStarted = "NOT_STARTED"
	StatusPresent    = "PRESENT"
	StatusPaused     = "PAUSED"
	StatusSuspended  = "SUSPENDED"
	StatusEnded      = "ENDED"
)

// PresenceSession is one employee's verified presence window at a site.
// NextVerificationAt is persisted so a restarted scheduler can pick up
// pending re-verification deadlines.
type PresenceSession struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID          uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index"`
	SiteID              uuid.UUID      `gorm:"column:site_id;type:uuid;not null;index"`
	Status              string         `gorm:"column:status;type:varchar(20);not null;default:'NOT_STARTED'"`
	StartedAt           time.Time      `gorm:"column:started_at;type:timestamptz;not null"`
	EndedAt             *time.Time     `gorm:"column:ended_at;type:timestamptz"`
	NextVerificationAt  *time.Time     `gorm:"column:next_verification_at;type:timestamptz"`
	LastPairValidatedAt *time.Time     `gorm:"column:last_pair_validated_at;type:timestamptz"`
	ReliabilityScore    int            `gorm:"column:reliability_score;not null;default:100"`
	TotalMinutes        int            `gorm:"column:total_minutes;not null;default:0"`
	MinutesWithPair     int            `gorm:"column:minutes_with_pair;not null;default:0"`
	CreatedAt           time.Time      `gorm:"column:created_at"`
	UpdatedAt           time.Time      `gorm:"column:updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (PresenceSession) TableName() string {
	return "presence_sessions"
}

// Active reports whether the session still occupies the employee's single
// active-session slot.
func (s PresenceSession) Active() bool {
	switch s.Status {
	case StatusPresent, StatusPaused, StatusSuspended:
		return true
	default:
		return false
	}
}

// Suspended sessions cannot be resumed by the employee; they can only be
// ended. Suspension is entered from PRESENT alone and resume is valid from
// PAUSED alone.
func isAllowedStatusTransition(from, to string) bool {
	switch from {
	case StatusNotStarted:
		return to == StatusPresent
	case StatusPresent:
		return to == StatusPaused || to == StatusSuspended || to == StatusEnded
	case StatusPaused:
		return to == StatusPresent || to == StatusEnded
	case StatusSuspended:
		return to == StatusEnded
	default:
		return false
	}
}
