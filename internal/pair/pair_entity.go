package pair

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pair links two employees who vouch for each other's presence at a site.
type Pair struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SiteID      uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeAID uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeBID uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive    bool      `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// PartnerOf returns the other member of the pair, or uuid.Nil when the
// given employee is not part of it.
func (p Pair) PartnerOf(employeeID uuid.UUID) uuid.UUID {
	switch employeeID {
	case p.EmployeeAID:
		return p.EmployeeBID
	case p.EmployeeBID:
		return p.EmployeeAID
	default:
		return uuid.Nil
	}
}
