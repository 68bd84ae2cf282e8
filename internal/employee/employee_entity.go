package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber     string    `gorm:"type:varchar(20);uniqueIndex:uq_employee_number"`
	FullName           string    `gorm:"type:varchar(255);not null"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex:uq_employee_email;not null"`
	Phone              string    `gorm:"type:varchar(50)"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	Role               string    `gorm:"type:varchar(50);not null;default:'employee'"`
	BiometricRef       string    `gorm:"type:text"`
	SecurityQuestion   string    `gorm:"type:varchar(255)"`
	SecurityAnswerHash string    `gorm:"type:varchar(255)"`
	ConsentLocation    bool      `gorm:"not null;default:false"`
	ConsentBiometric   bool      `gorm:"not null;default:false"`
	ConsentPrivacy     bool      `gorm:"not null;default:false"`
	IsActive           bool      `gorm:"default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
