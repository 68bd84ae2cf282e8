package site

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultRadiusMeters = 100

type Site struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);uniqueIndex:uq_site_name;not null"`
	Address      string    `gorm:"type:text"`
	Latitude     float64   `gorm:"not null"`
	Longitude    float64   `gorm:"not null"`
	RadiusMeters float64   `gorm:"not null;default:100"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
