package checkin

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=checkin_repo.go -destination=mock/checkin_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *CheckIn) error
	FindBySession(ctx context.Context, sessionID string) ([]CheckIn, error)
	FindRecentByEmployee(ctx context.Context, employeeID string, limit int) ([]CheckIn, error)
	FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]CheckIn, error)
	CountByEmployeeSince(ctx context.Context, employeeID string, since time.Time) (int64, error)
	CreateLocationSample(ctx context.Context, s *LocationSample) error
	FindRecentLocations(ctx context.Context, employeeID string, limit int) ([]LocationSample, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, c *CheckIn) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindBySession(ctx context.Context, sessionID string) ([]CheckIn, error) {
	var rows []CheckIn
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("occurred_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRecentByEmployee(ctx context.Context, employeeID string, limit int) ([]CheckIn, error) {
	var rows []CheckIn
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]CheckIn, error) {
	var rows []CheckIn
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND occurred_at >= ? AND occurred_at < ?", employeeID, from, to).
		Order("occurred_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByEmployeeSince(ctx context.Context, employeeID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CheckIn{}).
		Where("employee_id = ? AND occurred_at >= ?", employeeID, since).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateLocationSample(ctx context.Context, s *LocationSample) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindRecentLocations(ctx context.Context, employeeID string, limit int) ([]LocationSample, error) {
	var rows []LocationSample
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
