package session

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=session_repo.go -destination=mock/session_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *PresenceSession) error
	FindByID(ctx context.Context, id string) (*PresenceSession, error)
	// FindActiveByEmployee returns the employee's PRESENT, PAUSED or
	// SUSPENDED session. At most one can exist at a time.
	FindActiveByEmployee(ctx context.Context, employeeID string) (*PresenceSession, error)
	FindByEmployee(ctx context.Context, employeeID string, limit int) ([]PresenceSession, error)
	// FindPendingVerification lists PRESENT sessions carrying a
	// re-verification deadline, used to rebuild timers after a restart.
	FindPendingVerification(ctx context.Context, limit int) ([]PresenceSession, error)
	Update(ctx context.Context, s *PresenceSession) error
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

func (r *repository) Create(ctx context.Context, s *PresenceSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PresenceSession, error) {
	var s PresenceSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string) (*PresenceSession, error) {
	var s PresenceSession
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status IN ?", employeeID,
			[]string{StatusPresent, StatusPaused, StatusSuspended}).
		First(&s).Error
	return &s, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, limit int) ([]PresenceSession, error) {
	var rows []PresenceSession
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("started_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPendingVerification(ctx context.Context, limit int) ([]PresenceSession, error) {
	var rows []PresenceSession
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_verification_at IS NOT NULL", StatusPresent).
		Order("next_verification_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, s *PresenceSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}
