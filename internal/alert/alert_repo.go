package alert

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=alert_repo.go -destination=mock/alert_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *AIAlert) error
	FindByID(ctx context.Context, id string) (*AIAlert, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]AIAlert, error)
	List(ctx context.Context, q ListAlertsQuery) ([]AIAlert, error)
	Update(ctx context.Context, a *AIAlert) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, a *AIAlert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*AIAlert, error) {
	var a AIAlert
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]AIAlert, error) {
	var alerts []AIAlert
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("occurred_at DESC").
		Find(&alerts).Error
	return alerts, err
}

func (r *repository) List(ctx context.Context, q ListAlertsQuery) ([]AIAlert, error) {
	tx := r.db.WithContext(ctx)

	if q.EmployeeID != "" {
		tx = tx.Where("employee_id = ?", q.EmployeeID)
	}
	if q.Severity != "" {
		tx = tx.Where("severity = ?", q.Severity)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var alerts []AIAlert
	err := tx.Order("occurred_at DESC").Find(&alerts).Error
	return alerts, err
}

func (r *repository) Update(ctx context.Context, a *AIAlert) error {
	return r.db.WithContext(ctx).Save(a).Error
}
