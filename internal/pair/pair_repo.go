package pair

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=pair_repo.go -destination=mock/pair_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Pair) error
	FindAll(ctx context.Context) ([]Pair, error)
	FindByID(ctx context.Context, id string) (*Pair, error)
	FindActiveByEmployeeAndSite(ctx context.Context, employeeID, siteID string) (*Pair, error)
	Update(ctx context.Context, p *Pair) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, p *Pair) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Pair, error) {
	var pairs []Pair
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&pairs).Error
	return pairs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Pair, error) {
	var p Pair
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindActiveByEmployeeAndSite(ctx context.Context, employeeID, siteID string) (*Pair, error) {
	var p Pair
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Where("is_active = ?", true).
		Where("employee_a_id = ? OR employee_b_id = ?", employeeID, employeeID).
		First(&p).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Pair) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Pair{}, "id = ?", id).Error
}
