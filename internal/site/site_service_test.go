package site

import (
	"context"
	"database/sql"
	"testing"

	siteerrors "go-presence/internal/site/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn     func(tx *sql.Tx) Repository
	createFn     func(ctx context.Context, s *Site) error
	findAllFn    func(ctx context.Context) ([]Site, error)
	findActiveFn func(ctx context.Context) ([]Site, error)
	findByIDFn   func(ctx context.Context, id string) (*Site, error)
	updateFn     func(ctx context.Context, s *Site) error
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository              { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, s *Site) error { return f.createFn(ctx, s) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Site, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindActive(ctx context.Context) ([]Site, error) {
	return f.findActiveFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Site, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, s *Site) error { return f.updateFn(ctx, s) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestService_Create_DefaultsRadius(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Site
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, s *Site) error { saved = *s; return nil }

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateSiteRequest{
		Name:      "HQ",
		Latitude:  48.8566,
		Longitude: 2.3522,
	})

	assert.NoError(t, err)
	assert.Equal(t, float64(DefaultRadiusMeters), saved.RadiusMeters)
	assert.True(t, resp.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsNegativeRadius(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)

	_, err := svc.Create(context.Background(), CreateSiteRequest{
		Name:         "HQ",
		Latitude:     48.8566,
		Longitude:    2.3522,
		RadiusMeters: -10,
	})

	assert.ErrorIs(t, err, siteerrors.ErrInvalidRadius)
}

func TestService_GetOptions_SingleDBHit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	calls := 0
	repo := &fakeRepo{}
	repo.findActiveFn = func(ctx context.Context) ([]Site, error) {
		calls++
		return []Site{{ID: uuid.New(), Name: "HQ", RadiusMeters: 100, IsActive: true}}, nil
	}

	svc := NewService(db, repo, nil)

	resp, err := svc.GetOptions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, 1, calls)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Site, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, siteerrors.ErrSiteNotFound)
}

func TestService_Update_Deactivate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	existing := Site{ID: uuid.New(), Name: "HQ", Latitude: 1, Longitude: 1, RadiusMeters: 100, IsActive: true}

	var saved Site
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Site, error) {
		s := existing
		return &s, nil
	}
	repo.updateFn = func(ctx context.Context, s *Site) error { saved = *s; return nil }

	svc := NewService(db, repo, nil)

	inactive := false
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), existing.ID.String(), UpdateSiteRequest{
		Name:         "HQ North",
		Latitude:     2,
		Longitude:    2,
		RadiusMeters: 150,
		IsActive:     &inactive,
	})

	assert.NoError(t, err)
	assert.Equal(t, "HQ North", saved.Name)
	assert.Equal(t, 150.0, saved.RadiusMeters)
	assert.False(t, resp.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
