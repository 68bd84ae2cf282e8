package pair

import (
	"context"
	"database/sql"
	"testing"

	pairerrors "go-presence/internal/pair/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn       func(tx *sql.Tx) Repository
	createFn       func(ctx context.Context, p *Pair) error
	findAllFn      func(ctx context.Context) ([]Pair, error)
	findByIDFn     func(ctx context.Context, id string) (*Pair, error)
	findActiveFn   func(ctx context.Context, employeeID, siteID string) (*Pair, error)
	updateFn       func(ctx context.Context, p *Pair) error
	deleteFn       func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository              { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, p *Pair) error { return f.createFn(ctx, p) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Pair, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Pair, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindActiveByEmployeeAndSite(ctx context.Context, employeeID, siteID string) (*Pair, error) {
	return f.findActiveFn(ctx, employeeID, siteID)
}
func (f *fakeRepo) Update(ctx context.Context, p *Pair) error { return f.updateFn(ctx, p) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Pair
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, p *Pair) error { saved = *p; return nil }
	repo.findActiveFn = func(ctx context.Context, employeeID, siteID string) (*Pair, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreatePairRequest{
		SiteID:      uuid.New().String(),
		EmployeeAID: uuid.New().String(),
		EmployeeBID: uuid.New().String(),
	})

	assert.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.NotEqual(t, saved.EmployeeAID, saved.EmployeeBID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsSelfPair(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	employeeID := uuid.New().String()
	_, err := svc.Create(context.Background(), CreatePairRequest{
		SiteID:      uuid.New().String(),
		EmployeeAID: employeeID,
		EmployeeBID: employeeID,
	})

	assert.ErrorIs(t, err, pairerrors.ErrSelfPair)
}

func TestService_Create_RejectsAlreadyPaired(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findActiveFn = func(ctx context.Context, employeeID, siteID string) (*Pair, error) {
		return &Pair{ID: uuid.New(), IsActive: true}, nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreatePairRequest{
		SiteID:      uuid.New().String(),
		EmployeeAID: uuid.New().String(),
		EmployeeBID: uuid.New().String(),
	})

	assert.ErrorIs(t, err, pairerrors.ErrEmployeeAlreadyPaired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetPartner(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	a := uuid.New()
	b := uuid.New()
	siteID := uuid.New()

	repo := &fakeRepo{}
	repo.findActiveFn = func(ctx context.Context, employeeID, sID string) (*Pair, error) {
		return &Pair{ID: uuid.New(), SiteID: siteID, EmployeeAID: a, EmployeeBID: b, IsActive: true}, nil
	}

	svc := NewService(db, repo)

	partner, err := svc.GetPartner(context.Background(), a.String(), siteID.String())
	assert.NoError(t, err)
	assert.Equal(t, b.String(), partner)

	partner, err = svc.GetPartner(context.Background(), b.String(), siteID.String())
	assert.NoError(t, err)
	assert.Equal(t, a.String(), partner)
}

func TestService_GetPartner_NoActivePair(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findActiveFn = func(ctx context.Context, employeeID, siteID string) (*Pair, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	_, err := svc.GetPartner(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, pairerrors.ErrNoActivePair)
}
