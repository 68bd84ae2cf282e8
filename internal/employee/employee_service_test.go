package employee

import (
	"context"
	"database/sql"
	"testing"

	employeeerrors "go-presence/internal/employee/errors"
	"go-presence/internal/verification"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn      func(tx *sql.Tx) Repository
	createFn      func(ctx context.Context, empl *Employee) error
	findAllFn     func(ctx context.Context) ([]Employee, error)
	findOptionsFn func(ctx context.Context) ([]Employee, error)
	findByIDFn    func(ctx context.Context, id string) (*Employee, error)
	findByEmailFn func(ctx context.Context, email string) (*Employee, error)
	updateFn      func(ctx context.Context, empl *Employee) error
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                 { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindOptions(ctx context.Context) ([]Employee, error) {
	return f.findOptionsFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error   { return f.deleteFn(ctx, id) }

type fakeCounter struct {
	nextFn func(ctx context.Context, scope, counterType string) (int64, error)
}

func (f *fakeCounter) GetNextValue(ctx context.Context, scope, counterType string) (int64, error) {
	return f.nextFn(ctx, scope, counterType)
}

func validRegisterRequest() RegisterEmployeeRequest {
	return RegisterEmployeeRequest{
		FullName:         "Maria Santos",
		Email:            "maria@example.com",
		Password:         "secret123",
		SecurityQuestion: "What was the name of your first pet?",
		SecurityAnswer:   "  Rex  ",
		BiometricRef:     "bio-ref-1",
		ConsentLocation:  true,
		ConsentBiometric: true,
		ConsentPrivacy:   true,
	}
}

func TestService_Register(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *Employee) error { saved = *e; return nil }

	counterRepo := &fakeCounter{nextFn: func(ctx context.Context, scope, counterType string) (int64, error) {
		assert.Equal(t, "employee_number", counterType)
		return 42, nil
	}}

	svc := NewService(db, repo, counterRepo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Register(ctx, validRegisterRequest())

	assert.NoError(t, err)
	assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
	assert.Equal(t, "employee", resp.Role)
	assert.True(t, resp.ConsentLocation)
	assert.True(t, resp.ConsentPrivacy)

	// password and security answer are stored hashed, never in clear
	assert.NotEqual(t, "secret123", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("secret123")))
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(saved.SecurityAnswerHash),
		[]byte(verification.NormalizeAnswer("REX")),
	))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_ConsentRequired(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	svc := NewService(db, repo, &fakeCounter{}, nil)

	req := validRegisterRequest()
	req.ConsentBiometric = false

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, employeeerrors.ErrConsentRequired)

	req = validRegisterRequest()
	req.ConsentPrivacy = false

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, employeeerrors.ErrConsentRequired)
}

func TestService_Register_InvalidRole(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounter{}, nil)

	req := validRegisterRequest()
	req.Role = "contractor"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidRole)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_Update_TogglesActiveAndRole(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	existing := Employee{
		ID:       uuid.New(),
		FullName: "Old Name",
		Email:    "old@example.com",
		Role:     "employee",
		IsActive: true,
	}

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		e := existing
		return &e, nil
	}
	repo.updateFn = func(ctx context.Context, e *Employee) error { saved = *e; return nil }

	svc := NewService(db, repo, &fakeCounter{}, nil)

	inactive := false
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), existing.ID.String(), UpdateEmployeeRequest{
		FullName: "New Name",
		Email:    "new@example.com",
		Role:     "supervisor",
		IsActive: &inactive,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", saved.FullName)
	assert.Equal(t, "supervisor", resp.Role)
	assert.False(t, resp.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
