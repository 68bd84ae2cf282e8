package pair

import (
	"context"
	"database/sql"
	"errors"

	pairerrors "go-presence/internal/pair/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=pair_service.go -destination=mock/pair_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePairRequest) (PairResponse, error)
	GetAll(ctx context.Context) ([]PairResponse, error)
	GetByID(ctx context.Context, id string) (PairResponse, error)
	// GetPartner resolves the active pair partner for an employee at a site.
	GetPartner(ctx context.Context, employeeID, siteID string) (string, error)
	Deactivate(ctx context.Context, id string) (PairResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("pair.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("pair.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePairRequest) (PairResponse, error) {
	s.logger.Debug("create pair requested",
		zap.String("site_id", req.SiteID),
		zap.String("employee_a", req.EmployeeAID),
		zap.String("employee_b", req.EmployeeBID),
	)

	if req.EmployeeAID == req.EmployeeBID {
		return PairResponse{}, pairerrors.ErrSelfPair
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create pair begin tx failed", zap.Error(err))
		return PairResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Each employee may belong to at most one active pair per site
	for _, employeeID := range []string{req.EmployeeAID, req.EmployeeBID} {
		_, err := qtx.FindActiveByEmployeeAndSite(ctx, employeeID, req.SiteID)
		if err == nil {
			s.logger.Warn("create pair employee already paired",
				zap.String("employee_id", employeeID),
				zap.String("site_id", req.SiteID),
			)
			return PairResponse{}, pairerrors.ErrEmployeeAlreadyPaired
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return PairResponse{}, err
		}
	}

	p := &Pair{
		ID:          uuid.New(),
		SiteID:      uuid.MustParse(req.SiteID),
		EmployeeAID: uuid.MustParse(req.EmployeeAID),
		EmployeeBID: uuid.MustParse(req.EmployeeBID),
		IsActive:    true,
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create pair persist failed", zap.Error(err))
		return PairResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create pair commit failed", zap.Error(err))
		return PairResponse{}, err
	}

	s.logger.Info("create pair success", zap.String("pair_id", p.ID.String()))

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PairResponse, error) {
	pairs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all pairs failed", zap.Error(err))
		return nil, err
	}

	res := make([]PairResponse, len(pairs))
	for i, p := range pairs {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PairResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PairResponse{}, pairerrors.ErrPairNotFound
		}
		return PairResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) GetPartner(ctx context.Context, employeeID, siteID string) (string, error) {
	p, err := s.repo.FindActiveByEmployeeAndSite(ctx, employeeID, siteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pairerrors.ErrNoActivePair
		}
		return "", err
	}

	partner := p.PartnerOf(uuid.MustParse(employeeID))
	if partner == uuid.Nil {
		return "", pairerrors.ErrNoActivePair
	}
	return partner.String(), nil
}

func (s *service) Deactivate(ctx context.Context, id string) (PairResponse, error) {
	s.logger.Debug("deactivate pair requested", zap.String("pair_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("deactivate pair begin tx failed", zap.Error(err))
		return PairResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PairResponse{}, pairerrors.ErrPairNotFound
		}
		return PairResponse{}, err
	}

	p.IsActive = false

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("deactivate pair persist failed", zap.Error(err))
		return PairResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("deactivate pair commit failed", zap.Error(err))
		return PairResponse{}, err
	}

	s.logger.Info("deactivate pair success", zap.String("pair_id", id))

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete pair requested", zap.String("pair_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete pair begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete pair failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete pair commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete pair success", zap.String("pair_id", id))
	return nil
}

func mapToResponse(p Pair) PairResponse {
	return PairResponse{
		ID:          p.ID.String(),
		SiteID:      p.SiteID.String(),
		EmployeeAID: p.EmployeeAID.String(),
		EmployeeBID: p.EmployeeBID.String(),
		IsActive:    p.IsActive,
	}
}
