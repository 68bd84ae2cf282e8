package site

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	siteerrors "go-presence/internal/site/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const SiteOptionsKey = "sites:options"

//go:generate mockgen -source=site_service.go -destination=mock/site_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSiteRequest) (SiteResponse, error)
	GetAll(ctx context.Context) ([]SiteResponse, error)
	GetOptions(ctx context.Context) ([]SiteResponse, error)
	GetByID(ctx context.Context, id string) (SiteResponse, error)
	Update(ctx context.Context, id string, req UpdateSiteRequest) (SiteResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("site.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("site.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l}
}

func (s *service) Create(ctx context.Context, req CreateSiteRequest) (SiteResponse, error) {
	s.logger.Debug("create site requested", zap.String("name", req.Name))

	radius := req.RadiusMeters
	if radius == 0 {
		radius = DefaultRadiusMeters
	}
	if radius <= 0 {
		return SiteResponse{}, siteerrors.ErrInvalidRadius
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create site begin tx failed", zap.Error(err))
		return SiteResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	site := &Site{
		ID:           uuid.New(),
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: radius,
		IsActive:     true,
	}

	if err := qtx.Create(ctx, site); err != nil {
		s.logger.Error("create site persist failed", zap.Error(err))
		return SiteResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create site commit failed", zap.Error(err))
		return SiteResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create site success", zap.String("site_id", site.ID.String()))

	return mapToResponse(*site), nil
}

func (s *service) GetAll(ctx context.Context) ([]SiteResponse, error) {
	sites, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all sites failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(sites), nil
}

func (s *service) GetOptions(ctx context.Context) ([]SiteResponse, error) {
	cacheKey := SiteOptionsKey

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []SiteResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight keeps the check-in screen from stampeding the DB
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		sites, err := s.repo.FindActive(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(sites)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]SiteResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SiteResponse, error) {
	site, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get site by id failed", zap.Error(err))
		return SiteResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*site), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSiteRequest) (SiteResponse, error) {
	s.logger.Debug("update site requested", zap.String("site_id", id))

	radius := req.RadiusMeters
	if radius == 0 {
		radius = DefaultRadiusMeters
	}
	if radius <= 0 {
		return SiteResponse{}, siteerrors.ErrInvalidRadius
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update site begin tx failed", zap.Error(err))
		return SiteResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	site, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update site fetch existing failed", zap.Error(err))
		return SiteResponse{}, mapRepositoryError(err)
	}

	site.Name = req.Name
	site.Address = req.Address
	site.Latitude = req.Latitude
	site.Longitude = req.Longitude
	site.RadiusMeters = radius
	if req.IsActive != nil {
		site.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, site); err != nil {
		s.logger.Error("update site persist failed", zap.Error(err))
		return SiteResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update site commit failed", zap.Error(err))
		return SiteResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update site success", zap.String("site_id", id))

	return mapToResponse(*site), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete site requested", zap.String("site_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete site begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete site failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete site commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("delete site success", zap.String("site_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, SiteOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate site options cache",
			zap.Error(err),
			zap.String("key", SiteOptionsKey),
		)
	}
}

func mapToResponse(s Site) SiteResponse {
	return SiteResponse{
		ID:           s.ID.String(),
		Name:         s.Name,
		Address:      s.Address,
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		RadiusMeters: s.RadiusMeters,
		IsActive:     s.IsActive,
	}
}

func mapToListResponse(sites []Site) []SiteResponse {
	res := make([]SiteResponse, len(sites))
	for i, s := range sites {
		res[i] = mapToResponse(s)
	}
	return res
}
