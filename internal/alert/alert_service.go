package alert

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	alerterrors "go-presence/internal/alert/errors"
	"go-presence/internal/events"
	"go-presence/internal/messaging/kafka"
	"go-presence/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=alert_service.go -destination=mock/alert_service_mock.go -package=mock
type Service interface {
	// RaiseAll persists detector drafts and queues one raised event per alert.
	RaiseAll(ctx context.Context, drafts []Draft) ([]AlertResponse, error)
	List(ctx context.Context, q ListAlertsQuery) ([]AlertResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AlertResponse, error)
	Resolve(ctx context.Context, id, resolverID string) (AlertResponse, error)
	Escalate(ctx context.Context, id string) (AlertResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("alert.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("alert.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func isAllowedStatusTransition(from, to string) bool {
	switch from {
	case StatusOpen:
		return to == StatusResolved || to == StatusEscalated
	case StatusEscalated:
		return to == StatusResolved
	default:
		return false
	}
}

func (s *service) RaiseAll(ctx context.Context, drafts []Draft) ([]AlertResponse, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("raise alerts requested",
		zap.String("request_id", rid),
		zap.Int("count", len(drafts)),
	)

	for _, d := range drafts {
		if !d.Type.Valid() {
			return nil, alerterrors.ErrInvalidAlertType
		}
		if !d.Severity.Valid() {
			return nil, alerterrors.ErrInvalidSeverity
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("raise alerts begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	persisted := make([]AIAlert, 0, len(drafts))
	for _, d := range drafts {
		a := &AIAlert{
			ID:              uuid.New(),
			EmployeeID:      uuid.MustParse(d.EmployeeID),
			Type:            d.Type,
			Severity:        d.Severity,
			OccurredAt:      d.Timestamp,
			Details:         d.Details,
			ConfidenceScore: d.ConfidenceScore,
			Status:          StatusOpen,
		}

		if err := qtx.Create(ctx, a); err != nil {
			s.logger.Error("raise alert persist failed",
				zap.String("employee_id", d.EmployeeID),
				zap.String("type", string(d.Type)),
				zap.Error(err),
			)
			return nil, err
		}

		if s.outbox != nil {
			event := events.AlertRaisedEvent{
				EventType:       "alert_raised",
				AlertID:         a.ID.String(),
				EmployeeID:      a.EmployeeID.String(),
				AlertType:       string(a.Type),
				Severity:        string(a.Severity),
				ConfidenceScore: a.ConfidenceScore,
				OccurredAt:      a.OccurredAt,
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return nil, err
			}

			outboxRepo := s.outbox.WithTx(tx)
			if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				RequestID:     rid,
				AggregateType: "alert",
				AggregateID:   a.ID.String(),
				EventType:     event.EventType,
				Topic:         events.AlertRaisedTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			}); err != nil {
				s.logger.Error("raise alert outbox persist failed",
					zap.String("alert_id", a.ID.String()),
					zap.Error(err),
				)
				return nil, err
			}
		}

		persisted = append(persisted, *a)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("raise alerts commit failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("raise alerts success",
		zap.String("request_id", rid),
		zap.Int("count", len(persisted)),
	)

	return mapToListResponse(persisted), nil
}

func (s *service) List(ctx context.Context, q ListAlertsQuery) ([]AlertResponse, error) {
	if q.Severity != "" && !Severity(q.Severity).Valid() {
		return nil, alerterrors.ErrInvalidSeverity
	}

	alerts, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("list alerts failed", zap.Error(err))
		return nil, err
	}

	return mapToListResponse(alerts), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AlertResponse, error) {
	alerts, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get alerts by employee failed", zap.Error(err))
		return nil, err
	}

	return mapToListResponse(alerts), nil
}

func (s *service) Resolve(ctx context.Context, id, resolverID string) (AlertResponse, error) {
	s.logger.Debug("resolve alert requested",
		zap.String("alert_id", id),
		zap.String("resolver_id", resolverID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve alert begin tx failed", zap.Error(err))
		return AlertResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AlertResponse{}, alerterrors.ErrAlertNotFound
		}
		return AlertResponse{}, err
	}

	if !isAllowedStatusTransition(a.Status, StatusResolved) {
		s.logger.Warn("resolve alert invalid transition",
			zap.String("alert_id", id),
			zap.String("from", a.Status),
		)
		return AlertResponse{}, alerterrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	resolver := uuid.MustParse(resolverID)
	a.Status = StatusResolved
	a.ResolvedBy = &resolver
	a.ResolvedAt = &now

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("resolve alert persist failed", zap.Error(err))
		return AlertResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("resolve alert commit failed", zap.Error(err))
		return AlertResponse{}, err
	}

	s.logger.Info("resolve alert success", zap.String("alert_id", id))

	return mapToResponse(*a), nil
}

func (s *service) Escalate(ctx context.Context, id string) (AlertResponse, error) {
	s.logger.Debug("escalate alert requested", zap.String("alert_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("escalate alert begin tx failed", zap.Error(err))
		return AlertResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AlertResponse{}, alerterrors.ErrAlertNotFound
		}
		return AlertResponse{}, err
	}

	if !isAllowedStatusTransition(a.Status, StatusEscalated) {
		return AlertResponse{}, alerterrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	a.Status = StatusEscalated
	a.EscalatedAt = &now

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("escalate alert persist failed", zap.Error(err))
		return AlertResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("escalate alert commit failed", zap.Error(err))
		return AlertResponse{}, err
	}

	s.logger.Info("escalate alert success", zap.String("alert_id", id))

	return mapToResponse(*a), nil
}

func mapToResponse(a AIAlert) AlertResponse {
	resp := AlertResponse{
		ID:              a.ID.String(),
		EmployeeID:      a.EmployeeID.String(),
		Type:            string(a.Type),
		Severity:        string(a.Severity),
		Status:          a.Status,
		Details:         a.Details,
		ConfidenceScore: a.ConfidenceScore,
		OccurredAt:      a.OccurredAt,
		ResolvedAt:      a.ResolvedAt,
		EscalatedAt:     a.EscalatedAt,
	}
	if a.ResolvedBy != nil {
		resp.ResolvedBy = a.ResolvedBy.String()
	}
	return resp
}

func mapToListResponse(alerts []AIAlert) []AlertResponse {
	res := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		res[i] = mapToResponse(a)
	}
	return res
}
