package session

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"go-presence/internal/alert"
	"go-presence/internal/anomaly"
	"go-presence/internal/checkin"
	"go-presence/internal/config"
	"go-presence/internal/employee"
	employeeerrors "go-presence/internal/employee/errors"
	"go-presence/internal/events"
	"go-presence/internal/messaging/kafka"
	"go-presence/internal/pair"
	"go-presence/internal/scoring"
	sessionerrors "go-presence/internal/session/errors"
	"go-presence/internal/shared/apperror"
	"go-presence/internal/shared/contextutil"
	"go-presence/internal/site"
	siteerrors "go-presence/internal/site/errors"
	"go-presence/internal/verification"
	verificationerrors "go-presence/internal/verification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Grace period on top of the re-verification deadline before the
	// miss is recorded as a failed check-in.
	verificationGrace = 5 * time.Minute

	// How many recent check-ins and location samples feed one anomaly scan.
	anomalyWindow = 20

	// A claimed pair code counts as mutual presence for check-ins inside
	// this window.
	pairValidityWindow = 2 * time.Hour

	historyDefaultLimit = 30
	restoreBatchSize    = 500
)

//go:generate mockgen -source=session_service.go -destination=mock/session_service_mock.go -package=mock
type Service interface {
	Start(ctx context.Context, employeeID string, req StartSessionRequest) (SessionResponse, error)
	PeriodicCheckIn(ctx context.Context, employeeID string, req PeriodicCheckInRequest) (SessionResponse, error)
	Pause(ctx context.Context, employeeID string) (SessionResponse, error)
	Resume(ctx context.Context, employeeID string) (SessionResponse, error)
	Suspend(ctx context.Context, employeeID string) (SessionResponse, error)
	End(ctx context.Context, employeeID string, req EndSessionRequest) (SessionResponse, error)
	GetActive(ctx context.Context, employeeID string) (SessionResponse, error)
	GetHistory(ctx context.Context, employeeID string, limit int) ([]SessionResponse, error)
	GetDaySummary(ctx context.Context, employeeID, date string) (DaySummaryResponse, error)
	GeneratePairCode(ctx context.Context, employeeID string) (PairCodeResponse, error)
	ClaimPairCode(ctx context.Context, employeeID string, req ClaimPairCodeRequest) (SessionResponse, error)

	// AttachScheduler wires the re-verification scheduler. The scheduler's
	// due callback points back at HandleVerificationDue, so it is attached
	// after construction.
	AttachScheduler(sched Scheduler)
	// HandleVerificationDue records a missed periodic check-in for a
	// PRESENT session whose deadline elapsed and re-arms the timer.
	HandleVerificationDue(ctx context.Context, sessionID string)
	// RestoreSchedules re-arms timers for persisted deadlines after a restart.
	RestoreSchedules(ctx context.Context) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	checkins  checkin.Repository
	sites     site.Repository
	employees employee.Repository
	alertRepo alert.Repository
	alerts    alert.Service
	pairs     pair.Service
	gate      *verification.Gate
	detector  *anomaly.Detector
	codes     verification.PairCodeStore
	outbox    kafka.OutboxRepository
	sched     Scheduler
	cfg       config.Engine
	weights   scoring.Weights
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	checkinRepo checkin.Repository,
	siteRepo site.Repository,
	employeeRepo employee.Repository,
	alertRepo alert.Repository,
	alertService alert.Service,
	pairService pair.Service,
	gate *verification.Gate,
	detector *anomaly.Detector,
	codes verification.PairCodeStore,
	outboxRepo kafka.OutboxRepository,
	cfg config.Engine,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("session.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		checkins:  checkinRepo,
		sites:     siteRepo,
		employees: employeeRepo,
		alertRepo: alertRepo,
		alerts:    alertService,
		pairs:     pairService,
		gate:      gate,
		detector:  detector,
		codes:     codes,
		outbox:    outboxRepo,
		cfg:       cfg,
		weights:   scoring.DefaultWeights(),
		logger:    l,
	}
}

func (s *service) AttachScheduler(sched Scheduler) {
	s.sched = sched
}

func (s *service) Start(ctx context.Context, employeeID string, req StartSessionRequest) (SessionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("start session requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("site_id", req.SiteID),
	)

	empl, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return SessionResponse{}, err
	}

	if err := s.checkDailyLimit(ctx, employeeID); err != nil {
		return SessionResponse{}, err
	}

	siteRow, err := s.sites.FindByID(ctx, req.SiteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, siteerrors.ErrSiteNotFound
		}
		return SessionResponse{}, err
	}
	if !siteRow.IsActive {
		return SessionResponse{}, siteerrors.ErrSiteInactive
	}

	if !empl.ConsentLocation {
		return SessionResponse{}, sessionerrors.ErrLocationConsentRequired
	}
	if _, err := s.pairs.GetPartner(ctx, employeeID, req.SiteID); err != nil {
		return SessionResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("start session begin tx failed", zap.Error(err))
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindActiveByEmployee(ctx, employeeID)
	if err == nil {
		return SessionResponse{}, sessionerrors.ErrActiveSessionExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SessionResponse{}, err
	}

	result, err := s.runInitialChallenge(empl, siteRow, req)
	if err != nil {
		s.logger.Warn("start session verification failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return SessionResponse{}, err
	}

	now := time.Now().UTC()
	next := now.Add(s.drawInterval())

	sess := &PresenceSession{
		ID:                 uuid.New(),
		EmployeeID:         uuid.MustParse(employeeID),
		SiteID:             siteRow.ID,
		Status:             StatusPresent,
		StartedAt:          now,
		NextVerificationAt: &next,
		ReliabilityScore:   100,
	}
	if err := qtx.Create(ctx, sess); err != nil {
		s.logger.Error("start session persist failed", zap.Error(err))
		return SessionResponse{}, err
	}

	qcheck := s.checkins.WithTx(tx)
	if err := qcheck.Create(ctx, &checkin.CheckIn{
		ID:                 uuid.New(),
		SessionID:          sess.ID,
		EmployeeID:         sess.EmployeeID,
		SiteID:             sess.SiteID,
		OccurredAt:         now,
		Type:               checkin.TypeStart,
		VerificationMethod: result.VerificationMethod,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Status:             checkin.StatusVerified,
		AIConfidenceScore:  result.ConfidenceScore,
	}); err != nil {
		s.logger.Error("start session check-in persist failed", zap.Error(err))
		return SessionResponse{}, err
	}

	if err := qcheck.CreateLocationSample(ctx, &checkin.LocationSample{
		ID:         uuid.New(),
		EmployeeID: sess.EmployeeID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		RecordedAt: now,
	}); err != nil {
		return SessionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("start session commit failed", zap.Error(err))
		return SessionResponse{}, err
	}

	s.scheduleVerification(sess)

	s.logger.Info("start session success",
		zap.String("session_id", sess.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Time("next_verification_at", next),
	)

	return mapToResponse(*sess), nil
}

func (s *service) PeriodicCheckIn(ctx context.Context, employeeID string, req PeriodicCheckInRequest) (SessionResponse, error) {
	s.logger.Debug("periodic check-in requested", zap.String("employee_id", employeeID))

	empl, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return SessionResponse{}, err
	}

	if err := s.checkDailyLimit(ctx, employeeID); err != nil {
		return SessionResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("periodic check-in begin tx failed", zap.Error(err))
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, sessionerrors.ErrNoActiveSession
		}
		return SessionResponse{}, err
	}
	if sess.Status != StatusPresent {
		return SessionResponse{}, sessionerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	qcheck := s.checkins.WithTx(tx)

	ch := s.gate.NewChallenge(verification.ChallengePeriodic)
	if verr := s.submitIdentity(ch, req.FaceSample, req.SkipFacial, req.SecurityAnswer, empl); verr != nil {
		if !isVerificationFailure(verr) {
			return SessionResponse{}, verr
		}
		return SessionResponse{}, s.recordFailedVerification(ctx, tx, qcheck, sess, req, now, verr)
	}

	result, err := ch.Result()
	if err != nil {
		return SessionResponse{}, err
	}
	if result.VerificationMethod == checkin.MethodFacial && result.ConfidenceScore < s.cfg.ConfidenceThreshold {
		return SessionResponse{}, s.recordFailedVerification(ctx, tx, qcheck, sess, req, now, verificationerrors.ErrFaceNotVerified)
	}

	pairPresent := sess.LastPairValidatedAt != nil && now.Sub(*sess.LastPairValidatedAt) <= pairValidityWindow

	if err := qcheck.Create(ctx, &checkin.CheckIn{
		ID:                 uuid.New(),
		SessionID:          sess.ID,
		EmployeeID:         sess.EmployeeID,
		SiteID:             sess.SiteID,
		OccurredAt:         now,
		Type:               checkin.TypePeriodic,
		VerificationMethod: result.VerificationMethod,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Status:             checkin.StatusVerified,
		AIConfidenceScore:  result.ConfidenceScore,
		PairPresent:        pairPresent,
	}); err != nil {
		s.logger.Error("periodic check-in persist failed", zap.Error(err))
		return SessionResponse{}, err
	}

	if err := qcheck.CreateLocationSample(ctx, &checkin.LocationSample{
		ID:         uuid.New(),
		EmployeeID: sess.EmployeeID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		RecordedAt: now,
	}); err != nil {
		return SessionResponse{}, err
	}

	next := now.Add(s.drawInterval())
	sess.NextVerificationAt = &next
	if err := qtx.Update(ctx, sess); err != nil {
		s.logger.Error("periodic check-in session update failed", zap.Error(err))
		return SessionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("periodic check-in commit failed", zap.Error(err))
		return SessionResponse{}, err
	}

	s.scheduleVerification(sess)
	s.runAnomalyScan(ctx, employeeID)

	s.logger.Info("periodic check-in success",
		zap.String("session_id", sess.ID.String()),
		zap.String("method", result.VerificationMethod),
		zap.Time("next_verification_at", next),
	)

	return mapToResponse(*sess), nil
}

// recordFailedVerification persists the failed attempt inside the caller's
// transaction, then returns the original verification error. The session
// itself is untouched; a failed factor never forces a state transition,
// pressure comes from scoring and the anomaly scan over the failed
// check-in history.
func (s *service) recordFailedVerification(
	ctx context.Context,
	tx *sql.Tx,
	qcheck checkin.Repository,
	sess *PresenceSession,
	req PeriodicCheckInRequest,
	now time.Time,
	verr error,
) error {
	method := checkin.MethodFacial
	if req.SkipFacial || req.FaceSample == "" {
		method = checkin.MethodQuestion
	}

	if err := qcheck.Create(ctx, &checkin.CheckIn{
		ID:                 uuid.New(),
		SessionID:          sess.ID,
		EmployeeID:         sess.EmployeeID,
		SiteID:             sess.SiteID,
		OccurredAt:         now,
		Type:               checkin.TypePeriodic,
		VerificationMethod: method,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Status:             checkin.StatusFailed,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Warn("periodic re-verification failed",
		zap.String("session_id", sess.ID.String()),
		zap.String("employee_id", sess.EmployeeID.String()),
		zap.Error(verr),
	)

	return verr
}

func (s *service) Pause(ctx context.Context, employeeID string) (SessionResponse, error) {
	return s.transition(ctx, employeeID, StatusPaused)
}

func (s *service) Resume(ctx context.Context, employeeID string) (SessionResponse, error) {
	return s.transition(ctx, employeeID, StatusPresent)
}

// Suspend takes a session out of verified presence without ending it. The
// suspension stays visible to supervisors through the session status and is
// cleared only by ending the session.
func (s *service) Suspend(ctx context.Context, employeeID string) (SessionResponse, error) {
	resp, err := s.transition(ctx, employeeID, StatusSuspended)
	if err != nil {
		return SessionResponse{}, err
	}
	s.logger.Warn("session suspended by request",
		zap.String("session_id", resp.ID),
		zap.String("employee_id", employeeID),
	)
	return resp, nil
}

func (s *service) transition(ctx context.Context, employeeID, target string) (SessionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, sessionerrors.ErrNoActiveSession
		}
		return SessionResponse{}, err
	}

	if !isAllowedStatusTransition(sess.Status, target) {
		s.logger.Warn("session transition rejected",
			zap.String("session_id", sess.ID.String()),
			zap.String("from", sess.Status),
			zap.String("to", target),
		)
		return SessionResponse{}, sessionerrors.ErrInvalidStatusTransition
	}

	sess.Status = target
	switch target {
	case StatusPaused, StatusSuspended:
		// no re-verification until the session is active again
		sess.NextVerificationAt = nil
	case StatusPresent:
		next := time.Now().UTC().Add(s.drawInterval())
		sess.NextVerificationAt = &next
	}

	if err := qtx.Update(ctx, sess); err != nil {
		return SessionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SessionResponse{}, err
	}

	if s.sched != nil {
		if target == StatusPresent {
			s.scheduleVerification(sess)
		} else {
			s.sched.Cancel(sess.ID.String())
		}
	}

	s.logger.Info("session transition success",
		zap.String("session_id", sess.ID.String()),
		zap.String("status", target),
	)

	return mapToResponse(*sess), nil
}

func (s *service) End(ctx context.Context, employeeID string, req EndSessionRequest) (SessionResponse, error) {
	s.logger.Debug("end session requested", zap.String("employee_id", employeeID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("end session begin tx failed", zap.Error(err))
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, sessionerrors.ErrNoActiveSession
		}
		return SessionResponse{}, err
	}
	if !isAllowedStatusTransition(sess.Status, StatusEnded) {
		return SessionResponse{}, sessionerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	qcheck := s.checkins.WithTx(tx)

	if req.Latitude != nil && req.Longitude != nil {
		if err := qcheck.Create(ctx, &checkin.CheckIn{
			ID:                 uuid.New(),
			SessionID:          sess.ID,
			EmployeeID:         sess.EmployeeID,
			SiteID:             sess.SiteID,
			OccurredAt:         now,
			Type:               checkin.TypeEnd,
			VerificationMethod: checkin.MethodQuestion,
			Latitude:           *req.Latitude,
			Longitude:          *req.Longitude,
			Status:             checkin.StatusVerified,
			AIConfidenceScore:  100,
		}); err != nil {
			return SessionResponse{}, err
		}
	}

	sessionCheckIns, err := qcheck.FindBySession(ctx, sess.ID.String())
	if err != nil {
		return SessionResponse{}, err
	}
	employeeAlerts, err := s.alertRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return SessionResponse{}, err
	}

	sess.Status = StatusEnded
	sess.EndedAt = &now
	sess.NextVerificationAt = nil
	sess.ReliabilityScore = scoring.Score(sessionCheckIns, employeeAlerts, s.weights)
	sess.TotalMinutes = int(now.Sub(sess.StartedAt).Minutes())
	sess.MinutesWithPair = minutesWithPair(sessionCheckIns)

	if err := qtx.Update(ctx, sess); err != nil {
		s.logger.Error("end session persist failed", zap.Error(err))
		return SessionResponse{}, err
	}

	if s.outbox != nil {
		event := events.SessionEndedEvent{
			EventType:        "session_ended",
			SessionID:        sess.ID.String(),
			EmployeeID:       sess.EmployeeID.String(),
			SiteID:           sess.SiteID.String(),
			ReliabilityScore: sess.ReliabilityScore,
			StartedAt:        sess.StartedAt,
			EndedAt:          now,
			OccurredAt:       now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return SessionResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "session",
			AggregateID:   sess.ID.String(),
			EventType:     event.EventType,
			Topic:         events.SessionLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("end session outbox persist failed", zap.Error(err))
			return SessionResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("end session commit failed", zap.Error(err))
		return SessionResponse{}, err
	}

	if s.sched != nil {
		s.sched.Cancel(sess.ID.String())
	}

	s.logger.Info("end session success",
		zap.String("session_id", sess.ID.String()),
		zap.Int("reliability_score", sess.ReliabilityScore),
	)

	return mapToResponse(*sess), nil
}

// minutesWithPair credits each interval whose closing check-in had the
// pair partner confirmed. Check-ins must be in chronological order.
func minutesWithPair(checkIns []checkin.CheckIn) int {
	var total float64
	for i := 1; i < len(checkIns); i++ {
		if checkIns[i].PairPresent {
			total += checkIns[i].OccurredAt.Sub(checkIns[i-1].OccurredAt).Minutes()
		}
	}
	return int(total)
}

func (s *service) GetActive(ctx context.Context, employeeID string) (SessionResponse, error) {
	sess, err := s.repo.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, sessionerrors.ErrNoActiveSession
		}
		return SessionResponse{}, err
	}
	return mapToResponse(*sess), nil
}

func (s *service) GetHistory(ctx context.Context, employeeID string, limit int) ([]SessionResponse, error) {
	if limit <= 0 {
		limit = historyDefaultLimit
	}
	rows, err := s.repo.FindByEmployee(ctx, employeeID, limit)
	if err != nil {
		s.logger.Error("session history failed", zap.Error(err))
		return nil, err
	}
	res := make([]SessionResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetDaySummary(ctx context.Context, employeeID, date string) (DaySummaryResponse, error) {
	day := time.Now().UTC()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return DaySummaryResponse{}, apperror.InvalidField("date")
		}
		day = parsed
	}
	from := day.Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	rows, err := s.checkins.FindByEmployeeBetween(ctx, employeeID, from, to)
	if err != nil {
		s.logger.Error("day summary failed", zap.Error(err))
		return DaySummaryResponse{}, err
	}

	summary := DaySummaryResponse{
		Date:     from.Format("2006-01-02"),
		CheckIns: make([]CheckInResponse, len(rows)),
	}
	for i, c := range rows {
		summary.TotalCheckIns++
		if c.Status == checkin.StatusVerified {
			summary.VerifiedCheckIns++
		} else {
			summary.FailedCheckIns++
		}
		summary.CheckIns[i] = mapCheckInToResponse(c)
	}
	if len(rows) > 0 {
		first, last := rows[0].OccurredAt, rows[len(rows)-1].OccurredAt
		summary.FirstCheckInAt = &first
		summary.LastCheckInAt = &last
	}
	return summary, nil
}

func (s *service) GeneratePairCode(ctx context.Context, employeeID string) (PairCodeResponse, error) {
	sess, err := s.repo.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PairCodeResponse{}, sessionerrors.ErrNoActiveSession
		}
		return PairCodeResponse{}, err
	}
	if sess.Status != StatusPresent {
		return PairCodeResponse{}, sessionerrors.ErrInvalidStatusTransition
	}

	// only employees with a registered pair at the session site may generate
	if _, err := s.pairs.GetPartner(ctx, employeeID, sess.SiteID.String()); err != nil {
		return PairCodeResponse{}, err
	}

	code := verification.NewPairCode(employeeID, time.Now().UTC(), s.cfg.PairCodeTTL)
	if err := s.codes.Save(ctx, code); err != nil {
		s.logger.Error("pair code save failed", zap.Error(err))
		return PairCodeResponse{}, err
	}

	s.logger.Info("pair code generated",
		zap.String("employee_id", employeeID),
		zap.Time("expires_at", code.ExpiresAt()),
	)

	return PairCodeResponse{Code: code.Code, ExpiresAt: code.ExpiresAt()}, nil
}

func (s *service) ClaimPairCode(ctx context.Context, employeeID string, req ClaimPairCodeRequest) (SessionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, sessionerrors.ErrNoActiveSession
		}
		return SessionResponse{}, err
	}
	if sess.Status != StatusPresent {
		return SessionResponse{}, sessionerrors.ErrInvalidStatusTransition
	}

	partnerID, err := s.pairs.GetPartner(ctx, employeeID, sess.SiteID.String())
	if err != nil {
		return SessionResponse{}, err
	}

	// refusing an unconfirmed claim before the store sees it keeps the
	// code usable for a later attempt
	if !req.Confirmed {
		return SessionResponse{}, verificationerrors.ErrPairNotConfirmed
	}

	now := time.Now().UTC()
	code, err := s.codes.Claim(ctx, req.Code, employeeID, now)
	if err != nil {
		return SessionResponse{}, err
	}
	if code.EmployeeID != partnerID {
		s.logger.Warn("pair code from non-partner rejected",
			zap.String("claimant", employeeID),
			zap.String("generator", code.EmployeeID),
		)
		return SessionResponse{}, sessionerrors.ErrNotPairPartner
	}

	var validation verification.PairValidation
	validation.RecordClaim(code)
	if err := validation.Confirm(); err != nil {
		return SessionResponse{}, err
	}
	if !validation.Confirmed() {
		return SessionResponse{}, verificationerrors.ErrPairNotConfirmed
	}

	sess.LastPairValidatedAt = &now
	if err := qtx.Update(ctx, sess); err != nil {
		return SessionResponse{}, err
	}

	// mutual presence credits the generator's session as well
	if partnerSess, err := qtx.FindActiveByEmployee(ctx, code.EmployeeID); err == nil && partnerSess.Status == StatusPresent {
		partnerSess.LastPairValidatedAt = &now
		if err := qtx.Update(ctx, partnerSess); err != nil {
			return SessionResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return SessionResponse{}, err
	}

	s.logger.Info("pair code claimed",
		zap.String("claimant", employeeID),
		zap.String("generator", code.EmployeeID),
	)

	return mapToResponse(*sess), nil
}

func (s *service) HandleVerificationDue(ctx context.Context, sessionID string) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("verification due begin tx failed", zap.Error(err))
		return
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindByID(ctx, sessionID)
	if err != nil {
		s.logger.Error("verification due session lookup failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return
	}
	if sess.Status != StatusPresent || sess.NextVerificationAt == nil {
		return
	}

	// the deadline may have been redrawn by a check-in that raced the timer
	if time.Now().UTC().Before(*sess.NextVerificationAt) {
		s.scheduleVerification(sess)
		return
	}

	// the deadline passed without a check-in. The session stays PRESENT;
	// the miss is recorded as a failed check-in so scoring and the anomaly
	// scan see the gap, and the challenge is re-armed on a fresh draw.
	now := time.Now().UTC()
	if err := s.checkins.WithTx(tx).Create(ctx, &checkin.CheckIn{
		ID:                 uuid.New(),
		SessionID:          sess.ID,
		EmployeeID:         sess.EmployeeID,
		SiteID:             sess.SiteID,
		OccurredAt:         now,
		Type:               checkin.TypePeriodic,
		VerificationMethod: checkin.MethodQuestion,
		Status:             checkin.StatusFailed,
	}); err != nil {
		s.logger.Error("verification due check-in persist failed", zap.Error(err))
		return
	}

	next := now.Add(s.drawInterval())
	sess.NextVerificationAt = &next
	if err := qtx.Update(ctx, sess); err != nil {
		s.logger.Error("verification due session update failed", zap.Error(err))
		return
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("verification due commit failed", zap.Error(err))
		return
	}

	s.scheduleVerification(sess)

	s.logger.Warn("re-verification deadline missed",
		zap.String("session_id", sess.ID.String()),
		zap.String("employee_id", sess.EmployeeID.String()),
		zap.Time("next_verification_at", next),
	)
}

func (s *service) RestoreSchedules(ctx context.Context) error {
	rows, err := s.repo.FindPendingVerification(ctx, restoreBatchSize)
	if err != nil {
		return err
	}
	for i := range rows {
		s.scheduleVerification(&rows[i])
	}
	if len(rows) > 0 {
		s.logger.Info("re-verification schedules restored", zap.Int("count", len(rows)))
	}
	return nil
}

func (s *service) findEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return empl, nil
}

func (s *service) checkDailyLimit(ctx context.Context, employeeID string) error {
	since := time.Now().UTC().Truncate(24 * time.Hour)
	count, err := s.checkins.CountByEmployeeSince(ctx, employeeID, since)
	if err != nil {
		return err
	}
	if count >= int64(s.cfg.MaxCheckInsPerDay) {
		s.logger.Warn("daily check-in limit reached",
			zap.String("employee_id", employeeID),
			zap.Int64("count", count),
		)
		return sessionerrors.ErrDailyCheckInLimit
	}
	return nil
}

func (s *service) runInitialChallenge(empl *employee.Employee, siteRow *site.Site, req StartSessionRequest) (verification.Result, error) {
	radius := siteRow.RadiusMeters
	if radius <= 0 {
		radius = s.cfg.DefaultRadiusMeters
	}

	ch := s.gate.NewChallenge(verification.ChallengeInitial)
	if err := s.gate.SubmitLocation(ch, req.Latitude, req.Longitude, siteRow.Latitude, siteRow.Longitude, radius); err != nil {
		return verification.Result{}, err
	}
	if err := s.submitIdentity(ch, req.FaceSample, req.SkipFacial, req.SecurityAnswer, empl); err != nil {
		return verification.Result{}, err
	}

	result, err := ch.Result()
	if err != nil {
		return verification.Result{}, err
	}
	if result.VerificationMethod == checkin.MethodFacial && result.ConfidenceScore < s.cfg.ConfidenceThreshold {
		return verification.Result{}, verificationerrors.ErrFaceNotVerified
	}
	return result, nil
}

// submitIdentity runs the facial factor with fallback to the security
// question, then the question factor itself.
func (s *service) submitIdentity(ch *verification.Challenge, faceSample string, skipFacial bool, answer string, empl *employee.Employee) error {
	if skipFacial || faceSample == "" || empl.BiometricRef == "" {
		if err := ch.SkipFacial(); err != nil {
			return err
		}
	} else {
		sample, err := base64.StdEncoding.DecodeString(faceSample)
		if err != nil {
			return sessionerrors.ErrInvalidFaceSample
		}
		if err := s.gate.SubmitFace(ch, sample, empl.BiometricRef); err != nil {
			if !errors.Is(err, verificationerrors.ErrFaceNotVerified) {
				return err
			}
			if err := ch.SkipFacial(); err != nil {
				return err
			}
		}
	}

	if answer == "" {
		return apperror.RequiredField("security_answer")
	}
	return s.gate.SubmitAnswer(ch, answer, empl.SecurityAnswerHash)
}

// runAnomalyScan is best effort. Detection failures never fail the check-in
// that triggered them.
func (s *service) runAnomalyScan(ctx context.Context, employeeID string) {
	checkIns, err := s.checkins.FindRecentByEmployee(ctx, employeeID, anomalyWindow)
	if err != nil {
		s.logger.Error("anomaly scan check-in load failed", zap.Error(err))
		return
	}
	locations, err := s.checkins.FindRecentLocations(ctx, employeeID, anomalyWindow)
	if err != nil {
		s.logger.Error("anomaly scan location load failed", zap.Error(err))
		return
	}

	// repositories return newest first, the detector wants chronological
	reverseCheckIns(checkIns)
	reverseLocations(locations)

	drafts := s.detector.Detect(employeeID, checkIns, locations)

	// drop findings below the configured confidence floor
	kept := drafts[:0]
	for _, d := range drafts {
		if d.ConfidenceScore >= s.cfg.ConfidenceThreshold {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return
	}

	if _, err := s.alerts.RaiseAll(ctx, kept); err != nil {
		s.logger.Error("anomaly alerts raise failed",
			zap.String("employee_id", employeeID),
			zap.Int("count", len(kept)),
			zap.Error(err),
		)
	}
}

func (s *service) scheduleVerification(sess *PresenceSession) {
	if s.sched == nil || sess.NextVerificationAt == nil {
		return
	}
	s.sched.Schedule(sess.ID.String(), sess.NextVerificationAt.Add(verificationGrace))
}

func (s *service) drawInterval() time.Duration {
	min, max := s.cfg.MinVerificationInterval, s.cfg.MaxVerificationInterval
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

func isVerificationFailure(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == apperror.CodeVerificationFailed
}

func reverseCheckIns(rows []checkin.CheckIn) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}

func reverseLocations(rows []checkin.LocationSample) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}

func mapToResponse(s PresenceSession) SessionResponse {
	return SessionResponse{
		ID:                 s.ID.String(),
		EmployeeID:         s.EmployeeID.String(),
		SiteID:             s.SiteID.String(),
		Status:             s.Status,
		StartedAt:          s.StartedAt,
		EndedAt:            s.EndedAt,
		NextVerificationAt: s.NextVerificationAt,
		ReliabilityScore:   s.ReliabilityScore,
		TotalMinutes:       s.TotalMinutes,
		MinutesWithPair:    s.MinutesWithPair,
	}
}

func mapCheckInToResponse(c checkin.CheckIn) CheckInResponse {
	return CheckInResponse{
		ID:                 c.ID.String(),
		SessionID:          c.SessionID.String(),
		OccurredAt:         c.OccurredAt,
		Type:               c.Type,
		VerificationMethod: c.VerificationMethod,
		Status:             c.Status,
		AIConfidenceScore:  c.AIConfidenceScore,
		PairPresent:        c.PairPresent,
	}
}
