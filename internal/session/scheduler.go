package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler arms one-shot re-verification deadlines for active sessions.
// Scheduling a session that already has a pending deadline replaces it.
//
//go:generate mockgen -source=scheduler.go -destination=mock/scheduler_mock.go -package=mock
type Scheduler interface {
	Schedule(sessionID string, at time.Time)
	Cancel(sessionID string)
}

// TimerScheduler keeps per-session timers in process memory. Persisted
// deadlines on the session rows are the source of truth; after a restart
// the service rebuilds timers from them.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	onDue  func(sessionID string)
	logger *zap.Logger
}

func NewTimerScheduler(onDue func(sessionID string), logger ...*zap.Logger) *TimerScheduler {
	l := zap.L().Named("session.scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.scheduler")
	}
	return &TimerScheduler{
		timers: make(map[string]*time.Timer),
		onDue:  onDue,
		logger: l,
	}
}

func (s *TimerScheduler) Schedule(sessionID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	s.timers[sessionID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, sessionID)
		s.mu.Unlock()
		s.onDue(sessionID)
	})

	s.logger.Debug("re-verification deadline armed",
		zap.String("session_id", sessionID),
		zap.Time("at", at),
	)
}

func (s *TimerScheduler) Cancel(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
		delete(s.timers, sessionID)
	}
}

// Stop cancels every pending timer. Used on shutdown.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
