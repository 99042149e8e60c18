// Package pomodoro is the procedure layer for focus sessions.
package pomodoro

import (
	"context"
	"time"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/pomodoro"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/validate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// Service validates and persists focus sessions.
type Service struct {
	store storage.PomodoroStore
	log   *logger.Logger
	now   func() time.Time
}

// New constructs a pomodoro service.
func New(store storage.PomodoroStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("pomodoro")
	}
	return &Service{store: store, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// StartInput is the accepted shape for starting a session. A zero duration
// falls back to the standard 25 minutes.
type StartInput struct {
	TaskDescription string `json:"taskDescription,omitempty"`
	Duration        int    `json:"duration,omitempty"`
}

// TodayCount is the day's session tally.
type TodayCount struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Start records a session beginning now.
func (s *Service) Start(ctx context.Context, userID int64, in StartInput) (domain.Session, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.Session{}, err
	}
	if in.Duration < 0 {
		return domain.Session{}, errors.Validationf("duration", "duration must not be negative, got %d", in.Duration)
	}
	if in.Duration == 0 {
		in.Duration = domain.DefaultDurationSeconds
	}

	sess, err := s.store.CreateSession(ctx, domain.Session{
		UserID:          userID,
		StartedAt:       s.now(),
		Duration:        in.Duration,
		TaskDescription: in.TaskDescription,
	})
	if err != nil {
		return domain.Session{}, validate.StoreWrite(err)
	}

	s.log.WithField("session_id", sess.ID).WithField("user_id", userID).Info("pomodoro started")
	return sess, nil
}

// Complete marks the caller's session finished now; a missing row is a
// silent no-op.
func (s *Service) Complete(ctx context.Context, userID, id int64) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	done := true
	completedAt := s.now()
	return validate.StoreWrite(s.store.UpdateSession(ctx, id, userID, domain.SessionPatch{
		Completed:   &done,
		CompletedAt: &completedAt,
	}))
}

// List returns the caller's sessions, optionally bounded to an inclusive
// start-time range when both bounds are given.
func (s *Service) List(ctx context.Context, userID int64, start, end *time.Time) ([]domain.Session, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListSessions(ctx, userID, start, end)
}

// Today tallies the caller's sessions since local midnight.
func (s *Service) Today(ctx context.Context, userID int64) (TodayCount, error) {
	if err := validate.Caller(userID); err != nil {
		return TodayCount{}, err
	}
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	sessions, err := s.store.ListSessions(ctx, userID, &dayStart, &dayEnd)
	if err != nil {
		return TodayCount{}, err
	}

	count := TodayCount{Total: len(sessions)}
	for _, sess := range sessions {
		if sess.Completed {
			count.Completed++
		}
	}
	return count, nil
}
