// Package planning is the procedure layer for daily plans and the scheduled
// goal reviews within each day.
package planning

import (
	"context"
	"time"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/planning"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/validate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// Service validates and persists daily plans and goal reviews.
type Service struct {
	store storage.PlanningStore
	log   *logger.Logger
	now   func() time.Time
}

// New constructs a planning service.
func New(store storage.PlanningStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("planning")
	}
	return &Service{store: store, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// CreatePlanInput is the accepted shape for a new daily plan. KeyTasks is
// stored verbatim; clients encode their own task list format.
type CreatePlanInput struct {
	PlanDate       string `json:"planDate"`
	First90MinTask string `json:"first90MinTask,omitempty"`
	KeyTasks       string `json:"keyTasks,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// UpdatePlanInput is the accepted shape for a partial daily-plan update.
type UpdatePlanInput struct {
	PlanDate       *string `json:"planDate,omitempty"`
	First90MinTask *string `json:"first90MinTask,omitempty"`
	KeyTasks       *string `json:"keyTasks,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Completed      *bool   `json:"completed,omitempty"`
}

// CreatePlan validates and persists a new daily plan. Uniqueness of
// (user, date) is not enforced; GetPlanByDate serves the first match.
func (s *Service) CreatePlan(ctx context.Context, userID int64, in CreatePlanInput) (domain.DailyPlan, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.DailyPlan{}, err
	}
	planDate, err := validate.Date("planDate", in.PlanDate)
	if err != nil {
		return domain.DailyPlan{}, err
	}

	p, err := s.store.CreateDailyPlan(ctx, domain.DailyPlan{
		UserID:         userID,
		PlanDate:       planDate,
		First90MinTask: in.First90MinTask,
		KeyTasks:       in.KeyTasks,
		Notes:          in.Notes,
	})
	if err != nil {
		return domain.DailyPlan{}, validate.StoreWrite(err)
	}

	s.log.WithField("plan_id", p.ID).WithField("user_id", userID).Info("daily plan created")
	return p, nil
}

// GetPlanByDate returns the caller's plan for the date, or nil when none
// exists.
func (s *Service) GetPlanByDate(ctx context.Context, userID int64, date string) (*domain.DailyPlan, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	planDate, err := validate.Date("date", date)
	if err != nil {
		return nil, err
	}
	return s.store.GetDailyPlanByDate(ctx, userID, planDate)
}

// UpdatePlan applies a partial update; no row matching (id, userID) is a
// silent no-op.
func (s *Service) UpdatePlan(ctx context.Context, userID, id int64, in UpdatePlanInput) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	patch := domain.DailyPlanPatch{
		First90MinTask: in.First90MinTask,
		KeyTasks:       in.KeyTasks,
		Notes:          in.Notes,
		Completed:      in.Completed,
	}

	planDate, err := validate.OptionalDate("planDate", in.PlanDate)
	if err != nil {
		return err
	}
	patch.PlanDate = planDate

	return validate.StoreWrite(s.store.UpdateDailyPlan(ctx, id, userID, patch))
}

// CreateReviewInput is the accepted shape for a new goal review slot.
type CreateReviewInput struct {
	ReviewDate string `json:"reviewDate"`
	ReviewTime string `json:"reviewTime"`
}

// CreateReview validates and persists a new goal review slot.
func (s *Service) CreateReview(ctx context.Context, userID int64, in CreateReviewInput) (domain.GoalReview, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.GoalReview{}, err
	}
	reviewDate, err := validate.Date("reviewDate", in.ReviewDate)
	if err != nil {
		return domain.GoalReview{}, err
	}
	reviewTime := domain.ReviewTime(in.ReviewTime)
	if !reviewTime.Valid() {
		return domain.GoalReview{}, errors.Validationf("reviewTime", "reviewTime must be morning, afternoon or evening, got %q", in.ReviewTime)
	}

	r, err := s.store.CreateGoalReview(ctx, domain.GoalReview{
		UserID:     userID,
		ReviewDate: reviewDate,
		ReviewTime: reviewTime,
	})
	if err != nil {
		return domain.GoalReview{}, validate.StoreWrite(err)
	}
	return r, nil
}

// ListReviewsByDate returns the caller's review slots for the date.
func (s *Service) ListReviewsByDate(ctx context.Context, userID int64, date string) ([]domain.GoalReview, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	reviewDate, err := validate.Date("date", date)
	if err != nil {
		return nil, err
	}
	return s.store.ListGoalReviewsByDate(ctx, userID, reviewDate)
}

// CompleteReview marks the caller's review slot done now; a missing row is a
// silent no-op.
func (s *Service) CompleteReview(ctx context.Context, userID, id int64) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	done := true
	completedAt := s.now()
	return validate.StoreWrite(s.store.UpdateGoalReview(ctx, id, userID, domain.GoalReviewPatch{
		Completed:   &done,
		CompletedAt: &completedAt,
	}))
}
