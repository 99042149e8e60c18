// Package goals is the procedure layer for the goal hierarchy: power goals,
// their projects, and the next actions under each project.
package goals

import (
	"context"
	"time"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/goal"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/validate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// Service validates and persists the goal hierarchy.
type Service struct {
	store storage.GoalStore
	log   *logger.Logger
}

// New constructs a goals service.
func New(store storage.GoalStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("goals")
	}
	return &Service{store: store, log: log}
}

// CreateGoalInput is the accepted shape for a new power goal.
type CreateGoalInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TargetMonth int    `json:"targetMonth,omitempty"`
	TargetYear  int    `json:"targetYear,omitempty"`
}

// UpdateGoalInput is the accepted shape for a partial power goal update.
type UpdateGoalInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	TargetMonth *int       `json:"targetMonth,omitempty"`
	TargetYear  *int       `json:"targetYear,omitempty"`
	Status      *string    `json:"status,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CreateGoal validates and persists a new power goal for the caller.
func (s *Service) CreateGoal(ctx context.Context, userID int64, in CreateGoalInput) (domain.PowerGoal, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.PowerGoal{}, err
	}
	if err := validate.Required("title", in.Title); err != nil {
		return domain.PowerGoal{}, err
	}
	if in.TargetMonth != 0 && (in.TargetMonth < 1 || in.TargetMonth > 12) {
		return domain.PowerGoal{}, errors.Validationf("targetMonth", "targetMonth must be between 1 and 12, got %d", in.TargetMonth)
	}

	g, err := s.store.CreatePowerGoal(ctx, domain.PowerGoal{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		TargetMonth: in.TargetMonth,
		TargetYear:  in.TargetYear,
		Status:      domain.StatusActive,
	})
	if err != nil {
		return domain.PowerGoal{}, validate.StoreWrite(err)
	}

	s.log.WithField("goal_id", g.ID).WithField("user_id", userID).Info("power goal created")
	return g, nil
}

// ListGoals returns the caller's power goals in target-month order.
func (s *Service) ListGoals(ctx context.Context, userID int64) ([]domain.PowerGoal, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListPowerGoals(ctx, userID)
}

// UpdateGoal applies a partial update; no row matching (id, userID) is a
// silent no-op.
func (s *Service) UpdateGoal(ctx context.Context, userID, id int64, in UpdateGoalInput) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	if in.TargetMonth != nil && (*in.TargetMonth < 1 || *in.TargetMonth > 12) {
		return errors.Validationf("targetMonth", "targetMonth must be between 1 and 12, got %d", *in.TargetMonth)
	}

	patch := domain.PowerGoalPatch{
		Title:       in.Title,
		Description: in.Description,
		TargetMonth: in.TargetMonth,
		TargetYear:  in.TargetYear,
		CompletedAt: in.CompletedAt,
	}
	if in.Status != nil {
		status := domain.Status(*in.Status)
		if !status.Valid() {
			return errors.Validationf("status", "status must be active, completed or archived, got %q", *in.Status)
		}
		patch.Status = &status
	}

	return validate.StoreWrite(s.store.UpdatePowerGoal(ctx, id, userID, patch))
}

// DeleteGoal removes the caller's goal; a missing row is a silent no-op.
// Projects under the goal are not cascade-deleted; readers tolerate the
// dangling reference.
func (s *Service) DeleteGoal(ctx context.Context, userID, id int64) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	return validate.StoreWrite(s.store.DeletePowerGoal(ctx, id, userID))
}

// CreateProjectInput is the accepted shape for a new project.
type CreateProjectInput struct {
	GoalID      int64  `json:"goalId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectInput is the accepted shape for a partial project update.
type UpdateProjectInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CreateProject validates and persists a new project under a goal.
func (s *Service) CreateProject(ctx context.Context, userID int64, in CreateProjectInput) (domain.Project, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.Project{}, err
	}
	if in.GoalID == 0 {
		return domain.Project{}, errors.Validation("goalId", "goalId is required")
	}
	if err := validate.Required("title", in.Title); err != nil {
		return domain.Project{}, err
	}

	p, err := s.store.CreateProject(ctx, domain.Project{
		UserID:      userID,
		GoalID:      in.GoalID,
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.ProjectNotStarted,
	})
	if err != nil {
		return domain.Project{}, validate.StoreWrite(err)
	}

	s.log.WithField("project_id", p.ID).WithField("goal_id", in.GoalID).Info("project created")
	return p, nil
}

// ListProjects returns the caller's projects under a goal.
func (s *Service) ListProjects(ctx context.Context, userID, goalID int64) ([]domain.Project, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListProjectsByGoal(ctx, goalID, userID)
}

// UpdateProject applies a partial update; no row matching (id, userID) is a
// silent no-op.
func (s *Service) UpdateProject(ctx context.Context, userID, id int64, in UpdateProjectInput) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	patch := domain.ProjectPatch{
		Title:       in.Title,
		Description: in.Description,
		CompletedAt: in.CompletedAt,
	}
	if in.Status != nil {
		status := domain.ProjectStatus(*in.Status)
		if !status.Valid() {
			return errors.Validationf("status", "status must be not_started, in_progress or completed, got %q", *in.Status)
		}
		patch.Status = &status
	}

	return validate.StoreWrite(s.store.UpdateProject(ctx, id, userID, patch))
}

// DeleteProject removes the caller's project; a missing row is a silent no-op.
func (s *Service) DeleteProject(ctx context.Context, userID, id int64) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	return validate.StoreWrite(s.store.DeleteProject(ctx, id, userID))
}

// CreateActionInput is the accepted shape for a new next action.
type CreateActionInput struct {
	ProjectID   int64  `json:"projectId"`
	Description string `json:"description"`
}

// UpdateActionInput is the accepted shape for a partial next-action update.
type UpdateActionInput struct {
	Description *string    `json:"description,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CreateAction validates and persists a new next action under a project.
func (s *Service) CreateAction(ctx context.Context, userID int64, in CreateActionInput) (domain.NextAction, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.NextAction{}, err
	}
	if in.ProjectID == 0 {
		return domain.NextAction{}, errors.Validation("projectId", "projectId is required")
	}
	if err := validate.Required("description", in.Description); err != nil {
		return domain.NextAction{}, err
	}

	a, err := s.store.CreateNextAction(ctx, domain.NextAction{
		UserID:      userID,
		ProjectID:   in.ProjectID,
		Description: in.Description,
	})
	if err != nil {
		return domain.NextAction{}, validate.StoreWrite(err)
	}
	return a, nil
}

// ListActions returns the caller's next actions under a project.
func (s *Service) ListActions(ctx context.Context, userID, projectID int64) ([]domain.NextAction, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListNextActionsByProject(ctx, projectID, userID)
}

// UpdateAction applies a partial update; no row matching (id, userID) is a
// silent no-op.
func (s *Service) UpdateAction(ctx context.Context, userID, id int64, in UpdateActionInput) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	patch := domain.NextActionPatch{
		Description: in.Description,
		Completed:   in.Completed,
		CompletedAt: in.CompletedAt,
	}
	return validate.StoreWrite(s.store.UpdateNextAction(ctx, id, userID, patch))
}

// DeleteAction removes the caller's next action; a missing row is a silent
// no-op.
func (s *Service) DeleteAction(ctx context.Context, userID, id int64) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	return validate.StoreWrite(s.store.DeleteNextAction(ctx, id, userID))
}
