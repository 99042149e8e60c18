package goals

import (
	"context"
	"testing"
	"time"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/goal"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/memory"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
)

func TestGoalLifecycle(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	g, err := svc.CreateGoal(ctx, 1, CreateGoalInput{Title: "Launch product", TargetMonth: 6, TargetYear: 2026})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if g.Status != domain.StatusActive {
		t.Fatalf("status = %s, want active", g.Status)
	}

	completed := "completed"
	completedAt := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	if err := svc.UpdateGoal(ctx, 1, g.ID, UpdateGoalInput{Status: &completed, CompletedAt: &completedAt}); err != nil {
		t.Fatalf("update goal: %v", err)
	}

	goals, err := svc.ListGoals(ctx, 1)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 1 || goals[0].Status != domain.StatusCompleted {
		t.Fatalf("expected completed goal, got %v", goals)
	}
	if goals[0].CompletedAt == nil || !goals[0].CompletedAt.Equal(completedAt) {
		t.Fatalf("completedAt = %v, want %v", goals[0].CompletedAt, completedAt)
	}
}

func TestGoalValidation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.CreateGoal(ctx, 1, CreateGoalInput{Title: ""}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}
	if _, err := svc.CreateGoal(ctx, 1, CreateGoalInput{Title: "x", TargetMonth: 13}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for month 13, got %v", err)
	}

	bad := "paused"
	g, _ := svc.CreateGoal(ctx, 1, CreateGoalInput{Title: "x"})
	if err := svc.UpdateGoal(ctx, 1, g.ID, UpdateGoalInput{Status: &bad}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad status, got %v", err)
	}
}

func TestProjectAndActionHierarchy(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	g, err := svc.CreateGoal(ctx, 1, CreateGoalInput{Title: "Launch"})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	p, err := svc.CreateProject(ctx, 1, CreateProjectInput{GoalID: g.ID, Title: "Build MVP"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if p.Status != domain.ProjectNotStarted {
		t.Fatalf("project status = %s, want not_started", p.Status)
	}

	a, err := svc.CreateAction(ctx, 1, CreateActionInput{ProjectID: p.ID, Description: "Sketch schema"})
	if err != nil {
		t.Fatalf("create action: %v", err)
	}

	done := true
	if err := svc.UpdateAction(ctx, 1, a.ID, UpdateActionInput{Completed: &done}); err != nil {
		t.Fatalf("update action: %v", err)
	}

	actions, err := svc.ListActions(ctx, 1, p.ID)
	if err != nil {
		t.Fatalf("list actions: %v", err)
	}
	if len(actions) != 1 || !actions[0].Completed {
		t.Fatalf("expected one completed action, got %v", actions)
	}

	projects, err := svc.ListProjects(ctx, 1, g.ID)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected one project, got %d", len(projects))
	}
}

func TestOwnershipIsolation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	g, err := svc.CreateGoal(ctx, 1, CreateGoalInput{Title: "Mine"})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	stolen := "Yours now"
	if err := svc.UpdateGoal(ctx, 2, g.ID, UpdateGoalInput{Title: &stolen}); err != nil {
		t.Fatalf("update as other user: %v", err)
	}
	if err := svc.DeleteGoal(ctx, 2, g.ID); err != nil {
		t.Fatalf("delete as other user: %v", err)
	}

	goals, err := svc.ListGoals(ctx, 1)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 1 || goals[0].Title != "Mine" {
		t.Fatalf("goal mutated or removed by non-owner: %v", goals)
	}
}
