package planning

import (
	"context"
	"testing"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/memory"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
)

func TestDailyPlanLifecycle(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	p, err := svc.CreatePlan(ctx, 1, CreatePlanInput{
		PlanDate:       "2026-03-02",
		First90MinTask: "Write launch email",
		KeyTasks:       `["email","standup"]`,
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	got, err := svc.GetPlanByDate(ctx, 1, "2026-03-02")
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if got == nil || got.ID != p.ID || got.First90MinTask != "Write launch email" {
		t.Fatalf("get plan = %+v, want the created plan", got)
	}

	missing, err := svc.GetPlanByDate(ctx, 1, "2026-03-03")
	if err != nil {
		t.Fatalf("get missing plan: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for a date without a plan, got %+v", missing)
	}

	done := true
	if err := svc.UpdatePlan(ctx, 1, p.ID, UpdatePlanInput{Completed: &done}); err != nil {
		t.Fatalf("update plan: %v", err)
	}
	got, _ = svc.GetPlanByDate(ctx, 1, "2026-03-02")
	if got == nil || !got.Completed {
		t.Fatalf("plan not marked completed: %+v", got)
	}
}

func TestPlanDateValidation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.CreatePlan(ctx, 1, CreatePlanInput{}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for missing date, got %v", err)
	}
	if _, err := svc.GetPlanByDate(ctx, 1, "yesterday"); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}

func TestGoalReviewDay(t *testing.T) {
	svc := New(memory.New(), nil)
	fixed := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	for _, slot := range []string{"morning", "afternoon", "evening"} {
		if _, err := svc.CreateReview(ctx, 1, CreateReviewInput{ReviewDate: "2026-03-02", ReviewTime: slot}); err != nil {
			t.Fatalf("create %s review: %v", slot, err)
		}
	}
	if _, err := svc.CreateReview(ctx, 1, CreateReviewInput{ReviewDate: "2026-03-02", ReviewTime: "midnight"}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad slot, got %v", err)
	}

	reviews, err := svc.ListReviewsByDate(ctx, 1, "2026-03-02")
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(reviews) != 3 {
		t.Fatalf("expected three slots, got %d", len(reviews))
	}

	if err := svc.CompleteReview(ctx, 1, reviews[0].ID); err != nil {
		t.Fatalf("complete review: %v", err)
	}
	reviews, _ = svc.ListReviewsByDate(ctx, 1, "2026-03-02")
	var completed int
	for _, r := range reviews {
		if r.Completed {
			completed++
			if r.CompletedAt == nil || !r.CompletedAt.Equal(fixed) {
				t.Fatalf("completedAt = %v, want %v", r.CompletedAt, fixed)
			}
		}
	}
	if completed != 1 {
		t.Fatalf("completed slots = %d, want 1", completed)
	}

	// Another day's slots stay separate.
	other, err := svc.ListReviewsByDate(ctx, 1, "2026-03-03")
	if err != nil {
		t.Fatalf("list other day: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no slots on other day, got %v", other)
	}
}
