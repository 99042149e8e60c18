package pomodoro

import (
	"context"
	"testing"
	"time"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/pomodoro"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/memory"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
)

func TestStartDefaultsDuration(t *testing.T) {
	svc := New(memory.New(), nil)

	sess, err := svc.Start(context.Background(), 1, StartInput{TaskDescription: "write docs"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.Duration != domain.DefaultDurationSeconds {
		t.Fatalf("duration = %d, want %d", sess.Duration, domain.DefaultDurationSeconds)
	}
	if sess.Completed {
		t.Fatal("new session must not start completed")
	}
}

func TestStartRejectsNegativeDuration(t *testing.T) {
	svc := New(memory.New(), nil)

	if _, err := svc.Start(context.Background(), 1, StartInput{Duration: -5}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCompleteAndToday(t *testing.T) {
	svc := New(memory.New(), nil)
	fixed := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	first, err := svc.Start(ctx, 1, StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Start(ctx, 1, StartInput{}); err != nil {
		t.Fatalf("start second: %v", err)
	}

	if err := svc.Complete(ctx, 1, first.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	count, err := svc.Today(ctx, 1)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if count.Total != 2 || count.Completed != 1 {
		t.Fatalf("today = %+v, want 2 total 1 completed", count)
	}

	// Completing another user's session is a silent no-op.
	if err := svc.Complete(ctx, 2, first.ID); err != nil {
		t.Fatalf("complete as other user: %v", err)
	}
	sessions, err := svc.List(ctx, 1, nil, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, sess := range sessions {
		if sess.ID == first.ID && sess.CompletedAt == nil {
			t.Fatal("owner completion lost")
		}
	}
}
