package accountability

import (
	"context"
	"testing"
	"time"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/accountability"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/memory"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
)

func TestPartnerLifecycle(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	p, err := svc.CreatePartner(ctx, 1, CreatePartnerInput{PartnerName: "Alex", PartnerEmail: "alex@example.com"})
	if err != nil {
		t.Fatalf("create partner: %v", err)
	}
	if !p.Active {
		t.Fatal("new partner must start active")
	}

	inactive := false
	if err := svc.UpdatePartner(ctx, 1, p.ID, UpdatePartnerInput{Active: &inactive}); err != nil {
		t.Fatalf("update partner: %v", err)
	}

	partners, err := svc.ListPartners(ctx, 1)
	if err != nil {
		t.Fatalf("list partners: %v", err)
	}
	if len(partners) != 1 || partners[0].Active {
		t.Fatalf("expected one inactive partner, got %v", partners)
	}

	if _, err := svc.CreatePartner(ctx, 1, CreatePartnerInput{}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestCommitmentLifecycle(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	p, err := svc.CreatePartner(ctx, 1, CreatePartnerInput{PartnerName: "Alex"})
	if err != nil {
		t.Fatalf("create partner: %v", err)
	}

	c, err := svc.CreateCommitment(ctx, 1, CreateCommitmentInput{
		PartnerID: &p.ID,
		Title:     "Ship the beta",
		Deadline:  "2026-04-01",
		Stakes:    "$100 to charity",
	})
	if err != nil {
		t.Fatalf("create commitment: %v", err)
	}
	if c.Status != domain.CommitmentActive {
		t.Fatalf("status = %s, want active", c.Status)
	}
	if c.Deadline == nil || c.Deadline.Format("2006-01-02") != "2026-04-01" {
		t.Fatalf("deadline = %v, want 2026-04-01", c.Deadline)
	}

	failed := "failed"
	if err := svc.UpdateCommitment(ctx, 1, c.ID, UpdateCommitmentInput{Status: &failed}); err != nil {
		t.Fatalf("update commitment: %v", err)
	}
	bad := "abandoned"
	if err := svc.UpdateCommitment(ctx, 1, c.ID, UpdateCommitmentInput{Status: &bad}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad status, got %v", err)
	}

	commitments, err := svc.ListCommitments(ctx, 1)
	if err != nil {
		t.Fatalf("list commitments: %v", err)
	}
	if len(commitments) != 1 || commitments[0].Status != domain.CommitmentFailed {
		t.Fatalf("expected one failed commitment, got %v", commitments)
	}
}

func TestCheckInCompletion(t *testing.T) {
	svc := New(memory.New(), nil)
	fixed := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	c, err := svc.CreateCheckIn(ctx, 1, CreateCheckInInput{ScheduledDate: "2026-03-09"})
	if err != nil {
		t.Fatalf("create check-in: %v", err)
	}
	if c.Completed {
		t.Fatal("new check-in must not start completed")
	}

	if err := svc.CompleteCheckIn(ctx, 1, c.ID, "went well"); err != nil {
		t.Fatalf("complete check-in: %v", err)
	}

	checkIns, err := svc.ListCheckIns(ctx, 1)
	if err != nil {
		t.Fatalf("list check-ins: %v", err)
	}
	if len(checkIns) != 1 {
		t.Fatalf("expected one check-in, got %d", len(checkIns))
	}
	got := checkIns[0]
	if !got.Completed || got.CompletedAt == nil || !got.CompletedAt.Equal(fixed) {
		t.Fatalf("check-in not completed at fixed time: %+v", got)
	}
	if got.Notes != "went well" {
		t.Fatalf("notes = %q, want closing notes recorded", got.Notes)
	}

	// Completing a check-in owned by someone else is a silent no-op.
	if err := svc.CompleteCheckIn(ctx, 2, c.ID, "hijack"); err != nil {
		t.Fatalf("complete as other user: %v", err)
	}
	checkIns, _ = svc.ListCheckIns(ctx, 1)
	if checkIns[0].Notes != "went well" {
		t.Fatalf("notes overwritten by non-owner: %q", checkIns[0].Notes)
	}
}

func TestCheckInValidation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.CreateCheckIn(ctx, 1, CreateCheckInInput{}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for missing date, got %v", err)
	}
	if _, err := svc.CreateCheckIn(ctx, 1, CreateCheckInInput{ScheduledDate: "soon"}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}
