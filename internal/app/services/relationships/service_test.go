package relationships

import (
	"context"
	"testing"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/relationship"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/memory"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
)

func TestContactLifecycle(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, CreateInput{
		ContactName:  "Jordan",
		Relationship: "mentor",
		EnergyImpact: "green",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	yellow := "yellow"
	boundary := true
	if err := svc.Update(ctx, 1, c.ID, UpdateInput{EnergyImpact: &yellow, BoundarySet: &boundary}); err != nil {
		t.Fatalf("update: %v", err)
	}

	contacts, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("expected one contact, got %d", len(contacts))
	}
	got := contacts[0]
	if got.EnergyImpact != domain.ImpactYellow || !got.BoundarySet {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := svc.Delete(ctx, 1, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	contacts, _ = svc.List(ctx, 1)
	if len(contacts) != 0 {
		t.Fatalf("expected empty list after delete, got %v", contacts)
	}
}

func TestContactValidation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, CreateInput{EnergyImpact: "green"}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if _, err := svc.Create(ctx, 1, CreateInput{ContactName: "Jordan", EnergyImpact: "purple"}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad impact, got %v", err)
	}

	c, err := svc.Create(ctx, 1, CreateInput{ContactName: "Jordan", EnergyImpact: "green"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	bad := "purple"
	if err := svc.Update(ctx, 1, c.ID, UpdateInput{EnergyImpact: &bad}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad impact on update, got %v", err)
	}
}

func TestContactOwnershipIsolation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, CreateInput{ContactName: "Jordan", EnergyImpact: "green"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stolen := "Nobody"
	if err := svc.Update(ctx, 2, c.ID, UpdateInput{ContactName: &stolen}); err != nil {
		t.Fatalf("update as other user: %v", err)
	}
	if err := svc.Delete(ctx, 2, c.ID); err != nil {
		t.Fatalf("delete as other user: %v", err)
	}

	contacts, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(contacts) != 1 || contacts[0].ContactName != "Jordan" {
		t.Fatalf("contact mutated or removed by non-owner: %v", contacts)
	}
}
