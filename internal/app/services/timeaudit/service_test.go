package timeaudit

import (
	"context"
	"testing"
	"time"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/timeaudit"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/memory"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
)

func TestCreateListAndSummary(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	entry, err := svc.Create(ctx, 1, CreateInput{
		ActivityDate: "2026-03-02",
		StartTime:    "09:00",
		EndTime:      "09:30",
		Description:  "deep work",
		EnergyLevel:  "green",
		DollarValue:  3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected assigned id")
	}

	list, err := svc.List(ctx, 1, "2026-03-02", "2026-03-02")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != entry.ID {
		t.Fatalf("expected exactly the created entry, got %v", list)
	}

	now := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	summaries, err := svc.Summaries(ctx, 1, now)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	weekly := summaries[7]
	if weekly.TotalEntries != 1 || weekly.TotalMinutes != 30 {
		t.Fatalf("weekly = %+v, want 1 entry of 30 minutes", weekly)
	}
	if weekly.EnergyCounts[domain.EnergyGreen] != 1 {
		t.Fatalf("expected one green entry, got %v", weekly.EnergyCounts)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing date", CreateInput{StartTime: "09:00", EndTime: "10:00", Description: "x", EnergyLevel: "green", DollarValue: 1}},
		{"bad energy", CreateInput{ActivityDate: "2026-03-02", StartTime: "09:00", EndTime: "10:00", Description: "x", EnergyLevel: "blue", DollarValue: 1}},
		{"dollar too high", CreateInput{ActivityDate: "2026-03-02", StartTime: "09:00", EndTime: "10:00", Description: "x", EnergyLevel: "green", DollarValue: 5}},
		{"dollar too low", CreateInput{ActivityDate: "2026-03-02", StartTime: "09:00", EndTime: "10:00", Description: "x", EnergyLevel: "green", DollarValue: 0}},
		{"blank description", CreateInput{ActivityDate: "2026-03-02", StartTime: "09:00", EndTime: "10:00", Description: "  ", EnergyLevel: "green", DollarValue: 1}},
	}
	for _, c := range cases {
		if _, err := svc.Create(ctx, 1, c.in); !errors.IsCode(err, errors.CodeValidation) {
			t.Errorf("%s: expected validation error, got %v", c.name, err)
		}
	}
}

func TestClockFormatEnforced(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	valid := CreateInput{
		ActivityDate: "2026-03-02",
		StartTime:    "09:00",
		EndTime:      "09:30",
		Description:  "deep work",
		EnergyLevel:  "green",
		DollarValue:  3,
	}

	for _, bad := range []string{"9am!", "whenever", "09:00:00", "25:00", "09:61"} {
		in := valid
		in.StartTime = bad
		if _, err := svc.Create(ctx, 1, in); !errors.IsCode(err, errors.CodeValidation) {
			t.Errorf("startTime %q: expected validation error, got %v", bad, err)
		}
		in = valid
		in.EndTime = bad
		if _, err := svc.Create(ctx, 1, in); !errors.IsCode(err, errors.CodeValidation) {
			t.Errorf("endTime %q: expected validation error, got %v", bad, err)
		}
	}

	entry, err := svc.Create(ctx, 1, valid)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := "09:00:00"
	if err := svc.Update(ctx, 1, entry.ID, UpdateInput{EndTime: &bad}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("update with bad endTime: expected validation error, got %v", err)
	}
	list, err := svc.List(ctx, 1, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].EndTime != "09:30" {
		t.Fatalf("entry mutated by rejected update: %v", list)
	}
}

func TestOperationsRequireCaller(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	in := CreateInput{
		ActivityDate: "2026-03-02",
		StartTime:    "09:00",
		EndTime:      "09:30",
		Description:  "deep work",
		EnergyLevel:  "green",
		DollarValue:  3,
	}
	if _, err := svc.Create(ctx, 0, in); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("create without caller: expected unauthorized, got %v", err)
	}
	if _, err := svc.Create(ctx, -4, in); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("create with negative caller: expected unauthorized, got %v", err)
	}
	if _, err := svc.List(ctx, 0, "", ""); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("list without caller: expected unauthorized, got %v", err)
	}
	if err := svc.Update(ctx, 0, 1, UpdateInput{}); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("update without caller: expected unauthorized, got %v", err)
	}
	if err := svc.Delete(ctx, 0, 1); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("delete without caller: expected unauthorized, got %v", err)
	}
	if _, err := svc.Summaries(ctx, 0, time.Now()); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("summaries without caller: expected unauthorized, got %v", err)
	}
	if _, err := svc.Suggest(ctx, 0, "deep"); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("suggest without caller: expected unauthorized, got %v", err)
	}

	// Nothing reached the store on the rejected create.
	entries, err := store.ListEntries(ctx, 0, nil, nil)
	if err != nil {
		t.Fatalf("store list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected create persisted %d entries", len(entries))
	}
}

func TestUpdateAndDeleteScopedToOwner(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	entry, err := svc.Create(ctx, 1, CreateInput{
		ActivityDate: "2026-03-02",
		StartTime:    "09:00",
		EndTime:      "09:30",
		Description:  "deep work",
		EnergyLevel:  "green",
		DollarValue:  3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	other := "stolen"
	if err := svc.Update(ctx, 2, entry.ID, UpdateInput{Description: &other}); err != nil {
		t.Fatalf("update as other user: %v", err)
	}
	if err := svc.Delete(ctx, 2, entry.ID); err != nil {
		t.Fatalf("delete as other user: %v", err)
	}

	list, err := svc.List(ctx, 1, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Description != "deep work" {
		t.Fatalf("entry mutated or removed by non-owner: %v", list)
	}

	// Owner delete works; a second delete is still a reported success.
	if err := svc.Delete(ctx, 1, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, 1, entry.ID); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
}

func TestSuggest(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	for _, desc := range []string{"Deep work", "Deep work", "Email triage"} {
		if _, err := svc.Create(ctx, 1, CreateInput{
			ActivityDate: "2026-03-02",
			StartTime:    "09:00",
			EndTime:      "09:30",
			Description:  desc,
			EnergyLevel:  "green",
			DollarValue:  2,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := svc.Suggest(ctx, 1, "deep")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 1 || got[0] != "Deep work" {
		t.Fatalf("suggest = %v, want [Deep work]", got)
	}
}
