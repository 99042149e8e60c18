package metrics

import (
	"context"
	"testing"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage/memory"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
)

func TestNorthStarProgress(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	for _, in := range []CreateNorthStarInput{
		{MetricName: "MRR", Unit: "usd", TargetValue: 10000, CurrentValue: 2500, RecordedDate: "2026-01-01"},
		{MetricName: "MRR", Unit: "usd", TargetValue: 10000, CurrentValue: 5000, RecordedDate: "2026-02-01"},
	} {
		if _, err := svc.CreateNorthStar(ctx, 1, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	percent, series, err := svc.NorthStarProgress(ctx, 1, "MRR")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if percent != 50 {
		t.Fatalf("percent = %d, want 50", percent)
	}
	if len(series) != 2 || series[0].Label != "Jan 1" || series[1].Label != "Feb 1" {
		t.Fatalf("series out of order: %v", series)
	}

	// An unknown metric name yields zero progress and no points.
	percent, series, err = svc.NorthStarProgress(ctx, 1, "NPS")
	if err != nil {
		t.Fatalf("progress empty: %v", err)
	}
	if percent != 0 || len(series) != 0 {
		t.Fatalf("expected empty progress, got %d%% over %v", percent, series)
	}
}

func TestNorthStarValidation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.CreateNorthStar(ctx, 1, CreateNorthStarInput{RecordedDate: "2026-01-01"}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if _, err := svc.CreateNorthStar(ctx, 1, CreateNorthStarInput{MetricName: "MRR", RecordedDate: "not-a-date"}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}

func TestOperationsRequireCaller(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	in := CreateNorthStarInput{MetricName: "MRR", TargetValue: 100, CurrentValue: 10, RecordedDate: "2026-01-01"}
	if _, err := svc.CreateNorthStar(ctx, 0, in); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("create north star without caller: expected unauthorized, got %v", err)
	}
	if _, err := svc.ListNorthStars(ctx, 0, ""); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("list north stars without caller: expected unauthorized, got %v", err)
	}
	if _, _, err := svc.NorthStarProgress(ctx, 0, "MRR"); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("progress without caller: expected unauthorized, got %v", err)
	}
	if _, err := svc.CreateScorecard(ctx, 0, CreateScorecardInput{MetricName: "x", RecordedDate: "2026-01-01"}); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("create scorecard without caller: expected unauthorized, got %v", err)
	}
	if _, err := svc.LatestScorecards(ctx, 0); !errors.IsCode(err, errors.CodeUnauthorized) {
		t.Fatalf("latest scorecards without caller: expected unauthorized, got %v", err)
	}

	readings, err := store.ListNorthStars(ctx, 0, "")
	if err != nil {
		t.Fatalf("store list: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("rejected create persisted %d readings", len(readings))
	}
}

func TestScorecardLifecycle(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	target := 5.0
	m, err := svc.CreateScorecard(ctx, 1, CreateScorecardInput{
		MetricName:   "Workouts",
		TargetValue:  &target,
		CurrentValue: 3,
		RecordedDate: "2026-03-02",
		Status:       "yellow",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	green := "green"
	five := 5.0
	if err := svc.UpdateScorecard(ctx, m.ID, UpdateScorecardInput{CurrentValue: &five, Status: &green}); err != nil {
		t.Fatalf("update: %v", err)
	}

	latest, err := svc.LatestScorecards(ctx, 1)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	got, ok := latest["Workouts"]
	if !ok || got.CurrentValue != 5 || got.Status != "green" {
		t.Fatalf("latest = %+v, want current 5 green", got)
	}

	series, err := svc.ScorecardSeries(ctx, 1, "Workouts")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series) != 1 || series[0].Target != 5 {
		t.Fatalf("series = %v, want one point with target 5", series)
	}

	if err := svc.DeleteScorecard(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err := svc.ListScorecards(ctx, 1, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %v", list)
	}
}

// Scorecard update and delete are addressed by id alone; a caller holding a
// valid id can mutate another user's reading. The contract is preserved as-is
// and pinned here.
func TestScorecardMutationsNotOwnerScoped(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	m, err := svc.CreateScorecard(ctx, 1, CreateScorecardInput{
		MetricName:   "Workouts",
		CurrentValue: 3,
		RecordedDate: "2026-03-02",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// No user id in the call; the owner's row changes regardless of caller.
	renamed := "Runs"
	if err := svc.UpdateScorecard(ctx, m.ID, UpdateScorecardInput{MetricName: &renamed}); err != nil {
		t.Fatalf("update: %v", err)
	}
	list, err := svc.ListScorecards(ctx, 1, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].MetricName != "Runs" {
		t.Fatalf("expected renamed reading, got %v", list)
	}
}

func TestScorecardValidation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	if _, err := svc.CreateScorecard(ctx, 1, CreateScorecardInput{
		MetricName:   "Workouts",
		RecordedDate: "2026-03-02",
		Status:       "blue",
	}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad status, got %v", err)
	}

	bad := "blue"
	if err := svc.UpdateScorecard(ctx, 1, UpdateScorecardInput{Status: &bad}); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error for bad status on update, got %v", err)
	}
}
