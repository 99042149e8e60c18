// Package metrics is the procedure layer for north-star and scorecard
// readings, including the chart series and progress figures derived from
// them.
package metrics

import (
	"context"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/aggregate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/metric"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/validate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// Service validates and persists metric readings.
type Service struct {
	store storage.MetricStore
	log   *logger.Logger
}

// New constructs a metrics service.
func New(store storage.MetricStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("metrics")
	}
	return &Service{store: store, log: log}
}

// CreateNorthStarInput is the accepted shape for a new north-star reading.
type CreateNorthStarInput struct {
	MetricName   string  `json:"metricName"`
	Unit         string  `json:"unit,omitempty"`
	TargetValue  float64 `json:"targetValue,omitempty"`
	CurrentValue float64 `json:"currentValue"`
	RecordedDate string  `json:"recordedDate"`
	Notes        string  `json:"notes,omitempty"`
}

// CreateNorthStar validates and persists a new north-star reading.
func (s *Service) CreateNorthStar(ctx context.Context, userID int64, in CreateNorthStarInput) (metric.NorthStar, error) {
	if err := validate.Caller(userID); err != nil {
		return metric.NorthStar{}, err
	}
	if err := validate.Required("metricName", in.MetricName); err != nil {
		return metric.NorthStar{}, err
	}
	recordedDate, err := validate.Date("recordedDate", in.RecordedDate)
	if err != nil {
		return metric.NorthStar{}, err
	}

	m, err := s.store.CreateNorthStar(ctx, metric.NorthStar{
		UserID:       userID,
		MetricName:   in.MetricName,
		Unit:         in.Unit,
		TargetValue:  in.TargetValue,
		CurrentValue: in.CurrentValue,
		RecordedDate: recordedDate,
		Notes:        in.Notes,
	})
	if err != nil {
		return metric.NorthStar{}, validate.StoreWrite(err)
	}

	s.log.WithField("metric_id", m.ID).WithField("user_id", userID).Info("north star reading recorded")
	return m, nil
}

// ListNorthStars returns the caller's readings most recent first, optionally
// filtered to one metric name.
func (s *Service) ListNorthStars(ctx context.Context, userID int64, metricName string) ([]metric.NorthStar, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListNorthStars(ctx, userID, metricName)
}

// NorthStarProgress reports the latest reading's completion percentage and
// its chart series, oldest first. An empty history reports zero progress and
// an empty series.
func (s *Service) NorthStarProgress(ctx context.Context, userID int64, metricName string) (int, []aggregate.ChartPoint, error) {
	if err := validate.Caller(userID); err != nil {
		return 0, nil, err
	}
	readings, err := s.store.ListNorthStars(ctx, userID, metricName)
	if err != nil {
		return 0, nil, err
	}
	series := aggregate.NorthStarSeries(readings)
	if len(series) == 0 {
		return 0, series, nil
	}
	latest := series[len(series)-1]
	return aggregate.ProgressPercent(latest.Current, latest.Target), series, nil
}

// CreateScorecardInput is the accepted shape for a new scorecard reading.
type CreateScorecardInput struct {
	MetricName   string   `json:"metricName"`
	Category     string   `json:"category,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	TargetValue  *float64 `json:"targetValue,omitempty"`
	CurrentValue float64  `json:"currentValue"`
	RecordedDate string   `json:"recordedDate"`
	Status       string   `json:"status,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// UpdateScorecardInput is the accepted shape for a partial scorecard update.
type UpdateScorecardInput struct {
	MetricName   *string  `json:"metricName,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	TargetValue  *float64 `json:"targetValue,omitempty"`
	CurrentValue *float64 `json:"currentValue,omitempty"`
	RecordedDate *string  `json:"recordedDate,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// CreateScorecard validates and persists a new scorecard reading.
func (s *Service) CreateScorecard(ctx context.Context, userID int64, in CreateScorecardInput) (metric.Scorecard, error) {
	if err := validate.Caller(userID); err != nil {
		return metric.Scorecard{}, err
	}
	if err := validate.Required("metricName", in.MetricName); err != nil {
		return metric.Scorecard{}, err
	}
	recordedDate, err := validate.Date("recordedDate", in.RecordedDate)
	if err != nil {
		return metric.Scorecard{}, err
	}
	status := metric.ScorecardStatus(in.Status)
	if in.Status != "" && !status.Valid() {
		return metric.Scorecard{}, errors.Validationf("status", "status must be red, yellow or green, got %q", in.Status)
	}

	m, err := s.store.CreateScorecard(ctx, metric.Scorecard{
		UserID:       userID,
		MetricName:   in.MetricName,
		Category:     in.Category,
		Unit:         in.Unit,
		TargetValue:  in.TargetValue,
		CurrentValue: in.CurrentValue,
		RecordedDate: recordedDate,
		Status:       status,
		Notes:        in.Notes,
	})
	if err != nil {
		return metric.Scorecard{}, validate.StoreWrite(err)
	}

	s.log.WithField("metric_id", m.ID).WithField("user_id", userID).Info("scorecard reading recorded")
	return m, nil
}

// ListScorecards returns the caller's readings most recent first, optionally
// bounded to an inclusive date range when both bounds are given.
func (s *Service) ListScorecards(ctx context.Context, userID int64, startDate, endDate string) ([]metric.Scorecard, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	start, err := validate.OptionalDate("startDate", &startDate)
	if err != nil {
		return nil, err
	}
	end, err := validate.OptionalDate("endDate", &endDate)
	if err != nil {
		return nil, err
	}
	return s.store.ListScorecards(ctx, userID, start, end)
}

// ScorecardSeries returns one named metric's chart points, oldest first.
func (s *Service) ScorecardSeries(ctx context.Context, userID int64, metricName string) ([]aggregate.ChartPoint, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	readings, err := s.store.ListScorecards(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	return aggregate.ScorecardSeries(readings, metricName), nil
}

// LatestScorecards returns the most recent reading of each metric name.
func (s *Service) LatestScorecards(ctx context.Context, userID int64) (map[string]metric.Scorecard, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	readings, err := s.store.ListScorecards(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	return aggregate.LatestScorecardPerName(readings), nil
}

// UpdateScorecard applies a partial update addressed by id alone; a missing
// row is a silent no-op. The call is not scoped to the caller's user id,
// matching the established contract for this record kind.
func (s *Service) UpdateScorecard(ctx context.Context, id int64, in UpdateScorecardInput) error {
	patch := metric.ScorecardPatch{
		MetricName:   in.MetricName,
		Category:     in.Category,
		Unit:         in.Unit,
		TargetValue:  in.TargetValue,
		CurrentValue: in.CurrentValue,
		Notes:        in.Notes,
	}

	recordedDate, err := validate.OptionalDate("recordedDate", in.RecordedDate)
	if err != nil {
		return err
	}
	patch.RecordedDate = recordedDate

	if in.Status != nil {
		status := metric.ScorecardStatus(*in.Status)
		if !status.Valid() {
			return errors.Validationf("status", "status must be red, yellow or green, got %q", *in.Status)
		}
		patch.Status = &status
	}

	return validate.StoreWrite(s.store.UpdateScorecard(ctx, id, patch))
}

// DeleteScorecard removes a reading addressed by id alone; a missing row is a
// silent no-op.
func (s *Service) DeleteScorecard(ctx context.Context, id int64) error {
	return validate.StoreWrite(s.store.DeleteScorecard(ctx, id))
}
