// Package timeaudit is the procedure layer for time-audit entries: input
// validation, ownership scoping, and the window summaries derived from the
// stored history.
package timeaudit

import (
	"context"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/aggregate"
	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/timeaudit"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/validate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// Service validates and persists time-audit entries.
type Service struct {
	store storage.TimeAuditStore
	log   *logger.Logger
}

// New constructs a time-audit service.
func New(store storage.TimeAuditStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("timeaudit")
	}
	return &Service{store: store, log: log}
}

// CreateInput is the accepted shape for a new entry.
type CreateInput struct {
	ActivityDate string `json:"activityDate"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Description  string `json:"description"`
	EnergyLevel  string `json:"energyLevel"`
	DollarValue  int    `json:"dollarValue"`
	Category     string `json:"category,omitempty"`
}

// UpdateInput is the accepted shape for a partial update; nil fields are
// left unchanged.
type UpdateInput struct {
	ActivityDate *string `json:"activityDate,omitempty"`
	StartTime    *string `json:"startTime,omitempty"`
	EndTime      *string `json:"endTime,omitempty"`
	Description  *string `json:"description,omitempty"`
	EnergyLevel  *string `json:"energyLevel,omitempty"`
	DollarValue  *int    `json:"dollarValue,omitempty"`
	Category     *string `json:"category,omitempty"`
}

// Create validates the input and persists a new entry for the caller.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (domain.Entry, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.Entry{}, err
	}
	activityDate, err := validate.Date("activityDate", in.ActivityDate)
	if err != nil {
		return domain.Entry{}, err
	}
	if err := validate.Clock("startTime", in.StartTime); err != nil {
		return domain.Entry{}, err
	}
	if err := validate.Clock("endTime", in.EndTime); err != nil {
		return domain.Entry{}, err
	}
	if err := validate.Required("description", in.Description); err != nil {
		return domain.Entry{}, err
	}
	level := domain.EnergyLevel(in.EnergyLevel)
	if !level.Valid() {
		return domain.Entry{}, errors.Validationf("energyLevel", "energyLevel must be red, yellow or green, got %q", in.EnergyLevel)
	}
	if in.DollarValue < 1 || in.DollarValue > 4 {
		return domain.Entry{}, errors.Validationf("dollarValue", "dollarValue must be between 1 and 4, got %d", in.DollarValue)
	}

	entry, err := s.store.CreateEntry(ctx, domain.Entry{
		UserID:       userID,
		ActivityDate: activityDate,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Description:  in.Description,
		EnergyLevel:  level,
		DollarValue:  in.DollarValue,
		Category:     in.Category,
	})
	if err != nil {
		return domain.Entry{}, validate.StoreWrite(err)
	}

	s.log.WithField("entry_id", entry.ID).WithField("user_id", userID).Info("time audit entry created")
	return entry, nil
}

// List returns the caller's entries, optionally bounded to an inclusive date
// range when both bounds are given.
func (s *Service) List(ctx context.Context, userID int64, startDate, endDate string) ([]domain.Entry, error) {
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
	return s.store.ListEntries(ctx, userID, start, end)
}

// Update applies a partial update to the caller's entry; no row matching
// (id, userID) is a silent no-op.
func (s *Service) Update(ctx context.Context, userID, id int64, in UpdateInput) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	if in.StartTime != nil {
		if err := validate.Clock("startTime", *in.StartTime); err != nil {
			return err
		}
	}
	if in.EndTime != nil {
		if err := validate.Clock("endTime", *in.EndTime); err != nil {
			return err
		}
	}
	patch := domain.EntryPatch{
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Description: in.Description,
		DollarValue: in.DollarValue,
		Category:    in.Category,
	}

	activityDate, err := validate.OptionalDate("activityDate", in.ActivityDate)
	if err != nil {
		return err
	}
	patch.ActivityDate = activityDate

	if in.EnergyLevel != nil {
		level := domain.EnergyLevel(*in.EnergyLevel)
		if !level.Valid() {
			return errors.Validationf("energyLevel", "energyLevel must be red, yellow or green, got %q", *in.EnergyLevel)
		}
		patch.EnergyLevel = &level
	}
	if in.DollarValue != nil && (*in.DollarValue < 1 || *in.DollarValue > 4) {
		return errors.Validationf("dollarValue", "dollarValue must be between 1 and 4, got %d", *in.DollarValue)
	}

	return validate.StoreWrite(s.store.UpdateEntry(ctx, id, userID, patch))
}

// Delete removes the caller's entry; a missing row is a silent no-op.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	return validate.StoreWrite(s.store.DeleteEntry(ctx, id, userID))
}

// Summaries computes the weekly, biweekly and monthly rollups for the
// caller's full history as of now.
func (s *Service) Summaries(ctx context.Context, userID int64, now time.Time) (map[int]aggregate.Summary, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	entries, err := s.store.ListEntries(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	return aggregate.WindowSummaries(entries, now), nil
}

// Suggest returns the caller's deduped activity descriptions filtered by a
// case-insensitive substring match.
func (s *Service) Suggest(ctx context.Context, userID int64, query string) ([]string, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	entries, err := s.store.ListEntries(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	return aggregate.Suggestions(entries, query), nil
}
