// Package accountability is the procedure layer for partners, commitments,
// and scheduled check-ins.
package accountability

import (
	"context"
	"time"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/accountability"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/validate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// Service validates and persists the accountability records.
type Service struct {
	store storage.AccountabilityStore
	log   *logger.Logger
	now   func() time.Time
}

// New constructs an accountability service.
func New(store storage.AccountabilityStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("accountability")
	}
	return &Service{store: store, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// CreatePartnerInput is the accepted shape for a new partner.
type CreatePartnerInput struct {
	PartnerName  string `json:"partnerName"`
	PartnerEmail string `json:"partnerEmail,omitempty"`
	PartnerPhone string `json:"partnerPhone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// UpdatePartnerInput is the accepted shape for a partial partner update.
type UpdatePartnerInput struct {
	PartnerName  *string `json:"partnerName,omitempty"`
	PartnerEmail *string `json:"partnerEmail,omitempty"`
	PartnerPhone *string `json:"partnerPhone,omitempty"`
	Relationship *string `json:"relationship,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// CreatePartner validates and persists a new partner, active by default.
func (s *Service) CreatePartner(ctx context.Context, userID int64, in CreatePartnerInput) (domain.Partner, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.Partner{}, err
	}
	if err := validate.Required("partnerName", in.PartnerName); err != nil {
		return domain.Partner{}, err
	}

	p, err := s.store.CreatePartner(ctx, domain.Partner{
		UserID:       userID,
		PartnerName:  in.PartnerName,
		PartnerEmail: in.PartnerEmail,
		PartnerPhone: in.PartnerPhone,
		Relationship: in.Relationship,
		Active:       true,
	})
	if err != nil {
		return domain.Partner{}, validate.StoreWrite(err)
	}

	s.log.WithField("partner_id", p.ID).WithField("user_id", userID).Info("accountability partner created")
	return p, nil
}

// ListPartners returns the caller's partners.
func (s *Service) ListPartners(ctx context.Context, userID int64) ([]domain.Partner, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListPartners(ctx, userID)
}

// UpdatePartner applies a partial update; no row matching (id, userID) is a
// silent no-op.
func (s *Service) UpdatePartner(ctx context.Context, userID, id int64, in UpdatePartnerInput) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	return validate.StoreWrite(s.store.UpdatePartner(ctx, id, userID, domain.PartnerPatch{
		PartnerName:  in.PartnerName,
		PartnerEmail: in.PartnerEmail,
		PartnerPhone: in.PartnerPhone,
		Relationship: in.Relationship,
		Active:       in.Active,
	}))
}

// CreateCommitmentInput is the accepted shape for a new commitment.
type CreateCommitmentInput struct {
	PartnerID   *int64 `json:"partnerId,omitempty"`
	GoalID      *int64 `json:"goalId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Stakes      string `json:"stakes,omitempty"`
}

// UpdateCommitmentInput is the accepted shape for a partial commitment update.
type UpdateCommitmentInput struct {
	PartnerID   *int64     `json:"partnerId,omitempty"`
	GoalID      *int64     `json:"goalId,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Deadline    *string    `json:"deadline,omitempty"`
	Stakes      *string    `json:"stakes,omitempty"`
	Status      *string    `json:"status,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CreateCommitment validates and persists a new commitment, active by
// default. Partner and goal references are not verified to exist.
func (s *Service) CreateCommitment(ctx context.Context, userID int64, in CreateCommitmentInput) (domain.Commitment, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.Commitment{}, err
	}
	if err := validate.Required("title", in.Title); err != nil {
		return domain.Commitment{}, err
	}
	deadline, err := validate.OptionalDate("deadline", &in.Deadline)
	if err != nil {
		return domain.Commitment{}, err
	}

	c, err := s.store.CreateCommitment(ctx, domain.Commitment{
		UserID:      userID,
		PartnerID:   in.PartnerID,
		GoalID:      in.GoalID,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    deadline,
		Stakes:      in.Stakes,
		Status:      domain.CommitmentActive,
	})
	if err != nil {
		return domain.Commitment{}, validate.StoreWrite(err)
	}

	s.log.WithField("commitment_id", c.ID).WithField("user_id", userID).Info("commitment created")
	return c, nil
}

// ListCommitments returns the caller's commitments, most recent first.
func (s *Service) ListCommitments(ctx context.Context, userID int64) ([]domain.Commitment, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListCommitments(ctx, userID)
}

// UpdateCommitment applies a partial update; no row matching (id, userID) is
// a silent no-op.
func (s *Service) UpdateCommitment(ctx context.Context, userID, id int64, in UpdateCommitmentInput) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	patch := domain.CommitmentPatch{
		PartnerID:   in.PartnerID,
		GoalID:      in.GoalID,
		Title:       in.Title,
		Description: in.Description,
		Stakes:      in.Stakes,
		CompletedAt: in.CompletedAt,
	}

	deadline, err := validate.OptionalDate("deadline", in.Deadline)
	if err != nil {
		return err
	}
	patch.Deadline = deadline

	if in.Status != nil {
		status := domain.CommitmentStatus(*in.Status)
		if !status.Valid() {
			return errors.Validationf("status", "status must be active, completed or failed, got %q", *in.Status)
		}
		patch.Status = &status
	}

	return validate.StoreWrite(s.store.UpdateCommitment(ctx, id, userID, patch))
}

// CreateCheckInInput is the accepted shape for a new check-in.
type CreateCheckInInput struct {
	PartnerID     *int64 `json:"partnerId,omitempty"`
	CommitmentID  *int64 `json:"commitmentId,omitempty"`
	ScheduledDate string `json:"scheduledDate"`
	Notes         string `json:"notes,omitempty"`
}

// CreateCheckIn validates and persists a new scheduled check-in.
func (s *Service) CreateCheckIn(ctx context.Context, userID int64, in CreateCheckInInput) (domain.CheckIn, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.CheckIn{}, err
	}
	scheduledDate, err := validate.Date("scheduledDate", in.ScheduledDate)
	if err != nil {
		return domain.CheckIn{}, err
	}

	c, err := s.store.CreateCheckIn(ctx, domain.CheckIn{
		UserID:        userID,
		PartnerID:     in.PartnerID,
		CommitmentID:  in.CommitmentID,
		ScheduledDate: scheduledDate,
		Notes:         in.Notes,
	})
	if err != nil {
		return domain.CheckIn{}, validate.StoreWrite(err)
	}
	return c, nil
}

// ListCheckIns returns the caller's check-ins in scheduled order.
func (s *Service) ListCheckIns(ctx context.Context, userID int64) ([]domain.CheckIn, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListCheckIns(ctx, userID)
}

// CompleteCheckIn marks the caller's check-in done now, recording any closing
// notes; a missing row is a silent no-op.
func (s *Service) CompleteCheckIn(ctx context.Context, userID, id int64, notes string) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	done := true
	completedAt := s.now()
	patch := domain.CheckInPatch{
		Completed:   &done,
		CompletedAt: &completedAt,
	}
	if notes != "" {
		patch.Notes = &notes
	}
	return validate.StoreWrite(s.store.UpdateCheckIn(ctx, id, userID, patch))
}
