// Package relationships is the procedure layer for tracked contacts.
package relationships

import (
	"context"
	"time"

	domain "github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/relationship"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/storage"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/validate"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/errors"
	"github.com/palisadeengineering/goal-achievement-dashboard/pkg/logger"
)

// Service validates and persists relationship contacts.
type Service struct {
	store storage.RelationshipStore
	log   *logger.Logger
}

// New constructs a relationships service.
func New(store storage.RelationshipStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("relationships")
	}
	return &Service{store: store, log: log}
}

// CreateInput is the accepted shape for a new contact.
type CreateInput struct {
	ContactName     string `json:"contactName"`
	Relationship    string `json:"relationship,omitempty"`
	EnergyImpact    string `json:"energyImpact"`
	Notes           string `json:"notes,omitempty"`
	BoundarySet     bool   `json:"boundarySet,omitempty"`
	LastInteraction string `json:"lastInteraction,omitempty"`
}

// UpdateInput is the accepted shape for a partial contact update.
type UpdateInput struct {
	ContactName     *string    `json:"contactName,omitempty"`
	Relationship    *string    `json:"relationship,omitempty"`
	EnergyImpact    *string    `json:"energyImpact,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	BoundarySet     *bool      `json:"boundarySet,omitempty"`
	LastInteraction *time.Time `json:"lastInteraction,omitempty"`
}

// Create validates and persists a new contact for the caller.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (domain.Contact, error) {
	if err := validate.Caller(userID); err != nil {
		return domain.Contact{}, err
	}
	if err := validate.Required("contactName", in.ContactName); err != nil {
		return domain.Contact{}, err
	}
	impact := domain.EnergyImpact(in.EnergyImpact)
	if !impact.Valid() {
		return domain.Contact{}, errors.Validationf("energyImpact", "energyImpact must be red, yellow or green, got %q", in.EnergyImpact)
	}
	lastInteraction, err := validate.OptionalDate("lastInteraction", &in.LastInteraction)
	if err != nil {
		return domain.Contact{}, err
	}

	c, err := s.store.CreateContact(ctx, domain.Contact{
		UserID:          userID,
		ContactName:     in.ContactName,
		Relationship:    in.Relationship,
		EnergyImpact:    impact,
		Notes:           in.Notes,
		BoundarySet:     in.BoundarySet,
		LastInteraction: lastInteraction,
	})
	if err != nil {
		return domain.Contact{}, validate.StoreWrite(err)
	}

	s.log.WithField("contact_id", c.ID).WithField("user_id", userID).Info("relationship contact created")
	return c, nil
}

// List returns the caller's contacts.
func (s *Service) List(ctx context.Context, userID int64) ([]domain.Contact, error) {
	if err := validate.Caller(userID); err != nil {
		return nil, err
	}
	return s.store.ListContacts(ctx, userID)
}

// Update applies a partial update; no row matching (id, userID) is a silent
// no-op.
func (s *Service) Update(ctx context.Context, userID, id int64, in UpdateInput) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	patch := domain.ContactPatch{
		ContactName:     in.ContactName,
		Relationship:    in.Relationship,
		Notes:           in.Notes,
		BoundarySet:     in.BoundarySet,
		LastInteraction: in.LastInteraction,
	}
	if in.EnergyImpact != nil {
		impact := domain.EnergyImpact(*in.EnergyImpact)
		if !impact.Valid() {
			return errors.Validationf("energyImpact", "energyImpact must be red, yellow or green, got %q", *in.EnergyImpact)
		}
		patch.EnergyImpact = &impact
	}

	return validate.StoreWrite(s.store.UpdateContact(ctx, id, userID, patch))
}

// Delete removes the caller's contact; a missing row is a silent no-op.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := validate.Caller(userID); err != nil {
		return err
	}
	return validate.StoreWrite(s.store.DeleteContact(ctx, id, userID))
}
