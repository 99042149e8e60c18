package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/relationship"
)

// --- RelationshipStore ------------------------------------------------------

const contactColumns = `id, user_id, contact_name, relationship, energy_impact, notes, boundary_set, last_interaction, created_at, updated_at`

func (s *Store) CreateContact(ctx context.Context, c relationship.Contact) (relationship.Contact, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return relationship.Contact{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO relationships (user_id, contact_name, relationship, energy_impact, notes, boundary_set, last_interaction, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, c.UserID, c.ContactName, nullStr(c.Relationship), c.EnergyImpact, nullStr(c.Notes), c.BoundarySet, nullTimePtr(c.LastInteraction), now, now).Scan(&id)
	if err != nil {
		return relationship.Contact{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+contactColumns+`
		FROM relationships
		WHERE id = $1
	`, id)
	return scanContact(row)
}

func scanContact(row rowScanner) (relationship.Contact, error) {
	var (
		c               relationship.Contact
		rel             sql.NullString
		notes           sql.NullString
		lastInteraction sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.ContactName, &rel, &c.EnergyImpact, &notes, &c.BoundarySet, &lastInteraction, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return relationship.Contact{}, err
	}
	c.Relationship = rel.String
	c.Notes = notes.String
	c.LastInteraction = timePtr(lastInteraction)
	return c, nil
}

func (s *Store) ListContacts(ctx context.Context, userID int64) ([]relationship.Contact, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []relationship.Contact{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+contactColumns+`
		FROM relationships
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]relationship.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *Store) UpdateContact(ctx context.Context, id, userID int64, patch relationship.ContactPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.ContactName != nil {
		b.set("contact_name", *patch.ContactName)
	}
	if patch.Relationship != nil {
		b.set("relationship", nullStr(*patch.Relationship))
	}
	if patch.EnergyImpact != nil {
		b.set("energy_impact", *patch.EnergyImpact)
	}
	if patch.Notes != nil {
		b.set("notes", nullStr(*patch.Notes))
	}
	if patch.BoundarySet != nil {
		b.set("boundary_set", *patch.BoundarySet)
	}
	if patch.LastInteraction != nil {
		b.set("last_interaction", *patch.LastInteraction)
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("relationships", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) DeleteContact(ctx context.Context, id, userID int64) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		DELETE FROM relationships WHERE id = $1 AND user_id = $2
	`, id, userID)
	return err
}
