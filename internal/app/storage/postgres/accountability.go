package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/accountability"
)

// --- AccountabilityStore ----------------------------------------------------

const partnerColumns = `id, user_id, partner_name, partner_email, partner_phone, relationship, active, created_at, updated_at`

func (s *Store) CreatePartner(ctx context.Context, p accountability.Partner) (accountability.Partner, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return accountability.Partner{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO accountability_partners (user_id, partner_name, partner_email, partner_phone, relationship, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.UserID, p.PartnerName, nullStr(p.PartnerEmail), nullStr(p.PartnerPhone), nullStr(p.Relationship), p.Active, now, now).Scan(&id)
	if err != nil {
		return accountability.Partner{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+partnerColumns+`
		FROM accountability_partners
		WHERE id = $1
	`, id)
	return scanPartner(row)
}

func scanPartner(row rowScanner) (accountability.Partner, error) {
	var (
		p            accountability.Partner
		email        sql.NullString
		phone        sql.NullString
		relationship sql.NullString
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.PartnerName, &email, &phone, &relationship, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return accountability.Partner{}, err
	}
	p.PartnerEmail = email.String
	p.PartnerPhone = phone.String
	p.Relationship = relationship.String
	return p, nil
}

func (s *Store) ListPartners(ctx context.Context, userID int64) ([]accountability.Partner, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []accountability.Partner{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+partnerColumns+`
		FROM accountability_partners
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]accountability.Partner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *Store) UpdatePartner(ctx context.Context, id, userID int64, patch accountability.PartnerPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.PartnerName != nil {
		b.set("partner_name", *patch.PartnerName)
	}
	if patch.PartnerEmail != nil {
		b.set("partner_email", nullStr(*patch.PartnerEmail))
	}
	if patch.PartnerPhone != nil {
		b.set("partner_phone", nullStr(*patch.PartnerPhone))
	}
	if patch.Relationship != nil {
		b.set("relationship", nullStr(*patch.Relationship))
	}
	if patch.Active != nil {
		b.set("active", *patch.Active)
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("accountability_partners", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

const commitmentColumns = `id, user_id, partner_id, goal_id, title, description, deadline, stakes, status, completed_at, created_at, updated_at`

func (s *Store) CreateCommitment(ctx context.Context, c accountability.Commitment) (accountability.Commitment, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return accountability.Commitment{}, err
	}

	if c.Status == "" {
		c.Status = accountability.CommitmentActive
	}
	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO commitments (user_id, partner_id, goal_id, title, description, deadline, stakes, status, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, c.UserID, nullIntPtr(c.PartnerID), nullIntPtr(c.GoalID), c.Title, nullStr(c.Description), nullTimePtr(c.Deadline), nullStr(c.Stakes), c.Status, nullTimePtr(c.CompletedAt), now, now).Scan(&id)
	if err != nil {
		return accountability.Commitment{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+commitmentColumns+`
		FROM commitments
		WHERE id = $1
	`, id)
	return scanCommitment(row)
}

func scanCommitment(row rowScanner) (accountability.Commitment, error) {
	var (
		c           accountability.Commitment
		partnerID   sql.NullInt64
		goalID      sql.NullInt64
		description sql.NullString
		deadline    sql.NullTime
		stakes      sql.NullString
		completedAt sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.UserID, &partnerID, &goalID, &c.Title, &description, &deadline, &stakes, &c.Status, &completedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return accountability.Commitment{}, err
	}
	c.PartnerID = intPtr(partnerID)
	c.GoalID = intPtr(goalID)
	c.Description = description.String
	c.Deadline = timePtr(deadline)
	c.Stakes = stakes.String
	c.CompletedAt = timePtr(completedAt)
	return c, nil
}

func (s *Store) ListCommitments(ctx context.Context, userID int64) ([]accountability.Commitment, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []accountability.Commitment{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+commitmentColumns+`
		FROM commitments
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]accountability.Commitment, 0)
	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *Store) UpdateCommitment(ctx context.Context, id, userID int64, patch accountability.CommitmentPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.PartnerID != nil {
		b.set("partner_id", *patch.PartnerID)
	}
	if patch.GoalID != nil {
		b.set("goal_id", *patch.GoalID)
	}
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.set("description", nullStr(*patch.Description))
	}
	if patch.Deadline != nil {
		b.set("deadline", *patch.Deadline)
	}
	if patch.Stakes != nil {
		b.set("stakes", nullStr(*patch.Stakes))
	}
	if patch.Status != nil {
		b.set("status", *patch.Status)
	}
	if patch.CompletedAt != nil {
		b.set("completed_at", *patch.CompletedAt)
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("commitments", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

const checkInColumns = `id, user_id, partner_id, commitment_id, scheduled_date, completed, completed_at, notes, created_at, updated_at`

func (s *Store) CreateCheckIn(ctx context.Context, c accountability.CheckIn) (accountability.CheckIn, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return accountability.CheckIn{}, err
	}

	now := time.Now().UTC()
	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO check_ins (user_id, partner_id, commitment_id, scheduled_date, completed, completed_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, c.UserID, nullIntPtr(c.PartnerID), nullIntPtr(c.CommitmentID), c.ScheduledDate, c.Completed, nullTimePtr(c.CompletedAt), nullStr(c.Notes), now, now).Scan(&id)
	if err != nil {
		return accountability.CheckIn{}, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+checkInColumns+`
		FROM check_ins
		WHERE id = $1
	`, id)
	return scanCheckIn(row)
}

func scanCheckIn(row rowScanner) (accountability.CheckIn, error) {
	var (
		c            accountability.CheckIn
		partnerID    sql.NullInt64
		commitmentID sql.NullInt64
		completedAt  sql.NullTime
		notes        sql.NullString
	)
	if err := row.Scan(&c.ID, &c.UserID, &partnerID, &commitmentID, &c.ScheduledDate, &c.Completed, &completedAt, &notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return accountability.CheckIn{}, err
	}
	c.PartnerID = intPtr(partnerID)
	c.CommitmentID = intPtr(commitmentID)
	c.CompletedAt = timePtr(completedAt)
	c.Notes = notes.String
	return c, nil
}

func (s *Store) ListCheckIns(ctx context.Context, userID int64) ([]accountability.CheckIn, error) {
	db, err := s.h.DB(ctx)
	if err != nil {
		return []accountability.CheckIn{}, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+checkInColumns+`
		FROM check_ins
		WHERE user_id = $1
		ORDER BY scheduled_date, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]accountability.CheckIn, 0)
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *Store) UpdateCheckIn(ctx context.Context, id, userID int64, patch accountability.CheckInPatch) error {
	db, err := s.h.DB(ctx)
	if err != nil {
		return err
	}

	var b setBuilder
	if patch.PartnerID != nil {
		b.set("partner_id", *patch.PartnerID)
	}
	if patch.CommitmentID != nil {
		b.set("commitment_id", *patch.CommitmentID)
	}
	if patch.ScheduledDate != nil {
		b.set("scheduled_date", *patch.ScheduledDate)
	}
	if patch.Completed != nil {
		b.set("completed", *patch.Completed)
	}
	if patch.CompletedAt != nil {
		b.set("completed_at", *patch.CompletedAt)
	}
	if patch.Notes != nil {
		b.set("notes", nullStr(*patch.Notes))
	}
	if b.empty() {
		return nil
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.where("check_ins", "id = $%d AND user_id = $%d", id, userID)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}
