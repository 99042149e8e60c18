// Package accountability models partners, the commitments made to them, and
// the scheduled check-ins that keep both honest.
package accountability

import "time"

// CommitmentStatus is the lifecycle state of a commitment.
type CommitmentStatus string

const (
	CommitmentActive    CommitmentStatus = "active"
	CommitmentCompleted CommitmentStatus = "completed"
	CommitmentFailed    CommitmentStatus = "failed"
)

// Valid reports whether the status is one of the accepted values.
func (s CommitmentStatus) Valid() bool {
	switch s {
	case CommitmentActive, CommitmentCompleted, CommitmentFailed:
		return true
	}
	return false
}

// Partner is a person the user answers to.
type Partner struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	PartnerName  string    `json:"partnerName"`
	PartnerEmail string    `json:"partnerEmail,omitempty"`
	PartnerPhone string    `json:"partnerPhone,omitempty"`
	Relationship string    `json:"relationship,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PartnerPatch is a partial update: nil means "leave unchanged".
type PartnerPatch struct {
	PartnerName  *string
	PartnerEmail *string
	PartnerPhone *string
	Relationship *string
	Active       *bool
}

// Commitment is a promise with optional stakes, optionally tied to a partner
// and a goal.
type Commitment struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"userId"`
	PartnerID   *int64           `json:"partnerId,omitempty"`
	GoalID      *int64           `json:"goalId,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Deadline    *time.Time       `json:"deadline,omitempty"`
	Stakes      string           `json:"stakes,omitempty"`
	Status      CommitmentStatus `json:"status"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CommitmentPatch is a partial update: nil means "leave unchanged".
type CommitmentPatch struct {
	PartnerID   *int64
	GoalID      *int64
	Title       *string
	Description *string
	Deadline    *time.Time
	Stakes      *string
	Status      *CommitmentStatus
	CompletedAt *time.Time
}

// CheckIn is a scheduled review with a partner over a commitment.
type CheckIn struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	PartnerID     *int64     `json:"partnerId,omitempty"`
	CommitmentID  *int64     `json:"commitmentId,omitempty"`
	ScheduledDate time.Time  `json:"scheduledDate"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CheckInPatch is a partial update: nil means "leave unchanged".
type CheckInPatch struct {
	PartnerID     *int64
	CommitmentID  *int64
	ScheduledDate *time.Time
	Completed     *bool
	CompletedAt   *time.Time
	Notes         *string
}
